package serializer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/klind25/teller/rpc/common"
)

// Delimiter separates the fields of the text wire format.
const Delimiter = "|"

const (
	requestFieldCount  = 5 // type|user_id|amount|filename|data
	responseFieldCount = 4 // success|balance|data|message
)

// NewTextSerializer creates a new serializer using the pipe-delimited text
// format. This is the canonical wire encoding and the only one that
// interoperates with non-Go peers:
//
//	request:  <type:int>|<user_id:int>|<amount:decimal>|<filename>|<data>
//	response: <success:0|1>|<balance:decimal>|<data>|<message>
//
// The encoding is not escaped. The final field is taken as "everything
// remaining" when decoding, so it survives embedded delimiters, but all
// other string fields must be delimiter-free (see common.Request).
func NewTextSerializer() IRPCSerializer {
	return &textSerializerImpl{}
}

// textSerializerImpl implements the IRPCSerializer interface using the
// pipe-delimited text encoding
type textSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (t textSerializerImpl) SerializeRequest(req common.Request) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(req.Type), 10))
	sb.WriteString(Delimiter)
	sb.WriteString(strconv.FormatUint(req.UserID, 10))
	sb.WriteString(Delimiter)
	sb.WriteString(req.Amount.String())
	sb.WriteString(Delimiter)
	sb.WriteString(req.Filename)
	sb.WriteString(Delimiter)
	sb.WriteString(req.Data)
	return []byte(sb.String()), nil
}

func (t textSerializerImpl) DeserializeRequest(b []byte, req *common.Request) error {
	parts := strings.SplitN(string(b), Delimiter, requestFieldCount)
	if len(parts) != requestFieldCount {
		return fmt.Errorf("%w: request has %d field(s), want %d", ErrMalformedMessage, len(parts), requestFieldCount)
	}

	reqType, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return fmt.Errorf("%w: request type %q: %v", ErrMalformedMessage, parts[0], err)
	}

	userID, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: user id %q: %v", ErrMalformedMessage, parts[1], err)
	}

	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		return fmt.Errorf("%w: amount %q: %v", ErrMalformedMessage, parts[2], err)
	}

	// Assign only after every field parsed
	req.Type = common.RequestType(reqType)
	req.UserID = userID
	req.Amount = amount
	req.Filename = parts[3]
	req.Data = parts[4]
	return nil
}

func (t textSerializerImpl) SerializeResponse(resp common.Response) ([]byte, error) {
	success := "0"
	if resp.Success {
		success = "1"
	}

	var sb strings.Builder
	sb.WriteString(success)
	sb.WriteString(Delimiter)
	sb.WriteString(resp.Balance.String())
	sb.WriteString(Delimiter)
	sb.WriteString(resp.Data)
	sb.WriteString(Delimiter)
	sb.WriteString(resp.Message)
	return []byte(sb.String()), nil
}

func (t textSerializerImpl) DeserializeResponse(b []byte, resp *common.Response) error {
	parts := strings.SplitN(string(b), Delimiter, responseFieldCount)
	if len(parts) != responseFieldCount {
		return fmt.Errorf("%w: response has %d field(s), want %d", ErrMalformedMessage, len(parts), responseFieldCount)
	}

	var success bool
	switch parts[0] {
	case "1":
		success = true
	case "0":
		success = false
	default:
		return fmt.Errorf("%w: success flag %q, want \"0\" or \"1\"", ErrMalformedMessage, parts[0])
	}

	balance, err := decimal.NewFromString(parts[1])
	if err != nil {
		return fmt.Errorf("%w: balance %q: %v", ErrMalformedMessage, parts[1], err)
	}

	// Assign only after every field parsed
	resp.Success = success
	resp.Balance = balance
	resp.Data = parts[2]
	resp.Message = parts[3]
	return nil
}
