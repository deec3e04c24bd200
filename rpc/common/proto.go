package common

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// --------------------------------------------------------------------------
// Request / Response Structures
// --------------------------------------------------------------------------

// Request represents a single client request. Which fields are meaningful
// depends on the request type (e.g. a quit request ignores everything but
// the type itself); unused fields stay at their zero value.
//
// None of the string fields (Filename, Data) may contain the '|' wire
// delimiter: the text encoding is not escaped, and the round-trip guarantee
// only holds for delimiter-free values. This is a constraint on callers,
// not enforced here.
type Request struct {
	// Type of the requested operation
	Type RequestType `json:"type"`

	// Account the operation applies to
	UserID uint64 `json:"user_id,omitempty"`

	// Amount to deposit or withdraw. Decimal, never floating point, so the
	// wire representation round-trips exactly (100.50 stays "100.50").
	Amount decimal.Decimal `json:"amount"`

	// File transfer fields
	Filename string `json:"filename,omitempty"` // Used for: Upload, Download
	Data     string `json:"data,omitempty"`     // Used for: Upload
}

// Response represents the single reply to a Request. Success=false signals
// that the request failed; Message then carries a human-readable reason.
//
// Data and Message must not contain the '|' wire delimiter (see Request).
type Response struct {
	// Whether the request succeeded
	Success bool `json:"success"`

	// Resulting account balance. Used for: Deposit, Withdraw, Balance
	Balance decimal.Decimal `json:"balance"`

	// File content. Used for: Download
	Data string `json:"data,omitempty"`

	// Human-readable status or failure reason
	Message string `json:"message,omitempty"`
}

// --------------------------------------------------------------------------
// Request Factory Functions
// --------------------------------------------------------------------------

// NewDepositRequest creates a new Deposit request
func NewDepositRequest(userID uint64, amount decimal.Decimal) *Request {
	return &Request{
		Type:   ReqDeposit,
		UserID: userID,
		Amount: amount,
	}
}

// NewWithdrawRequest creates a new Withdraw request
func NewWithdrawRequest(userID uint64, amount decimal.Decimal) *Request {
	return &Request{
		Type:   ReqWithdraw,
		UserID: userID,
		Amount: amount,
	}
}

// NewBalanceRequest creates a new Balance request
func NewBalanceRequest(userID uint64) *Request {
	return &Request{
		Type:   ReqBalance,
		UserID: userID,
	}
}

// NewUploadRequest creates a new Upload request
func NewUploadRequest(userID uint64, filename, data string) *Request {
	return &Request{
		Type:     ReqUpload,
		UserID:   userID,
		Filename: filename,
		Data:     data,
	}
}

// NewDownloadRequest creates a new Download request
func NewDownloadRequest(userID uint64, filename string) *Request {
	return &Request{
		Type:     ReqDownload,
		UserID:   userID,
		Filename: filename,
	}
}

// NewQuitRequest creates a new Quit request
func NewQuitRequest() *Request {
	return &Request{
		Type: ReqQuit,
	}
}

// --------------------------------------------------------------------------
// Response Factory Functions
// --------------------------------------------------------------------------

// NewBalanceResponse creates a successful response carrying a balance
func NewBalanceResponse(balance decimal.Decimal) *Response {
	return &Response{
		Success: true,
		Balance: balance,
		Message: "OK",
	}
}

// NewFileResponse creates a successful response carrying file content
func NewFileResponse(data string) *Response {
	return &Response{
		Success: true,
		Data:    data,
		Message: "OK",
	}
}

// NewAckResponse creates a successful response with only a message
func NewAckResponse(message string) *Response {
	return &Response{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates a failed response carrying the reason
func NewErrorResponse(message string) *Response {
	return &Response{
		Success: false,
		Message: message,
	}
}

// --------------------------------------------------------------------------
// Equality
// --------------------------------------------------------------------------

// Equal reports whether two requests are identical. Amounts are compared
// numerically (decimal.Decimal carries its scale, so reflect.DeepEqual is
// not reliable across construction paths).
func (r *Request) Equal(o *Request) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Type == o.Type &&
		r.UserID == o.UserID &&
		r.Amount.Equal(o.Amount) &&
		r.Filename == o.Filename &&
		r.Data == o.Data
}

// Equal reports whether two responses are identical.
func (r *Response) Equal(o *Response) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Success == o.Success &&
		r.Balance.Equal(o.Balance) &&
		r.Data == o.Data &&
		r.Message == o.Message
}

// --------------------------------------------------------------------------
// Request Type Definition
// --------------------------------------------------------------------------

// RequestType defines the operation a Request asks for. The numeric values
// are fixed by the wire protocol and must not be reordered.
type RequestType uint8

// String returns the string representation of a RequestType.
func (t RequestType) String() string {
	switch t {
	case ReqDeposit:
		return "deposit"
	case ReqWithdraw:
		return "withdraw"
	case ReqBalance:
		return "balance"
	case ReqUpload:
		return "upload"
	case ReqDownload:
		return "download"
	case ReqQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for RequestType.
// This allows RequestType to be serialized as a string in JSON.
func (t RequestType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for RequestType.
// This allows RequestType to be deserialized from a string in JSON.
func (t *RequestType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to RequestType
	switch s {
	case "deposit":
		*t = ReqDeposit
	case "withdraw":
		*t = ReqWithdraw
	case "balance":
		*t = ReqBalance
	case "upload":
		*t = ReqUpload
	case "download":
		*t = ReqDownload
	case "quit":
		*t = ReqQuit
	case "unknown":
		*t = ReqUnknown
	default:
		return fmt.Errorf("unknown request type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Request Type Constants
// --------------------------------------------------------------------------

const (
	ReqUnknown  RequestType = iota // Zero value, never sent deliberately
	ReqDeposit                     // Add an amount to an account (1)
	ReqWithdraw                    // Remove an amount from an account (2)
	ReqBalance                     // Query an account balance (3)
	ReqUpload                      // Store a file on the server (4)
	ReqDownload                    // Fetch a file from the server (5)
	ReqQuit                        // End the session (6)
)
