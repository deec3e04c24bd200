package serializer

import (
	"encoding/json"
	"fmt"

	"github.com/klind25/teller/rpc/common"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() IRPCSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the IRPCSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) SerializeRequest(req common.Request) ([]byte, error) {
	return json.Marshal(req)
}

func (j jsonSerializerImpl) DeserializeRequest(b []byte, req *common.Request) error {
	var decoded common.Request
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	*req = decoded
	return nil
}

func (j jsonSerializerImpl) SerializeResponse(resp common.Response) ([]byte, error) {
	return json.Marshal(resp)
}

func (j jsonSerializerImpl) DeserializeResponse(b []byte, resp *common.Response) error {
	var decoded common.Response
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	*resp = decoded
	return nil
}
