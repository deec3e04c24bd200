package serializer

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klind25/teller/rpc/common"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() IRPCSerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the IRPCSerializer interface using gob encoding
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) SerializeRequest(req common.Request) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) DeserializeRequest(b []byte, req *common.Request) error {
	var decoded common.Request
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	if err := dec.Decode(&decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	*req = decoded
	return nil
}

func (g gobSerializerImpl) SerializeResponse(resp common.Response) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(resp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) DeserializeResponse(b []byte, resp *common.Response) error {
	var decoded common.Response
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	if err := dec.Decode(&decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	*resp = decoded
	return nil
}
