package serializer

import (
	"errors"

	"github.com/klind25/teller/rpc/common"
)

// ErrMalformedMessage is returned (wrapped, with context) whenever a payload
// cannot be parsed into the expected field set: missing delimiters, malformed
// integer or decimal fields, bad success literals, invalid JSON or gob data.
// Match with errors.Is.
var ErrMalformedMessage = errors.New("serializer: malformed message")

// IRPCSerializer is the interface for all Request/Response serializers
type IRPCSerializer interface {
	// SerializeRequest serializes a Request into a byte array
	// It returns the serialized byte array and an error if any
	SerializeRequest(req common.Request) ([]byte, error)
	// DeserializeRequest deserializes a byte array into a Request
	// It takes a byte array and a pointer to a Request as parameters
	// On failure it returns an error wrapping ErrMalformedMessage and leaves
	// the Request untouched
	DeserializeRequest(b []byte, req *common.Request) error
	// SerializeResponse serializes a Response into a byte array
	// It returns the serialized byte array and an error if any
	SerializeResponse(resp common.Response) ([]byte, error)
	// DeserializeResponse deserializes a byte array into a Response
	// It takes a byte array and a pointer to a Response as parameters
	// On failure it returns an error wrapping ErrMalformedMessage and leaves
	// the Response untouched
	DeserializeResponse(b []byte, resp *common.Response) error
}
