package server

import (
	"github.com/klind25/teller/rpc/common"
)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for handling requests and responses
type IRPCServerAdapter interface {
	// Handle handles a request and returns a response.
	// It takes the peer address (for logging) and the decoded request.
	// It must always return a response, never nil.
	// If an error occurs, it should be set in the response.
	Handle(peer string, req *common.Request) (resp *common.Response)
}
