package client

import (
	"fmt"
	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of an RPC client
// Used by the bank client with composition pattern
type rpcClientAdapter struct {
	config    common.ClientConfig
	transport transport.IRPCClientTransport
}

// invokeRPCRequest is a helper function used for all RPC client methods to send requests
// It takes a request message and a transport layer as parameters
// It returns a response message and an error if any occurs
// This method also converts failure responses into errors
func invokeRPCRequest(req *common.Request, transport transport.IRPCClientTransport) (*common.Response, error) {
	// Send the request
	resp, err := transport.Send(req)
	if err != nil {
		return nil, err
	}

	// Check if the response is a failure response
	if !resp.Success {
		return nil, fmt.Errorf("RPC BankClient - Error: %s", resp.Message)
	}

	// Return the response
	return resp, nil
}
