package transport

import (
	"net"

	"github.com/klind25/teller/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a request is received
// It takes the peer address and the decoded request and returns the response
// to send back. It must always return a response, never nil.
type ServerHandleFunc func(peer string, req *common.Request) (resp *common.Response)

// IRPCServerTransport is the interface for the RPC transport layer
// It must accept a ServerConfig as a parameter
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler is called once per received request; the transport layer
	// is responsible for the framed one-request/one-response exchange
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and serves incoming requests until
	// Close is called. It blocks.
	Listen(config common.ServerConfig) error
	// Addr returns the bound listener address, or nil before Listen has
	// bound it. Useful for tests and ephemeral ports.
	Addr() net.Addr
	// Close stops the listener. Connections already accepted finish their
	// current exchange loop on their own.
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response. The call
	// blocks until the full response arrives or an error occurs; a failed
	// exchange never leaves a half-used connection behind.
	Send(req *common.Request) (resp *common.Response, err error)
	// Close closes the transport connection
	Close() error
}
