package base

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
	"github.com/klind25/teller/rpc/transport"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector IServerConnector
	handler   transport.ServerHandleFunc
	config    common.ServerConfig

	serializer serializer.IRPCSerializer

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with the
// specified connector and payload serializer
func NewBaseServerTransport(connector IServerConnector, s serializer.IRPCSerializer) transport.IRPCServerTransport {
	return &serverTransport{
		connector:  connector,
		serializer: s,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		listener.Close()
		return fmt.Errorf("transport is closed")
	}
	t.listener = listener
	t.mu.Unlock()

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), config.Endpoint)

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				Logger.Infof("Listener closed, stopping accept loop")
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		// Handle the connection in a goroutine
		go t.handleConnection(conn)
	}
}

func (t *serverTransport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *serverTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.listener != nil {
		return t.listener.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection runs the exchange loop for one connection: receive one
// request, dispatch it, send the one response, repeat. The protocol allows
// no concurrent exchange on a single connection, so the loop is strictly
// sequential; concurrency comes from one goroutine per accepted connection.
// Errors end only this connection, never the server.
func (t *serverTransport) handleConnection(conn net.Conn) {
	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		Logger.Errorf("Failed to upgrade connection: %v", err)
		conn.Close()
		return
	}

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	channel, err := NewChannel(conn, t.serializer, t.config.MaxPayloadBytes, timeout)
	if err != nil {
		Logger.Errorf("Failed to create channel: %v", err)
		conn.Close()
		return
	}
	defer channel.Close()

	peer := channel.PeerAddress()
	Logger.Debugf("Accepted connection from %s", peer)

	for {
		req, err := channel.ReceiveRequest()

		// Case EOF: Connection closed by client between exchanges
		if err == io.EOF {
			Logger.Infof("Connection closed by client %s", peer)
			return
		}

		// Case error: log and close connection
		if err != nil {
			Logger.Errorf("Error receiving request from %s: %v", peer, err)
			return
		}

		// Process the request
		start := time.Now()
		resp := t.handler(peer, req)
		Logger.Debugf("Processed %s request from %s in %s", req.Type, peer, time.Since(start))

		if err := channel.SendResponse(resp); err != nil {
			Logger.Errorf("Failed to send response to %s: %v", peer, err)
			return
		}

		// A quit request ends the session once its response is out
		if req.Type == common.ReqQuit {
			Logger.Infof("Client %s ended the session", peer)
			return
		}
	}
}
