package base

import (
	"fmt"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
	"github.com/klind25/teller/rpc/transport"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the given endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientConnection owns one channel to one endpoint. The mutex serializes
// exchanges on it: the protocol has no way to match interleaved responses,
// so a connection carries at most one request at a time.
type clientConnection struct {
	mu       sync.Mutex
	channel  *Channel
	endpoint string
	parent   *clientTransport
}

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector     IClientConnector
	serializer    serializer.IRPCSerializer
	config        common.ClientConfig
	connections   []*clientConnection
	connectionsMu sync.RWMutex
	nextConnIndex uint64 // Atomic counter for Round Robin
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the
// specified connector and payload serializer
func NewBaseClientTransport(connector IClientConnector, s serializer.IRPCSerializer) transport.IRPCClientTransport {
	return &clientTransport{
		connector:  connector,
		serializer: s,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if len(config.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}

	// Store the config
	t.config = config

	// Close all existing connections
	t.closeConnections()

	// Set default value for ConnectionsPerEndpoint
	connectionsPerEP := 1
	if config.ConnectionsPerEndpoint > 0 {
		connectionsPerEP = config.ConnectionsPerEndpoint
	}

	t.connectionsMu.Lock()
	t.connections = make([]*clientConnection, 0, len(config.Endpoints)*connectionsPerEP)
	t.connectionsMu.Unlock()

	// Initialize client connections
	for _, endpoint := range config.Endpoints {
		// Create multiple connections per endpoint
		for i := 0; i < connectionsPerEP; i++ {
			clientConn := &clientConnection{
				endpoint: endpoint,
				parent:   t,
			}

			// Establish the initial connection
			if err := clientConn.reconnect(); err != nil {
				Logger.Warningf("Failed to connect to %s (connection %d/%d): %v", endpoint, i+1, connectionsPerEP, err)
				continue
			}

			// Add to our connections list
			t.connectionsMu.Lock()
			t.connections = append(t.connections, clientConn)
			t.connectionsMu.Unlock()

			Logger.Infof("Connected to %s (connection %d/%d)", endpoint, i+1, connectionsPerEP)
		}
	}

	// Check if we have at least one connection
	t.connectionsMu.RLock()
	connected := len(t.connections)
	t.connectionsMu.RUnlock()
	if connected == 0 {
		return fmt.Errorf("failed to connect to any endpoint")
	}

	Logger.Infof("Connected to %d out of %d connections to %d endpoints using %s transport",
		connected, len(config.Endpoints)*connectionsPerEP, len(config.Endpoints), t.connector.GetName())

	return nil
}

func (t *clientTransport) Send(req *common.Request) (*common.Response, error) {
	// Retry logic with exponential backoff. Every attempt runs on a healthy
	// channel; a failed exchange discards its channel so the next attempt
	// starts from a fresh connection.
	var lastErr error

	// We always try at least once, and up to maxRetries times
	maxRetries := t.config.RetryCount
	if maxRetries < 1 {
		maxRetries = 1
	}

	// Initial backoff duration in milliseconds
	backoffMs := 50

	for i := 0; i < maxRetries; i++ {
		conn := t.getNextConnection()
		if conn == nil {
			return nil, fmt.Errorf("no active connections available")
		}

		// Try with this connection
		resp, err := conn.exchange(req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		Logger.Debugf("Request attempt %d/%d failed: %v", i+1, maxRetries, err)

		if i < maxRetries-1 {
			// Exponential backoff with a small random jitter (+-10%)
			jitter := float64(backoffMs) * (0.9 + 0.2*rand.Float64())
			backoffDuration := time.Duration(jitter) * time.Millisecond
			time.Sleep(backoffDuration)
			backoffMs *= 2
		}
	}

	// All attempts failed. Wrap the last error so its kind stays matchable.
	return nil, fmt.Errorf("request failed after %d attempt(s): %w", maxRetries, lastErr)
}

func (t *clientTransport) Close() error {
	t.closeConnections()
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// getNextConnection selects the next connection via Round Robin
func (t *clientTransport) getNextConnection() *clientConnection {
	t.connectionsMu.RLock()
	defer t.connectionsMu.RUnlock()

	if len(t.connections) == 0 {
		return nil
	}

	// Simple Round Robin algorithm
	var index uint64
	if len(t.connections) == 1 {
		// optimize for single connection
		index = 0
	} else {
		index = atomic.AddUint64(&t.nextConnIndex, 1) % uint64(len(t.connections))
	}
	return t.connections[index]
}

// closeConnections closes all active connections
func (t *clientTransport) closeConnections() {
	t.connectionsMu.Lock()
	defer t.connectionsMu.Unlock()

	for _, conn := range t.connections {
		conn.mu.Lock()
		conn.closeChannel()
		conn.mu.Unlock()
	}

	// Empty the list
	t.connections = nil
}

// exchange runs one request/response cycle on this connection, redialing
// first if a previous exchange left it dead
func (c *clientConnection) exchange(req *common.Request) (*common.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel == nil {
		if err := c.redial(); err != nil {
			return nil, err
		}
	}

	resp, err := c.channel.SendRequest(req)
	if err != nil {
		// The connection state is unknown after a failed exchange, it must
		// never be reused
		c.closeChannel()
		return nil, err
	}
	return resp, nil
}

// reconnect establishes or restores the connection to the endpoint
func (c *clientConnection) reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redial()
}

// redial replaces the channel with a freshly dialed one. Callers must hold
// the mutex.
func (c *clientConnection) redial() error {
	c.closeChannel()

	// Connect to the endpoint
	conn, err := c.parent.connector.Connect(c.endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", c.endpoint, err)
	}

	// Upgrade the connection with protocol-specific settings
	if err := c.parent.connector.UpgradeConnection(conn, c.parent.config); err != nil {
		conn.Close()
		return fmt.Errorf("failed to upgrade connection to %s: %v", c.endpoint, err)
	}

	timeout := time.Duration(c.parent.config.TimeoutSecond) * time.Second
	channel, err := NewChannel(conn, c.parent.serializer, c.parent.config.MaxPayloadBytes, timeout)
	if err != nil {
		conn.Close()
		return err
	}

	c.channel = channel
	return nil
}

// closeChannel drops the channel if present. Callers must hold the mutex.
func (c *clientConnection) closeChannel() {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
}
