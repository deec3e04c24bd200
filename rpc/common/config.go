package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Shared transport tuning
// --------------------------------------------------------------------------

// TransportConfig holds socket tuning applied when a connection is
// established or accepted. The zero value keeps the OS defaults.
type TransportConfig struct {
	// Disable Nagle's algorithm on TCP connections
	TCPNoDelay bool

	// TCP keep-alive period in seconds (0 disables keep-alive)
	TCPKeepAliveSec int

	// TCP linger in seconds (negative keeps the OS default)
	TCPLingerSec int

	// Socket buffer sizes in bytes (0 keeps the OS default)
	WriteBufferSize int
	ReadBufferSize  int
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the server.
type ServerConfig struct {
	// Address the server listens on (host:port for tcp/http, a filesystem
	// path for unix sockets)
	Endpoint string

	// Read/write deadline applied to every blocking socket operation.
	// Zero disables deadlines.
	TimeoutSecond int64

	// Upper bound for a single frame payload in bytes. Zero applies the
	// transport default.
	MaxPayloadBytes uint64

	// Directory uploaded files are stored under
	DataDir string

	// Optional address for the Prometheus metrics endpoint. Empty disables
	// the endpoint.
	MetricsEndpoint string

	// Logging configuration
	LogLevel string

	// Socket tuning
	Transport TransportConfig
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Max Payload", fmt.Sprintf("%d bytes", c.MaxPayloadBytes))

	// Storage
	addSection("Storage")
	addField("Data Directory", c.DataDir)

	// Observability
	addSection("Observability")
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	} else {
		addField("Metrics Endpoint", "disabled")
	}
	addField("Log Level", c.LogLevel)

	// Socket tuning
	addSection("Socket Tuning")
	addField("TCP No Delay", strconv.FormatBool(c.Transport.TCPNoDelay))
	addField("TCP Keep Alive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.Transport.TCPLingerSec))
	addField("Write Buffer Size", fmt.Sprintf("%d bytes", c.Transport.WriteBufferSize))
	addField("Read Buffer Size", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoints              []string
	TimeoutSecond          int
	RetryCount             int
	ConnectionsPerEndpoint int

	// Upper bound for a single frame payload in bytes. Zero applies the
	// transport default.
	MaxPayloadBytes uint64

	// Socket tuning
	Transport TransportConfig
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.ConnectionsPerEndpoint)))))
	addField("Max Payload", fmt.Sprintf("%d bytes", c.MaxPayloadBytes))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
