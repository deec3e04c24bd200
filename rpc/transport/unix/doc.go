// Package unix implements a transport layer for the banking service's RPC
// system using Unix domain sockets. It provides optimized communication for
// processes running on the same machine.
//
// This package extends the base transport layer with Unix socket-specific
// connectors while inheriting all core functionality like length-prefixed
// framing, connection pooling and error handling from the base package.
//
// Key Components:
//
//   - clientConnector: Establishes connections using Unix domain sockets
//
//   - serverConnector: Creates Unix socket listeners and accepts connections
//
// The server removes a stale socket file before binding, so a crashed
// predecessor does not block the next start. Kernel socket buffer sizes can
// be tuned through the transport configuration.
//
// Performance Characteristics:
//
//   - Reduced overhead: Eliminates TCP/IP stack processing
//   - Lower latency: Direct kernel-mediated IPC avoids the network subsystem
package unix
