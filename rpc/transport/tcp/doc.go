// Package tcp implements TCP socket-based transport for the banking service's
// RPC system. It provides concrete implementations of the base package's
// connector interfaces optimized for TCP connections.
//
// This package builds on the base package's transport functionality, inheriting
// its length-prefixed framing, connection pooling and request/response cycle.
// See the base package documentation for detailed information on the underlying
// transport mechanisms.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// Both connectors tune accepted and dialed sockets from the transport
// configuration: Nagle's algorithm (TCPNoDelay), socket buffer sizes,
// keep-alive probing and the linger behavior on close.
package tcp
