// Package http implements an HTTP-based transport layer for RPC communication
// in the banking service. It provides concrete implementations of the
// transport interfaces defined in the parent package, enabling communication
// between clients and servers over HTTP instead of raw stream sockets.
//
// The package focuses on:
//   - Client-side HTTP transport for sending requests to servers
//   - Server-side HTTP transport for receiving and handling requests
//   - Round-robin load balancing across multiple server endpoints
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport, serializing each
//     request into a POST body and decoding the response body back. It uses
//     round-robin selection for load balancing across multiple server
//     endpoints and retries failed exchanges.
//
//   - httpServerTransport: Implements IRPCServerTransport, exposing a single
//     POST /rpc route that decodes the body, dispatches to the registered
//     handler and writes the serialized response.
//
// Unlike the stream socket transports there is no per-session connection
// state: HTTP exchanges are independent, so a session-ending request simply
// receives its response without a connection teardown.
//
// Thread Safety:
//
//	The client transport is thread-safe and can be used concurrently. It uses
//	atomic operations for the round-robin counter to ensure thread safety when
//	selecting server endpoints.
package http
