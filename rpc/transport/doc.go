// Package transport defines the interfaces and abstractions for RPC
// communication in the banking service. It provides a common contract that
// all transport implementations must fulfill, enabling protocol-agnostic
// communication.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - A strict one-request-one-response exchange model
//   - Enabling multiple transport implementations (TCP, Unix sockets, HTTP)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations
//     that handles connection management and request sending.
//
//   - IRPCServerTransport: Interface for server-side transport implementations
//     that receives requests and dispatches them to the registered handler.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
package transport
