// Package rpc provides the remote procedure call framework of the teller
// banking service. It acts as the communication layer between clients and
// servers, enabling operations across network boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Request/Response protocol, configuration structures, and
//     logging.
//
//   - transport: Network communication abstractions with pluggable
//     implementations (TCP, Unix sockets, HTTP) built around a shared framed
//     channel.
//
//   - serializer: Message serialization with multiple format options (Text,
//     JSON, GOB) for converting between Request/Response objects and byte
//     arrays.
//
//   - client: RPC client implementation of the banking interfaces, allowing
//     applications to interact with a remote server transparently.
//
//   - server: RPC server components that handle incoming requests, including
//     the dispatch adapter for account and file operations.
package rpc
