// Package common provides core data structures and utilities shared across
// the banking RPC system. It defines fundamental types, configuration
// structures, and protocol elements used by other packages.
//
// The package focuses on:
//   - Request/Response protocol definition for client/server communication
//   - Configuration structures for client and server components
//   - Custom logging implementation shared by all packages
//
// Key Components:
//
//   - Request: Core data structure for every client operation, with one flat
//     wire layout whose meaningful fields depend on the request type.
//     Includes factory methods for creating the individual request kinds.
//
//   - Response: The single reply to a request, carrying a success flag, the
//     resulting balance, optional file content and a human-readable message.
//
//   - RequestType: Enumeration defining all supported operations (deposit,
//     withdraw, balance, upload, download, quit). The numeric values are
//     fixed by the wire protocol.
//
//   - ServerConfig: Configuration for the server, including network endpoint,
//     timeouts, payload limits, storage and metrics settings.
//
//   - ClientConfig: Configuration for client components, controlling
//     connection parameters, timeouts, and retry behavior.
//
//   - Logger: Custom logging implementation providing consistent formatting
//     across the application.
package common
