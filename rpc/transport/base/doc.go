// Package base provides the foundation for the banking protocol's stream
// transports, implementing the framing discipline and the request/response
// exchange independent of the specific network protocol (TCP, Unix sockets).
// It serves as a base layer that is extended with protocol-specific
// connectors.
//
// The package focuses on:
//   - Length-prefixed framing: a 4-byte big-endian payload length followed
//     by exactly that many payload bytes, read and written with looped I/O
//     so arbitrary fragmentation on the stream never corrupts a frame
//   - A bound-checked maximum payload size, enforced before any allocation
//   - The Channel abstraction composing framing and payload serialization
//     into the three protocol operations (SendRequest, ReceiveRequest,
//     SendResponse)
//   - Protocol-agnostic client and server transports built on channels
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific
//     operations that allow extending the base transport with different
//     network protocols.
//
//   - Channel: One connected socket speaking the strict
//     one-request-one-response exchange. Channels are not concurrency-safe;
//     each owner serializes access.
//
//   - clientTransport: Core client implementation managing a pool of
//     channels (ConnectionsPerEndpoint per endpoint) with round-robin
//     selection, per-channel mutual exclusion, redial of dead channels and
//     configurable retry with exponential backoff.
//
//   - serverTransport: Core server implementation accepting connections and
//     running one sequential exchange loop per connection in its own
//     goroutine. A failing connection is torn down without affecting any
//     other client or the server itself.
//
// Error Handling:
//
//	Framing failures wrap the sentinel errors ErrTransport,
//	ErrConnectionClosed, ErrPayloadTooLarge and ErrTimeout; payload parse
//	failures wrap serializer.ErrMalformedMessage. A clean peer close before
//	a new frame surfaces as plain io.EOF. Match with errors.Is.
//
// Thread Safety:
//
//	The transports are safe for concurrent use. The client transport hands
//	each exchange a mutex-guarded channel; the server runs a dedicated
//	goroutine per connection. Bare channels are single-owner by contract.
package base
