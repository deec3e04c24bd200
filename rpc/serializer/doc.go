// Package serializer provides payload serialization for the banking RPC
// system. It defines a common interface and multiple implementations for
// serializing and deserializing requests and responses between client and
// server components.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Implementing the canonical pipe-delimited text wire encoding
//   - Surfacing every parse failure as a distinguishable malformed-message
//     error instead of partially filled structs
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations must
//     satisfy.
//
//   - ErrMalformedMessage: Sentinel wrapped by every decode failure (missing
//     delimiters, malformed numerics, bad success literals, invalid JSON or
//     gob input). Match with errors.Is.
//
//   - textSerializerImpl: The canonical wire format. Fields joined by '|' in
//     fixed order, integers in decimal ASCII, amounts in scale-preserving
//     decimal notation, success as the literal "1"/"0". This is the only
//     encoding interoperable with non-Go peers and the default everywhere.
//
//   - jsonSerializerImpl: Implementation using JSON encoding, useful for
//     debugging or integration scenarios where readable payloads matter.
//
//   - gobSerializerImpl: Implementation using Go's built-in gob encoding.
//     Both ends must be Go programs configured for it.
//
// The text format is unescaped: apart from the final field of each payload
// (parsed as "everything remaining"), string fields must not contain the
// delimiter character. See the field documentation on common.Request.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are typically created once and reused throughout the
//	application:
//
//	  s := serializer.NewTextSerializer()
//	  data, err := s.SerializeRequest(req)
//	  // ... send data ...
//	  var resp common.Response
//	  err = s.DeserializeResponse(receivedData, &resp)
package serializer
