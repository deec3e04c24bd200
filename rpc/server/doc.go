// Package server implements the RPC server of the banking service.
// It provides the adapter that maps decoded wire requests onto the account
// ledger and the file store, along with the core server implementation that
// wires transport, domain logic and metrics together.
//
// The package focuses on:
//   - Server-side request handling for account and file operations
//   - Adapter pattern to decouple application logic from RPC mechanisms
//   - Operation metrics (request counts, failures, latency) with an optional
//     Prometheus endpoint
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for server adapters,
//     with the Handle method that processes one decoded request and always
//     produces a response.
//
//   - NewBankServerAdapter: Factory function creating the adapter that
//     translates requests into ledger.ILedger and filestore.IFileStore calls.
//     Domain errors come back as failure responses carrying the reason, never
//     as dropped connections.
//
//   - NewRPCServer: Factory function creating a configured server with the
//     specified transport. The wire serializer is part of the transport.
//
// Usage Example:
//
//	// Create server configuration
//	config := common.ServerConfig{
//	  Endpoint:      "0.0.0.0:8080",
//	  TimeoutSecond: 5,
//	  DataDir:       "./data",
//	  LogLevel:      "info",
//	}
//
//	// Create and start the server
//	s := server.NewRPCServer(
//	  config,
//	  tcp.NewTCPServerTransport(serializer.NewTextSerializer()),
//	)
//
//	// Start the server
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent
//	requests across multiple connections. Each request is processed
//	independently; the ledger and file store do their own locking.
//	The Serve method is not thread-safe and should be called only once.
package server
