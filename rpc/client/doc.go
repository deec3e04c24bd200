// Package client implements the RPC client of the banking service.
// It provides an implementation of the ledger.ILedger and
// filestore.IFileStore interfaces that communicates with a remote server
// via RPC, so application code works the same against a local ledger or a
// remote one.
//
// The package focuses on:
//   - Transparent RPC access to account and file operations
//   - Integration with the transport and serialization layers
//   - Conversion of failure responses into errors
//
// Key Components:
//
//   - IBankClient: The client interface, combining ledger.ILedger,
//     filestore.IFileStore and the session lifecycle (Quit, Close).
//
//   - NewRPCBankClient: Factory function that connects the given transport
//     and returns a ready-to-use client.
//
// Usage Example:
//
//	// Configure the client
//	config := common.ClientConfig{
//	  Endpoints:              []string{"localhost:5000"},
//	  TimeoutSecond:          5,
//	  RetryCount:             1,
//	  ConnectionsPerEndpoint: 1,
//	}
//
//	// Create the client (the serializer is part of the transport)
//	bank, _ := client.NewRPCBankClient(
//	  config,
//	  tcp.NewTCPClientTransport(serializer.NewTextSerializer()),
//	)
//
//	// Use the account operations
//	balance, _ := bank.Deposit(42, decimal.RequireFromString("100.50"))
//	balance, _ = bank.Withdraw(42, decimal.RequireFromString("40.00"))
//	balance, _ = bank.Balance(42)
//
//	// Transfer files
//	_ = bank.Save(42, "notes.txt", []byte("hello"))
//	data, _ := bank.Load(42, "notes.txt")
//
//	// End the session
//	_ = bank.Quit()
//	_ = bank.Close()
//
// Performance Considerations:
//
//   - For applications that frequently send large payloads, increasing
//     ConnectionsPerEndpoint can improve throughput by allowing parallel
//     requests.
//
//   - For small messages, a single connection per endpoint is often more
//     efficient due to reduced connection overhead.
//
//   - The text serializer matches the wire protocol spoken by foreign peers;
//     json and gob are alternatives when both ends run this codebase.
//
// Thread Safety:
//
//	The client is thread-safe and can be used concurrently from multiple
//	goroutines without additional synchronization. Requests are distributed
//	across the transport's connection pool.
package client
