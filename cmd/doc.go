// Package cmd implements the command-line interface for the teller banking
// service. It provides a hierarchical command structure with operations for
// running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - account: Commands for account operations (deposit, withdraw, balance, quit)
//   - files: Commands for transferring files to and from the server
//   - serve: Commands for starting and configuring the teller server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See teller -help for a list of all commands.
package cmd
