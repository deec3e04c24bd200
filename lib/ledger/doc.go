// Package ledger provides the account management core of the banking service:
// balances keyed by account ID with deposit, withdrawal and balance query
// operations and unified error handling.
//
// The package focuses on:
//   - A small interface (ILedger) so callers never depend on the concrete
//     bookkeeping implementation
//   - Exact decimal arithmetic for monetary amounts (no binary floating point)
//   - Safe concurrent access from many client sessions at once
//
// Key Components:
//
//   - ILedger Interface: The core abstraction defining the three account
//     operations. All methods return the resulting balance together with a
//     typed error, allowing callers to make informed decisions based on
//     specific error conditions rather than generic errors.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes (unknown account, insufficient funds, invalid amount) and
//     descriptive messages.
//
//   - In-memory implementation: Balances live in a concurrent map from
//     account ID to account. The map itself shards keys internally, so
//     lookups scale across cores, while a per-account mutex serializes the
//     read-modify-write cycle of deposits and withdrawals. Operations on
//     different accounts never block each other.
//
// Amounts are decimal.Decimal values. This keeps scale intact ("100.50"
// stays "100.50") and makes balance arithmetic exact, which matters more
// here than raw arithmetic speed.
package ledger
