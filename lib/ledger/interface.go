package ledger

import (
	"fmt"
	"github.com/shopspring/decimal"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ILedger is the generic interface for managing account balances.
// All operations return the resulting balance along with an error
// (nil on success). On error the returned balance is decimal.Zero
// and must be ignored.
type ILedger interface {
	// Deposit credits the given amount to an account. The first deposit for
	// an unknown account opens it with a zero starting balance. The amount
	// must be strictly positive.
	Deposit(accountID uint64, amount decimal.Decimal) (balance decimal.Decimal, err error)
	// Withdraw debits the given amount from an existing account. The amount
	// must be strictly positive and must not exceed the current balance.
	Withdraw(accountID uint64, amount decimal.Decimal) (balance decimal.Decimal, err error)
	// Balance returns the current balance of an existing account.
	Balance(accountID uint64) (balance decimal.Decimal, err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCUnknownAccount:
		errorCode = "UnknownAccount"
	case RetCInsufficientFunds:
		errorCode = "InsufficientFunds"
	case RetCInvalidAmount:
		errorCode = "InvalidAmount"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("LedgerError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new LedgerError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess           RetCode = iota // 0: Command executed successfully.
	RetCInternalError                    // 1: Command failed due to an internal error.
	RetCUnknownAccount                   // 2: Account does not exist.
	RetCInsufficientFunds                // 3: Withdrawal exceeds the current balance.
	RetCInvalidAmount                    // 4: Amount is zero or negative.
)
