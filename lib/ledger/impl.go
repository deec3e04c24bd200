package ledger

import (
	"fmt"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/shopspring/decimal"
)

// account holds one balance together with the mutex guarding it.
// The map entry for an account is never removed, so the pointer stays
// valid for the lifetime of the ledger.
type account struct {
	mu      sync.Mutex
	balance decimal.Decimal
}

type ledgerImpl struct {
	accounts *xsync.MapOf[uint64, *account]
}

// NewLedger creates a new in-memory ledger instance.
// This implementation keeps all balances on a single node and uses a
// concurrent map so independent accounts never contend with each other.
func NewLedger() ILedger {
	return &ledgerImpl{
		accounts: xsync.NewMapOf[uint64, *account](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see ledger/interface.go)
// --------------------------------------------------------------------------

func (l *ledgerImpl) Deposit(accountID uint64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, NewError(RetCInvalidAmount, fmt.Sprintf("deposit amount must be positive, got %s", amount))
	}

	// The first deposit opens the account
	acc, _ := l.accounts.LoadOrStore(accountID, &account{balance: decimal.Zero})

	acc.mu.Lock()
	defer acc.mu.Unlock()

	acc.balance = acc.balance.Add(amount)
	return acc.balance, nil
}

func (l *ledgerImpl) Withdraw(accountID uint64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, NewError(RetCInvalidAmount, fmt.Sprintf("withdrawal amount must be positive, got %s", amount))
	}

	acc, ok := l.accounts.Load(accountID)
	if !ok {
		return decimal.Zero, NewError(RetCUnknownAccount, fmt.Sprintf("account %d does not exist", accountID))
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	if acc.balance.LessThan(amount) {
		return decimal.Zero, NewError(RetCInsufficientFunds,
			fmt.Sprintf("balance %s is less than withdrawal %s", acc.balance, amount))
	}

	acc.balance = acc.balance.Sub(amount)
	return acc.balance, nil
}

func (l *ledgerImpl) Balance(accountID uint64) (decimal.Decimal, error) {
	acc, ok := l.accounts.Load(accountID)
	if !ok {
		return decimal.Zero, NewError(RetCUnknownAccount, fmt.Sprintf("account %d does not exist", accountID))
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	return acc.balance, nil
}
