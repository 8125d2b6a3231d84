// Package treasury implements the value-transfer primitive as an
// account-balance ledger. The real fund rails are external to the system;
// this adapter models them at their interface boundary: value enters via
// Deposit, moves between accounts via Transfer, and a failed transfer aborts
// the surrounding operation.
package treasury

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Ledger is an in-memory account-balance treasury.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
}

// New creates a treasury with all balances at zero.
func New() *Ledger {
	return &Ledger{balances: make(map[string]decimal.Decimal)}
}

// Deposit credits an account with value arriving from outside the system.
func (l *Ledger) Deposit(account string, amount decimal.Decimal) error {
	if account == "" {
		return fmt.Errorf("deposit: account must not be empty")
	}
	if amount.IsNegative() {
		return fmt.Errorf("deposit: negative amount %s", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = l.balances[account].Add(amount)
	return nil
}

// Transfer moves value between two accounts. A zero amount is a no-op.
func (l *Ledger) Transfer(from, to string, amount decimal.Decimal) error {
	if from == "" || to == "" {
		return fmt.Errorf("transfer: accounts must not be empty")
	}
	if amount.IsNegative() {
		return fmt.Errorf("transfer: negative amount %s", amount)
	}
	if amount.IsZero() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from].LessThan(amount) {
		return fmt.Errorf("transfer: account %s holds %s, need %s", from, l.balances[from], amount)
	}
	l.balances[from] = l.balances[from].Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	return nil
}

// BalanceOf returns an account's balance. Unknown accounts hold zero.
func (l *Ledger) BalanceOf(account string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account]
}
