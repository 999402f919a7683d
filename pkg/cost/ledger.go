package cost

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned when an action costs more than the ledger
// holds. It is the only error the scheduler retries.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger tracks the resources available during one turn.
type Ledger struct {
	resources int
	opening   int
}

// NewLedger returns a ledger opened with the given balance.
func NewLedger(resources int) *Ledger {
	l := &Ledger{}
	l.Reset(resources)
	return l
}

// Reset replaces the balance with the judge's figure at the start of a turn.
func (l *Ledger) Reset(resources int) {
	if resources < 0 {
		resources = 0
	}
	l.resources = resources
	l.opening = resources
}

// Resources returns the current balance.
func (l *Ledger) Resources() int { return l.resources }

// Spent returns the net amount charged since the last Reset.
func (l *Ledger) Spent() int { return l.opening - l.resources }

// CanAfford reports whether amount can be charged.
func (l *Ledger) CanAfford(amount int) bool { return amount <= l.resources }

// Check returns ErrInsufficientFunds if amount cannot be charged.
func (l *Ledger) Check(amount int) error {
	if !l.CanAfford(amount) {
		return fmt.Errorf("need %d, have %d: %w", amount, l.resources, ErrInsufficientFunds)
	}
	return nil
}

// Charge deducts amount. The balance is never allowed below zero: a charge
// that does not fit leaves the ledger untouched.
func (l *Ledger) Charge(amount int) error {
	if err := l.Check(amount); err != nil {
		return err
	}
	l.resources -= amount
	return nil
}

// Credit adds a refund to the balance.
func (l *Ledger) Credit(amount int) {
	l.resources += amount
}
