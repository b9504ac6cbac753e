package domain

import (
	"fmt"
	"math"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
)

// Budget is the running balance of a single owner.
// Amount is a cached rendering of Cents and Currency and is rewritten by every mutation.
type Budget struct {
	BudgetID string `json:"budgetID"` // empty until first persisted
	Owner    string `json:"owner"`
	Cents    int64  `json:"cents"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	AuditFields
}

// NewBudget returns an unsaved zero budget for owner.
func NewBudget(owner, currency string) *Budget {
	if currency == "" {
		currency = DefaultCurrencySymbol
	}
	return &Budget{
		Owner:    owner,
		Cents:    0,
		Amount:   "0",
		Currency: currency,
	}
}

// IsNew reports whether the budget has never been written to the store.
func (b *Budget) IsNew() bool {
	return b.BudgetID == ""
}

// ApplyDelta adds cents to the balance and refreshes Amount.
// The budget is left untouched if the sum would overflow.
func (b *Budget) ApplyDelta(cents int64) error {
	if (cents > 0 && b.Cents > math.MaxInt64-cents) || (cents < 0 && b.Cents < math.MinInt64-cents) {
		return fmt.Errorf("%w: balance overflow", apperrors.ErrInvalidAmount)
	}
	b.Cents += cents
	b.Amount = FormatDisplay(b.Cents, b.Currency)
	return nil
}

// ApplyAmount parses raw and applies it as a delta.
func (b *Budget) ApplyAmount(raw string) error {
	cents, err := ParseMinorUnits(raw)
	if err != nil {
		return err
	}
	return b.ApplyDelta(cents)
}
