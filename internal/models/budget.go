package models

// Budget is the row shape of the budgets table.
type Budget struct {
	BudgetID string `db:"budget_id"` // Primary Key (UUID)
	Owner    string `db:"owner"`     // UNIQUE
	Cents    int64  `db:"cents"`
	Amount   string `db:"amount"` // Display string derived from cents/currency
	Currency string `db:"currency"`
	AuditFields
}
