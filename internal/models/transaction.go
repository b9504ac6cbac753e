package models

import "time"

// Transaction is the row shape of the transactions table. Rows are never updated.
type Transaction struct {
	TransactionID string    `db:"transaction_id"` // Primary Key (UUID)
	Owner         string    `db:"owner"`
	Cents         int64     `db:"cents"`
	Amount        string    `db:"amount"`
	Date          time.Time `db:"date"`
	PrettyDate    string    `db:"pretty_date"`
	Note          string    `db:"note"`
}
