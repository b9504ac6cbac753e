package domain

import "time"

// PrettyDateLayout matches the C locale "%c" rendering.
const PrettyDateLayout = "Mon Jan _2 15:04:05 2006"

// MaxTransactionListSize caps how many transactions a listing returns.
const MaxTransactionListSize = 1000

// MaxNoteLength is the longest note, in characters, that is stored.
const MaxNoteLength = 4096

// Transaction is an immutable record of one change to an owner's budget.
type Transaction struct {
	TransactionID string    `json:"transactionID"`
	Owner         string    `json:"owner"`
	Cents         int64     `json:"cents"`
	Amount        string    `json:"amount"`
	Date          time.Time `json:"date"`
	PrettyDate    string    `json:"prettyDate"`
	Note          string    `json:"note"`
}

// NewTransaction builds the record for a delta of cents. Amount uses the
// budget's currency and PrettyDate is derived from the same timestamp as Date.
func NewTransaction(owner string, budget Budget, cents int64, note string, now time.Time) *Transaction {
	return &Transaction{
		Owner:      owner,
		Cents:      cents,
		Amount:     FormatDisplay(cents, budget.Currency),
		Date:       now,
		PrettyDate: now.Format(PrettyDateLayout),
		Note:       TruncateNote(note),
	}
}

// TruncateNote cuts note to MaxNoteLength characters.
func TruncateNote(note string) string {
	if len(note) <= MaxNoteLength {
		return note
	}
	runes := []rune(note)
	if len(runes) <= MaxNoteLength {
		return note
	}
	return string(runes[:MaxNoteLength])
}

// RecordTransaction parses raw and builds the transaction. No record is
// produced when raw is not a valid amount.
func RecordTransaction(owner string, budget Budget, raw, note string, now time.Time) (*Transaction, error) {
	cents, err := ParseMinorUnits(raw)
	if err != nil {
		return nil, err
	}
	return NewTransaction(owner, budget, cents, note, now), nil
}
