package mapping

import (
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/SscSPs/budget_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Owner:         d.Owner,
		Cents:         d.Cents,
		Amount:        d.Amount,
		Date:          d.Date,
		PrettyDate:    d.PrettyDate,
		Note:          d.Note,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Owner:         m.Owner,
		Cents:         m.Cents,
		Amount:        m.Amount,
		Date:          m.Date,
		PrettyDate:    m.PrettyDate,
		Note:          m.Note,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
