package mapping

import (
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/SscSPs/budget_tracker/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		Owner:       d.Owner,
		Cents:       d.Cents,
		Amount:      d.Amount,
		Currency:    d.Currency,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		Owner:       m.Owner,
		Cents:       m.Cents,
		Amount:      m.Amount,
		Currency:    m.Currency,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
