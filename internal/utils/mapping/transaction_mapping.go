package mapping

import (
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Date:          d.Date,
		Type:          string(d.Type),
		Amount:        d.Amount,
		Description:   d.Description,
		Notes:         d.Notes,
		ReferenceNo:   d.ReferenceNo,
		CategoryID:    d.CategoryID,
		AccountID:     d.AccountID,
		ToAccountID:   d.ToAccountID,
		VendorID:      d.VendorID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Date:          m.Date,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Description:   m.Description,
		Notes:         m.Notes,
		ReferenceNo:   m.ReferenceNo,
		CategoryID:    m.CategoryID,
		AccountID:     m.AccountID,
		ToAccountID:   m.ToAccountID,
		VendorID:      m.VendorID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain form
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
