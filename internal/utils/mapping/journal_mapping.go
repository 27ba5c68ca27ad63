package mapping

import (
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal (header only)
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:     d.JournalID,
		JournalDate:   d.JournalDate,
		Memo:          d.Memo,
		Source:        d.Source,
		SourceSystem:  d.SourceSystem,
		TransactionID: d.TransactionID,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal (header only)
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:     m.JournalID,
		JournalDate:   m.JournalDate,
		Memo:          m.Memo,
		Source:        m.Source,
		SourceSystem:  m.SourceSystem,
		TransactionID: m.TransactionID,
		Status:        domain.JournalStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		AccountID:   d.AccountID,
		CategoryID:  d.CategoryID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		LineOrder:   d.LineOrder,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		LineOrder:   m.LineOrder,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain form
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
