package mapping

import (
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/models"
)

// ToModelImportBatch converts a domain ImportBatch to a model ImportBatch
func ToModelImportBatch(d domain.ImportBatch) models.ImportBatch {
	return models.ImportBatch{
		BatchID:     d.BatchID,
		AccountID:   d.AccountID,
		FileName:    d.FileName,
		Format:      d.Format,
		SkippedRows: d.SkippedRows,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainImportBatch converts a model ImportBatch to a domain ImportBatch
func ToDomainImportBatch(m models.ImportBatch) domain.ImportBatch {
	return domain.ImportBatch{
		BatchID:     m.BatchID,
		AccountID:   m.AccountID,
		FileName:    m.FileName,
		Format:      m.Format,
		SkippedRows: m.SkippedRows,
		Status:      domain.ImportBatchStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelImportRow converts a domain StagedRow to a model ImportRow
func ToModelImportRow(d domain.StagedRow) models.ImportRow {
	return models.ImportRow{
		RowID:           d.RowID,
		BatchID:         d.BatchID,
		RowOrder:        d.RowOrder,
		Date:            d.Record.Date,
		Amount:          d.Record.Amount,
		Type:            string(d.Record.Type),
		Description:     d.Record.Description,
		Payee:           d.Record.Payee,
		Memo:            d.Record.Memo,
		Category:        d.Record.Category,
		DateDefaulted:   d.Record.DateDefaulted,
		AmountDefaulted: d.Record.AmountDefaulted,
		Duplicate:       d.Duplicate,
	}
}

// ToDomainStagedRow converts a model ImportRow to a domain StagedRow
func ToDomainStagedRow(m models.ImportRow) domain.StagedRow {
	return domain.StagedRow{
		RowID:    m.RowID,
		BatchID:  m.BatchID,
		RowOrder: m.RowOrder,
		Record: domain.RawImportRecord{
			Date:            m.Date,
			Amount:          m.Amount,
			Type:            domain.TransactionType(m.Type),
			Description:     m.Description,
			Payee:           m.Payee,
			Memo:            m.Memo,
			Category:        m.Category,
			DateDefaulted:   m.DateDefaulted,
			AmountDefaulted: m.AmountDefaulted,
		},
		Duplicate: m.Duplicate,
	}
}

// ToDomainStagedRowSlice converts a slice of model ImportRows to domain form
func ToDomainStagedRowSlice(ms []models.ImportRow) []domain.StagedRow {
	ds := make([]domain.StagedRow, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStagedRow(m)
	}
	return ds
}
