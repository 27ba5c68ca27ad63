package dto

import (
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for one journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	CategoryID  *string         `json:"categoryID,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	LineOrder   int             `json:"lineOrder"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID     string                `json:"journalID"`
	Date          time.Time             `json:"date"`
	Memo          string                `json:"memo"`
	Source        string                `json:"source"`
	SourceSystem  string                `json:"sourceSystem,omitempty"`
	TransactionID *string               `json:"transactionID,omitempty"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		CategoryID:  line.CategoryID,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
		LineOrder:   line.LineOrder,
	}
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:     j.JournalID,
		Date:          j.JournalDate,
		Memo:          j.Memo,
		Source:        j.Source,
		SourceSystem:  j.SourceSystem,
		TransactionID: j.TransactionID,
		Status:        string(j.Status),
		CreatedAt:     j.CreatedAt,
		CreatedBy:     j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i, line := range j.Lines {
			resp.Lines[i] = ToJournalLineResponse(&line)
		}
	}
	return resp
}
