package importer

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
)

// CSVParser parses header-keyed CSV bank exports. Header cells are
// lower-cased and matched against the recognized field names; unknown
// columns are ignored.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV with a header row and returns raw import records.
// Rows whose cell count does not align with the header are skipped.
func (p *CSVParser) Parse(r io.Reader) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &ParseResult{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	result := &ParseResult{}
	now := time.Now()
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			result.SkippedRows++
			continue
		}

		fields := make(map[string]string, len(header))
		for i, cell := range row {
			fields[header[i]] = strings.TrimSpace(cell)
		}

		rawAmount := fields["amount"]
		if rawAmount == "" {
			rawAmount = fields["amt"]
		}
		if rawAmount == "" {
			rawAmount = "0"
		}

		rec := domain.RawImportRecord{
			Payee:    fields["payee"],
			Memo:     fields["memo"],
			Category: fields["category"],
		}
		rec.Description = fields["description"]
		if rec.Description == "" {
			rec.Description = fields["memo"]
		}

		var datePolicy normalize.DatePolicy
		rec.Date, datePolicy = normalize.Date(fields["date"], now)
		rec.DateDefaulted = datePolicy.Defaulted()

		var amountPolicy normalize.AmountPolicy
		rec.Amount, amountPolicy = normalize.Amount(rawAmount)
		rec.AmountDefaulted = amountPolicy.Defaulted()

		rec.Type = parseTypeCell(fields["type"])

		if rec.Description == "" && rec.Payee == "" && rec.Amount.IsZero() && fields["date"] == "" {
			result.SkippedRows++
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// parseTypeCell maps a free-form type cell to a transaction type, or empty
// when unrecognized so the type is inferred later.
func parseTypeCell(cell string) domain.TransactionType {
	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "INCOME":
		return domain.TypeIncome
	case "EXPENSE":
		return domain.TypeExpense
	case "TRANSFER":
		return domain.TypeTransfer
	}
	return ""
}
