package importer

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
)

// IIFParser parses the Intuit Interchange Format: tab-delimited QuickBooks
// exports where lines starting with "!" are column directives and TRNS rows
// carry the transactions.
type IIFParser struct{}

const (
	iifColDate   = 1
	iifColAmount = 2
	iifColPayee  = 3
	iifColMemo   = 4
	iifColType   = 5
)

// Format returns the parser name.
func (p *IIFParser) Format() string { return "iif" }

// Parse reads IIF lines and returns one record per TRNS row. SPL (split)
// and ENDTRNS rows are ignored; a full split-aware IIF import would need
// the directive header to locate columns reliably.
func (p *IIFParser) Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	result := &ParseResult{}
	now := time.Now()

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		fields := strings.Split(line, "\t")
		if !strings.EqualFold(strings.TrimSpace(fields[0]), "TRNS") {
			continue
		}
		if len(fields) <= iifColAmount {
			result.SkippedRows++
			continue
		}

		rec := domain.RawImportRecord{}

		var datePolicy normalize.DatePolicy
		rec.Date, datePolicy = normalize.Date(iifField(fields, iifColDate), now)
		rec.DateDefaulted = datePolicy.Defaulted()

		var amountPolicy normalize.AmountPolicy
		rec.Amount, amountPolicy = normalize.Amount(iifField(fields, iifColAmount))
		rec.AmountDefaulted = amountPolicy.Defaulted()

		rec.Payee = iifField(fields, iifColPayee)
		rec.Memo = iifField(fields, iifColMemo)
		rec.Description = rec.Payee
		if rec.Description == "" {
			rec.Description = rec.Memo
		}

		rec.Type = inferIIFType(iifField(fields, iifColType), rec)

		result.Records = append(result.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// iifField returns the trimmed field at idx, or "" when the row is short.
func iifField(fields []string, idx int) string {
	if idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

// inferIIFType maps a TRNS row's type cell: DEPOSIT is income, CHECK is an
// expense regardless of sign, otherwise a negative amount marks an expense
// and the type is left empty for the preview stage.
func inferIIFType(rawType string, rec domain.RawImportRecord) domain.TransactionType {
	switch strings.ToUpper(rawType) {
	case "DEPOSIT":
		return domain.TypeIncome
	case "CHECK":
		return domain.TypeExpense
	}
	if rec.Amount.IsNegative() {
		return domain.TypeExpense
	}
	return ""
}
