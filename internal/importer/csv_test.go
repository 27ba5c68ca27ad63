package importer_test

import (
	"strings"
	"testing"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/importer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParse(t *testing.T) {
	input := "date,amount,type,description,payee,category\n" +
		"2024-03-01,100.00,Income,March rent,Acme Corp,Rent\n" +
		"2024-03-02,-42.50,Expense,Groceries,Local Market,Food\n"

	p := &importer.CSVParser{}
	result, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Zero(t, result.SkippedRows)

	first := result.Records[0]
	assert.Equal(t, "2024-03-01", first.Date)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, domain.TypeIncome, first.Type)
	assert.Equal(t, "March rent", first.Description)
	assert.Equal(t, "Acme Corp", first.Payee)
	assert.Equal(t, "Rent", first.Category)

	second := result.Records[1]
	assert.Equal(t, domain.TypeExpense, second.Type)
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("-42.50")))
}

func TestCSVHeaderCaseInsensitive(t *testing.T) {
	lower := "date,amount,type,description\n2024-01-10,5.00,Expense,Coffee\n"
	mixed := "Date,Amount,Type,Description\n2024-01-10,5.00,Expense,Coffee\n"

	p := &importer.CSVParser{}
	fromLower, err := p.Parse(strings.NewReader(lower))
	require.NoError(t, err)
	fromMixed, err := p.Parse(strings.NewReader(mixed))
	require.NoError(t, err)

	assert.Equal(t, fromLower.Records, fromMixed.Records)
}

func TestCSVMisalignedRowSkipped(t *testing.T) {
	input := "date,amount,description\n" +
		"2024-01-10,5.00,Coffee\n" +
		"2024-01-11,6.00\n" + // one cell short of the header
		"2024-01-12,7.00,Lunch\n"

	p := &importer.CSVParser{}
	result, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.SkippedRows)
}

func TestCSVMissingAmountDefaultsToZero(t *testing.T) {
	input := "date,description\n2024-01-10,Mystery row\n"

	p := &importer.CSVParser{}
	result, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.True(t, result.Records[0].Amount.IsZero())
}

func TestCSVAmtHeaderRecognized(t *testing.T) {
	input := "date,amt,description\n2024-01-10,$1,Snack\n"

	p := &importer.CSVParser{}
	result, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.True(t, result.Records[0].Amount.Equal(decimal.NewFromInt(1)))
}

func TestCSVCRLFAndWhitespace(t *testing.T) {
	input := "date,amount,description\r\n 2024-01-10 , 5.00 ,Coffee\r\n"

	p := &importer.CSVParser{}
	result, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "2024-01-10", result.Records[0].Date)
}
