package normalize_test

import (
	"testing"
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestDate(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       string
		wantPolicy normalize.DatePolicy
	}{
		{"iso passthrough", "2024-01-15", "2024-01-15", normalize.DateParsed},
		{"ofx 8 digit", "20240115", "2024-01-15", normalize.DateParsed},
		{"ofx 14 digit", "20240115093000", "2024-01-15", normalize.DateParsed},
		{"ofx with tz suffix", "20240115093000.000[-5:EST]", "2024-01-15", normalize.DateParsed},
		{"us slash", "01/15/2024", "2024-01-15", normalize.DateParsedUSSlash},
		{"us slash short year", "01/15/24", "2024-01-15", normalize.DateParsedUSSlash},
		{"day first when month impossible", "25/12/2024", "2024-12-25", normalize.DateParsedDayFirst},
		{"empty defaults to today", "", "2024-06-15", normalize.DateDefaultedToToday},
		{"garbage defaults to today", "not a date", "2024-06-15", normalize.DateDefaultedToToday},
		{"generic layout", "2024/01/15", "2024-01-15", normalize.DateParsed},
		{"year first slash", "2024/12/25", "2024-12-25", normalize.DateParsed},
		{"impossible slash defaults to today", "13/32/2024", "2024-06-15", normalize.DateDefaultedToToday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, policy := normalize.Date(tt.raw, testNow)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPolicy, policy)
		})
	}
}

func TestDateIdempotent(t *testing.T) {
	inputs := []string{"2024-01-15", "01/15/2024", "20240115", "", "junk"}
	for _, raw := range inputs {
		once, _ := normalize.Date(raw, testNow)
		twice, policy := normalize.Date(once, testNow)
		assert.Equal(t, once, twice, "normalizing twice must not change %q", raw)
		assert.Equal(t, normalize.DateParsed, policy, "second pass of %q should be a clean parse", raw)
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       string
		wantPolicy normalize.AmountPolicy
	}{
		{"plain", "42.50", "42.5", normalize.AmountParsed},
		{"currency symbol and thousands", "$1,234.56", "1234.56", normalize.AmountParsed},
		{"negative", "-42.50", "-42.5", normalize.AmountParsed},
		{"parenthesized negative", "(99.00)", "-99", normalize.AmountParsed},
		{"leading plus", "+10.00", "10", normalize.AmountParsed},
		{"unparseable defaults to zero", "abc", "0", normalize.AmountDefaultedToZero},
		{"empty defaults to zero", "", "0", normalize.AmountDefaultedToZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, policy := normalize.Amount(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
			assert.Equal(t, tt.wantPolicy, policy)
		})
	}
}
