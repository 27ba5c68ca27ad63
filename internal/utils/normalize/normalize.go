// Package normalize converts the heterogeneous date and amount encodings
// found in bank export files into canonical forms: ISO dates and signed
// decimal amounts. Failures are recovered with explicit, named fallback
// policies rather than errors, so callers can surface defaulted values.
package normalize

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// ISODate is the canonical date layout.
const ISODate = "2006-01-02"

// DatePolicy names the path a date value took through normalization.
type DatePolicy string

const (
	DateParsed           DatePolicy = "PARSED"
	DateParsedUSSlash    DatePolicy = "PARSED_US_SLASH"
	DateParsedDayFirst   DatePolicy = "PARSED_DAY_FIRST"
	DateDefaultedToToday DatePolicy = "DEFAULTED_TO_TODAY"
)

// AmountPolicy names the path an amount value took through normalization.
type AmountPolicy string

const (
	AmountParsed          AmountPolicy = "PARSED"
	AmountDefaultedToZero AmountPolicy = "DEFAULTED_TO_ZERO"
)

// Defaulted reports whether the fallback policy was taken.
func (p DatePolicy) Defaulted() bool { return p == DateDefaultedToToday }

// Defaulted reports whether the fallback policy was taken.
func (p AmountPolicy) Defaulted() bool { return p == AmountDefaultedToZero }

// genericLayouts are tried last, after the format-specific encodings.
var genericLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// Date converts raw into an ISO YYYY-MM-DD string. Empty or unparseable
// input falls back to now's date. Already-ISO strings pass through
// unchanged, so Date is idempotent.
func Date(raw string, now time.Time) (string, DatePolicy) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now.Format(ISODate), DateDefaultedToToday
	}

	// OFX DTPOSTED: YYYYMMDD or YYYYMMDDHHMMSS, possibly with a [tz] suffix.
	if digits := leadingDigits(s); len(digits) == 8 || len(digits) == 14 {
		if t, err := time.Parse("20060102", digits[:8]); err == nil {
			return t.Format(ISODate), DateParsed
		}
	}

	// Slash dates first; year-first slash forms fall through to the
	// generic layouts below.
	if strings.Contains(s, "/") {
		if iso, policy, ok := slashDate(s); ok {
			return iso, policy
		}
	}

	// Already canonical.
	if t, err := time.Parse(ISODate, s); err == nil {
		return t.Format(ISODate), DateParsed
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), DateParsed
		}
	}

	return now.Format(ISODate), DateDefaultedToToday
}

// slashDate resolves day/month slash dates deterministically: US month-first
// is tried before day-first, so "03/04/2024" is March 4th and "25/12/2024"
// is December 25th. Year-first forms report no match so the caller can try
// the generic layouts.
func slashDate(s string) (string, DatePolicy, bool) {
	usLayouts := []string{"01/02/2006", "01/02/06"}
	dayFirstLayouts := []string{"02/01/2006", "02/01/06"}

	for _, layout := range usLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), DateParsedUSSlash, true
		}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), DateParsedDayFirst, true
		}
	}
	return "", "", false
}

// leadingDigits returns the run of digits at the start of s.
func leadingDigits(s string) string {
	for i, r := range s {
		if !unicode.IsDigit(r) {
			return s[:i]
		}
	}
	return s
}

// Amount parses a currency amount string, tolerating thousands separators,
// currency symbols and parenthesized negatives. Unparseable input yields
// zero with the fallback policy.
func Amount(raw string) (decimal.Decimal, AmountPolicy) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, AmountDefaultedToZero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	s = strings.TrimPrefix(s, "+")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, AmountDefaultedToZero
	}
	if negative {
		d = d.Neg()
	}
	return d, AmountParsed
}
