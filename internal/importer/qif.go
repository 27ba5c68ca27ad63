package importer

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
)

// QIFParser parses the Quicken Interchange Format: a line-oriented record
// format where the first character of each line is a field tag and "^"
// terminates a record.
type QIFParser struct{}

// Format returns the parser name.
func (p *QIFParser) Format() string { return "qif" }

// Parse reads QIF tagged lines and returns raw import records. The type is
// left empty; it is inferred later from the amount sign or set by the user.
func (p *QIFParser) Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	result := &ParseResult{}
	now := time.Now()

	var rawDate, rawAmount string
	var current domain.RawImportRecord
	hasFields := false

	reset := func() {
		rawDate, rawAmount = "", ""
		current = domain.RawImportRecord{}
		hasFields = false
	}

	emit := func() {
		if !hasFields {
			return
		}
		var datePolicy normalize.DatePolicy
		current.Date, datePolicy = normalize.Date(rawDate, now)
		current.DateDefaulted = datePolicy.Defaulted()

		var amountPolicy normalize.AmountPolicy
		current.Amount, amountPolicy = normalize.Amount(rawAmount)
		current.AmountDefaulted = amountPolicy.Defaulted()

		current.Description = current.Payee
		if current.Description == "" {
			current.Description = current.Memo
		}
		result.Records = append(result.Records, current)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, value := line[:1], line[1:]
		switch tag {
		case "^":
			emit()
			reset()
		case "!":
			// Header directive (e.g. !Type:Bank), ignored.
		case "D":
			rawDate = value
			hasFields = true
		case "T":
			rawAmount = value
			hasFields = true
		case "P":
			current.Payee = value
			hasFields = true
		case "M":
			current.Memo = value
			hasFields = true
		case "L":
			current.Category = value
			hasFields = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A trailing record without a terminator still counts.
	emit()

	return result, nil
}
