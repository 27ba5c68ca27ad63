package importer

import (
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
)

// OFXParser parses Open Financial Exchange statements, including the QBO and
// QFX dialects. OFX is an SGML/XML hybrid: tags are not reliably closed, so
// the document is split on <STMTTRN> markers and tag values are extracted by
// pattern rather than by a strict XML parse.
type OFXParser struct{}

var (
	stmtTrnOpen  = regexp.MustCompile(`(?i)<STMTTRN>`)
	stmtTrnClose = regexp.MustCompile(`(?i)</STMTTRN>`)
	ofxTagValue  = regexp.MustCompile(`(?i)<(DTPOSTED|TRNAMT|NAME|MEMO|TRNTYPE)>([^<\r\n]*)`)
)

// Format returns the parser name.
func (p *OFXParser) Format() string { return "ofx" }

// Parse reads an OFX/QBO/QFX document and returns one record per
// <STMTTRN> block.
func (p *OFXParser) Parse(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	blocks := stmtTrnOpen.Split(string(data), -1)
	result := &ParseResult{}
	now := time.Now()

	// blocks[0] is the document preamble before the first transaction.
	for _, block := range blocks[1:] {
		if loc := stmtTrnClose.FindStringIndex(block); loc != nil {
			block = block[:loc[0]]
		}

		fields := map[string]string{}
		for _, m := range ofxTagValue.FindAllStringSubmatch(block, -1) {
			fields[strings.ToUpper(m[1])] = strings.TrimSpace(m[2])
		}
		if len(fields) == 0 {
			result.SkippedRows++
			continue
		}

		rec := domain.RawImportRecord{
			Payee: fields["NAME"],
			Memo:  fields["MEMO"],
		}
		rec.Description = fields["NAME"]
		if rec.Description == "" {
			rec.Description = fields["MEMO"]
		}

		var datePolicy normalize.DatePolicy
		rec.Date, datePolicy = normalize.Date(fields["DTPOSTED"], now)
		rec.DateDefaulted = datePolicy.Defaulted()

		var amountPolicy normalize.AmountPolicy
		rec.Amount, amountPolicy = normalize.Amount(fields["TRNAMT"])
		rec.AmountDefaulted = amountPolicy.Defaulted()

		rec.Type = mapTrnType(fields["TRNTYPE"], rec)

		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// mapTrnType maps an OFX TRNTYPE to a transaction type. Unknown types fall
// back to sign-based inference.
func mapTrnType(trnType string, rec domain.RawImportRecord) domain.TransactionType {
	switch strings.ToUpper(trnType) {
	case "CREDIT", "DEP":
		return domain.TypeIncome
	case "DEBIT", "CHECK", "PAYMENT":
		return domain.TypeExpense
	}
	return InferType(rec.Amount)
}
