// Package importer parses legacy bank and accounting export formats (CSV,
// QIF, OFX/QBO/QFX, IIF) into canonical raw import records. Parsers are
// tolerant of real-world exports: mixed line endings, stray whitespace and
// malformed individual rows, which are skipped and counted rather than
// aborting the file.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ParseResult is the outcome of parsing one file.
type ParseResult struct {
	Records     []domain.RawImportRecord
	SkippedRows int // Malformed rows dropped, surfaced to the preview stage
}

// Parser converts an uploaded file into raw import records.
type Parser interface {
	Parse(r io.Reader) (*ParseResult, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Alias registers an additional format key for an already-registered parser.
func (r *Registry) Alias(alias, format string) {
	p, ok := r.parsers[strings.ToLower(format)]
	if !ok {
		panic("alias target not registered: " + format)
	}
	r.parsers[strings.ToLower(alias)] = p
}

// Get returns the parser for format. Formats without a registered parser
// (xlsx, gnucash) are reported as unsupported.
func (r *Registry) Get(format string) (Parser, error) {
	p, ok := r.parsers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return p, nil
}

// Formats returns the registered format keys.
func (r *Registry) Formats() []string {
	keys := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		keys = append(keys, k)
	}
	return keys
}

// DefaultRegistry returns a registry with all built-in parsers. QBO and QFX
// are OFX dialects and share its parser.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&QIFParser{})
	r.Register(&OFXParser{})
	r.Register(&IIFParser{})
	r.Alias("qbo", "ofx")
	r.Alias("qfx", "ofx")
	return r
}

// InferType maps an amount sign to a transaction type: non-negative amounts
// are income, negative ones expenses.
func InferType(amount decimal.Decimal) domain.TransactionType {
	if amount.IsNegative() {
		return domain.TypeExpense
	}
	return domain.TypeIncome
}
