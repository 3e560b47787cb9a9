package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GenericParser reads a minimal "date,description,amount[,currency]" CSV
// with ISO dates, as produced by most banking apps' plain export.
type GenericParser struct{}

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns its lines.
func (p *GenericParser) Parse(r io.Reader) ([]StatementLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var lines []StatementLine
	for i, rec := range records[1:] {
		if len(rec) < 3 || len(rec) > 4 {
			return nil, fmt.Errorf("row %d: expected 3 or 4 fields, got %d", i+2, len(rec))
		}

		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[0], err)
		}
		amount, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[2], err)
		}

		line := StatementLine{
			Date:        date,
			Description: rec[1],
			Amount:      amount,
			Reference:   makeReference("generic", date, rec[1]),
		}
		if len(rec) == 4 {
			line.Currency = strings.ToUpper(strings.TrimSpace(rec[3]))
		}
		lines = append(lines, line)
	}
	return lines, nil
}
