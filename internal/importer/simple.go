package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// SimpleParser reads a minimal "Date,Description,Amount" export with ISO
// dates and signed amounts, as produced by most spreadsheet tools.
type SimpleParser struct{}

const (
	simpleNumFields = 3
	simpleColDate   = 0
	simpleColDesc   = 1
	simpleColAmount = 2
)

// Format returns the parser name.
func (p *SimpleParser) Format() string { return "simple" }

// Parse reads the CSV. A first row whose date column does not parse is
// treated as a header.
func (p *SimpleParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = simpleNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	var rows []Row
	for i, rec := range records {
		date, err := time.Parse(model.DateFormat, strings.TrimSpace(rec[simpleColDate]))
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+1, rec[simpleColDate], err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[simpleColAmount]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+1, rec[simpleColAmount], err)
		}
		rows = append(rows, Row{
			Date:        date,
			Description: rec[simpleColDesc],
			Amount:      amount,
		})
	}
	return rows, nil
}
