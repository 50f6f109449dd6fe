package optjournal

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/optjournal/date"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvRow is one execution in the CSV format. Every column is read as text so
// that an empty premium can be told apart from a zero one.
type csvRow struct {
	Date         string `csv:"date"`
	Symbol       string `csv:"symbol"`
	Type         string `csv:"type"`
	Strike       string `csv:"strike"`
	Expiry       string `csv:"expiry"`
	Quantity     string `csv:"quantity"`
	Premium      string `csv:"premium"`
	Commission   string `csv:"commission"`
	Currency     string `csv:"currency"`
	Strategy     string `csv:"strategy"`
	CloseDate    string `csv:"close_date"`
	ClosePremium string `csv:"close_premium"`
	Notes        string `csv:"notes"`
}

// optionalDecimal parses s, returning nil for an empty cell.
func optionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r csvRow) execution() (Execution, error) {
	line := executionLine{
		Date:      strings.TrimSpace(r.Date),
		Symbol:    strings.TrimSpace(r.Symbol),
		Type:      r.Type,
		Currency:  strings.TrimSpace(r.Currency),
		Strategy:  r.Strategy,
		CloseDate: strings.TrimSpace(r.CloseDate),
		Notes:     r.Notes,
	}
	var err error
	if line.Strike, err = decimal.NewFromString(strings.TrimSpace(r.Strike)); err != nil {
		return Execution{}, fmt.Errorf("invalid strike %q: %w", r.Strike, err)
	}
	if line.Expiry, err = date.Parse(strings.TrimSpace(r.Expiry)); err != nil {
		return Execution{}, fmt.Errorf("invalid expiry %q: %w", r.Expiry, err)
	}
	if line.Quantity, err = ParseQuantity(strings.TrimSpace(r.Quantity)); err != nil {
		return Execution{}, fmt.Errorf("invalid quantity %q: %w", r.Quantity, err)
	}
	if line.Premium, err = optionalDecimal(r.Premium); err != nil {
		return Execution{}, fmt.Errorf("invalid premium %q: %w", r.Premium, err)
	}
	if c, err := optionalDecimal(r.Commission); err != nil {
		return Execution{}, fmt.Errorf("invalid commission %q: %w", r.Commission, err)
	} else if c != nil {
		line.Commission = *c
	}
	if line.ClosePremium, err = optionalDecimal(r.ClosePremium); err != nil {
		return Execution{}, fmt.Errorf("invalid close premium %q: %w", r.ClosePremium, err)
	}
	return line.execution()
}

// DecodeExecutionsCSV reads executions from a CSV document with a header row.
// Column order does not matter; an empty premium cell means unknown.
func DecodeExecutionsCSV(r io.Reader) ([]Execution, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("could not read CSV executions: %w", err)
	}
	execs := make([]Execution, 0, len(rows))
	for i, row := range rows {
		e, err := row.execution()
		if err != nil {
			// header is line 1.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		execs = append(execs, e)
	}
	return execs, nil
}

// EncodeExecutionsCSV writes executions with the canonical header.
func EncodeExecutionsCSV(w io.Writer, execs []Execution) error {
	rows := make([]*csvRow, 0, len(execs))
	for _, e := range execs {
		row := &csvRow{
			Date:       formatTime(e.Filled),
			Symbol:     e.Symbol,
			Type:       string(e.Type),
			Strike:     e.Strike.value.String(),
			Expiry:     e.Expiry.String(),
			Quantity:   e.Quantity.String(),
			Commission: e.Commission.value.String(),
			Currency:   e.Currency(),
			Strategy:   string(e.Strategy),
			Notes:      e.Notes,
		}
		if e.Premium != nil {
			row.Premium = e.Premium.value.String()
		}
		if e.CloseDate != nil {
			row.CloseDate = formatTime(*e.CloseDate)
		}
		if e.ClosePremium != nil {
			row.ClosePremium = e.ClosePremium.value.String()
		}
		rows = append(rows, row)
	}
	return gocsv.Marshal(rows, w)
}
