package optjournal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/optjournal/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// executionLine is the JSONL representation of an execution, used for decoding.
// Amounts are plain numbers in the line's currency.
type executionLine struct {
	Date         string           `json:"date"`
	Symbol       string           `json:"symbol"`
	Type         string           `json:"type"`
	Strike       decimal.Decimal  `json:"strike"`
	Expiry       date.Date        `json:"expiry"`
	Quantity     Quantity         `json:"quantity"`
	Premium      *decimal.Decimal `json:"premium"`
	Commission   decimal.Decimal  `json:"commission"`
	Currency     string           `json:"currency"`
	Strategy     string           `json:"strategy"`
	CloseDate    string           `json:"closeDate"`
	ClosePremium *decimal.Decimal `json:"closePremium"`
	Notes        string           `json:"notes"`
}

// execution converts the line into an Execution. The option type may be
// omitted, it is then derived from the strategy.
func (l executionLine) execution() (Execution, error) {
	strategy, err := ParseStrategy(l.Strategy)
	if err != nil {
		return Execution{}, err
	}
	typ := strategy.OptionType()
	if l.Type != "" {
		if typ, err = ParseOptionType(l.Type); err != nil {
			return Execution{}, err
		}
	}
	filled, err := date.ParseTime(l.Date)
	if err != nil {
		return Execution{}, fmt.Errorf("invalid date: %w", err)
	}
	cur := l.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	e := Execution{
		Symbol:     strings.ToUpper(l.Symbol),
		Type:       typ,
		Strike:     M(l.Strike, cur),
		Expiry:     l.Expiry,
		Quantity:   l.Quantity,
		Commission: M(l.Commission, cur),
		Filled:     filled,
		Strategy:   strategy,
		Notes:      l.Notes,
	}
	if l.Premium != nil {
		e.Premium = M(*l.Premium, cur).ptr()
	}
	if l.CloseDate != "" {
		closed, err := date.ParseTime(l.CloseDate)
		if err != nil {
			return Execution{}, fmt.Errorf("invalid closeDate: %w", err)
		}
		e.CloseDate = &closed
	}
	if l.ClosePremium != nil {
		e.ClosePremium = M(*l.ClosePremium, cur).ptr()
	}
	return e, nil
}

// DecodeExecutions decodes executions from a stream of JSONL data, one
// execution per line, in input order. Empty lines are skipped.
func DecodeExecutions(r io.Reader) ([]Execution, error) {
	var execs []Execution
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue // Skip empty lines
		}
		var line executionLine
		if err := json.Unmarshal(lineBytes, &line); err != nil {
			return nil, fmt.Errorf("line %d: could not decode execution %q: %w", lineno, string(lineBytes), err)
		}
		e, err := line.execution()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		execs = append(execs, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading executions: %w", err)
	}
	return execs, nil
}

// formatTime writes fill times as dates when they fall on midnight UTC.
func formatTime(t time.Time) string {
	if t.Equal(date.Of(t).Time()) {
		return date.Of(t).String()
	}
	return t.Format(time.RFC3339)
}

// executionObject builds the JSON object of an execution with a stable field order.
func executionObject(e Execution) *jsonObjectWriter {
	var w jsonObjectWriter
	w.Append("date", formatTime(e.Filled))
	w.Append("symbol", e.Symbol)
	w.Append("type", e.Type)
	w.Append("strike", e.Strike.value)
	w.Append("expiry", e.Expiry)
	w.Append("quantity", e.Quantity)
	if e.Premium != nil {
		w.Append("premium", e.Premium.value)
	}
	w.Append("commission", e.Commission.value)
	w.Append("currency", e.Currency())
	w.Append("strategy", e.Strategy)
	if e.CloseDate != nil {
		w.Append("closeDate", formatTime(*e.CloseDate))
	}
	if e.ClosePremium != nil {
		w.Append("closePremium", e.ClosePremium.value)
	}
	w.Optional("notes", e.Notes)
	return &w
}

// EncodeExecution writes a single execution as one JSON line.
func EncodeExecution(w io.Writer, e Execution) error {
	line, err := json.Marshal(executionObject(e))
	if err != nil {
		return fmt.Errorf("could not encode execution %s: %w", e.Key(), err)
	}
	line = append(line, '\n')
	_, err = w.Write(line)
	return err
}

// EncodeExecutions writes executions as JSONL, in order.
func EncodeExecutions(w io.Writer, execs []Execution) error {
	bw := bufio.NewWriter(w)
	for _, e := range execs {
		if err := EncodeExecution(bw, e); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeClosedTrades writes closed trades as JSONL, one trade per line.
func EncodeClosedTrades(w io.Writer, closed []ClosedTrade) error {
	bw := bufio.NewWriter(w)
	for _, t := range closed {
		var obj jsonObjectWriter
		obj.Append("symbol", t.Symbol)
		obj.Append("type", t.Key.Type)
		obj.Append("strike", json.Number(t.Key.Strike))
		obj.Append("expiry", t.Key.Expiry)
		obj.Append("strategy", t.Strategy)
		obj.Append("openDate", formatTime(t.OpenDate))
		obj.Append("closeDate", formatTime(t.CloseDate))
		obj.Append("quantity", t.Quantity)
		obj.Append("openPremium", t.OpenPremium.value)
		obj.Append("closePremium", t.ClosePremium.value)
		obj.Append("commissions", t.Commissions.value)
		obj.Append("pl", t.PL.value)
		obj.Append("daysHeld", t.DaysHeld)
		line, err := json.Marshal(&obj)
		if err != nil {
			return fmt.Errorf("could not encode closed trade %s: %w", t.Key, err)
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
