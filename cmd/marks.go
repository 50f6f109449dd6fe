package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/optjournal"
	"github.com/shopspring/decimal"
)

// marksFlag collects repeated -mark SYMBOL:TYPE:STRIKE:EXPIRY=PRICE flags.
type marksFlag map[optjournal.InstrumentKey]decimal.Decimal

func (m marksFlag) String() string {
	var parts []string
	for k, p := range m {
		parts = append(parts, fmt.Sprintf("%s:%s:%s:%s=%s", k.Symbol, k.Type, k.Strike, k.Expiry, p))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (m marksFlag) Set(v string) error {
	instrument, price, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("invalid mark %q want SYMBOL:TYPE:STRIKE:EXPIRY=PRICE", v)
	}
	key, err := optjournal.ParseInstrumentKey(instrument)
	if err != nil {
		return err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", price, err)
	}
	m[key] = p
	return nil
}

// Marks returns the prices in currency.
func (m marksFlag) Marks(currency string) optjournal.Marks {
	marks := make(optjournal.Marks, len(m))
	for k, p := range m {
		marks[k] = optjournal.M(p, currency)
	}
	return marks
}
