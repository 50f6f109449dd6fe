package optjournal

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/optjournal/date"
	"github.com/shopspring/decimal"
)

// OptionType is either a CALL or a PUT.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// ParseOptionType parses "call" or "put", in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch t := OptionType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Call, Put:
		return t, nil
	}
	return "", fmt.Errorf("unknown option type: %q", s)
}

// Strategy tags an execution with the directional sense of the position it belongs to.
type Strategy string

const (
	LongCall  Strategy = "LONG_CALL"
	ShortCall Strategy = "SHORT_CALL"
	LongPut   Strategy = "LONG_PUT"
	ShortPut  Strategy = "SHORT_PUT"
)

// ParseStrategy parses a strategy tag such as "long_call" or "SHORT_PUT".
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToUpper(strings.TrimSpace(s))); st {
	case LongCall, ShortCall, LongPut, ShortPut:
		return st, nil
	}
	return "", fmt.Errorf("unknown strategy: %q", s)
}

// IsLong reports whether the strategy holds bought contracts.
func (s Strategy) IsLong() bool { return s == LongCall || s == LongPut }

// OptionType returns the option type the strategy trades.
func (s Strategy) OptionType() OptionType {
	switch s {
	case LongCall, ShortCall:
		return Call
	case LongPut, ShortPut:
		return Put
	}
	return ""
}

// InstrumentKey identifies a single option contract.
// It is comparable and can be used as a map key.
type InstrumentKey struct {
	Symbol string
	Type   OptionType
	Strike string // canonical decimal form, "150" for 150.00
	Expiry date.Date
}

// String returns "SYMBOL EXPIRY STRIKE TYPE".
func (k InstrumentKey) String() string {
	return fmt.Sprintf("%s %s %s %s", k.Symbol, k.Expiry, k.Strike, k.Type)
}

// ParseInstrumentKey parses the "SYMBOL:TYPE:STRIKE:EXPIRY" form used on the command line.
func ParseInstrumentKey(s string) (InstrumentKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return InstrumentKey{}, fmt.Errorf("invalid instrument %q want SYMBOL:TYPE:STRIKE:EXPIRY", s)
	}
	typ, err := ParseOptionType(parts[1])
	if err != nil {
		return InstrumentKey{}, err
	}
	strike, err := decimal.NewFromString(parts[2])
	if err != nil {
		return InstrumentKey{}, fmt.Errorf("invalid strike %q: %w", parts[2], err)
	}
	expiry, err := date.Parse(parts[3])
	if err != nil {
		return InstrumentKey{}, err
	}
	return InstrumentKey{
		Symbol: strings.ToUpper(parts[0]),
		Type:   typ,
		Strike: strike.String(),
		Expiry: expiry,
	}, nil
}

// Execution is a single buy or sell fill of option contracts. It is the
// immutable unit of input: nothing in this package modifies an Execution it
// receives.
type Execution struct {
	Symbol     string
	Type       OptionType
	Strike     Money
	Expiry     date.Date
	Quantity   Quantity // positive when bought, negative when sold.
	Premium    *Money   // per share premium, nil when the valuation is unknown.
	Commission Money
	Filled     time.Time // when the fill was executed.
	Strategy   Strategy
	Notes      string

	// Some statements report an execution together with its own closing
	// fill. Both are nil for a plain fill.
	CloseDate    *time.Time
	ClosePremium *Money
}

// Key returns the instrument the execution trades.
func (e Execution) Key() InstrumentKey {
	return InstrumentKey{
		Symbol: e.Symbol,
		Type:   e.Type,
		Strike: e.Strike.value.String(),
		Expiry: e.Expiry,
	}
}

// IsOpening reports whether the execution opens (or adds to) a position: its
// quantity sign agrees with the directional sense of its strategy.
func (e Execution) IsOpening() bool {
	if e.Strategy.IsLong() {
		return e.Quantity.IsPositive()
	}
	return e.Quantity.IsNegative()
}

// IsClosed reports whether the execution carries its own closing fill.
func (e Execution) IsClosed() bool { return e.CloseDate != nil }

// HasPremium reports whether the premium is known.
func (e Execution) HasPremium() bool { return e.Premium != nil }

// Currency returns the currency of the execution's amounts.
func (e Execution) Currency() string {
	if e.Premium != nil && e.Premium.cur != "" {
		return e.Premium.cur
	}
	if e.Commission.cur != "" {
		return e.Commission.cur
	}
	if e.Strike.cur != "" {
		return e.Strike.cur
	}
	return DefaultCurrency
}

// NewExecution creates an Execution with a known premium. The option type is
// derived from the strategy.
func NewExecution(filled time.Time, symbol string, strategy Strategy, strike float64, expiry date.Date, quantity Quantity, premium, commission Money) Execution {
	return Execution{
		Symbol:     symbol,
		Type:       strategy.OptionType(),
		Strike:     M(strike, premium.Currency()),
		Expiry:     expiry,
		Quantity:   quantity,
		Premium:    premium.ptr(),
		Commission: commission,
		Filled:     filled,
		Strategy:   strategy,
	}
}

// WithoutPremium returns a copy of e whose premium is unknown.
func (e Execution) WithoutPremium() Execution {
	e.Premium = nil
	return e
}

// WithClose returns a copy of e that carries its own closing fill.
func (e Execution) WithClose(on time.Time, premium Money) Execution {
	e.CloseDate = &on
	e.ClosePremium = premium.ptr()
	return e
}

// WithNotes returns a copy of e with notes attached.
func (e Execution) WithNotes(notes string) Execution {
	e.Notes = notes
	return e
}

// strikeLess orders canonical strike strings numerically.
func strikeLess(a, b string) bool {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return da.LessThan(db)
}
