package optjournal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundingMode defines how monetary values are rounded to cents.
type RoundingMode int

const (
	// HalfUp rounds halves away from zero: 2.345 -> 2.35 and -2.345 -> -2.35.
	HalfUp RoundingMode = iota
	// HalfEven rounds halves to the nearest even digit (banker's rounding).
	HalfEven
	// HalfCeil rounds halves toward positive infinity: -2.345 -> -2.34.
	// It matches the classic round(x*100)/100 found in spreadsheet and script code.
	HalfCeil
)

func (m RoundingMode) String() string {
	switch m {
	case HalfUp:
		return "half-up"
	case HalfEven:
		return "half-even"
	case HalfCeil:
		return "half-ceil"
	default:
		return "unknown"
	}
}

// ParseRoundingMode parses a string into a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "half-up", "":
		return HalfUp, nil
	case "half-even", "bankers":
		return HalfEven, nil
	case "half-ceil":
		return HalfCeil, nil
	default:
		return 0, fmt.Errorf("unknown rounding mode: %q", s)
	}
}

// round rounds d to places decimal places.
func (m RoundingMode) round(d decimal.Decimal, places int32) decimal.Decimal {
	switch m {
	case HalfEven:
		return d.RoundBank(places)
	case HalfCeil:
		half := decimal.New(5, -1)
		return d.Shift(places).Add(half).Floor().Shift(-places)
	default:
		return d.Round(places)
	}
}
