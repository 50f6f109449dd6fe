package optjournal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// BrokerTotals are the totals reported by the broker on a statement.
type BrokerTotals struct {
	RealizedTotal     Money
	MarkToMarketTotal Money
}

// Factors scale locally computed P&L to the broker's totals.
type Factors struct {
	Realized   decimal.Decimal
	Unrealized decimal.Decimal
}

// factor returns reported / local, dividing by 1 when local is zero. This is
// an approximation: with a zero local total the factor is the broker total.
func factor(reported, local Money) decimal.Decimal {
	d := local.value
	if d.IsZero() {
		d = decimal.NewFromInt(1)
	}
	return reported.value.Div(d)
}

// ComputeFactors returns the realized and unrealized discrepancy factors.
func ComputeFactors(stats TradeStats, totals BrokerTotals) Factors {
	return Factors{
		Realized:   factor(totals.RealizedTotal, stats.TotalPL),
		Unrealized: factor(totals.MarkToMarketTotal, stats.OpenPL),
	}
}

// ReconciledTrade annotates a trade with the P&L the broker would report for it.
type ReconciledTrade struct {
	Trade
	BrokerReportedPL Money
	BrokerAdjusted   bool
}

// Reconcile scales every trade's calculated P&L by the realized factor when
// closed and by the unrealized factor when open. The calculated P&L is kept
// alongside the broker reported one; trades is not modified.
func Reconcile(trades []Trade, stats TradeStats, totals BrokerTotals) []ReconciledTrade {
	f := ComputeFactors(stats, totals)
	out := make([]ReconciledTrade, 0, len(trades))
	for _, t := range trades {
		k := f.Unrealized
		if t.Closed {
			k = f.Realized
		}
		out = append(out, ReconciledTrade{
			Trade:            t,
			BrokerReportedPL: t.CalculatedPL.Scale(k),
			BrokerAdjusted:   true,
		})
	}
	return out
}

// BrokerPaths are the JSONPath expressions locating the totals in a broker's
// JSON statement summary, e.g. "$.summary.realizedPnl".
type BrokerPaths struct {
	Realized     string
	MarkToMarket string // optional.
}

// DecodeBrokerTotals reads a JSON document and extracts the broker totals.
func DecodeBrokerTotals(r io.Reader, paths BrokerPaths, currency string) (BrokerTotals, error) {
	if paths.Realized == "" {
		return BrokerTotals{}, fmt.Errorf("missing JSONPath for the realized total")
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return BrokerTotals{}, fmt.Errorf("could not decode broker statement: %w", err)
	}

	realized, err := extractAmount(jobj, paths.Realized)
	if err != nil {
		return BrokerTotals{}, err
	}
	totals := BrokerTotals{
		RealizedTotal:     Money{value: realized, cur: currency},
		MarkToMarketTotal: Money{cur: currency},
	}
	if paths.MarkToMarket != "" {
		mtm, err := extractAmount(jobj, paths.MarkToMarket)
		if err != nil {
			return BrokerTotals{}, err
		}
		totals.MarkToMarketTotal = Money{value: mtm, cur: currency}
	}
	return totals, nil
}

// extractAmount evaluates path on jobj and converts the result to a decimal.
func extractAmount(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath returns either a single answer or a list of answers, keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return decimal.Zero, fmt.Errorf("no value found at %q", path)
		}
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		cleaned := strings.NewReplacer(",", "", "$", "", " ", "").Replace(v)
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Zero, fmt.Errorf("value at %q is not a number: %q", path, v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("value at %q is not a number: %v", path, jval)
	}
}
