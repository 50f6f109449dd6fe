package optjournal

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestReconcile(t *testing.T) {
	trades := []Trade{
		{Symbol: "AAPL", Closed: true, CalculatedPL: USD(500)},
		{Symbol: "MSFT", Closed: true, CalculatedPL: USD(300)},
		{Symbol: "TSLA", Closed: false, CalculatedPL: USD(200)},
	}
	stats := ComputeStats(trades)
	totals := BrokerTotals{RealizedTotal: USD(1000), MarkToMarketTotal: USD(100)}

	f := ComputeFactors(stats, totals)
	if !f.Realized.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("realized factor = %s, want 1.25", f.Realized)
	}
	if !f.Unrealized.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("unrealized factor = %s, want 0.5", f.Unrealized)
	}

	got := Reconcile(trades, stats, totals)
	want := []float64{625, 375, 100}
	for i, r := range got {
		if !r.BrokerAdjusted {
			t.Errorf("trade %d is not adjusted", i)
		}
		assertMoney(t, r.Symbol+" BrokerReportedPL", r.BrokerReportedPL, want[i])
		// the calculated value is kept.
		if !r.CalculatedPL.Equal(trades[i].CalculatedPL) {
			t.Errorf("%s CalculatedPL = %s, want %s", r.Symbol, r.CalculatedPL, trades[i].CalculatedPL)
		}
	}
}

func TestComputeFactors_ZeroLocal(t *testing.T) {
	f := ComputeFactors(TradeStats{}, BrokerTotals{RealizedTotal: USD(1000)})
	if !f.Realized.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("realized factor = %s, want 1000", f.Realized)
	}
	if !f.Unrealized.IsZero() {
		t.Errorf("unrealized factor = %s, want 0", f.Unrealized)
	}
}

func TestDecodeBrokerTotals(t *testing.T) {
	const statement = `{
  "account": "U123",
  "summary": {"realizedPnl": "$1,000.50", "unrealized": [{"total": -250.25}]}
}`
	testCases := []struct {
		name         string
		paths        BrokerPaths
		wantRealized string
		wantMTM      string
		wantErr      bool
	}{
		{
			name:         "both totals",
			paths:        BrokerPaths{Realized: "$.summary.realizedPnl", MarkToMarket: "$.summary.unrealized[0].total"},
			wantRealized: "1000.5",
			wantMTM:      "-250.25",
		},
		{
			name:         "realized only",
			paths:        BrokerPaths{Realized: "$.summary.realizedPnl"},
			wantRealized: "1000.5",
			wantMTM:      "0",
		},
		{name: "not a number", paths: BrokerPaths{Realized: "$.account"}, wantErr: true},
		{name: "missing key", paths: BrokerPaths{Realized: "$.summary.fees"}, wantErr: true},
		{name: "no path", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeBrokerTotals(strings.NewReader(statement), tc.paths, "USD")
			if (err != nil) != tc.wantErr {
				t.Fatalf("DecodeBrokerTotals() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if !got.RealizedTotal.value.Equal(decimal.RequireFromString(tc.wantRealized)) {
				t.Errorf("RealizedTotal = %s, want %s", got.RealizedTotal.value, tc.wantRealized)
			}
			if !got.MarkToMarketTotal.value.Equal(decimal.RequireFromString(tc.wantMTM)) {
				t.Errorf("MarkToMarketTotal = %s, want %s", got.MarkToMarketTotal.value, tc.wantMTM)
			}
			if got.RealizedTotal.Currency() != "USD" {
				t.Errorf("currency = %q, want USD", got.RealizedTotal.Currency())
			}
		})
	}
}
