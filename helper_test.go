package optjournal

import (
	"testing"
	"time"

	"github.com/etnz/optjournal/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// expiry used by most tests.
var mar15 = date.New(2024, time.March, 15)

// on parses a fill time.
func on(s string) time.Time { return date.MustParseTime(s) }

// fill creates an AAPL 150 execution expiring on mar15.
func fill(filled string, strategy Strategy, qty, premium, commission float64) Execution {
	return NewExecution(on(filled), "AAPL", strategy, 150, mar15, Q(qty), USD(premium), USD(commission))
}

// cmpOpts compares the package types structurally.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
	cmpopts.IgnoreUnexported(OpenLot{}),
}

// assertMoney checks the amount of got, ignoring its currency.
func assertMoney(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if !got.value.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %s, want %v", name, got.value, want)
	}
}
