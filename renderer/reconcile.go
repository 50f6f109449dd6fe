package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/optjournal"
)

// ReconciliationMarkdown renders the calculated P&L of every trade next to the
// P&L scaled to the broker's totals.
func ReconciliationMarkdown(account string, trades []optjournal.ReconciledTrade, stats optjournal.TradeStats, totals optjournal.BrokerTotals) string {
	f := optjournal.ComputeFactors(stats, totals)

	var b strings.Builder
	title(&b, "Statement Reconciliation", account)

	fmt.Fprintln(&b, "| | Calculated | Broker | Factor |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	fmt.Fprintf(&b, "| Realized | %s | %s | %s |\n", stats.TotalPL.SignedString(), totals.RealizedTotal.SignedString(), f.Realized.StringFixed(4))
	fmt.Fprintf(&b, "| Mark to Market | %s | %s | %s |\n\n", stats.OpenPL.SignedString(), totals.MarkToMarketTotal.SignedString(), f.Unrealized.StringFixed(4))

	if len(trades) == 0 {
		return b.String()
	}
	fmt.Fprint(&b, "## Trades\n\n")
	fmt.Fprintln(&b, "| Instrument | Opened | Closed | Qty | Calculated | Broker |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for _, t := range trades {
		closed := "open"
		if t.CloseDate != nil {
			closed = day(*t.CloseDate)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			t.Key,
			day(t.OpenDate),
			closed,
			t.Quantity,
			t.CalculatedPL.SignedString(),
			t.BrokerReportedPL.SignedString(),
		)
	}
	return b.String()
}
