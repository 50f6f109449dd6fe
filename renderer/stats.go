package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/optjournal"
)

// StatsMarkdown renders the trade statistics.
func StatsMarkdown(account string, s optjournal.TradeStats) string {
	var b strings.Builder
	title(&b, "Trade Statistics", account)

	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Realized P&L | %s |\n", s.TotalPL.SignedString())
	fmt.Fprintf(&b, "| Open P&L | %s |\n", s.OpenPL.SignedString())
	fmt.Fprintf(&b, "| Closed Trades | %d |\n", s.ClosedTrades)
	fmt.Fprintf(&b, "| Open Trades | %d |\n", s.OpenTrades)
	fmt.Fprintf(&b, "| Winning Trades | %d |\n", s.WinningTrades)
	fmt.Fprintf(&b, "| Losing Trades | %d |\n", s.LosingTrades)
	fmt.Fprintf(&b, "| Win Rate | %s |\n", s.WinRate)
	return b.String()
}
