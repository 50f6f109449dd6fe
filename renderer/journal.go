package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/optjournal"
)

// JournalMarkdown renders a match result: the closed trades, the open lots
// valued with calc and marks, and the closing remainders that found no lot.
func JournalMarkdown(account string, r optjournal.MatchResult, calc optjournal.Calculator, marks optjournal.Marks) string {
	var b strings.Builder
	title(&b, "Trade Journal", account)

	renderClosedTrades(&b, r.Closed)
	renderOpenLots(&b, r.Open, calc, marks)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Unmatched Closing Executions\n\n")
		fmt.Fprint(w, "These closing quantities found no open lot and are not part of the realized P&L.\n\n")
		fmt.Fprintln(w, "| # | Instrument | Closed | Unmatched | Closing |")
		fmt.Fprintln(w, "|---:|:---|:---|---:|---:|")
		for _, u := range r.Unmatched {
			fmt.Fprintf(w, "| %d | %s | %s | %s | %s |\n",
				u.Index,
				u.Execution.Key(),
				day(u.Execution.Filled),
				u.Quantity,
				u.Execution.Quantity,
			)
		}
		c := r.Coverage()
		fmt.Fprintf(w, "\nMatched %s of %s closing contracts.\n\n", c.Matched, c.Closing)
		return len(r.Unmatched) > 0
	})
	return b.String()
}

func renderClosedTrades(w io.Writer, closed []optjournal.ClosedTrade) {
	fmt.Fprint(w, "## Closed Trades\n\n")
	if len(closed) == 0 {
		fmt.Fprint(w, "No closed trades.\n\n")
		return
	}
	fmt.Fprintln(w, "| Instrument | Strategy | Opened | Closed | Days | Qty | Open | Close | Fees | P&L |")
	fmt.Fprintln(w, "|:---|:---|:---|:---|---:|---:|---:|---:|---:|---:|")
	var total optjournal.Money
	for _, t := range closed {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %d | %s | %s | %s | %s | %s |\n",
			t.Key,
			t.Strategy,
			day(t.OpenDate),
			day(t.CloseDate),
			t.DaysHeld,
			t.Quantity,
			t.OpenPremium,
			t.ClosePremium,
			t.Commissions,
			t.PL.SignedString(),
		)
		total = total.Add(t.PL)
	}
	fmt.Fprintf(w, "| **Total** | | | | | | | | | **%s** |\n\n", total.SignedString())
}

func renderOpenLots(w io.Writer, open []optjournal.OpenLot, calc optjournal.Calculator, marks optjournal.Marks) {
	fmt.Fprint(w, "## Open Lots\n\n")
	if len(open) == 0 {
		fmt.Fprint(w, "No open lots.\n\n")
		return
	}
	fmt.Fprintln(w, "| Instrument | Strategy | Opened | Qty | Premium | Mark | Fees | P&L |")
	fmt.Fprintln(w, "|:---|:---|:---|---:|---:|---:|---:|---:|")
	var total optjournal.Money
	for _, l := range open {
		mark := "-"
		if price, ok := marks[l.Key]; ok {
			mark = price.String()
		}
		pl := calc.OpenPL(l, marks)
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			l.Key,
			l.Strategy,
			day(l.OpenDate),
			l.Quantity,
			premium(l.Premium),
			mark,
			l.Commission,
			pl.SignedString(),
		)
		total = total.Add(pl)
	}
	fmt.Fprintf(w, "| **Total** | | | | | | | **%s** |\n\n", total.SignedString())
}
