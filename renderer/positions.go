package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/optjournal"
)

// PositionsMarkdown renders net positions, open ones first.
func PositionsMarkdown(account string, positions []optjournal.Position) string {
	var b strings.Builder
	title(&b, "Positions", account)
	if len(positions) == 0 {
		fmt.Fprint(&b, "No positions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Instrument | Strategy | Net Qty | Avg Premium | Fees | Value | Status |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|:---|")
	for _, closed := range []bool{false, true} {
		for _, p := range positions {
			if p.IsClosed() != closed {
				continue
			}
			status := "open"
			if closed {
				status = "closed on " + day(*p.CloseDate)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				p.Key,
				p.Strategy,
				p.Quantity,
				premium(p.Premium),
				p.Commission,
				p.CalculatedPL.SignedString(),
				status,
			)
		}
	}
	return b.String()
}
