// Package renderer renders the journal reports as markdown.
package renderer

import (
	"bytes"
	"io"
	"time"

	"github.com/etnz/optjournal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// day formats a fill time as a date.
func day(t time.Time) string { return t.Format("2006-01-02") }

// premium formats an optional premium, "?" when unknown.
func premium(p *optjournal.Money) string {
	if p == nil {
		return "?"
	}
	return p.String()
}

// title writes the H1 of a report, scoped to an account when there is one.
func title(w io.Writer, name, account string) {
	if account == "" {
		io.WriteString(w, "# "+name+"\n\n")
		return
	}
	io.WriteString(w, "# "+name+" for "+account+"\n\n")
}
