package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/date"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is the parsed structure of a rendered report.
type document struct {
	headings []string
	tables   [][][]string // rows of cells, header row first.
}

// parse parses markdown with the table extension and collects headings and tables.
func parse(t *testing.T, md string) document {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plain(n, src))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			var rows [][]string
			for row := n.FirstChild(); row != nil; row = row.NextSibling() {
				var cells []string
				for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
					cells = append(cells, plain(cell, src))
				}
				rows = append(rows, cells)
			}
			doc.tables = append(doc.tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("failed to walk markdown: %v", err)
	}
	return doc
}

// plain returns the text content of a node, without inline markup.
func plain(n ast.Node, src []byte) string {
	var b bytes.Buffer
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

var mar15 = date.New(2024, 3, 15)

func fill(filled string, strategy optjournal.Strategy, qty, premium, commission float64) optjournal.Execution {
	return optjournal.NewExecution(date.MustParseTime(filled), "AAPL", strategy, 150, mar15,
		optjournal.Q(qty), optjournal.M(premium, "USD"), optjournal.M(commission, "USD"))
}

func TestJournalMarkdown(t *testing.T) {
	r := optjournal.Match([]optjournal.Execution{
		fill("2024-01-02", optjournal.LongCall, 10, 2, 5),
		fill("2024-01-12", optjournal.LongCall, -6, 3, 3),
	})
	key := r.Open[0].Key
	md := JournalMarkdown("ibkr", r, optjournal.Calculator{}, optjournal.Marks{key: optjournal.M(2.5, "USD")})
	doc := parse(t, md)

	wantHeadings := []string{"Trade Journal for ibkr", "Closed Trades", "Open Lots"}
	if diff := cmp.Diff(wantHeadings, doc.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if len(doc.tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(doc.tables))
	}

	closed := doc.tables[0]
	wantClosed := [][]string{
		{"Instrument", "Strategy", "Opened", "Closed", "Days", "Qty", "Open", "Close", "Fees", "P&L"},
		{"AAPL 2024-03-15 150 CALL", "LONG_CALL", "2024-01-02", "2024-01-12", "10", "6", "$2.00", "$3.00", "$6.00", "+$594.00"},
		{"Total", "", "", "", "", "", "", "", "", "+$594.00"},
	}
	if diff := cmp.Diff(wantClosed, closed); diff != "" {
		t.Errorf("closed trades mismatch (-want +got):\n%s", diff)
	}

	open := doc.tables[1]
	wantOpen := []string{"AAPL 2024-03-15 150 CALL", "LONG_CALL", "2024-01-02", "4", "$2.00", "$2.50", "$2.00", "+$198.00"}
	if len(open) != 3 {
		t.Fatalf("got %d open lot rows, want 3", len(open))
	}
	if diff := cmp.Diff(wantOpen, open[1]); diff != "" {
		t.Errorf("open lot mismatch (-want +got):\n%s", diff)
	}
}

func TestJournalMarkdown_Unmatched(t *testing.T) {
	r := optjournal.Match([]optjournal.Execution{
		fill("2024-01-02", optjournal.LongPut, 5, 1, 0),
		fill("2024-01-05", optjournal.LongPut, -8, 2, 0),
	})
	doc := parse(t, JournalMarkdown("", r, optjournal.Calculator{}, nil))

	wantHeadings := []string{"Trade Journal", "Closed Trades", "Open Lots", "Unmatched Closing Executions"}
	if diff := cmp.Diff(wantHeadings, doc.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	// closed trades and unmatched, no open lot table.
	if len(doc.tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(doc.tables))
	}
	want := []string{"1", "AAPL 2024-03-15 150 PUT", "2024-01-05", "3", "-8"}
	if diff := cmp.Diff(want, doc.tables[1][1]); diff != "" {
		t.Errorf("unmatched row mismatch (-want +got):\n%s", diff)
	}
}

func TestPositionsMarkdown(t *testing.T) {
	other := optjournal.NewExecution(date.MustParseTime("2024-01-03"), "MSFT", optjournal.ShortPut, 300, mar15,
		optjournal.Q(-1), optjournal.M(4.0, "USD"), optjournal.M(1.0, "USD"))
	positions := optjournal.SortedPositions(optjournal.Aggregate([]optjournal.Execution{
		fill("2024-01-02", optjournal.LongCall, 2, 1, 0),
		fill("2024-01-04", optjournal.LongCall, -2, 2, 0),
		other,
	}))
	doc := parse(t, PositionsMarkdown("", positions))
	if len(doc.tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(doc.tables))
	}
	rows := doc.tables[0]
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// open positions come first.
	if rows[1][0] != "MSFT 2024-03-15 300 PUT" || rows[1][6] != "open" {
		t.Errorf("first row = %v, want the open MSFT position", rows[1])
	}
	if rows[2][6] != "closed on 2024-01-04" {
		t.Errorf("second row status = %q, want closed on 2024-01-04", rows[2][6])
	}
}

func TestStatsMarkdown(t *testing.T) {
	s := optjournal.ComputeStats([]optjournal.Trade{
		{Closed: true, CalculatedPL: optjournal.M(500.0, "USD")},
		{Closed: true, CalculatedPL: optjournal.M(-100.0, "USD")},
	})
	doc := parse(t, StatsMarkdown("ibkr", s))
	got := make(map[string]string)
	for _, row := range doc.tables[0][1:] {
		got[row[0]] = row[1]
	}
	want := map[string]string{
		"Realized P&L":   "+$400.00",
		"Open P&L":       "-",
		"Closed Trades":  "2",
		"Open Trades":    "0",
		"Winning Trades": "1",
		"Losing Trades":  "1",
		"Win Rate":       "50.00%",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestReconciliationMarkdown(t *testing.T) {
	trades := []optjournal.Trade{
		{Symbol: "AAPL", Closed: true, CalculatedPL: optjournal.M(500.0, "USD")},
		{Symbol: "MSFT", Closed: true, CalculatedPL: optjournal.M(300.0, "USD")},
	}
	stats := optjournal.ComputeStats(trades)
	totals := optjournal.BrokerTotals{RealizedTotal: optjournal.M(1000.0, "USD")}
	recs := optjournal.Reconcile(trades, stats, totals)

	doc := parse(t, ReconciliationMarkdown("", recs, stats, totals))
	if len(doc.tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(doc.tables))
	}
	if got := doc.tables[0][1]; got[3] != "1.2500" {
		t.Errorf("realized factor = %q, want 1.2500", got[3])
	}
	var broker []string
	for _, row := range doc.tables[1][1:] {
		broker = append(broker, row[5])
	}
	if diff := cmp.Diff([]string{"+$625.00", "+$375.00"}, broker); diff != "" {
		t.Errorf("broker P&L mismatch (-want +got):\n%s", diff)
	}
}
