package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/date"
	"google.golang.org/genai"
)

func fill(symbol, filled string, strategy optjournal.Strategy, qty, premium float64) optjournal.Execution {
	return optjournal.NewExecution(date.MustParseTime(filled), symbol, strategy, 150, date.New(2024, 3, 15),
		optjournal.Q(qty), optjournal.M(premium, "USD"), optjournal.M(5, "USD"))
}

func testJournal() *Journal {
	return &Journal{
		Account: "ibkr",
		Executions: []optjournal.Execution{
			fill("AAPL", "2024-01-02", optjournal.LongCall, 10, 2),
			fill("AAPL", "2024-01-20", optjournal.LongCall, -10, 3),
			fill("MSFT", "2024-01-05", optjournal.ShortPut, -2, 4),
		},
	}
}

func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "42", Name: name, Args: args})
	if resp.ID != "42" || resp.Name != name {
		t.Errorf("%s: got response %q/%q, want 42/%s", name, resp.ID, resp.Name, name)
	}
	return resp.Response
}

func TestJournalFunctions(t *testing.T) {
	lib := NewLibrary(testJournal().Functions())

	testCases := []struct {
		name     string
		function string
		args     map[string]any
		contains []string
		excludes []string
	}{
		{
			name:     "closed trades",
			function: "closed_trades",
			args:     map[string]any{},
			contains: []string{"## Closed Trades", "$990.00", "MSFT"},
		},
		{
			name:     "closed trades on a symbol",
			function: "closed_trades",
			args:     map[string]any{"symbol": "aapl"},
			contains: []string{"$990.00", "No open lots."},
			excludes: []string{"MSFT"},
		},
		{
			name:     "open positions",
			function: "positions",
			args:     map[string]any{"open_only": true},
			contains: []string{"MSFT", "open"},
			excludes: []string{"AAPL"},
		},
		{
			name:     "stats",
			function: "stats",
			args:     map[string]any{"symbol": "AAPL"},
			contains: []string{"$990.00"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, lib, tc.function, tc.args)
			if e, ok := resp["error"]; ok {
				t.Fatalf("%s returned error %v", tc.function, e)
			}
			out, _ := resp["output"].(string)
			for _, s := range tc.contains {
				if !strings.Contains(out, s) {
					t.Errorf("%s output does not contain %q:\n%s", tc.function, s, out)
				}
			}
			for _, s := range tc.excludes {
				if strings.Contains(out, s) {
					t.Errorf("%s output contains %q:\n%s", tc.function, s, out)
				}
			}
		})
	}
}

func TestLibraryErrors(t *testing.T) {
	lib := NewLibrary(testJournal().Functions())

	testCases := []struct {
		name     string
		function string
		args     map[string]any
		want     string
	}{
		{"unknown function", "holdings", nil, "unknown function holdings"},
		{"bad symbol", "stats", map[string]any{"symbol": 12.0}, `argument "symbol" is not a string`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, lib, tc.function, tc.args)
			got, _ := resp["error"].(string)
			if !strings.Contains(got, tc.want) {
				t.Errorf("error = %q, want it to contain %q", got, tc.want)
			}
		})
	}
}

func TestExpertCall_InvalidQuestion(t *testing.T) {
	e := NewExpert("Analyst", "reads the journal")
	resp := e.Call(context.Background(), "1", map[string]any{"question": 3})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() with a non string question = %v, want an error", resp.Response)
	}
}

func TestDeclarations(t *testing.T) {
	j := testJournal()
	a := New(nil, strings.NewReader(""), "test-model", NewAnalyst("test-model", j), NewCoach("test-model"))

	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if got, want := strings.Join(names, ","), "Analyst,Coach"; got != want {
		t.Errorf("facilitator tools = %q, want %q", got, want)
	}
	if got := a.Facilitator.ModelName; got != "test-model" {
		t.Errorf("facilitator model = %q, want test-model", got)
	}
}
