package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/optjournal"
	"github.com/etnz/optjournal/renderer"
	"google.golang.org/genai"
)

// Journal gives experts a read only access to an account's executions.
type Journal struct {
	Account    string
	Executions []optjournal.Execution
	Matcher    optjournal.Matcher
	Marks      optjournal.Marks
}

// filter returns the executions on symbol, all of them when symbol is empty.
func (j *Journal) filter(symbol string) []optjournal.Execution {
	if symbol == "" {
		return j.Executions
	}
	symbol = strings.ToUpper(symbol)
	var out []optjournal.Execution
	for _, e := range j.Executions {
		if e.Symbol == symbol {
			out = append(out, e)
		}
	}
	return out
}

// ClosedTrades renders the FIFO matching of the executions on symbol.
func (j *Journal) ClosedTrades(symbol string) (string, error) {
	r, err := j.Matcher.Match(j.filter(symbol))
	if err != nil {
		return "", err
	}
	return renderer.JournalMarkdown(j.Account, r, j.Matcher.Calculator, j.Marks), nil
}

// Positions renders the net positions on symbol.
func (j *Journal) Positions(symbol string, openOnly bool) string {
	positions := optjournal.SortedPositions(j.Matcher.Calculator.Aggregate(j.filter(symbol)))
	if openOnly {
		open := positions[:0]
		for _, p := range positions {
			if !p.IsClosed() {
				open = append(open, p)
			}
		}
		positions = open
	}
	return renderer.PositionsMarkdown(j.Account, positions)
}

// Stats renders the trade statistics of the executions on symbol.
func (j *Journal) Stats(symbol string) (string, error) {
	r, err := j.Matcher.Match(j.filter(symbol))
	if err != nil {
		return "", err
	}
	trades := j.Matcher.Calculator.Trades(r, j.Marks)
	return renderer.StatsMarkdown(j.Account, optjournal.ComputeStats(trades)), nil
}

var symbolSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "Underlying symbol to restrict the answer to, e.g. AAPL. All symbols when omitted.",
}

var markdownSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "A markdown report.",
}

// stringArg returns the optional string argument name.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

// Functions returns the tools reading the journal.
func (j *Journal) Functions() []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "closed_trades",
				Description: `Lists the closed trades obtained by FIFO matching of the executions,
				with their realized P&L, the remaining open lots and any closing execution that found no open lot.`,
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"symbol": symbolSchema},
				},
				Response: markdownSchema,
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, err := stringArg(args, "symbol")
				if err != nil {
					return errorResponse(id, "closed_trades", err)
				}
				md, err := j.ClosedTrades(symbol)
				if err != nil {
					return errorResponse(id, "closed_trades", err)
				}
				return outputResponse(id, "closed_trades", md)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "positions",
				Description: `Lists the net position per option contract: quantity, average premium, commissions and whether it is closed.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"symbol": symbolSchema,
						"open_only": {
							Type:        genai.TypeBoolean,
							Description: "Only list the positions still open.",
						},
					},
				},
				Response: markdownSchema,
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, err := stringArg(args, "symbol")
				if err != nil {
					return errorResponse(id, "positions", err)
				}
				openOnly, _ := args["open_only"].(bool)
				return outputResponse(id, "positions", j.Positions(symbol, openOnly))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "stats",
				Description: `Computes the trading statistics: win rate, average win and loss, profit factor, realized and open P&L.`,
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"symbol": symbolSchema},
				},
				Response: markdownSchema,
			},
			Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, err := stringArg(args, "symbol")
				if err != nil {
					return errorResponse(id, "stats", err)
				}
				md, err := j.Stats(symbol)
				if err != nil {
					return errorResponse(id, "stats", err)
				}
				return outputResponse(id, "stats", md)
			},
		},
	}
}
