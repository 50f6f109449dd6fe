package optjournal

import "time"

// Trade is the common shape of a closed trade or a still open lot, as
// consumed by statistics, reconciliation and reports.
type Trade struct {
	Key          InstrumentKey
	Symbol       string
	Quantity     Quantity // signed for open lots, positive for closed trades.
	OpenDate     time.Time
	CloseDate    *time.Time
	Closed       bool
	CalculatedPL Money
}

// Marks holds current per share prices by instrument.
type Marks map[InstrumentKey]Money

// Trades returns the closed trades followed by the open lots. An open lot is
// valued at its mark when one is known, at its trade value otherwise.
func (c Calculator) Trades(r MatchResult, marks Marks) []Trade {
	trades := make([]Trade, 0, len(r.Closed)+len(r.Open))
	for _, t := range r.Closed {
		closed := t.CloseDate
		trades = append(trades, Trade{
			Key:          t.Key,
			Symbol:       t.Symbol,
			Quantity:     t.Quantity,
			OpenDate:     t.OpenDate,
			CloseDate:    &closed,
			Closed:       true,
			CalculatedPL: t.PL,
		})
	}
	for _, l := range r.Open {
		trades = append(trades, Trade{
			Key:          l.Key,
			Symbol:       l.Symbol,
			Quantity:     l.Quantity,
			OpenDate:     l.OpenDate,
			CalculatedPL: c.OpenPL(l, marks),
		})
	}
	return trades
}

// OpenPL values an open lot at its mark, or at its trade value when unmarked.
func (c Calculator) OpenPL(l OpenLot, marks Marks) Money {
	if price, ok := marks[l.Key]; ok {
		return c.MarkToMarket(l.Execution(), price)
	}
	return c.TradeValue(l.Execution())
}

// TradeStats aggregates trades.
type TradeStats struct {
	TotalPL       Money // realized P&L of closed trades.
	OpenPL        Money // calculated P&L of open trades.
	OpenTrades    int
	ClosedTrades  int
	WinningTrades int
	LosingTrades  int
	WinRate       Percent // winning over closed trades.
}

// ComputeStats aggregates trades. Trades that broke even are neither winning
// nor losing.
func ComputeStats(trades []Trade) TradeStats {
	var s TradeStats
	for _, t := range trades {
		if !t.Closed {
			s.OpenTrades++
			s.OpenPL = s.OpenPL.Add(t.CalculatedPL)
			continue
		}
		s.ClosedTrades++
		s.TotalPL = s.TotalPL.Add(t.CalculatedPL)
		switch {
		case t.CalculatedPL.IsPositive():
			s.WinningTrades++
		case t.CalculatedPL.IsNegative():
			s.LosingTrades++
		}
	}
	s.WinRate = Ratio(s.WinningTrades, s.ClosedTrades)
	return s
}

// Stats computes the statistics of a match result with the default calculator.
func Stats(r MatchResult, marks Marks) TradeStats {
	return ComputeStats(Calculator{}.Trades(r, marks))
}

// ExecutionTrades lists executions as trades, for statements that report each
// execution with its own closing fill instead of separate closing executions.
func (c Calculator) ExecutionTrades(execs []Execution) []Trade {
	trades := make([]Trade, 0, len(execs))
	for _, e := range execs {
		trades = append(trades, Trade{
			Key:          e.Key(),
			Symbol:       e.Symbol,
			Quantity:     e.Quantity,
			OpenDate:     e.Filled,
			CloseDate:    e.CloseDate,
			Closed:       e.IsClosed(),
			CalculatedPL: c.ExecutionPL(e),
		})
	}
	return trades
}
