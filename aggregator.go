package optjournal

import (
	"sort"
	"time"
)

// Position is the net exposure on one instrument. It is an informational
// view: realized P&L comes from the Matcher, not from positions.
type Position struct {
	Key          InstrumentKey
	Symbol       string
	Strategy     Strategy   // strategy of the execution that opened the position.
	Quantity     Quantity   // net signed quantity.
	Premium      *Money     // weighted average premium, nil while unknown.
	Commission   Money      // cumulative commission.
	CalculatedPL Money      // trade value of the net position.
	CloseDate    *time.Time // set while the net quantity is zero.
	ClosePremium *Money
}

// IsClosed reports whether the net quantity returned to zero.
func (p Position) IsClosed() bool { return p.CloseDate != nil }

// isEmpty reports whether p is the zero Position, before any execution.
func (p Position) isEmpty() bool {
	return p.Key == (InstrumentKey{}) && p.Quantity.IsZero() && p.CloseDate == nil
}

// execution returns the net position as an execution, to value it.
func (p Position) execution() Execution {
	return Execution{
		Symbol:     p.Symbol,
		Type:       p.Key.Type,
		Expiry:     p.Key.Expiry,
		Quantity:   p.Quantity,
		Premium:    p.Premium,
		Commission: p.Commission,
		Strategy:   p.Strategy,
	}
}

// weightedPremium returns (|qa|*pa + |qb|*pb) / |total|. An unknown premium
// on either side yields the other one.
func weightedPremium(qa Quantity, pa *Money, qb Quantity, pb *Money, total Quantity) *Money {
	switch {
	case pb == nil:
		return pa
	case pa == nil:
		return pb
	case total.IsZero():
		return pa
	}
	avg := pa.Mul(qa.Abs()).Add(pb.Mul(qb.Abs())).Div(total.Abs())
	return &avg
}

// ApplyExecution returns the position updated with e. pos is not modified.
//
// When the net quantity returns to zero the position is closed by e: the
// premium is left unchanged and any excess is not carried into an opposite
// position. A later execution reopens it.
func (c Calculator) ApplyExecution(pos Position, e Execution) Position {
	if pos.isEmpty() {
		pos = Position{Key: e.Key(), Symbol: e.Symbol, Strategy: e.Strategy}
	}
	oldQty := pos.Quantity
	newQty := oldQty.Add(e.Quantity)

	next := pos
	next.Quantity = newQty
	next.Commission = pos.Commission.Add(e.Commission)
	if newQty.IsZero() {
		closed := e.Filled
		next.CloseDate = &closed
		next.ClosePremium = e.Premium
	} else {
		next.Premium = weightedPremium(oldQty, pos.Premium, e.Quantity, e.Premium, newQty)
		next.CloseDate, next.ClosePremium = nil, nil
	}
	next.CalculatedPL = c.TradeValue(next.execution())
	return next
}

// MergePositions combines two partial aggregates of the same instrument, b
// following a in time. The premium is averaged like ApplyExecution does,
// over the net quantity. When the merged quantity is zero, the close is the
// latest one recorded by a or b. Neither argument is modified.
func (c Calculator) MergePositions(a, b Position) Position {
	if a.isEmpty() {
		return b
	}
	if b.isEmpty() {
		return a
	}
	merged := a
	merged.Quantity = a.Quantity.Add(b.Quantity)
	merged.Commission = a.Commission.Add(b.Commission)
	merged.Premium = weightedPremium(a.Quantity, a.Premium, b.Quantity, b.Premium, merged.Quantity)
	merged.CloseDate, merged.ClosePremium = nil, nil
	if merged.Quantity.IsZero() {
		merged.CloseDate, merged.ClosePremium = latestClose(a, b)
	}
	merged.CalculatedPL = c.TradeValue(merged.execution())
	return merged
}

// latestClose returns the most recent close of a and b.
func latestClose(a, b Position) (*time.Time, *Money) {
	switch {
	case a.CloseDate == nil:
		return b.CloseDate, b.ClosePremium
	case b.CloseDate == nil:
		return a.CloseDate, a.ClosePremium
	case b.CloseDate.After(*a.CloseDate):
		return b.CloseDate, b.ClosePremium
	}
	return a.CloseDate, a.ClosePremium
}

// Aggregate folds executions into net positions per instrument. Executions
// are applied chronologically; executions sharing a fill time keep their
// input order, so the same input always yields the same positions.
func (c Calculator) Aggregate(execs []Execution) map[InstrumentKey]Position {
	positions := make(map[InstrumentKey]Position)
	for _, group := range groupByKey(execs) {
		var pos Position
		for _, it := range group {
			pos = c.ApplyExecution(pos, it.exec)
		}
		positions[pos.Key] = pos
	}
	return positions
}

// Aggregate is Calculator.Aggregate with the default calculator.
func Aggregate(execs []Execution) map[InstrumentKey]Position {
	return Calculator{}.Aggregate(execs)
}

// SortedPositions returns the positions ordered by symbol, expiry, strike and type.
func SortedPositions(positions map[InstrumentKey]Position) []Position {
	out := make([]Position, 0, len(positions))
	for _, p := range positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if a.Expiry != b.Expiry {
			return a.Expiry.Before(b.Expiry)
		}
		if a.Strike != b.Strike {
			return strikeLess(a.Strike, b.Strike)
		}
		return a.Type < b.Type
	})
	return out
}
