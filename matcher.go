package optjournal

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// ErrUnmatchedClose reports a closing quantity that found no open lot to consume.
var ErrUnmatchedClose = errors.New("closing quantity exceeds open lots")

// ClosedTrade is a quantity of one open lot matched against one closing execution.
type ClosedTrade struct {
	Key          InstrumentKey
	Symbol       string
	Strategy     Strategy
	OpenDate     time.Time
	CloseDate    time.Time // fill time of the closing execution.
	Quantity     Quantity  // matched contracts, always positive.
	OpenPremium  Money
	ClosePremium Money
	PL           Money // realized P&L.
	DaysHeld     int
	Commissions  Money // prorated share of both sides' commissions.
	Long         bool
}

// Win reports whether the trade made money.
func (t ClosedTrade) Win() bool { return t.PL.IsPositive() }

// UnmatchedClose is the part of a closing execution that found no open lot.
type UnmatchedClose struct {
	Execution Execution
	Index     int      // index of the execution in the matched input.
	Quantity  Quantity // unmatched contracts, always positive.
}

func (u UnmatchedClose) String() string {
	return fmt.Sprintf("%s contracts of %s closed on %s (input #%d)",
		u.Quantity, u.Execution.Key(), u.Execution.Filled.Format(time.RFC3339), u.Index)
}

// MatchResult holds the discrete lot view of a list of executions.
type MatchResult struct {
	Closed    []ClosedTrade    // in the order produced by the chronological walk.
	Open      []OpenLot        // per instrument, oldest first.
	Unmatched []UnmatchedClose // closing remainders with no open lot.
}

// Coverage summarizes how much closing quantity found an open lot.
type Coverage struct {
	Closing   Quantity
	Matched   Quantity
	Unmatched Quantity
}

// Coverage returns the closing quantity coverage of the result.
func (r MatchResult) Coverage() Coverage {
	var c Coverage
	for _, t := range r.Closed {
		c.Matched = c.Matched.Add(t.Quantity)
	}
	for _, u := range r.Unmatched {
		c.Unmatched = c.Unmatched.Add(u.Quantity)
	}
	c.Closing = c.Matched.Add(c.Unmatched)
	return c
}

// Matcher is the FIFO engine. It walks executions chronologically per
// instrument and matches closing executions against the oldest open lots.
// Its zero value runs in MatchCompat mode without logging.
type Matcher struct {
	Mode       MatchMode
	Calculator Calculator
	Logger     *zap.Logger
}

func (m Matcher) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

// indexed is an execution and its position in the input.
type indexed struct {
	exec  Execution
	index int
}

// groupByKey groups executions per instrument, in order of first appearance,
// and sorts each group chronologically. Executions sharing a fill time keep
// their input order. Zero quantity executions are dropped.
func groupByKey(execs []Execution) [][]indexed {
	var groups [][]indexed
	pos := make(map[InstrumentKey]int)
	for i, e := range execs {
		if e.Quantity.IsZero() {
			continue
		}
		k := e.Key()
		g, ok := pos[k]
		if !ok {
			g = len(groups)
			pos[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], indexed{exec: e, index: i})
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].exec.Filled.Before(g[j].exec.Filled)
		})
	}
	return groups
}

// Match matches the executions.
//
// In MatchStrict mode the returned error wraps ErrUnmatchedClose for every
// closing remainder that found no open lot; the result is complete anyway.
func (m Matcher) Match(execs []Execution) (MatchResult, error) {
	var result MatchResult
	log := m.logger()

	for _, group := range groupByKey(execs) {
		var queue lots
		for _, it := range group {
			e := it.exec
			if e.IsOpening() {
				queue.push(newLot(e))
				continue
			}

			remainder := e.Quantity.Abs()
			for !remainder.IsZero() && queue.len() > 0 {
				lot := queue.front()
				available := lot.Quantity.Abs()
				matched := remainder.Min(available)
				result.Closed = append(result.Closed, m.close(lot, e, matched))
				if matched.Equal(available) {
					queue.pop()
				} else {
					queue.replaceFront(lot.reduce(matched))
				}
				remainder = remainder.Sub(matched)
			}

			if !remainder.IsZero() {
				u := UnmatchedClose{Execution: e, Index: it.index, Quantity: remainder}
				result.Unmatched = append(result.Unmatched, u)
				log.Warn("closing execution exceeds open lots, remainder dropped",
					zap.Stringer("instrument", e.Key()),
					zap.Stringer("unmatched", remainder),
					zap.Stringer("closing", e.Quantity),
					zap.Time("filled", e.Filled),
					zap.Int("index", it.index),
				)
			}
		}
		result.Open = append(result.Open, queue.remaining()...)
	}

	if m.Mode == MatchStrict && len(result.Unmatched) > 0 {
		errs := make([]error, 0, len(result.Unmatched))
		for _, u := range result.Unmatched {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnmatchedClose, u))
		}
		return result, errors.Join(errs...)
	}
	return result, nil
}

// close builds the closed trade for matched contracts of lot.
func (m Matcher) close(lot OpenLot, closing Execution, matched Quantity) ClosedTrade {
	pl := m.Calculator.ClosedPL(lot, closing, matched)
	return ClosedTrade{
		Key:          lot.Key,
		Symbol:       lot.Symbol,
		Strategy:     lot.Strategy,
		OpenDate:     lot.OpenDate,
		CloseDate:    closing.Filled,
		Quantity:     matched,
		OpenPremium:  premiumOrZero(lot.Premium),
		ClosePremium: premiumOrZero(closing.Premium),
		PL:           pl.PL,
		DaysHeld:     pl.DaysHeld,
		Commissions:  pl.Commissions,
		Long:         lot.IsLong(),
	}
}

// Match matches executions with the default Matcher. Unmatched closing
// remainders are dropped from the closed trades and listed in the result.
func Match(execs []Execution) MatchResult {
	r, _ := Matcher{}.Match(execs)
	return r
}
