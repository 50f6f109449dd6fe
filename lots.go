package optjournal

import "time"

// OpenLot is the still open quantity of one opening execution.
type OpenLot struct {
	Key              InstrumentKey
	Symbol           string
	Strategy         Strategy
	OpenDate         time.Time
	Quantity         Quantity // signed remaining quantity.
	OriginalQuantity Quantity // signed quantity of the opening execution.
	Premium          *Money
	Commission       Money // opening commission prorated to the remaining quantity.

	opening Execution
}

// newLot opens a lot from an opening execution.
func newLot(e Execution) OpenLot {
	return OpenLot{
		Key:              e.Key(),
		Symbol:           e.Symbol,
		Strategy:         e.Strategy,
		OpenDate:         e.Filled,
		Quantity:         e.Quantity,
		OriginalQuantity: e.Quantity,
		Premium:          e.Premium,
		Commission:       e.Commission,
		opening:          e,
	}
}

// IsLong reports whether the lot holds bought contracts.
func (l OpenLot) IsLong() bool { return l.OriginalQuantity.IsPositive() }

// reduce returns the lot left after closing matched contracts. The commission
// of the remainder is the opening commission prorated by remaining / original.
func (l OpenLot) reduce(matched Quantity) OpenLot {
	remaining := l.Quantity.Abs().Sub(matched.Abs())
	if l.Quantity.IsNegative() {
		remaining = remaining.Neg()
	}
	l.Quantity = remaining
	l.Commission = prorate(l.opening.Commission, remaining, l.OriginalQuantity)
	return l
}

// Execution returns an execution equivalent to the remaining lot, suitable
// for TradeValue or MarkToMarket.
func (l OpenLot) Execution() Execution {
	e := l.opening
	e.Quantity = l.Quantity
	e.Commission = l.Commission
	e.CloseDate, e.ClosePremium = nil, nil
	return e
}

// lots is a FIFO queue of open lots. Dequeuing advances a head index instead
// of shifting the slice.
type lots struct {
	items []OpenLot
	head  int
}

func (q *lots) push(l OpenLot) { q.items = append(q.items, l) }

func (q *lots) len() int { return len(q.items) - q.head }

// front returns the oldest lot. The queue must not be empty.
func (q *lots) front() OpenLot { return q.items[q.head] }

// replaceFront swaps the oldest lot for its reduced remainder.
func (q *lots) replaceFront(l OpenLot) { q.items[q.head] = l }

// pop removes the oldest lot.
func (q *lots) pop() {
	q.items[q.head] = OpenLot{}
	q.head++
	if q.head > 32 && q.head*2 > len(q.items) {
		// reclaim the consumed prefix.
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
}

// remaining returns a copy of the lots still open, oldest first.
func (q *lots) remaining() []OpenLot {
	out := make([]OpenLot, q.len())
	copy(out, q.items[q.head:])
	return out
}

// total returns the absolute quantity still open.
func (q *lots) total() Quantity {
	var t Quantity
	for _, l := range q.items[q.head:] {
		t = t.Add(l.Quantity.Abs())
	}
	return t
}
