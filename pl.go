package optjournal

import "time"

// Calculator computes P&L figures. Its zero value is ready to use and rounds
// half away from zero.
//
// An unknown premium is never an error: it values the position at zero.
type Calculator struct {
	Rounding RoundingMode
}

// ClosedPL is the outcome of matching part of an open lot against a closing execution.
type ClosedPL struct {
	PL          Money
	DaysHeld    int
	Commissions Money // open side share + close side share.
}

// premiumOrZero returns the premium, or a zero amount when it is unknown.
func premiumOrZero(p *Money) Money {
	if p == nil {
		return Money{}
	}
	return *p
}

// prorate returns the share of commission attributable to part of total.
func prorate(commission Money, part, total Quantity) Money {
	if total.IsZero() {
		return Money{cur: commission.cur}
	}
	return commission.Mul(part.Abs()).Div(total.Abs())
}

// TradeValue returns quantity * premium * 100 - commission, or zero when the
// premium is unknown.
func (c Calculator) TradeValue(e Execution) Money {
	if e.Premium == nil {
		return Money{}
	}
	return e.Premium.Mul(e.Quantity).Mul(Multiplier).Sub(e.Commission)
}

// ClosedPL computes the realized P&L of closing matched contracts of lot with
// the closing execution.
//
// Each side's commission is prorated by matched over that side's quantity. The
// closing execution's fill time is the effective close date of the position.
func (c Calculator) ClosedPL(lot OpenLot, closing Execution, matched Quantity) ClosedPL {
	matched = matched.Abs()
	paid := premiumOrZero(lot.Premium).Mul(matched).Mul(Multiplier)
	received := premiumOrZero(closing.Premium).Mul(matched).Mul(Multiplier)

	commissions := prorate(lot.Commission, matched, lot.Quantity).
		Add(prorate(closing.Commission, matched, closing.Quantity))

	var pl Money
	if lot.OriginalQuantity.IsPositive() {
		pl = received.Sub(paid).Sub(commissions)
	} else {
		pl = paid.Sub(received).Sub(commissions)
	}
	return ClosedPL{
		PL:          pl,
		DaysHeld:    daysBetween(lot.OpenDate, closing.Filled),
		Commissions: commissions,
	}
}

// MarkToMarket values e at the current per share price:
// round2((price - premium) * 100 * quantity - commission).
// It returns zero when the premium is unknown.
func (c Calculator) MarkToMarket(e Execution, price Money) Money {
	if e.Premium == nil {
		return Money{}
	}
	pl := price.Sub(*e.Premium).Mul(Multiplier).Mul(e.Quantity).Sub(e.Commission)
	return pl.Round(2, c.Rounding)
}

// ExecutionPL returns the P&L of a single execution: the mark to market at
// its close premium when it carries its own closing fill, its trade value otherwise.
func (c Calculator) ExecutionPL(e Execution) Money {
	if e.IsClosed() && e.ClosePremium != nil {
		return c.MarkToMarket(e, *e.ClosePremium)
	}
	return c.TradeValue(e)
}

// daysBetween returns the number of whole days elapsed from open to close.
func daysBetween(open, close time.Time) int {
	return int(close.Sub(open) / (24 * time.Hour))
}

// TradeValue is Calculator.TradeValue with the default calculator.
func TradeValue(e Execution) Money { return Calculator{}.TradeValue(e) }

// MarkToMarket is Calculator.MarkToMarket with the default calculator.
func MarkToMarket(e Execution, price Money) Money { return Calculator{}.MarkToMarket(e, price) }
