package optjournal

import (
	"errors"
	"fmt"
)

// ValidateExecution checks an execution at ingestion and returns all the
// failures joined together. A zero quantity is valid: the Matcher ignores it.
// An unknown premium is valid too.
func ValidateExecution(e Execution) error {
	var errs []error
	if e.Symbol == "" {
		errs = append(errs, errors.New("symbol is missing"))
	}
	if e.Type != Call && e.Type != Put {
		errs = append(errs, fmt.Errorf("unknown option type %q", e.Type))
	}
	if e.Strategy.OptionType() == "" {
		errs = append(errs, fmt.Errorf("unknown strategy %q", e.Strategy))
	} else if e.Strategy.OptionType() != e.Type {
		errs = append(errs, fmt.Errorf("strategy %s does not trade %s options", e.Strategy, e.Type))
	}
	if !e.Strike.IsPositive() {
		errs = append(errs, fmt.Errorf("strike must be positive, got %s", e.Strike.value))
	}
	if e.Expiry.IsZero() {
		errs = append(errs, errors.New("expiry is missing"))
	}
	if e.Filled.IsZero() {
		errs = append(errs, errors.New("fill date is missing"))
	}
	if e.Premium != nil && e.Premium.IsNegative() {
		errs = append(errs, fmt.Errorf("premium must not be negative, got %s", e.Premium.value))
	}
	if e.Commission.IsNegative() {
		errs = append(errs, fmt.Errorf("commission must not be negative, got %s", e.Commission.value))
	}
	if e.ClosePremium != nil && e.ClosePremium.IsNegative() {
		errs = append(errs, fmt.Errorf("close premium must not be negative, got %s", e.ClosePremium.value))
	}
	if e.CloseDate != nil && e.CloseDate.Before(e.Filled) {
		errs = append(errs, fmt.Errorf("close date %s is before fill date %s", e.CloseDate.Format("2006-01-02"), e.Filled.Format("2006-01-02")))
	}
	return errors.Join(errs...)
}

// ValidateCurrency checks that every amount of e is in currency. Amounts
// without a currency are accepted.
func ValidateCurrency(e Execution, currency string) error {
	amounts := []struct {
		name string
		m    *Money
	}{
		{"strike", &e.Strike},
		{"premium", e.Premium},
		{"commission", &e.Commission},
		{"close premium", e.ClosePremium},
	}
	var errs []error
	for _, a := range amounts {
		if a.m != nil && a.m.cur != "" && a.m.cur != currency {
			errs = append(errs, fmt.Errorf("%s is in %s, the journal is in %s", a.name, a.m.cur, currency))
		}
	}
	return errors.Join(errs...)
}

// Ingest validates executions and returns the accepted ones, in input order,
// and an error naming every rejected execution. A journal holds a single
// currency: executions in another currency than currency are rejected.
func Ingest(execs []Execution, currency string) ([]Execution, error) {
	accepted := make([]Execution, 0, len(execs))
	var errs []error
	for i, e := range execs {
		err := errors.Join(ValidateExecution(e), ValidateCurrency(e, currency))
		if err != nil {
			errs = append(errs, fmt.Errorf("execution #%d (%s %s): %w", i, e.Symbol, e.Filled.Format("2006-01-02"), err))
			continue
		}
		accepted = append(accepted, e)
	}
	return accepted, errors.Join(errs...)
}
