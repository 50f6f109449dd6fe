package optjournal

import "fmt"

// Percent is a percentage: 50 stands for 50%.
type Percent float64

// Ratio returns part over total as a percentage, 0 when total is 0.
func Ratio(part, total int) Percent {
	if total == 0 {
		return 0
	}
	return Percent(100 * float64(part) / float64(total))
}

// Equal compares percentages to a hundredth of a basis point.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
