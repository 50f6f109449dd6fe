package optjournal

import "fmt"

// MatchMode defines what the Matcher does with a closing quantity that finds
// no open lot to consume.
type MatchMode int

const (
	// MatchCompat drops the unmatched remainder from the closed trades. The
	// remainder is still listed in MatchResult.Unmatched.
	MatchCompat MatchMode = iota
	// MatchStrict fails the match with ErrUnmatchedClose.
	MatchStrict
)

func (m MatchMode) String() string {
	switch m {
	case MatchCompat:
		return "compat"
	case MatchStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseMatchMode parses a string into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "compat", "":
		return MatchCompat, nil
	case "strict":
		return MatchStrict, nil
	default:
		return 0, fmt.Errorf("unknown match mode: %q", s)
	}
}
