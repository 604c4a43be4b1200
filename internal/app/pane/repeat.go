package pane

import "github.com/cockroachdb/errors"

// RepeatMode governs how the queue cycles after items finish.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota // Stop advancing when the queue runs out
	RepeatOne                    // Replay the same item on the same pane
	RepeatAll                    // Reset the played set and start over
)

// String returns the string representation of the repeat mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatNone:
		return "none"
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "unknown"
	}
}

// Next returns the mode following this one in the toggle cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatOne
	case RepeatOne:
		return RepeatAll
	default:
		return RepeatNone
	}
}

// ParseRepeatMode parses a repeat mode name.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "none", "":
		return RepeatNone, nil
	case "one":
		return RepeatOne, nil
	case "all":
		return RepeatAll, nil
	default:
		return RepeatNone, errors.Newf("unknown repeat mode: %q", s)
	}
}
