package game

import "fmt"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Complete
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "complete"}[s]
}

// ParseStreet parses a street name as used on the wire.
func ParseStreet(s string) (Street, error) {
	switch s {
	case "preflop":
		return Preflop, nil
	case "flop":
		return Flop, nil
	case "turn":
		return Turn, nil
	case "river":
		return River, nil
	default:
		return 0, fmt.Errorf("%w: unknown street %q", ErrValidation, s)
	}
}

// Action represents an actor action. The set is closed: there is no
// distinct check action, a call for zero chips functions as one.
type Action int

const (
	Fold Action = iota
	Call
	Raise
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseAction parses an action name as used on the wire.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// ActionResult records the outcome of applying an action. Apply never
// propagates errors for known actions; failures are reported here so a
// hand keeps running.
type ActionResult struct {
	Success   bool
	Action    Action
	Amount    int // chips actually moved, after any all-in clamp
	Remaining int // actor's stack after the action
	Err       error
}
