package game

import (
	"math"

	"github.com/lox/holdem-advisor/internal/deck"
)

// Stack bounds applied when a hand is initialised. Out-of-range and
// NaN stacks clamp rather than reject.
const (
	MinStack = 100
	MaxStack = 1_000_000
)

// ActorConfig describes an actor joining a hand. Stack is a float so
// untrusted setup input (including NaN) can be clamped rather than
// rejected.
type ActorConfig struct {
	Name  string
	Human bool
	Stack float64
}

// Actor is a seat in the hand. Actors persist across hands; only the
// per-round fields reset.
type Actor struct {
	Seat     int
	Name     string
	Human    bool
	Stack    int
	RoundBet int // chips bet on the current street
	TotalBet int // cumulative contribution this hand
	Folded   bool
	Active   bool
	Hole     []deck.Card
}

// Live reports whether the actor is still contesting the hand.
// Folding sets both Folded and Active so the two stay coupled.
func (a Actor) Live() bool {
	return a.Active && !a.Folded
}

// ClampStack floors a stack value into [MinStack, MaxStack]. NaN and
// anything below the floor default to MinStack.
func ClampStack(v float64) int {
	if math.IsNaN(v) || v < MinStack {
		return MinStack
	}
	if v > MaxStack {
		return MaxStack
	}
	return int(math.Floor(v))
}
