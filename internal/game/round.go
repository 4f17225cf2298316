// Package game owns the betting state machine for a single hand:
// actor stacks, bets, the pot, board cards and street progression.
//
// Round is a value type. Transition functions (NewRound, BeginStreet,
// Apply) return a new Round instead of mutating in place, so callers
// never observe a partially applied transition and there is no list of
// fields to remember to reset on each street.
package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-advisor/internal/deck"
)

// DefaultMinRaiseFloor is the minimum raise when no bet is
// outstanding.
const DefaultMinRaiseFloor = 10

// Round is the complete state of one hand.
type Round struct {
	Street Street
	Pot    int
	Board  []deck.Card
	Actors []Actor

	deck          deck.Deck
	minRaiseFloor int
}

// RoundOption customises round construction.
type RoundOption func(*Round)

// WithDeck replaces the shuffled deck, for deterministic tests.
func WithDeck(d deck.Deck) RoundOption {
	return func(r *Round) {
		r.deck = d
	}
}

// WithMinRaiseFloor overrides the fixed minimum raise used when no bet
// is outstanding.
func WithMinRaiseFloor(floor int) RoundOption {
	return func(r *Round) {
		if floor > 0 {
			r.minRaiseFloor = floor
		}
	}
}

// NewRound initialises a hand: zero pot, empty board, fresh shuffled
// deck, per-round actor state reset, and two hole cards dealt to each
// seat. The setup must include at least one human and at least one bot
// actor; stacks are clamped into [MinStack, MaxStack].
func NewRound(rng *rand.Rand, configs []ActorConfig, opts ...RoundOption) (Round, error) {
	humans, bots := 0, 0
	for _, cfg := range configs {
		if cfg.Human {
			humans++
		} else {
			bots++
		}
	}
	if humans == 0 {
		return Round{}, fmt.Errorf("%w: at least one human actor required", ErrValidation)
	}
	if bots == 0 {
		return Round{}, fmt.Errorf("%w: at least one bot actor required", ErrValidation)
	}

	r := Round{
		Street:        Preflop,
		Board:         make([]deck.Card, 0, 5),
		Actors:        make([]Actor, len(configs)),
		deck:          deck.New(rng),
		minRaiseFloor: DefaultMinRaiseFloor,
	}
	for _, opt := range opts {
		opt(&r)
	}

	for i, cfg := range configs {
		r.Actors[i] = Actor{
			Seat:   i,
			Name:   cfg.Name,
			Human:  cfg.Human,
			Stack:  ClampStack(cfg.Stack),
			Active: true,
		}
	}

	for i := range r.Actors {
		hole, err := r.deck.DealN(2)
		if err != nil {
			return Round{}, fmt.Errorf("dealing hole cards: %w", err)
		}
		r.Actors[i].Hole = hole
	}

	return r, nil
}

// clone copies the slices that transitions mutate so the receiver
// stays untouched.
func (r Round) clone() Round {
	actors := make([]Actor, len(r.Actors))
	copy(actors, r.Actors)
	board := make([]deck.Card, len(r.Board), 5)
	copy(board, r.Board)
	r.Actors = actors
	r.Board = board
	return r
}

// BeginStreet transitions into the given street, dealing the burn and
// board cards it requires and zeroing every actor's street bet. There
// is no blind exception: RoundBet always resets to zero. The pot is
// recomputed from all-time contributions.
func (r Round) BeginStreet(street Street) (Round, error) {
	next := r.clone()

	switch street {
	case Preflop:
		if len(next.Board) != 0 {
			return r, fmt.Errorf("%w: preflop requires an empty board, have %d cards", ErrValidation, len(next.Board))
		}
	case Flop:
		if len(next.Board) != 0 {
			return r, fmt.Errorf("%w: flop requires an empty board, have %d cards", ErrValidation, len(next.Board))
		}
		if err := next.deck.Burn(); err != nil {
			return r, err
		}
		cards, err := next.deck.DealN(3)
		if err != nil {
			return r, err
		}
		next.Board = append(next.Board, cards...)
	case Turn:
		if len(next.Board) != 3 {
			return r, fmt.Errorf("%w: turn requires 3 board cards, have %d", ErrValidation, len(next.Board))
		}
		if err := next.deck.Burn(); err != nil {
			return r, err
		}
		card, err := next.deck.Deal()
		if err != nil {
			return r, err
		}
		next.Board = append(next.Board, card)
	case River:
		if len(next.Board) != 4 {
			return r, fmt.Errorf("%w: river requires 4 board cards, have %d", ErrValidation, len(next.Board))
		}
		if err := next.deck.Burn(); err != nil {
			return r, err
		}
		card, err := next.deck.Deal()
		if err != nil {
			return r, err
		}
		next.Board = append(next.Board, card)
	default:
		return r, fmt.Errorf("%w: unknown street %d", ErrValidation, int(street))
	}

	pot := 0
	for i := range next.Actors {
		next.Actors[i].RoundBet = 0
		pot += next.Actors[i].TotalBet
	}
	next.Pot = pot
	next.Street = street

	return next, nil
}

// MaxBet returns the highest street bet at the table.
func (r Round) MaxBet() int {
	max := 0
	for _, a := range r.Actors {
		if a.RoundBet > max {
			max = a.RoundBet
		}
	}
	return max
}

// Owed returns how many chips the actor must add to match the current
// bet.
func (r Round) Owed(seat int) int {
	owed := r.MaxBet() - r.Actors[seat].RoundBet
	if owed < 0 {
		return 0
	}
	return owed
}

// LegalActions returns the actor's legal action set. Fold and call are
// always available (a zero-cost call is the check); raising requires a
// positive stack.
func (r Round) LegalActions(seat int) []Action {
	actions := []Action{Fold, Call}
	if seat >= 0 && seat < len(r.Actors) && r.Actors[seat].Stack > 0 {
		actions = append(actions, Raise)
	}
	return actions
}

// MinimumRaise is twice the reference (human) actor's outstanding call
// amount, or a fixed floor when no bet is outstanding. This follows a
// single reference seat rather than the last full raise size.
func (r Round) MinimumRaise() int {
	for _, a := range r.Actors {
		if a.Human {
			if owed := r.MaxBet() - a.RoundBet; owed > 0 {
				return owed * 2
			}
			break
		}
	}
	return r.minRaiseFloor
}

// ValidateAction checks an action for legality without mutating state.
// Call is always valid for a live actor, including an all-in call for
// less than the full owed amount.
func (r Round) ValidateAction(seat int, action Action, amount int) error {
	if seat < 0 || seat >= len(r.Actors) {
		return fmt.Errorf("%w: seat %d out of range", ErrValidation, seat)
	}
	actor := r.Actors[seat]
	if !actor.Live() {
		return fmt.Errorf("%w: %s has folded or is inactive", ErrInvalidAction, actor.Name)
	}

	legal := false
	for _, a := range r.LegalActions(seat) {
		if a == action {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %s cannot %s", ErrIllegalAction, actor.Name, action)
	}

	if action == Raise {
		if amount > actor.Stack {
			return fmt.Errorf("%w: raise %d exceeds stack %d", ErrInsufficientFunds, amount, actor.Stack)
		}
		if min := r.MinimumRaise(); amount < min {
			return fmt.Errorf("%w: raise %d below minimum %d", ErrBelowMinimum, amount, min)
		}
	}

	return nil
}

// Apply executes an action and returns the new round state plus a
// result record. Known actions never return through the error path:
// failures are reported in the result so the hand continues. A raise
// larger than the stack silently degrades to an all-in; callers who
// want strict behaviour run ValidateAction first.
func (r Round) Apply(seat int, action Action, amount int) (Round, ActionResult) {
	if seat < 0 || seat >= len(r.Actors) {
		return r, ActionResult{Action: action, Err: fmt.Errorf("%w: seat %d out of range", ErrValidation, seat)}
	}
	if !r.Actors[seat].Live() {
		return r, ActionResult{Action: action, Remaining: r.Actors[seat].Stack,
			Err: fmt.Errorf("%w: %s", ErrInvalidAction, r.Actors[seat].Name)}
	}

	next := r.clone()
	actor := &next.Actors[seat]

	var moved int
	switch action {
	case Fold:
		actor.Folded = true
		actor.Active = false
	case Call:
		moved = next.Owed(seat)
		if moved > actor.Stack {
			moved = actor.Stack
		}
	case Raise:
		moved = amount
		if moved > actor.Stack {
			moved = actor.Stack
		}
		if moved < 0 {
			moved = 0
		}
	default:
		return r, ActionResult{Action: action, Remaining: r.Actors[seat].Stack,
			Err: fmt.Errorf("%w: %d", ErrUnknownAction, int(action))}
	}

	actor.Stack -= moved
	actor.RoundBet += moved
	actor.TotalBet += moved
	next.Pot += moved

	if next.liveCount() <= 1 {
		next.Street = Complete
	}

	return next, ActionResult{
		Success:   true,
		Action:    action,
		Amount:    moved,
		Remaining: actor.Stack,
	}
}

func (r Round) liveCount() int {
	count := 0
	for _, a := range r.Actors {
		if a.Live() {
			count++
		}
	}
	return count
}

// BettingRoundComplete reports whether the current street's betting is
// finished: one or zero live actors remain, or all live street bets
// are equal, or every live actor is at the max bet or all-in.
func (r Round) BettingRoundComplete() bool {
	if r.liveCount() <= 1 {
		return true
	}

	allEqual := true
	first := -1
	for _, a := range r.Actors {
		if !a.Live() {
			continue
		}
		if first == -1 {
			first = a.RoundBet
		} else if a.RoundBet != first {
			allEqual = false
			break
		}
	}
	if allEqual {
		return true
	}

	max := r.MaxBet()
	for _, a := range r.Actors {
		if !a.Live() {
			continue
		}
		if a.RoundBet != max && a.Stack > 0 {
			return false
		}
	}
	return true
}

// HandComplete reports whether the hand is over, independent of
// street.
func (r Round) HandComplete() bool {
	return r.Street == Complete || r.liveCount() <= 1
}

// Finish marks the hand complete. Called after river betting resolves.
func (r Round) Finish() Round {
	next := r.clone()
	next.Street = Complete
	return next
}

// Contributions returns the sum of every actor's all-time contribution
// this hand. The pot invariant requires Pot to equal this at all
// times.
func (r Round) Contributions() int {
	sum := 0
	for _, a := range r.Actors {
		sum += a.TotalBet
	}
	return sum
}
