package game

import "errors"

var (
	// ErrValidation covers malformed initialisation input and bad
	// street transitions. Nothing is mutated when it is returned.
	ErrValidation = errors.New("game: validation failed")

	// ErrInvalidAction means the actor cannot act at all (folded or
	// inactive).
	ErrInvalidAction = errors.New("game: actor cannot act")

	// ErrIllegalAction means the action is outside the actor's legal
	// set.
	ErrIllegalAction = errors.New("game: illegal action")

	// ErrInsufficientFunds means a raise amount exceeds the actor's
	// stack.
	ErrInsufficientFunds = errors.New("game: insufficient funds")

	// ErrBelowMinimum means a raise amount is below the minimum raise.
	ErrBelowMinimum = errors.New("game: raise below minimum")

	// ErrUnknownAction is reported in an ActionResult when Apply is
	// handed an action value outside the closed set.
	ErrUnknownAction = errors.New("game: unknown action")
)
