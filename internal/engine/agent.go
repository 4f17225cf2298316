package engine

import (
	"context"

	"github.com/lox/holdem-advisor/internal/deck"
	"github.com/lox/holdem-advisor/internal/game"
)

// Prompt is everything an agent needs to choose the human's action at
// one decision point.
type Prompt struct {
	Street   game.Street
	Hole     []deck.Card
	Board    []deck.Card
	Pot      int
	Owed     int
	Stack    int
	MinRaise int
	Legal    []game.Action

	// Err carries the validation failure from the previous attempt
	// when the agent is re-prompted.
	Err error
}

// Agent chooses the human actor's action. Implementations are an
// interactive terminal prompt or a scripted policy for simulations.
type Agent interface {
	Act(ctx context.Context, prompt Prompt) (game.Action, int, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, prompt Prompt) (game.Action, int, error)

func (f AgentFunc) Act(ctx context.Context, prompt Prompt) (game.Action, int, error) {
	return f(ctx, prompt)
}

// CheckCallAgent is a passive scripted agent: it always calls, which
// checks when nothing is owed. Used by simulations.
func CheckCallAgent() Agent {
	return AgentFunc(func(ctx context.Context, prompt Prompt) (game.Action, int, error) {
		return game.Call, 0, nil
	})
}
