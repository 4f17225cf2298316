// Package advisor defines the contract with the external advisory
// collaborator and a WebSocket client for it. The advisor is a black
// box: it consumes a snapshot of the round and returns strategic
// intents for every bot, or fails. Failures are always recovered
// locally by the engine's fallback policy, never surfaced to users.
package advisor

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the advisor cannot be reached at all.
	ErrUnavailable = errors.New("advisor: unavailable")

	// ErrTimeout means the advisor did not answer within the bounded
	// wait. The in-flight call is abandoned, not cancelled.
	ErrTimeout = errors.New("advisor: timed out")

	// ErrInvalidIntent means the payload failed schema or structural
	// validation.
	ErrInvalidIntent = errors.New("advisor: invalid intent payload")
)

// Advisor produces intents for the bots at a decision point.
type Advisor interface {
	Intents(ctx context.Context, req IntentRequest) (*IntentResponse, error)
}

// ActorState is the advisor's view of one seat.
type ActorState struct {
	Name   string `json:"name"`
	Seat   int    `json:"seat"`
	Stack  int    `json:"stack"`
	Folded bool   `json:"folded"`
	Human  bool   `json:"human"`
}

// IntentRequest is the snapshot sent to the advisor at each decision
// point.
type IntentRequest struct {
	Difficulty   string       `json:"difficulty"`
	Street       string       `json:"street"`
	Pot          int          `json:"pot"`
	LastAction   string       `json:"lastAction,omitempty"`
	LastBetSize  int          `json:"lastBetSize"`
	Actors       []ActorState `json:"actors"`
	BoardTexture string       `json:"boardTexture"`
	LegalActions []string     `json:"legalActions"`
}

// BotCount returns how many bot seats the request describes, which is
// exactly how many intent entries a valid response must carry.
func (r IntentRequest) BotCount() int {
	count := 0
	for _, a := range r.Actors {
		if !a.Human {
			count++
		}
	}
	return count
}

// BotIntent is the advisory signal for a single bot.
type BotIntent struct {
	Index      int     `json:"index"`
	ActionBias string  `json:"actionBias"`
	Confidence float64 `json:"confidence"`
}

// IntentResponse is the advisor's structured answer: an overall plan
// tag, table-level scalars, and one intent per bot.
type IntentResponse struct {
	Plan         string      `json:"plan"`
	Aggression   float64     `json:"aggression"`
	Bluff        float64     `json:"bluff"`
	Coordination float64     `json:"coordination"`
	Bots         []BotIntent `json:"bots"`
}

// Validate enforces the structural half of the contract: exactly one
// entry per bot, each referencing an index equal to its array
// position, biases from the closed set, scalars in [0,1]. Any
// deviation invalidates the whole payload.
func (r *IntentResponse) Validate(botCount int) error {
	if len(r.Bots) != botCount {
		return fmt.Errorf("%w: expected %d bot intents, got %d", ErrInvalidIntent, botCount, len(r.Bots))
	}
	for i, intent := range r.Bots {
		if intent.Index != i {
			return fmt.Errorf("%w: bot intent %d references index %d", ErrInvalidIntent, i, intent.Index)
		}
		switch intent.ActionBias {
		case "fold", "call", "raise":
		default:
			return fmt.Errorf("%w: unknown action bias %q", ErrInvalidIntent, intent.ActionBias)
		}
		if intent.Confidence < 0 || intent.Confidence > 1 {
			return fmt.Errorf("%w: confidence %f out of range", ErrInvalidIntent, intent.Confidence)
		}
	}
	for name, v := range map[string]float64{
		"aggression":   r.Aggression,
		"bluff":        r.Bluff,
		"coordination": r.Coordination,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %f out of range", ErrInvalidIntent, name, v)
		}
	}
	return nil
}
