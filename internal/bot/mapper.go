// Package bot translates abstract advisory intents into concrete legal
// actions. The mapper's contract: the returned action is always an
// element of the legal set it was given, whatever the advisor said.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-advisor/internal/game"
)

// Difficulty tiers change how aggressively a biased-but-illegal intent
// degrades.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "normal", "medium":
		return Normal, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Intent is the advisory signal for one bot: a suggested action
// category, not guaranteed legal, plus the advisor's confidence.
type Intent struct {
	Bias       game.Action
	Confidence float64
}

// Context is everything the mapper needs about the current decision
// point.
type Context struct {
	Pot        int
	ToCall     int
	Stack      int
	Legal      []game.Action
	Difficulty Difficulty
}

// Decision is the mapper's output: a legal action with a confidence
// score.
type Decision struct {
	Action     game.Action
	Confidence float64
}

// FallbackConfidence is the conservative fixed confidence used when
// the advisor is unavailable or returned an invalid payload.
const FallbackConfidence = 0.35

// defaultConfidence is used when no degradation rule matches.
const defaultConfidence = 0.5

// smallBetRatio bounds what HARD mode treats as a cheap call relative
// to the pot.
const smallBetRatio = 0.45

// Mapper resolves intents into legal actions. The RNG drives the
// probabilistic degradation branches and is injectable so tests can
// pin branch selection.
type Mapper struct {
	rng *rand.Rand
}

// NewMapper creates a mapper with the given randomness source.
func NewMapper(rng *rand.Rand) *Mapper {
	return &Mapper{rng: rng}
}

// Resolve maps an intent onto the legal set. A legal bias passes
// through unchanged; otherwise the degradation table keyed by bias,
// difficulty and pot-relative bet size picks a substitute.
func (m *Mapper) Resolve(intent Intent, ctx Context) Decision {
	if len(ctx.Legal) == 0 {
		return Decision{Action: game.Fold, Confidence: 0}
	}

	confidence := clamp01(intent.Confidence)
	if contains(ctx.Legal, intent.Bias) {
		return Decision{Action: intent.Bias, Confidence: confidence}
	}

	callLegal := contains(ctx.Legal, game.Call)
	foldLegal := contains(ctx.Legal, game.Fold)
	small := m.smallBet(ctx)

	switch intent.Bias {
	case game.Raise:
		// Raise unavailable: prefer calling, weighted up in HARD
		// mode, otherwise fall back toward folding. HARD may still
		// call a cheap bet after the fold fallback fires.
		if callLegal && ctx.ToCall <= ctx.Stack {
			if m.rng.Float64() < callWeight(ctx.Difficulty) {
				return Decision{Action: game.Call, Confidence: confidence}
			}
		}
		if ctx.Difficulty == Hard && callLegal && small && m.rng.Float64() < 0.5 {
			return Decision{Action: game.Call, Confidence: confidence}
		}
		if foldLegal {
			return Decision{Action: game.Fold, Confidence: confidence}
		}

	case game.Call:
		// Call unavailable: HARD keeps the hand alive on cheap bets
		// through whatever passive action remains, everyone else
		// folds.
		if ctx.Difficulty == Hard && small {
			if action, ok := firstNonFold(ctx.Legal); ok {
				return Decision{Action: action, Confidence: confidence}
			}
		}
		if foldLegal {
			return Decision{Action: game.Fold, Confidence: confidence}
		}

	case game.Fold:
		// Fold unavailable but a call is: EASY takes the cheapest
		// exit with low confidence, HARD treats a small bet as a
		// deliberate continue.
		if callLegal {
			if ctx.Difficulty == Hard && small {
				return Decision{Action: game.Call, Confidence: confidence}
			}
			return Decision{Action: game.Call, Confidence: min(confidence, defaultConfidence)}
		}
	}

	return Decision{Action: ctx.Legal[0], Confidence: defaultConfidence}
}

// Fallback is the engine's safe substitute policy: call if affordable,
// else fold, at a fixed conservative confidence. It guarantees the
// round progresses when the advisor fails and never raises.
func Fallback(ctx Context) Decision {
	if contains(ctx.Legal, game.Call) && ctx.ToCall <= ctx.Stack {
		return Decision{Action: game.Call, Confidence: FallbackConfidence}
	}
	if contains(ctx.Legal, game.Fold) {
		return Decision{Action: game.Fold, Confidence: FallbackConfidence}
	}
	if len(ctx.Legal) > 0 {
		return Decision{Action: ctx.Legal[0], Confidence: FallbackConfidence}
	}
	return Decision{Action: game.Fold, Confidence: FallbackConfidence}
}

// FallbackAll produces one fallback decision per context. Used when a
// malformed advisory payload invalidates every bot's intent at once.
func FallbackAll(ctxs []Context) []Decision {
	decisions := make([]Decision, len(ctxs))
	for i, ctx := range ctxs {
		decisions[i] = Fallback(ctx)
	}
	return decisions
}

func (m *Mapper) smallBet(ctx Context) bool {
	return ctx.Pot > 0 && float64(ctx.ToCall) < smallBetRatio*float64(ctx.Pot)
}

func callWeight(d Difficulty) float64 {
	switch d {
	case Hard:
		return 0.9
	case Normal:
		return 0.7
	default:
		return 0.5
	}
}

func contains(legal []game.Action, a game.Action) bool {
	for _, l := range legal {
		if l == a {
			return true
		}
	}
	return false
}

func firstNonFold(legal []game.Action) (game.Action, bool) {
	for _, a := range legal {
		if a != game.Fold {
			return a, true
		}
	}
	return game.Fold, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
