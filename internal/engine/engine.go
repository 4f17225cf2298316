// Package engine orchestrates hands: it deals, walks the streets,
// collects decisions from the human agent and the advisory pipeline,
// applies them to the round and settles the pot. Advisory failures
// never stop a hand; the fallback policy substitutes and play
// continues.
package engine

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/holdem-advisor/internal/advisor"
	"github.com/lox/holdem-advisor/internal/bot"
	"github.com/lox/holdem-advisor/internal/classification"
	"github.com/lox/holdem-advisor/internal/deck"
	"github.com/lox/holdem-advisor/internal/evaluator"
	"github.com/lox/holdem-advisor/internal/game"
	"github.com/lox/holdem-advisor/internal/history"
)

// maxPromptAttempts bounds re-prompting after invalid human input
// before the engine folds the seat.
const maxPromptAttempts = 3

// Recorder persists completed hands.
type Recorder interface {
	Record(history.Hand) error
}

// Engine runs hands for a fixed table of actors.
type Engine struct {
	rng        *rand.Rand
	logger     *log.Logger
	advisor    advisor.Advisor
	agent      Agent
	mapper     *bot.Mapper
	recorder   Recorder
	difficulty bot.Difficulty
	configs    []game.ActorConfig
	minRaise   int
}

// Option customises the engine.
type Option func(*Engine)

// WithAdvisor attaches the advisory collaborator. Without one, every
// bot plays the fallback policy.
func WithAdvisor(a advisor.Advisor) Option {
	return func(e *Engine) {
		e.advisor = a
	}
}

// WithRecorder attaches a hand history recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.WithPrefix("engine")
	}
}

// WithDifficulty sets the bot difficulty tier.
func WithDifficulty(d bot.Difficulty) Option {
	return func(e *Engine) {
		e.difficulty = d
	}
}

// WithMinRaiseFloor overrides the minimum raise used when no bet is
// outstanding.
func WithMinRaiseFloor(floor int) Option {
	return func(e *Engine) {
		if floor > 0 {
			e.minRaise = floor
		}
	}
}

// New creates an engine for the given table. The agent decides for the
// human seat; the actor set must satisfy the round's one-human,
// one-bot minimum, which is checked when a hand starts.
func New(rng *rand.Rand, configs []game.ActorConfig, agent Agent, opts ...Option) (*Engine, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: randomness source required", game.ErrValidation)
	}
	if agent == nil {
		return nil, fmt.Errorf("%w: human agent required", game.ErrValidation)
	}

	e := &Engine{
		rng:        rng,
		logger:     log.New(io.Discard),
		agent:      agent,
		mapper:     bot.NewMapper(rng),
		difficulty: bot.Normal,
		configs:    append([]game.ActorConfig(nil), configs...),
		minRaise:   game.DefaultMinRaiseFloor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// HandResult summarises a settled hand. Showdown holds an evaluation
// per live seat and is nil when the pot went uncontested.
type HandResult struct {
	ID          string
	Round       game.Round
	Winners     []int
	Payouts     []int
	Showdown    map[int]evaluator.Result
	Uncontested bool
}

// lastAct is the most recent action on the current street, reported to
// the advisor for context.
type lastAct struct {
	name   string
	amount int
}

// PlayHand runs one complete hand: deal, four betting streets,
// settlement. Hole cards are dealt up front; board cards arrive as
// each street begins.
func (e *Engine) PlayHand(ctx context.Context) (*HandResult, error) {
	id := uuid.NewString()[:8]
	logger := e.logger.With("hand", id)

	round, err := game.NewRound(e.rng, e.configs, game.WithMinRaiseFloor(e.minRaise))
	if err != nil {
		return nil, err
	}

	hlog := newHandLog(id, round, e.difficulty)

	for _, street := range []game.Street{game.Preflop, game.Flop, game.Turn, game.River} {
		dealt := len(round.Board)
		round, err = round.BeginStreet(street)
		if err != nil {
			return nil, fmt.Errorf("beginning %s: %w", street, err)
		}
		if len(round.Board) > dealt {
			hlog.deal(round.Board[dealt:])
		}
		logger.Info("Street begins", "street", street, "pot", round.Pot, "board", deck.Notation(round.Board))

		round, err = e.runStreet(ctx, logger, round, hlog)
		if err != nil {
			return nil, err
		}
		if round.HandComplete() {
			break
		}
	}

	round = round.Finish()
	result, err := e.settle(id, round)
	if err != nil {
		return nil, err
	}

	// Actors persist across hands: ending stacks become the next
	// hand's starting stacks. A busted seat re-enters at the clamp
	// floor.
	for i, a := range result.Round.Actors {
		e.configs[i].Stack = float64(a.Stack)
	}

	logger.Info("Hand settled", "pot", result.Round.Pot, "winners", result.Winners,
		"payouts", result.Payouts, "uncontested", result.Uncontested)

	if e.recorder != nil {
		hlog.finish(result)
		if err := e.recorder.Record(hlog.hand); err != nil {
			logger.Warn("Failed to record hand history", "error", err)
		}
	}

	return result, nil
}

// runStreet gives every live actor at least one action, then keeps
// cycling while anyone still owes chips. Without the first full pass,
// the all-equal-at-zero state at street start would read as complete
// before anyone acted.
func (e *Engine) runStreet(ctx context.Context, logger *log.Logger, r game.Round, hlog *handLog) (game.Round, error) {
	acted := make([]bool, len(r.Actors))
	last := lastAct{}

	for {
		progressed := false
		for seat := range r.Actors {
			actor := r.Actors[seat]
			if !actor.Live() {
				continue
			}
			if acted[seat] && (r.Owed(seat) == 0 || actor.Stack == 0) {
				continue
			}

			var err error
			r, err = e.takeAction(ctx, logger, r, seat, &last, hlog)
			if err != nil {
				return r, err
			}
			acted[seat] = true
			progressed = true

			if r.HandComplete() {
				return r, nil
			}
		}

		if !progressed || r.BettingRoundComplete() {
			return r, nil
		}
	}
}

func (e *Engine) takeAction(ctx context.Context, logger *log.Logger, r game.Round, seat int, last *lastAct, hlog *handLog) (game.Round, error) {
	if r.Actors[seat].Human {
		return e.humanAction(ctx, logger, r, seat, last, hlog)
	}
	return e.botAction(ctx, logger, r, seat, last, hlog)
}

func (e *Engine) humanAction(ctx context.Context, logger *log.Logger, r game.Round, seat int, last *lastAct, hlog *handLog) (game.Round, error) {
	actor := r.Actors[seat]
	var promptErr error

	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		prompt := Prompt{
			Street:   r.Street,
			Hole:     actor.Hole,
			Board:    r.Board,
			Pot:      r.Pot,
			Owed:     r.Owed(seat),
			Stack:    actor.Stack,
			MinRaise: r.MinimumRaise(),
			Legal:    r.LegalActions(seat),
			Err:      promptErr,
		}

		action, amount, err := e.agent.Act(ctx, prompt)
		if err != nil {
			return r, fmt.Errorf("human agent: %w", err)
		}
		if action != game.Raise {
			amount = 0
		}

		if err := r.ValidateAction(seat, action, amount); err != nil {
			logger.Warn("Rejected action", "actor", actor.Name, "action", action, "error", err)
			promptErr = err
			continue
		}

		next, res := r.Apply(seat, action, amount)
		e.recordAction(logger, seat, actor.Name, res, last, hlog)
		return next, nil
	}

	logger.Warn("Too many invalid actions, folding", "actor", actor.Name)
	next, res := r.Apply(seat, game.Fold, 0)
	e.recordAction(logger, seat, actor.Name, res, last, hlog)
	return next, nil
}

func (e *Engine) botAction(ctx context.Context, logger *log.Logger, r game.Round, seat int, last *lastAct, hlog *handLog) (game.Round, error) {
	actor := r.Actors[seat]
	dctx := bot.Context{
		Pot:        r.Pot,
		ToCall:     r.Owed(seat),
		Stack:      actor.Stack,
		Legal:      r.LegalActions(seat),
		Difficulty: e.difficulty,
	}

	decision := e.decide(ctx, logger, r, seat, dctx, *last)

	amount := 0
	if decision.Action == game.Raise {
		amount = r.MinimumRaise()
		if amount > actor.Stack {
			amount = actor.Stack
		}
	}

	next, res := r.Apply(seat, decision.Action, amount)
	if res.Err != nil {
		return r, fmt.Errorf("applying bot action: %w", res.Err)
	}
	logger.Info("Bot acts", "actor", actor.Name, "action", res.Action,
		"amount", res.Amount, "confidence", decision.Confidence)
	e.recordAction(logger, seat, actor.Name, res, last, hlog)
	return next, nil
}

// decide resolves a bot's action through the advisory pipeline. Any
// advisory failure degrades to the fallback policy for this decision
// only.
func (e *Engine) decide(ctx context.Context, logger *log.Logger, r game.Round, seat int, dctx bot.Context, last lastAct) bot.Decision {
	if e.advisor == nil {
		return bot.Fallback(dctx)
	}

	resp, err := e.advisor.Intents(ctx, e.buildIntentRequest(r, seat, last))
	if err != nil {
		logger.Warn("Advisory call failed, using fallback policy", "error", err)
		return bot.Fallback(dctx)
	}

	intent := resp.Bots[botIndex(r, seat)]
	bias, err := game.ParseAction(intent.ActionBias)
	if err != nil {
		logger.Warn("Unusable action bias, using fallback policy", "error", err)
		return bot.Fallback(dctx)
	}

	return e.mapper.Resolve(bot.Intent{Bias: bias, Confidence: intent.Confidence}, dctx)
}

func (e *Engine) buildIntentRequest(r game.Round, seat int, last lastAct) advisor.IntentRequest {
	actors := make([]advisor.ActorState, len(r.Actors))
	for i, a := range r.Actors {
		actors[i] = advisor.ActorState{
			Name:   a.Name,
			Seat:   a.Seat,
			Stack:  a.Stack,
			Folded: a.Folded,
			Human:  a.Human,
		}
	}

	legal := r.LegalActions(seat)
	names := make([]string, len(legal))
	for i, a := range legal {
		names[i] = a.String()
	}

	return advisor.IntentRequest{
		Difficulty:   e.difficulty.String(),
		Street:       r.Street.String(),
		Pot:          r.Pot,
		LastAction:   last.name,
		LastBetSize:  last.amount,
		Actors:       actors,
		BoardTexture: classification.Classify(r.Board).String(),
		LegalActions: names,
	}
}

// botIndex maps a seat to its position among the bot seats, which is
// how advisory intent entries are indexed.
func botIndex(r game.Round, seat int) int {
	idx := 0
	for i := 0; i < seat; i++ {
		if !r.Actors[i].Human {
			idx++
		}
	}
	return idx
}

func (e *Engine) recordAction(logger *log.Logger, seat int, name string, res game.ActionResult, last *lastAct, hlog *handLog) {
	if res.Err != nil {
		logger.Warn("Action failed", "actor", name, "action", res.Action, "error", res.Err)
		return
	}
	*last = lastAct{name: res.Action.String(), amount: res.Amount}
	hlog.action(seat, res)
}

// settle splits the pot among the winners and credits their stacks.
// An uncontested pot goes to the last live seat without showing down;
// otherwise the evaluator ranks every live hand.
func (e *Engine) settle(id string, r game.Round) (*HandResult, error) {
	var live []int
	for _, a := range r.Actors {
		if a.Live() {
			live = append(live, a.Seat)
		}
	}

	result := &HandResult{ID: id, Round: r}

	var winners []int
	if len(live) <= 1 {
		winners = live
		result.Uncontested = true
	} else {
		holes := make([][]deck.Card, len(r.Actors))
		folded := make([]bool, len(r.Actors))
		for i, a := range r.Actors {
			holes[i] = a.Hole
			folded[i] = !a.Live()
		}
		var err error
		winners, err = evaluator.Winners(holes, r.Board, folded)
		if err != nil {
			return nil, fmt.Errorf("ranking hands: %w", err)
		}
		result.Showdown = make(map[int]evaluator.Result, len(live))
		for _, seat := range live {
			result.Showdown[seat] = evaluator.Evaluate(r.Actors[seat].Hole, r.Board)
		}
	}

	payouts := splitPot(r.Pot, winners)
	for i, w := range winners {
		result.Round.Actors[w].Stack += payouts[i]
	}
	result.Winners = winners
	result.Payouts = payouts
	return result, nil
}

// splitPot divides the pot evenly; odd chips go to the winner in the
// lowest seat.
func splitPot(pot int, winners []int) []int {
	if len(winners) == 0 {
		return nil
	}
	share := pot / len(winners)
	payouts := make([]int, len(winners))
	for i := range payouts {
		payouts[i] = share
	}
	payouts[0] += pot % len(winners)
	return payouts
}

// handLog accumulates a hand history as the hand plays out.
type handLog struct {
	hand history.Hand
}

func newHandLog(id string, r game.Round, difficulty bot.Difficulty) *handLog {
	h := history.Hand{
		ID:         id,
		PlayedAt:   time.Now().UTC(),
		Variant:    "NT",
		Difficulty: difficulty.String(),
	}
	for _, a := range r.Actors {
		h.Players = append(h.Players, history.Player{
			Name:          a.Name,
			Seat:          a.Seat,
			Human:         a.Human,
			StartingStack: a.Stack,
			HoleCards:     deck.Notation(a.Hole),
		})
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", a.Seat+1, deck.Notation(a.Hole)))
	}
	return &handLog{hand: h}
}

func (l *handLog) deal(cards []deck.Card) {
	l.hand.Actions = append(l.hand.Actions, fmt.Sprintf("d db %s", deck.Notation(cards)))
}

func (l *handLog) action(seat int, res game.ActionResult) {
	switch res.Action {
	case game.Fold:
		l.hand.Actions = append(l.hand.Actions, fmt.Sprintf("p%d f", seat+1))
	case game.Call:
		l.hand.Actions = append(l.hand.Actions, fmt.Sprintf("p%d cc", seat+1))
	case game.Raise:
		l.hand.Actions = append(l.hand.Actions, fmt.Sprintf("p%d cbr %d", seat+1, res.Amount))
	}
}

func (l *handLog) finish(result *HandResult) {
	l.hand.Board = deck.Notation(result.Round.Board)
	l.hand.Pot = result.Round.Pot
	l.hand.Winners = result.Winners
	l.hand.Payouts = result.Payouts
	for i := range l.hand.Players {
		l.hand.Players[i].FinalStack = result.Round.Actors[i].Stack
	}
}
