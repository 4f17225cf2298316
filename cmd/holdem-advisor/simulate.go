package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/lox/holdem-advisor/internal/config"
	"github.com/lox/holdem-advisor/internal/engine"
)

// SimulateCmd runs hands with a passive check-call policy in the human
// seat and reports aggregate outcomes. Useful for exercising the
// advisory pipeline without a terminal in the loop.
type SimulateCmd struct {
	Config   string `short:"c" default:"holdem-advisor.hcl" help:"Path to HCL configuration file"`
	Hands    int    `short:"n" default:"100" help:"Number of hands to simulate"`
	Seed     *int64 `help:"Deterministic RNG seed (overrides config)"`
	Advisor  string `help:"Advisor WebSocket URL (overrides config)"`
	LogLevel string `short:"l" default:"warn" help:"Log level"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Advisor != "" {
		cfg.Engine.AdvisorURL = c.Advisor
	}
	cfg.Engine.LogLevel = c.LogLevel
	if c.Seed != nil {
		cfg.Engine.Seed = *c.Seed
	}

	logger := setupLogger(cfg.Engine.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, cleanup, err := buildEngine(ctx, cfg, logger, engine.CheckCallAgent())
	if err != nil {
		return err
	}
	defer cleanup()

	wins := make(map[string]int)
	uncontested := 0
	totalPot := 0

	for i := 0; i < c.Hands; i++ {
		result, err := eng.PlayHand(ctx)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		for _, seat := range result.Winners {
			wins[result.Round.Actors[seat].Name]++
		}
		if result.Uncontested {
			uncontested++
		}
		totalPot += result.Round.Pot
	}

	fmt.Printf("simulated %d hands\n", c.Hands)
	fmt.Printf("  uncontested: %d\n", uncontested)
	if c.Hands > 0 {
		fmt.Printf("  average pot: %d\n", totalPot/c.Hands)
	}
	for name, count := range wins {
		fmt.Printf("  %-10s %d wins\n", name, count)
	}
	return nil
}
