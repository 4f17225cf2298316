package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-advisor/internal/advisor"
	"github.com/lox/holdem-advisor/internal/config"
	"github.com/lox/holdem-advisor/internal/engine"
	"github.com/lox/holdem-advisor/internal/history"
	"github.com/lox/holdem-advisor/internal/randutil"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd plays interactive hands with the human at seat one.
type PlayCmd struct {
	Config   string `short:"c" default:"holdem-advisor.hcl" help:"Path to HCL configuration file"`
	Hands    int    `short:"n" default:"1" help:"Number of hands to play"`
	Seed     *int64 `help:"Deterministic RNG seed (overrides config)"`
	Advisor  string `help:"Advisor WebSocket URL (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Advisor != "" {
		cfg.Engine.AdvisorURL = c.Advisor
	}
	if c.LogLevel != "" {
		cfg.Engine.LogLevel = c.LogLevel
	}
	if c.Seed != nil {
		cfg.Engine.Seed = *c.Seed
	}

	logger := setupLogger(cfg.Engine.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console, err := NewConsole()
	if err != nil {
		return err
	}
	defer console.Close()

	eng, cleanup, err := buildEngine(ctx, cfg, logger, console)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Print(titleStyle.Render(" ♠ ♥ holdem-advisor ♦ ♣ "))
	fmt.Println()

	for i := 0; i < c.Hands; i++ {
		result, err := eng.PlayHand(ctx)
		if err != nil {
			return err
		}
		console.ShowResult(result)
	}
	return nil
}

// buildEngine wires up randomness, the advisor connection and the
// history recorder from configuration. The returned cleanup closes the
// advisor connection.
func buildEngine(ctx context.Context, cfg *config.Config, logger *log.Logger, agent engine.Agent) (*engine.Engine, func(), error) {
	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Seeding randomness", "seed", seed)
	rng := randutil.New(seed)

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithDifficulty(cfg.Engine.BotDifficulty()),
		engine.WithMinRaiseFloor(cfg.Engine.MinRaise),
	}

	cleanup := func() {}
	if cfg.Engine.AdvisorURL != "" {
		client, err := advisor.NewClient(cfg.Engine.AdvisorURL,
			advisor.WithTimeout(cfg.Engine.Timeout()),
			advisor.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		if err := client.Connect(ctx); err != nil {
			logger.Warn("Advisor unreachable, bots will use the fallback policy", "error", err)
		} else {
			opts = append(opts, engine.WithAdvisor(client))
			cleanup = func() {
				if err := client.Close(); err != nil {
					logger.Warn("Failed to close advisor connection", "error", err)
				}
			}
		}
	}

	if cfg.Engine.HistoryDir != "" {
		recorder, err := history.NewRecorder(cfg.Engine.HistoryDir)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, engine.WithRecorder(recorder))
	}

	eng, err := engine.New(rng, cfg.ActorConfigs(), agent, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}
