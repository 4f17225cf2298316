// Package config loads table and engine settings from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-advisor/internal/bot"
	"github.com/lox/holdem-advisor/internal/game"
)

// Defaults applied after decode for fields the file leaves unset.
const (
	DefaultTimeoutSeconds = 30
	DefaultDifficulty     = "normal"
	DefaultMinRaise       = game.DefaultMinRaiseFloor
	DefaultLogLevel       = "info"
	DefaultStack          = 1000
)

// Config is the root of a table configuration file.
type Config struct {
	Engine *EngineConfig `hcl:"engine,block"`
	Actors []ActorBlock  `hcl:"actor,block"`
}

// EngineConfig holds engine-wide settings.
type EngineConfig struct {
	Seed           int64  `hcl:"seed,optional"`
	AdvisorURL     string `hcl:"advisor_url,optional"`
	TimeoutSeconds int    `hcl:"timeout_seconds,optional"`
	Difficulty     string `hcl:"difficulty,optional"`
	MinRaise       int    `hcl:"min_raise,optional"`
	HistoryDir     string `hcl:"history_dir,optional"`
	LogLevel       string `hcl:"log_level,optional"`
}

// ActorBlock is one seat at the table. Stack is a float in the file;
// it is clamped and floored when the round starts.
type ActorBlock struct {
	Name  string  `hcl:"name,label"`
	Human bool    `hcl:"human,optional"`
	Stack float64 `hcl:"stack,optional"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes HCL source, applies defaults and validates.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing config: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == nil {
		c.Engine = &EngineConfig{}
	}
	if c.Engine.TimeoutSeconds == 0 {
		c.Engine.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Engine.Difficulty == "" {
		c.Engine.Difficulty = DefaultDifficulty
	}
	if c.Engine.MinRaise == 0 {
		c.Engine.MinRaise = DefaultMinRaise
	}
	if c.Engine.LogLevel == "" {
		c.Engine.LogLevel = DefaultLogLevel
	}
	for i := range c.Actors {
		if c.Actors[i].Stack == 0 {
			c.Actors[i].Stack = DefaultStack
		}
	}
}

// Validate checks the decoded configuration. The table needs at least
// one human and one bot seat.
func (c *Config) Validate() error {
	if c.Engine.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.Engine.TimeoutSeconds)
	}
	if c.Engine.MinRaise < 0 {
		return fmt.Errorf("min_raise must not be negative, got %d", c.Engine.MinRaise)
	}
	if _, err := bot.ParseDifficulty(c.Engine.Difficulty); err != nil {
		return err
	}

	humans, bots := 0, 0
	seen := make(map[string]bool, len(c.Actors))
	for _, a := range c.Actors {
		if seen[a.Name] {
			return fmt.Errorf("duplicate actor name %q", a.Name)
		}
		seen[a.Name] = true
		if a.Human {
			humans++
		} else {
			bots++
		}
	}
	if humans == 0 {
		return fmt.Errorf("at least one human actor required")
	}
	if bots == 0 {
		return fmt.Errorf("at least one bot actor required")
	}
	return nil
}

// ActorConfigs converts the actor blocks into round setup.
func (c *Config) ActorConfigs() []game.ActorConfig {
	configs := make([]game.ActorConfig, len(c.Actors))
	for i, a := range c.Actors {
		configs[i] = game.ActorConfig{
			Name:  a.Name,
			Human: a.Human,
			Stack: a.Stack,
		}
	}
	return configs
}

// Timeout returns the advisory timeout as a duration.
func (e *EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// BotDifficulty returns the parsed difficulty tier.
func (e *EngineConfig) BotDifficulty() bot.Difficulty {
	d, err := bot.ParseDifficulty(e.Difficulty)
	if err != nil {
		return bot.Normal
	}
	return d
}
