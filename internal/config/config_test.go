package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-advisor/internal/bot"
)

const fullConfig = `
engine {
  seed            = 42
  advisor_url     = "ws://localhost:8080/advise"
  timeout_seconds = 5
  difficulty      = "hard"
  min_raise       = 20
  history_dir     = "hands"
  log_level       = "debug"
}

actor "You" {
  human = true
  stack = 1500
}

actor "Bot1" {
  stack = 1000
}

actor "Bot2" {}
`

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig), "table.hcl")
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Engine.Seed)
	assert.Equal(t, "ws://localhost:8080/advise", cfg.Engine.AdvisorURL)
	assert.Equal(t, 5*time.Second, cfg.Engine.Timeout())
	assert.Equal(t, bot.Hard, cfg.Engine.BotDifficulty())
	assert.Equal(t, 20, cfg.Engine.MinRaise)
	assert.Equal(t, "hands", cfg.Engine.HistoryDir)
	assert.Equal(t, "debug", cfg.Engine.LogLevel)

	require.Len(t, cfg.Actors, 3)
	assert.True(t, cfg.Actors[0].Human)
	assert.Equal(t, 1500.0, cfg.Actors[0].Stack)
	// omitted stack picks up the default
	assert.Equal(t, float64(DefaultStack), cfg.Actors[2].Stack)
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
actor "You" {
  human = true
}
actor "Bot1" {}
`), "table.hcl")
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeoutSeconds, cfg.Engine.TimeoutSeconds)
	assert.Equal(t, "normal", cfg.Engine.Difficulty)
	assert.Equal(t, DefaultMinRaise, cfg.Engine.MinRaise)
	assert.Equal(t, "info", cfg.Engine.LogLevel)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no human", `
actor "Bot1" {}
actor "Bot2" {}
`},
		{"no bots", `
actor "You" {
  human = true
}
`},
		{"duplicate names", `
actor "You" {
  human = true
}
actor "You" {}
`},
		{"bad difficulty", `
engine {
  difficulty = "brutal"
}
actor "You" {
  human = true
}
actor "Bot1" {}
`},
		{"bad syntax", `actor "You" {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "table.hcl")
			assert.Error(t, err)
		})
	}
}

func TestActorConfigs(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig), "table.hcl")
	require.NoError(t, err)

	configs := cfg.ActorConfigs()
	require.Len(t, configs, 3)
	assert.Equal(t, "You", configs[0].Name)
	assert.True(t, configs[0].Human)
	assert.Equal(t, 1500.0, configs[0].Stack)
	assert.False(t, configs[1].Human)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Actors, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
