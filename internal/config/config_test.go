package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(4096), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 2000, cfg.Limiter.MinIntervalMs)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
	assert.Equal(t, 10, cfg.Analysis.MaxThemes)
	assert.Equal(t, 15, cfg.Scoring.CriticalDelta)
	assert.Equal(t, 5, cfg.Scoring.NonCriticalDelta)
	assert.Equal(t, "standard", cfg.Scoring.RatingScheme)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CALLQA_ANTHROPIC_MODEL", "claude-haiku-4-5-20251001")
	t.Setenv("CALLQA_ANALYSIS_MAX_THEMES", "5")
	t.Setenv("CALLQA_SCORING_RATING_SCHEME", "triage")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 5, cfg.Analysis.MaxThemes)
	assert.Equal(t, "triage", cfg.Scoring.RatingScheme)
}

func TestLimiterDurations(t *testing.T) {
	c := LimiterConfig{MinIntervalMs: 2000, PostDelayMs: 500}
	assert.Equal(t, "2s", c.MinInterval().String())
	assert.Equal(t, "500ms", c.PostDelay().String())
}

func TestInitLoggerBadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}

func TestInitLoggerConsole(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
