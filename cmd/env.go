package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/callqa-cli/internal/checklist"
	"github.com/sells-group/callqa-cli/internal/llm"
	"github.com/sells-group/callqa-cli/internal/pipeline"
	"github.com/sells-group/callqa-cli/internal/resilience"
	"github.com/sells-group/callqa-cli/internal/scoring"
	"github.com/sells-group/callqa-cli/pkg/anthropic"
)

// env bundles the wired pipeline and its checklist for one command run.
type env struct {
	Pipeline  *pipeline.Pipeline
	Checklist *checklist.Checklist
}

// initPipeline wires the API client, throttled adapter, and pipeline from
// config. checklistPath overrides the configured checklist when set.
func initPipeline(checklistPath string) (*env, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic API key not configured (set CALLQA_ANTHROPIC_KEY)")
	}

	if checklistPath == "" {
		checklistPath = cfg.Analysis.ChecklistPath
	}
	if checklistPath == "" {
		return nil, eris.New("no checklist configured (set --checklist or analysis.checklist_path)")
	}
	cl, err := checklist.Load(checklistPath)
	if err != nil {
		return nil, err
	}

	client := anthropic.NewClient(cfg.Anthropic.Key)
	adapter := llm.NewAdapter(client, llm.Options{
		Model:          cfg.Anthropic.Model,
		MaxTokens:      cfg.Anthropic.MaxTokens,
		Temperature:    cfg.Anthropic.Temperature,
		RequestTimeout: time.Duration(cfg.Anthropic.RequestTimeout) * time.Second,
		MinInterval:    cfg.Limiter.MinInterval(),
		PostDelay:      cfg.Limiter.PostDelay(),
		Retry: resilience.FromRetryConfig(
			cfg.Retry.MaxAttempts,
			cfg.Retry.InitialBackoffMs,
			cfg.Retry.MaxBackoffMs,
			cfg.Retry.Multiplier,
		),
	})

	p := pipeline.New(adapter, pipeline.Options{
		MaxThemes: cfg.Analysis.MaxThemes,
		Scoring:   scoringConfig(),
	}, zap.L())

	return &env{Pipeline: p, Checklist: cl}, nil
}

// scoringConfig builds the engine config from file/env overrides.
func scoringConfig() scoring.Config {
	sc := scoring.DefaultConfig().WithScheme(cfg.Scoring.RatingScheme)
	if cfg.Scoring.CriticalDelta > 0 {
		sc.CriticalDelta = cfg.Scoring.CriticalDelta
	}
	if cfg.Scoring.NonCriticalDelta > 0 {
		sc.NonCriticalDelta = cfg.Scoring.NonCriticalDelta
	}
	if cfg.Scoring.HighFreqPct > 0 {
		sc.HighFreqPct = cfg.Scoring.HighFreqPct
	}
	if cfg.Scoring.MediumFreqPct > 0 {
		sc.MediumFreqPct = cfg.Scoring.MediumFreqPct
	}
	return sc
}
