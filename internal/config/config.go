// Package config loads application configuration from file and
// environment and initializes the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Limiter   LimiterConfig   `yaml:"limiter" mapstructure:"limiter"`
	Retry     RetryConfig     `yaml:"retry" mapstructure:"retry"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds model API settings.
type AnthropicConfig struct {
	Key            string  `yaml:"key" mapstructure:"key"`
	Model          string  `yaml:"model" mapstructure:"model"`
	MaxTokens      int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature    float64 `yaml:"temperature" mapstructure:"temperature"`
	RequestTimeout int     `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// LimiterConfig configures the client-side request throttle.
type LimiterConfig struct {
	MinIntervalMs int `yaml:"min_interval_ms" mapstructure:"min_interval_ms"`
	PostDelayMs   int `yaml:"post_delay_ms" mapstructure:"post_delay_ms"`
}

// MinInterval returns the throttle interval as a duration.
func (c LimiterConfig) MinInterval() time.Duration {
	return time.Duration(c.MinIntervalMs) * time.Millisecond
}

// PostDelay returns the fixed post-call delay as a duration.
func (c LimiterConfig) PostDelay() time.Duration {
	return time.Duration(c.PostDelayMs) * time.Millisecond
}

// RetryConfig configures transient-failure retry behavior.
type RetryConfig struct {
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier" mapstructure:"multiplier"`
}

// AnalysisConfig configures the pipeline stages.
type AnalysisConfig struct {
	MaxThemes     int    `yaml:"max_themes" mapstructure:"max_themes"`
	ChecklistPath string `yaml:"checklist_path" mapstructure:"checklist_path"`
}

// ScoringConfig exposes the business-rule constants of the scoring engine.
type ScoringConfig struct {
	CriticalDelta    int     `yaml:"critical_delta" mapstructure:"critical_delta"`
	NonCriticalDelta int     `yaml:"non_critical_delta" mapstructure:"non_critical_delta"`
	RatingScheme     string  `yaml:"rating_scheme" mapstructure:"rating_scheme"`
	HighFreqPct      float64 `yaml:"high_freq_pct" mapstructure:"high_freq_pct"`
	MediumFreqPct    float64 `yaml:"medium_freq_pct" mapstructure:"medium_freq_pct"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int     `yaml:"port" mapstructure:"port"`
	RatePerSecond  float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxRequestSize int64   `yaml:"max_request_size" mapstructure:"max_request_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CALLQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.temperature", 0.0)
	v.SetDefault("anthropic.request_timeout_secs", 60)
	v.SetDefault("limiter.min_interval_ms", 2000)
	v.SetDefault("limiter.post_delay_ms", 2000)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 1000)
	v.SetDefault("retry.max_backoff_ms", 30000)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("analysis.max_themes", 10)
	v.SetDefault("scoring.critical_delta", 15)
	v.SetDefault("scoring.non_critical_delta", 5)
	v.SetDefault("scoring.rating_scheme", "standard")
	v.SetDefault("scoring.high_freq_pct", 30.0)
	v.SetDefault("scoring.medium_freq_pct", 15.0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 1.0)
	v.SetDefault("server.rate_burst", 3)
	v.SetDefault("server.max_request_size", 10<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
