// Package config provides configuration management for the Sharp Props engine.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Providers ProvidersConfig `mapstructure:"providers" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig represents projection and decision engine configuration
type EngineConfig struct {
	RecentWindow       int     `mapstructure:"recent_window" validate:"required,gt=0"`
	ReliabilityMinutes float64 `mapstructure:"reliability_minutes" validate:"required,gt=0"`
	Bankroll           float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	KellyFraction      float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	Iterations         int     `mapstructure:"monte_carlo_iterations" validate:"required,gt=0"`
	Seed               int64   `mapstructure:"monte_carlo_seed"`
	Overdispersed      bool    `mapstructure:"overdispersed"`
	Volatility         float64 `mapstructure:"volatility" validate:"gte=0"`

	Coefficients    CoefficientsConfig `mapstructure:"coefficients"`
	PositionDefense map[string]float64 `mapstructure:"position_defense"`
	RefereeBias     map[string]float64 `mapstructure:"referee_bias"`
}

// CoefficientsConfig holds the fixed situational multipliers. Zero values
// fall back to the engine defaults.
type CoefficientsConfig struct {
	HomeBoost      float64 `mapstructure:"home_boost" validate:"omitempty,gt=0"`
	AwayPenalty    float64 `mapstructure:"away_penalty" validate:"omitempty,gt=0"`
	FatiguePenalty float64 `mapstructure:"fatigue_penalty" validate:"omitempty,gt=0"`
	UsageBoost     float64 `mapstructure:"usage_boost" validate:"omitempty,gt=0"`
}

// ProvidersConfig represents upstream data provider configuration
type ProvidersConfig struct {
	NBAStatsBaseURL string  `mapstructure:"nba_stats_base_url" validate:"required,url"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	Season          string  `mapstructure:"season" validate:"required,season"`
	OddsAPIKey      string  `mapstructure:"odds_api_key"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ProviderTimeout returns the provider HTTP timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Providers.TimeoutSeconds) * time.Second
}

// CacheTTL returns the provider cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Providers.CacheTTLSeconds) * time.Second
}

// MetricsAddress returns the listen address for the metrics endpoint
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}
