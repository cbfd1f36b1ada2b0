package engine

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharp-props/internal/models"
)

// Multiplier bounds. Each factor is clamped before composition so that
// compounding seven signals cannot diverge.
const (
	MultiplierFloor   = 0.7
	MultiplierCeiling = 1.3
)

// Coefficients centralizes the fixed situational multipliers so each can be
// unit-tested and overridden independently
type Coefficients struct {
	HomeBoost      float64 `json:"home_boost"`
	AwayPenalty    float64 `json:"away_penalty"`
	FatiguePenalty float64 `json:"fatigue_penalty"`
	UsageBoost     float64 `json:"usage_boost"`
}

// DefaultCoefficients returns the standard coefficient table
func DefaultCoefficients() Coefficients {
	return Coefficients{
		HomeBoost:      1.03,
		AwayPenalty:    0.97,
		FatiguePenalty: 0.95,
		UsageBoost:     1.12,
	}
}

// ContextPipeline composes independent situational signals into a single
// scalar via plain multiplication. Independence between factors is an
// explicit assumption, not a fitted model.
type ContextPipeline struct {
	coefficients Coefficients
	logger       *logrus.Logger
}

// NewContextPipeline creates a pipeline with the given coefficient table
func NewContextPipeline(coefficients Coefficients, logger *logrus.Logger) *ContextPipeline {
	if logger == nil {
		logger = logrus.New()
	}
	return &ContextPipeline{coefficients: coefficients, logger: logger}
}

// Composite multiplies the clamped factors together. Factor order does not
// affect the result.
func (p *ContextPipeline) Composite(factors models.ContextFactors) float64 {
	homeAway := p.coefficients.AwayPenalty
	if factors.Home {
		homeAway = p.coefficients.HomeBoost
	}
	fatigue := 1.0
	if factors.BackToBack {
		fatigue = p.coefficients.FatiguePenalty
	}
	usage := 1.0
	if factors.TeammateOut {
		usage = p.coefficients.UsageBoost
	}

	composite := clampMultiplier(neutralIfZero(factors.PaceMultiplier)) *
		clampMultiplier(neutralIfZero(factors.DefenseMultiplier)) *
		clampMultiplier(neutralIfZero(factors.PositionDefenseMultiplier)) *
		clampMultiplier(homeAway) *
		clampMultiplier(fatigue) *
		clampMultiplier(usage) *
		clampMultiplier(neutralIfZero(factors.RefereeMultiplier))

	p.logger.WithFields(logrus.Fields{
		"pace":      factors.PaceMultiplier,
		"defense":   factors.DefenseMultiplier,
		"dvp":       factors.PositionDefenseMultiplier,
		"home":      factors.Home,
		"b2b":       factors.BackToBack,
		"usage":     factors.TeammateOut,
		"referee":   factors.RefereeMultiplier,
		"composite": composite,
	}).Debug("Context factors composed")

	return composite
}

// PaceMultiplier derives the tempo factor from team, opponent and league pace
func PaceMultiplier(teamPace, opponentPace, leaguePace float64) float64 {
	if teamPace <= 0 || opponentPace <= 0 || leaguePace <= 0 {
		return 1.0
	}
	return ((teamPace + opponentPace) / 2.0) / leaguePace
}

// DefenseMultiplier derives the opponent defense factor. A weaker defense
// (higher rating) pushes the multiplier above 1.
func DefenseMultiplier(opponentRating, leagueRating float64) float64 {
	if opponentRating <= 0 || leagueRating <= 0 {
		return 1.0
	}
	return opponentRating / leagueRating
}

func clampMultiplier(m float64) float64 {
	if m < MultiplierFloor {
		return MultiplierFloor
	}
	if m > MultiplierCeiling {
		return MultiplierCeiling
	}
	return m
}

// Missing upstream signals arrive as zero values; treat them as neutral.
func neutralIfZero(m float64) float64 {
	if m <= 0 {
		return 1.0
	}
	return m
}
