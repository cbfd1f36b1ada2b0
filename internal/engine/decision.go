package engine

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharp-props/internal/models"
)

// DecisionEngine converts a model probability plus a market price into a
// sizing recommendation using fractional Kelly
type DecisionEngine struct {
	Bankroll      float64
	KellyFraction float64
	logger        *logrus.Logger
}

// NewDecisionEngine creates a decision engine. KellyFraction must be in
// (0, 1]; values outside the range are clamped.
func NewDecisionEngine(bankroll, kellyFraction float64, logger *logrus.Logger) *DecisionEngine {
	if logger == nil {
		logger = logrus.New()
	}
	if kellyFraction > 1 {
		kellyFraction = 1
	}
	if kellyFraction < 0 {
		kellyFraction = 0
	}
	return &DecisionEngine{Bankroll: bankroll, KellyFraction: kellyFraction, logger: logger}
}

// Decide computes the implied probability, edge and recommended stake for a
// model probability against an American price. A non-positive edge forces
// the stake to zero regardless of the Kelly arithmetic; noise-driven false
// positives never produce a bet.
func (d *DecisionEngine) Decide(winProbability float64, americanOdds int) (models.Decision, error) {
	if americanOdds == 0 {
		return models.Decision{}, models.ErrMalformedOdds
	}

	implied := AmericanToImplied(americanOdds)
	decimalOdds := AmericanToDecimal(americanOdds)
	edge := winProbability - implied

	kellyFull := kellyFraction(winProbability, decimalOdds)
	stake := kellyFull * d.KellyFraction * d.Bankroll
	if stake < 0 {
		stake = 0
	}
	if edge <= 0 {
		stake = 0
	}

	side := models.BetSideNone
	if stake > 0 {
		side = models.BetSideOver
	}

	decision := models.Decision{
		WinProbability:     winProbability,
		ImpliedProbability: implied,
		Edge:               edge,
		RecommendedStake:   stake,
		Side:               side,
	}

	d.logger.WithFields(logrus.Fields{
		"win_probability":     winProbability,
		"implied_probability": implied,
		"edge":                edge,
		"kelly_full":          kellyFull,
		"kelly_fraction":      d.KellyFraction,
		"stake":               stake,
	}).Debug("Decision computed")

	return decision, nil
}

// AmericanToImplied converts an American price to its break-even
// win probability
func AmericanToImplied(odds int) float64 {
	if odds > 0 {
		return 100.0 / (float64(odds) + 100.0)
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100.0)
}

// AmericanToDecimal converts an American price to decimal odds
func AmericanToDecimal(odds int) float64 {
	if odds > 0 {
		return float64(odds)/100.0 + 1.0
	}
	return 100.0/math.Abs(float64(odds)) + 1.0
}

// kellyFraction computes the full Kelly bankroll fraction:
// f = (b*p - q) / b with b = decimal odds - 1, clamped at zero
func kellyFraction(p, decimalOdds float64) float64 {
	b := decimalOdds - 1.0
	if b <= 0 {
		return 0
	}
	q := 1.0 - p
	f := (b*p - q) / b
	if f < 0 {
		return 0
	}
	return f
}
