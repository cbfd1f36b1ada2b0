package models

import (
	"github.com/shopspring/decimal"
)

// Projection is the engine's single computed output per query,
// immutable once produced
type Projection struct {
	Lambda            float64      `json:"lambda"`
	Category          StatCategory `json:"category"`
	ReliabilityFactor float64      `json:"reliability_factor"`
	PosteriorRate     float64      `json:"posterior_rate"`
	CompositeContext  float64      `json:"composite_context"`
	ProjectedMinutes  float64      `json:"projected_minutes"`
}

// BettingLine is the sportsbook price supplied by the caller
type BettingLine struct {
	Threshold    float64 `json:"threshold"`
	AmericanOdds int     `json:"american_odds"`
}

// BetSide represents the recommended side of an over/under line
type BetSide string

const (
	BetSideOver BetSide = "OVER"
	BetSideNone BetSide = "NONE"
)

// Decision is the final derived betting recommendation
type Decision struct {
	WinProbability     float64 `json:"win_probability"`
	ImpliedProbability float64 `json:"implied_probability"`
	Edge               float64 `json:"edge"`
	RecommendedStake   float64 `json:"recommended_stake"`
	Side               BetSide `json:"side"`
}

// StakeAmount returns the recommended stake rounded to cents
func (d Decision) StakeAmount() decimal.Decimal {
	return decimal.NewFromFloat(d.RecommendedStake).Round(2)
}

// HasEdge reports whether the model found positive expected value at the line
func (d Decision) HasEdge() bool {
	return d.Edge > 0 && d.RecommendedStake > 0
}
