// Package engine implements the projection and decision pipeline: rate
// estimation, reliability damping, context composition, distribution
// modeling, Monte Carlo simulation and Kelly-based stake sizing.
package engine

import (
	"github.com/yourusername/sharp-props/internal/models"
)

const (
	// DefaultRecentWindow is the number of most recent games treated as
	// the evidence sample in the Bayesian blend
	DefaultRecentWindow = 5

	// varianceFloor prevents a zero-variance sample from collapsing the
	// precision-weighted blend
	varianceFloor = 0.01
)

// RateEstimator blends season-long and recent per-minute performance into a
// single posterior rate via precision weighting
type RateEstimator struct {
	RecentWindow int
}

// NewRateEstimator creates a rate estimator with the given evidence window.
// A window <= 0 falls back to the default.
func NewRateEstimator(recentWindow int) *RateEstimator {
	if recentWindow <= 0 {
		recentWindow = DefaultRecentWindow
	}
	return &RateEstimator{RecentWindow: recentWindow}
}

// PosteriorRate computes the posterior per-minute rate for a profile.
// The full sample acts as the prior and the last-k games as the evidence;
// each is weighted by inverse variance. Profiles with fewer than two games
// cannot support a variance estimate, so the plain mean is returned.
func (e *RateEstimator) PosteriorRate(profile *models.PlayerProfile, cat models.StatCategory) (float64, error) {
	seasonRates := profile.SeasonRates(cat)
	if len(seasonRates) == 0 {
		return 0, models.ErrInsufficientData
	}
	if len(seasonRates) < 2 {
		return mean(seasonRates), nil
	}

	recentRates := profile.RecentRates(cat, e.RecentWindow)

	priorMean, priorVar := meanVariance(seasonRates)
	evidenceMean, evidenceVar := meanVariance(recentRates)

	wPrior := 1.0 / flooredVariance(priorVar)
	wEvidence := 1.0 / flooredVariance(evidenceVar)

	posterior := (wPrior*priorMean + wEvidence*evidenceMean) / (wPrior + wEvidence)
	if posterior < 0 {
		posterior = 0
	}
	return posterior, nil
}

func flooredVariance(v float64) float64 {
	if v < varianceFloor {
		return varianceFloor
	}
	return v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanVariance(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values))
	return m, variance
}
