package engine

import (
	"math"

	"github.com/yourusername/sharp-props/internal/models"
)

// DistributionModel turns a lambda into probabilities over threshold
// outcomes. The pure Poisson form is the default; an overdispersed
// Gamma-Poisson mixture is available for bursty high-usage profiles whose
// empirical variance exceeds the Poisson assumption.
type DistributionModel struct {
	// Overdispersed selects the Gamma-Poisson mixture for simulation draws
	Overdispersed bool
	// Volatility controls mixture spread; the Gamma rate distribution has
	// shape lambda/volatility and scale volatility, keeping the mean at
	// lambda while inflating variance by (1 + volatility)
	Volatility float64
}

// DefaultVolatility is the mixture spread used when none is configured
const DefaultVolatility = 1.5

// NewDistributionModel constructs a model; volatility <= 0 falls back to the
// default when the overdispersed form is selected
func NewDistributionModel(overdispersed bool, volatility float64) *DistributionModel {
	if volatility <= 0 {
		volatility = DefaultVolatility
	}
	return &DistributionModel{Overdispersed: overdispersed, Volatility: volatility}
}

// ProbabilityOver computes P(X > line) analytically for the Poisson model.
// The half-integer offset makes ".5" sportsbook lines behave correctly:
// P(X > 22.5) = 1 - CDF(22, lambda).
func (m *DistributionModel) ProbabilityOver(lambda, line float64) (float64, error) {
	if lambda <= 0 {
		return 0, models.ErrInvalidLambda
	}
	k := int(math.Floor(line - 0.5))
	if k < 0 {
		return 1.0, nil
	}
	return 1.0 - PoissonCDF(k, lambda), nil
}

// PoissonCDF computes P(X <= k) for X ~ Poisson(lambda). Terms are
// evaluated in log space via Lgamma so large lambdas stay stable.
func PoissonCDF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += math.Exp(poissonLogPMF(i, lambda))
	}
	if sum > 1.0 {
		sum = 1.0
	}
	return sum
}

// PoissonPMF computes P(X = k) for X ~ Poisson(lambda)
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	return math.Exp(poissonLogPMF(k, lambda))
}

func poissonLogPMF(k int, lambda float64) float64 {
	lg, _ := math.Lgamma(float64(k) + 1)
	return float64(k)*math.Log(lambda) - lambda - lg
}

// GammaShapeScale returns the parameters of the mixing Gamma so that the
// sampled rate stays centered on lambda
func (m *DistributionModel) GammaShapeScale(lambda float64) (float64, float64) {
	return lambda / m.Volatility, m.Volatility
}
