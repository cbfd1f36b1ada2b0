package engine

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/yourusername/sharp-props/internal/models"
)

// SimulationConfig configures a Monte Carlo run
type SimulationConfig struct {
	Iterations    int
	Seed          int64
	Overdispersed bool
	Volatility    float64
}

// SimulationResult represents simulated outcomes and summary statistics
type SimulationResult struct {
	Iterations    int                 `json:"iterations"`
	Lambda        float64             `json:"lambda"`
	Mean          float64             `json:"mean"`
	StdDev        float64             `json:"std_dev"`
	P10           float64             `json:"p10"`
	P50           float64             `json:"p50"`
	P90           float64             `json:"p90"`
	HitFrequency  map[float64]float64 `json:"hit_frequency"`
	Outcomes      []float64           `json:"outcomes"`
}

// RunSimulation draws simulated stat outcomes from the Poisson model (or the
// Gamma-Poisson mixture) and reports hit frequencies at the requested
// thresholds. A non-zero seed makes the run fully deterministic; a zero seed
// draws from system entropy.
func RunSimulation(ctx context.Context, lambda float64, thresholds []float64, cfg SimulationConfig) (SimulationResult, error) {
	if lambda <= 0 {
		return SimulationResult{}, models.ErrInvalidLambda
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 10000
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	volatility := cfg.Volatility
	if volatility <= 0 {
		volatility = DefaultVolatility
	}

	rng := rand.New(rand.NewSource(seed))
	outcomes := make([]float64, cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return SimulationResult{}, err
			}
		}
		rate := lambda
		if cfg.Overdispersed {
			rate = sampleGamma(lambda/volatility, volatility, rng)
			if rate <= 0 {
				rate = lambda
			}
		}
		outcomes[i] = float64(samplePoisson(rate, rng))
	}

	m, std := meanStd(outcomes)
	result := SimulationResult{
		Iterations:   cfg.Iterations,
		Lambda:       lambda,
		Mean:         m,
		StdDev:       std,
		P10:          percentile(outcomes, 0.10),
		P50:          percentile(outcomes, 0.50),
		P90:          percentile(outcomes, 0.90),
		HitFrequency: make(map[float64]float64, len(thresholds)),
		Outcomes:     outcomes,
	}
	for _, threshold := range thresholds {
		result.HitFrequency[threshold] = hitFrequency(outcomes, threshold)
	}
	return result, nil
}

// LineThresholds returns the standard probe thresholds around a line
func LineThresholds(line float64) []float64 {
	return []float64{line - 1, line, line + 1}
}

// samplePoisson draws a Poisson variate via Knuth's product method. The
// lambdas seen here (single-game stat projections) are small enough that the
// exp(-lambda) factor stays comfortably above underflow.
func samplePoisson(lambda float64, rng *rand.Rand) int {
	limit := math.Exp(-lambda)
	k := 0
	product := rng.Float64()
	for product > limit {
		k++
		product *= rng.Float64()
	}
	return k
}

// sampleGamma draws from Gamma(shape, scale) using the Marsaglia-Tsang
// squeeze method
func sampleGamma(shape, scale float64, rng *rand.Rand) float64 {
	if shape < 1.0 {
		return sampleGamma(shape+1.0, scale, rng) * math.Pow(rng.Float64(), 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

func hitFrequency(outcomes []float64, threshold float64) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	count := 0
	for _, v := range outcomes {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(outcomes))
}

func meanStd(values []float64) (float64, float64) {
	m, variance := meanVariance(values)
	return m, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
