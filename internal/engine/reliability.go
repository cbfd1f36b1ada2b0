package engine

// DefaultReliabilityMinutes is the minutes threshold below which projections
// are damped for small sample size
const DefaultReliabilityMinutes = 100.0

// ReliabilityFactor returns the sample-size dampener for a profile with the
// given total observed minutes. Samples at or above the threshold are fully
// trusted (factor 1.0); thinner samples are discounted linearly. The factor
// is applied once, multiplicatively, to the final lambda.
func ReliabilityFactor(totalMinutes, thresholdMinutes float64) float64 {
	if thresholdMinutes <= 0 {
		thresholdMinutes = DefaultReliabilityMinutes
	}
	if totalMinutes <= 0 {
		return 0
	}
	factor := totalMinutes / thresholdMinutes
	if factor > 1.0 {
		return 1.0
	}
	return factor
}
