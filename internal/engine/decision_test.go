package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sharp-props/internal/models"
)

func TestAmericanToImplied(t *testing.T) {
	assert.InDelta(t, 0.5238, AmericanToImplied(-110), 1e-4)
	assert.InDelta(t, 0.4, AmericanToImplied(150), 1e-9)
	assert.InDelta(t, 0.5, AmericanToImplied(100), 1e-9)
	assert.InDelta(t, 0.6667, AmericanToImplied(-200), 1e-4)
}

func TestAmericanToDecimal(t *testing.T) {
	assert.InDelta(t, 1.909, AmericanToDecimal(-110), 1e-3)
	assert.InDelta(t, 2.5, AmericanToDecimal(150), 1e-9)
	assert.InDelta(t, 2.0, AmericanToDecimal(100), 1e-9)
}

func TestDecideWorkedExample(t *testing.T) {
	// p=0.60 against -110 with half Kelly on a 1000 bankroll:
	// b = 0.9091, full Kelly = (0.9091*0.6 - 0.4)/0.9091 = 0.16,
	// stake = 0.16 * 0.5 * 1000 = 80.
	eng := NewDecisionEngine(1000, 0.5, quietLogger())

	decision, err := eng.Decide(0.60, -110)
	require.NoError(t, err)

	assert.InDelta(t, 0.5238, decision.ImpliedProbability, 1e-4)
	assert.InDelta(t, 0.0762, decision.Edge, 1e-4)
	assert.InDelta(t, 80.0, decision.RecommendedStake, 0.5)
	assert.Equal(t, models.BetSideOver, decision.Side)
	assert.Equal(t, "80.00", decision.StakeAmount().StringFixed(2))
}

func TestDecideNegativeEdgeForcesZeroStake(t *testing.T) {
	eng := NewDecisionEngine(1000, 0.5, quietLogger())

	// Model probability below the implied break-even never produces a bet.
	decision, err := eng.Decide(0.50, -110)
	require.NoError(t, err)
	assert.Less(t, decision.Edge, 0.0)
	assert.Equal(t, 0.0, decision.RecommendedStake)
	assert.Equal(t, models.BetSideNone, decision.Side)
}

func TestDecideZeroEdgeForcesZeroStake(t *testing.T) {
	eng := NewDecisionEngine(1000, 0.5, quietLogger())

	decision, err := eng.Decide(AmericanToImplied(-110), -110)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, decision.Edge, 1e-12)
	assert.Equal(t, 0.0, decision.RecommendedStake)
}

func TestDecideZeroKellyFractionForcesZeroStake(t *testing.T) {
	eng := NewDecisionEngine(1000, 0, quietLogger())

	decision, err := eng.Decide(0.70, -110)
	require.NoError(t, err)
	assert.Greater(t, decision.Edge, 0.0)
	assert.Equal(t, 0.0, decision.RecommendedStake)
}

func TestDecideMalformedOdds(t *testing.T) {
	eng := NewDecisionEngine(1000, 0.5, quietLogger())

	_, err := eng.Decide(0.60, 0)
	assert.ErrorIs(t, err, models.ErrMalformedOdds)
}

func TestDecideStakeBoundedByKellyFraction(t *testing.T) {
	eng := NewDecisionEngine(1000, 0.25, quietLogger())

	// Even a near-certain model probability cannot stake past
	// bankroll * kellyFraction.
	decision, err := eng.Decide(0.99, 150)
	require.NoError(t, err)
	assert.LessOrEqual(t, decision.RecommendedStake, 1000*0.25)
	assert.Greater(t, decision.RecommendedStake, 0.0)
}

func TestDecidePositiveOddsExample(t *testing.T) {
	eng := NewDecisionEngine(500, 1.0, quietLogger())

	decision, err := eng.Decide(0.5, 150)
	require.NoError(t, err)
	// b = 1.5, f = (1.5*0.5 - 0.5)/1.5 = 1/6
	assert.InDelta(t, 0.1, decision.Edge, 1e-9)
	assert.InDelta(t, 500.0/6.0, decision.RecommendedStake, 1e-6)
}
