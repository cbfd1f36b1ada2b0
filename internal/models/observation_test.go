package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameObservationRate(t *testing.T) {
	game := GameObservation{
		Minutes: 30,
		Stats:   map[StatCategory]float64{StatPoints: 24, StatRebounds: 6},
	}
	assert.InDelta(t, 0.8, game.Rate(StatPoints), 1e-9)
	assert.InDelta(t, 0.2, game.Rate(StatRebounds), 1e-9)
	assert.Equal(t, 0.0, game.Rate(StatAssists))
}

func TestGameObservationRateZeroMinutes(t *testing.T) {
	game := GameObservation{Minutes: 0, Stats: map[StatCategory]float64{StatPoints: 10}}
	assert.Equal(t, 0.0, game.Rate(StatPoints))
}

func TestPlayerProfileAggregates(t *testing.T) {
	profile := &PlayerProfile{
		Games: []GameObservation{
			{Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Minutes: 36, Stats: map[StatCategory]float64{StatPoints: 30}},
			{Date: time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC), Minutes: 32, Stats: map[StatCategory]float64{StatPoints: 18}},
			{Date: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), Minutes: 28, Stats: map[StatCategory]float64{StatPoints: 21}},
		},
	}

	assert.InDelta(t, 96.0, profile.TotalMinutes(), 1e-9)
	assert.InDelta(t, 32.0, profile.AverageMinutes(), 1e-9)

	season := profile.SeasonRates(StatPoints)
	assert.Len(t, season, 3)
	assert.InDelta(t, 30.0/36.0, season[0], 1e-9)

	recent := profile.RecentRates(StatPoints, 2)
	assert.Len(t, recent, 2)

	// Window larger than the sample degrades to the full sample.
	assert.Len(t, profile.RecentRates(StatPoints, 10), 3)

	last, ok := profile.LastGameDate()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), last)
}

func TestPlayerProfileEmpty(t *testing.T) {
	profile := &PlayerProfile{}
	assert.Equal(t, 0.0, profile.TotalMinutes())
	assert.Equal(t, 0.0, profile.AverageMinutes())
	_, ok := profile.LastGameDate()
	assert.False(t, ok)
}

func TestStatCategoryIsValid(t *testing.T) {
	assert.True(t, StatPoints.IsValid())
	assert.True(t, StatThrees.IsValid())
	assert.False(t, StatCategory("DUNKS").IsValid())
	assert.False(t, StatCategory("").IsValid())
}

func TestNeutralContext(t *testing.T) {
	factors := NeutralContext()
	assert.Equal(t, 1.0, factors.PaceMultiplier)
	assert.Equal(t, 1.0, factors.DefenseMultiplier)
	assert.Equal(t, 1.0, factors.PositionDefenseMultiplier)
	assert.Equal(t, 1.0, factors.RefereeMultiplier)
	assert.False(t, factors.Home)
	assert.False(t, factors.BackToBack)
	assert.False(t, factors.TeammateOut)
}

func TestDecisionStakeAmount(t *testing.T) {
	decision := Decision{RecommendedStake: 80.5539, Edge: 0.07, Side: BetSideOver}
	assert.Equal(t, "80.55", decision.StakeAmount().StringFixed(2))
	assert.True(t, decision.HasEdge())

	flat := Decision{RecommendedStake: 0, Edge: -0.02, Side: BetSideNone}
	assert.False(t, flat.HasEdge())
}
