package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sharp-props/internal/models"
	"github.com/yourusername/sharp-props/internal/provider"
)

// MockLogProvider is a mock implementation of PlayerLogProvider
type MockLogProvider struct {
	mock.Mock
}

func (m *MockLogProvider) PlayerProfile(ctx context.Context, playerID, season string) (*models.PlayerProfile, error) {
	args := m.Called(ctx, playerID, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerProfile), args.Error(1)
}

func testOptions() Options {
	return Options{
		RecentWindow:       5,
		ReliabilityMinutes: 100,
		Iterations:         2000,
		Seed:               42,
		Bankroll:           1000,
		KellyFraction:      0.5,
	}
}

func steadyProfile(games int, minutes, points float64) *models.PlayerProfile {
	observations := make([]models.GameObservation, 0, games)
	for i := 0; i < games; i++ {
		observations = append(observations, models.GameObservation{
			Date:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i*2),
			Minutes:  minutes,
			Stats:    map[models.StatCategory]float64{models.StatPoints: points},
			Opponent: "BOS",
		})
	}
	return &models.PlayerProfile{
		PlayerID: "203999",
		Name:     "Test Center",
		Team:     "DEN",
		Position: "C",
		Season:   "2025-26",
		Games:    observations,
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	static := provider.NewStaticProvider()
	static.Profiles["203999"] = steadyProfile(10, 34, 27)
	static.Matchups["DEN"] = provider.Matchup{Opponent: "BOS", Home: true}
	static.Stats = &provider.LeagueStats{
		Teams: map[string]provider.TeamRates{
			"DEN": {Pace: 98, DefensiveRating: 112},
			"BOS": {Pace: 100, DefensiveRating: 116},
		},
		LeaguePace:            99,
		LeagueDefensiveRating: 114,
	}

	eng, err := New(static.Providers(), testOptions(), quietLogger())
	require.NoError(t, err)

	analysis, err := eng.Analyze(context.Background(), Query{
		PlayerID: "203999",
		Season:   "2025-26",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 22.5, AmericanOdds: -110},
	})
	require.NoError(t, err)

	assert.Equal(t, "Test Center", analysis.Player)
	assert.Greater(t, analysis.Projection.Lambda, 0.0)
	assert.Equal(t, 1.0, analysis.Projection.ReliabilityFactor)
	assert.True(t, analysis.Context.Home)
	assert.Greater(t, analysis.Context.DefenseMultiplier, 1.0)
	assert.GreaterOrEqual(t, analysis.Analytic, 0.0)
	assert.LessOrEqual(t, analysis.Analytic, 1.0)
	assert.InDelta(t, analysis.Analytic, analysis.Simulation.HitFrequency[22.5], 0.05)
	assert.Equal(t, 2000, analysis.Simulation.Iterations)
}

func TestAnalyzeReliabilityHalvesThinSample(t *testing.T) {
	// Identical per-minute production, but one profile has 50 observed
	// minutes against a 100-minute threshold and the other 200.
	thin := provider.NewStaticProvider()
	thin.Profiles["1"] = steadyProfile(2, 25, 20)
	full := provider.NewStaticProvider()
	full.Profiles["1"] = steadyProfile(8, 25, 20)

	opts := testOptions()
	query := Query{
		PlayerID: "1",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 15.5, AmericanOdds: -110},
	}

	thinEngine, err := New(thin.Providers(), opts, quietLogger())
	require.NoError(t, err)
	fullEngine, err := New(full.Providers(), opts, quietLogger())
	require.NoError(t, err)

	thinAnalysis, err := thinEngine.Analyze(context.Background(), query)
	require.NoError(t, err)
	fullAnalysis, err := fullEngine.Analyze(context.Background(), query)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, thinAnalysis.Projection.ReliabilityFactor, 1e-9)
	assert.InDelta(t, 1.0, fullAnalysis.Projection.ReliabilityFactor, 1e-9)
	assert.InDelta(t, fullAnalysis.Projection.Lambda/2, thinAnalysis.Projection.Lambda, 1e-9)
}

func TestAnalyzeContextGapsDegradeToNeutral(t *testing.T) {
	// Only the log provider can answer; every situational collaborator is
	// missing. The projection must still compute with neutral context.
	static := provider.NewStaticProvider()
	static.Profiles["1"] = steadyProfile(8, 30, 22)

	eng, err := New(provider.Providers{Logs: static}, testOptions(), quietLogger())
	require.NoError(t, err)

	analysis, err := eng.Analyze(context.Background(), Query{
		PlayerID: "1",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 20.5, AmericanOdds: -110},
	})
	require.NoError(t, err)
	assert.Greater(t, analysis.Projection.Lambda, 0.0)
	assert.False(t, analysis.Context.Home)
	assert.Equal(t, 1.0, analysis.Context.PaceMultiplier)
	assert.Equal(t, 1.0, analysis.Context.RefereeMultiplier)
}

func TestAnalyzeUsageBoostFromInjuryReport(t *testing.T) {
	static := provider.NewStaticProvider()
	static.Profiles["1"] = steadyProfile(8, 30, 22)
	static.Injuries["Star Teammate"] = true

	eng, err := New(static.Providers(), testOptions(), quietLogger())
	require.NoError(t, err)

	boosted, err := eng.Analyze(context.Background(), Query{
		PlayerID:     "1",
		Category:     models.StatPoints,
		Line:         models.BettingLine{Threshold: 20.5, AmericanOdds: -110},
		KeyTeammates: []string{"Star Teammate"},
	})
	require.NoError(t, err)
	assert.True(t, boosted.Context.TeammateOut)

	baseline, err := eng.Analyze(context.Background(), Query{
		PlayerID: "1",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 20.5, AmericanOdds: -110},
	})
	require.NoError(t, err)
	assert.Greater(t, boosted.Projection.Lambda, baseline.Projection.Lambda)
}

func TestAnalyzeRefereeBiasApplied(t *testing.T) {
	static := provider.NewStaticProvider()
	static.Profiles["1"] = steadyProfile(8, 30, 22)
	static.Matchups["DEN"] = provider.Matchup{Opponent: "BOS", Home: true}
	static.Officials["DEN"] = "S. Foster"

	opts := testOptions()
	opts.RefereeBias = map[string]float64{"S. Foster": 1.06}

	eng, err := New(static.Providers(), opts, quietLogger())
	require.NoError(t, err)

	analysis, err := eng.Analyze(context.Background(), Query{
		PlayerID: "1",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 20.5, AmericanOdds: -110},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.06, analysis.Context.RefereeMultiplier, 1e-9)
}

func TestAnalyzePositionDefenseLookup(t *testing.T) {
	static := provider.NewStaticProvider()
	static.Profiles["1"] = steadyProfile(8, 30, 22)
	static.Matchups["DEN"] = provider.Matchup{Opponent: "BOS", Home: false}

	opts := testOptions()
	opts.PositionDefense = map[string]float64{"C:BOS": 0.91}

	eng, err := New(static.Providers(), opts, quietLogger())
	require.NoError(t, err)

	analysis, err := eng.Analyze(context.Background(), Query{
		PlayerID: "1",
		Team:     "DEN",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 20.5, AmericanOdds: -110},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.91, analysis.Context.PositionDefenseMultiplier, 1e-9)
}

func TestAnalyzeInsufficientData(t *testing.T) {
	static := provider.NewStaticProvider()

	eng, err := New(static.Providers(), testOptions(), quietLogger())
	require.NoError(t, err)

	_, err = eng.Analyze(context.Background(), Query{
		PlayerID: "missing",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 20.5, AmericanOdds: -110},
	})
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestAnalyzeInvalidCategory(t *testing.T) {
	static := provider.NewStaticProvider()
	static.Profiles["1"] = steadyProfile(8, 30, 22)

	eng, err := New(static.Providers(), testOptions(), quietLogger())
	require.NoError(t, err)

	_, err = eng.Analyze(context.Background(), Query{
		PlayerID: "1",
		Category: models.StatCategory("DUNKS"),
		Line:     models.BettingLine{Threshold: 2.5, AmericanOdds: -110},
	})
	assert.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestAnalyzeProviderErrorPropagates(t *testing.T) {
	logs := &MockLogProvider{}
	logs.On("PlayerProfile", mock.Anything, "203999", "2025-26").
		Return(nil, errors.New("upstream unavailable"))

	eng, err := New(provider.Providers{Logs: logs}, testOptions(), quietLogger())
	require.NoError(t, err)

	_, err = eng.Analyze(context.Background(), Query{
		PlayerID: "203999",
		Season:   "2025-26",
		Category: models.StatPoints,
		Line:     models.BettingLine{Threshold: 20.5, AmericanOdds: -110},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
	logs.AssertExpectations(t)
}

func TestNewRequiresLogProvider(t *testing.T) {
	_, err := New(provider.Providers{}, testOptions(), quietLogger())
	assert.Error(t, err)
}
