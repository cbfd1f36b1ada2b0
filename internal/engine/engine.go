package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharp-props/internal/metrics"
	"github.com/yourusername/sharp-props/internal/models"
	"github.com/yourusername/sharp-props/internal/provider"
)

// Options configures the engine pipeline
type Options struct {
	RecentWindow       int
	ReliabilityMinutes float64
	Coefficients       Coefficients
	Overdispersed      bool
	Volatility         float64
	Iterations         int
	Seed               int64
	Bankroll           float64
	KellyFraction      float64
	// PositionDefense maps "POSITION:OPPONENT" to a DvP multiplier
	PositionDefense map[string]float64
	// RefereeBias maps an official's name to a historical bias coefficient
	RefereeBias map[string]float64
}

// Query identifies one projection request
type Query struct {
	PlayerID     string
	Season       string
	Team         string
	GameDate     string
	Category     models.StatCategory
	Line         models.BettingLine
	KeyTeammates []string
}

// Analysis is the full output of one query: the projection, the analytic and
// simulated probabilities, and the sized decision. The raw outcome sequence
// is retained for downstream charting.
type Analysis struct {
	Player     string                `json:"player"`
	Category   models.StatCategory   `json:"category"`
	Projection models.Projection     `json:"projection"`
	Analytic   float64               `json:"analytic_probability"`
	Simulation SimulationResult      `json:"simulation"`
	Decision   models.Decision       `json:"decision"`
	Context    models.ContextFactors `json:"context"`
}

// Engine runs the projection and decision pipeline with injected
// collaborators. It holds no mutable state across calls; every query builds
// a fresh profile and context and discards intermediates once the decision
// is produced.
type Engine struct {
	providers    provider.Providers
	rates        *RateEstimator
	pipeline     *ContextPipeline
	distribution *DistributionModel
	decisions    *DecisionEngine
	opts         Options
	logger       *logrus.Logger
}

// New creates an engine from collaborator providers and options
func New(providers provider.Providers, opts Options, logger *logrus.Logger) (*Engine, error) {
	if providers.Logs == nil {
		return nil, fmt.Errorf("player log provider is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	if opts.ReliabilityMinutes <= 0 {
		opts.ReliabilityMinutes = DefaultReliabilityMinutes
	}
	if opts.Coefficients == (Coefficients{}) {
		opts.Coefficients = DefaultCoefficients()
	}

	return &Engine{
		providers:    providers,
		rates:        NewRateEstimator(opts.RecentWindow),
		pipeline:     NewContextPipeline(opts.Coefficients, logger),
		distribution: NewDistributionModel(opts.Overdispersed, opts.Volatility),
		decisions:    NewDecisionEngine(opts.Bankroll, opts.KellyFraction, logger),
		opts:         opts,
		logger:       logger,
	}, nil
}

// Analyze executes the full pipeline for one query
func (e *Engine) Analyze(ctx context.Context, query Query) (*Analysis, error) {
	if !query.Category.IsValid() {
		return nil, models.ErrInvalidCategory
	}

	profile, err := e.providers.Logs.PlayerProfile(ctx, query.PlayerID, query.Season)
	if err != nil {
		return nil, fmt.Errorf("failed to load player profile: %w", err)
	}
	if profile == nil || len(profile.Games) == 0 {
		return nil, models.ErrInsufficientData
	}

	factors := e.resolveContext(ctx, profile, query)

	projection, err := e.Project(profile, factors, query.Category)
	if err != nil {
		return nil, err
	}

	analytic, err := e.distribution.ProbabilityOver(projection.Lambda, query.Line.Threshold)
	if err != nil {
		return nil, err
	}

	timer := metrics.TimeSimulation()
	simulation, err := RunSimulation(ctx, projection.Lambda, LineThresholds(query.Line.Threshold), SimulationConfig{
		Iterations:    e.opts.Iterations,
		Seed:          e.opts.Seed,
		Overdispersed: e.opts.Overdispersed,
		Volatility:    e.opts.Volatility,
	})
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}

	decision, err := e.decisions.Decide(analytic, query.Line.AmericanOdds)
	if err != nil {
		return nil, err
	}

	metrics.ProjectionsComputedTotal.Inc()
	metrics.DecisionsTotal.WithLabelValues(string(decision.Side)).Inc()

	e.logger.WithFields(logrus.Fields{
		"player":   profile.Name,
		"category": query.Category,
		"lambda":   projection.Lambda,
		"analytic": analytic,
		"mc_mean":  simulation.Mean,
		"edge":     decision.Edge,
		"stake":    decision.RecommendedStake,
	}).Info("Analysis complete")

	return &Analysis{
		Player:     profile.Name,
		Category:   query.Category,
		Projection: projection,
		Analytic:   analytic,
		Simulation: simulation,
		Decision:   decision,
		Context:    factors,
	}, nil
}

// Project computes the lambda for a profile under the given context:
// posterior per-minute rate, scaled by projected minutes, context composite
// and the sample-size reliability factor.
func (e *Engine) Project(profile *models.PlayerProfile, factors models.ContextFactors, cat models.StatCategory) (models.Projection, error) {
	posterior, err := e.rates.PosteriorRate(profile, cat)
	if err != nil {
		return models.Projection{}, err
	}

	minutes := profile.AverageMinutes()
	composite := e.pipeline.Composite(factors)
	reliability := ReliabilityFactor(profile.TotalMinutes(), e.opts.ReliabilityMinutes)

	lambda := posterior * minutes * composite * reliability
	if lambda < 0 {
		lambda = 0
	}

	return models.Projection{
		Lambda:            lambda,
		Category:          cat,
		ReliabilityFactor: reliability,
		PosteriorRate:     posterior,
		CompositeContext:  composite,
		ProjectedMinutes:  minutes,
	}, nil
}

// resolveContext builds context factors from whatever collaborators can
// answer. Any single missing signal degrades to its neutral default; total
// data absence is handled upstream, but a context gap never blocks an
// otherwise-computable projection.
func (e *Engine) resolveContext(ctx context.Context, profile *models.PlayerProfile, query Query) models.ContextFactors {
	factors := models.NeutralContext()
	team := query.Team
	if team == "" {
		team = profile.Team
	}

	matchup, haveMatchup := e.resolveMatchup(ctx, team, query.GameDate)
	if haveMatchup {
		factors.Home = matchup.Home
		factors.BackToBack = matchup.BackToBack
	}

	if e.providers.Stats != nil {
		stats, err := e.providers.Stats.LeagueStats(ctx)
		if err != nil {
			e.logger.WithError(err).Debug("Team stats unavailable, using neutral pace and defense")
		} else if haveMatchup {
			teamRates := stats.Teams[team]
			oppRates := stats.Teams[matchup.Opponent]
			factors.PaceMultiplier = PaceMultiplier(teamRates.Pace, oppRates.Pace, stats.LeaguePace)
			factors.DefenseMultiplier = DefenseMultiplier(oppRates.DefensiveRating, stats.LeagueDefensiveRating)
		}
	}

	if haveMatchup && len(e.opts.PositionDefense) > 0 {
		key := dvpKey(profile.Position, matchup.Opponent)
		if mult, ok := e.opts.PositionDefense[key]; ok {
			factors.PositionDefenseMultiplier = mult
		}
	}

	if e.providers.Injuries != nil && len(query.KeyTeammates) > 0 {
		ruledOut, err := e.providers.Injuries.RuledOut(ctx)
		if err != nil {
			e.logger.WithError(err).Debug("Injury list unavailable, skipping usage boost")
		} else {
			for _, teammate := range query.KeyTeammates {
				if ruledOut[teammate] {
					factors.TeammateOut = true
					break
				}
			}
		}
	}

	if e.providers.Referees != nil {
		official, err := e.providers.Referees.AssignedOfficial(ctx, team, query.GameDate)
		if err != nil {
			e.logger.WithError(err).Debug("Referee assignment unavailable, using neutral bias")
		} else if official != provider.UnknownOfficial {
			if bias, ok := e.opts.RefereeBias[official]; ok {
				factors.RefereeMultiplier = bias
			}
		}
	}

	return factors
}

func (e *Engine) resolveMatchup(ctx context.Context, team, date string) (provider.Matchup, bool) {
	if e.providers.Schedule == nil {
		return provider.Matchup{}, false
	}
	matchup, err := e.providers.Schedule.NextMatchup(ctx, team, date)
	if err != nil {
		e.logger.WithError(err).Debug("Schedule unavailable, using neutral matchup context")
		return provider.Matchup{}, false
	}
	return matchup, true
}

func dvpKey(position, opponent string) string {
	return strings.ToUpper(position) + ":" + strings.ToUpper(opponent)
}
