// Package main provides the entry point for the prop analysis CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharp-props/internal/config"
	"github.com/yourusername/sharp-props/internal/engine"
	"github.com/yourusername/sharp-props/internal/health"
	"github.com/yourusername/sharp-props/internal/logger"
	"github.com/yourusername/sharp-props/internal/metrics"
	"github.com/yourusername/sharp-props/internal/models"
	"github.com/yourusername/sharp-props/internal/provider"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		playerID   = flag.String("player", "", "Player ID to analyze")
		season     = flag.String("season", "", "Season override (e.g. 2025-26)")
		category   = flag.String("category", "PTS", "Stat category: PTS, REB, AST, STL, BLK, FG3M")
		team       = flag.String("team", "", "Player's team abbreviation")
		opponent   = flag.String("opponent", "", "Opponent team abbreviation")
		home       = flag.Bool("home", false, "Game is at home")
		b2b        = flag.Bool("b2b", false, "Game is the second night of a back-to-back")
		teammates  = flag.String("teammates-out", "", "Comma-separated teammates reported out")
		referee    = flag.String("referee", "", "Assigned official, if published")
		line       = flag.Float64("line", 0, "Sportsbook line (e.g. 22.5)")
		odds       = flag.Int("odds", -110, "American odds for the over")
		gamelog    = flag.String("gamelog", "", "Path to a game log JSON fixture (skips the live API)")
		teamStats  = flag.String("team-stats", "", "Path to a pace/defense table JSON file")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath, log)
	log = logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()
	metrics.UpdateBankroll(cfg.Engine.Bankroll)

	if cfg.Metrics.Enabled {
		healthServer := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
			MetricsPath: cfg.Metrics.Path,
			Logger:      log,
		})
		if err := healthServer.Start(ctx); err != nil {
			log.WithError(err).Warn("Failed to start health and metrics server")
		} else {
			healthServer.SetReady(true)
			defer healthServer.Shutdown()
		}
	}

	if *playerID == "" {
		log.Fatal("A -player ID is required")
	}
	if *line <= 0 {
		log.Fatal("A positive -line is required")
	}
	querySeason := cfg.Providers.Season
	if *season != "" {
		querySeason = *season
	}

	providers := buildProviders(cfg, log, *playerID, *team, *opponent, *home, *b2b, *teammates, *referee, *gamelog, *teamStats)

	eng, err := engine.New(providers, engineOptions(cfg), log)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	query := engine.Query{
		PlayerID:     *playerID,
		Season:       querySeason,
		Team:         *team,
		Category:     models.StatCategory(strings.ToUpper(*category)),
		Line:         models.BettingLine{Threshold: *line, AmericanOdds: *odds},
		KeyTeammates: splitList(*teammates),
	}

	analysis, err := eng.Analyze(ctx, query)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	metrics.UpdateLastEdge(analysis.Decision.Edge)

	analysisLog := logger.NewAnalysisLogger(log)
	analysisLog.LogProjection(analysis.Player, string(analysis.Category),
		analysis.Projection.Lambda, analysis.Projection.PosteriorRate,
		analysis.Projection.CompositeContext, analysis.Projection.ReliabilityFactor)
	analysisLog.LogDecision(analysis.Player, string(analysis.Category), *line, *odds,
		analysis.Decision.WinProbability, analysis.Decision.ImpliedProbability,
		analysis.Decision.Edge, analysis.Decision.RecommendedStake)

	printAnalysis(analysis, *line, *odds)
}

func engineOptions(cfg *config.Config) engine.Options {
	coefficients := engine.DefaultCoefficients()
	if c := cfg.Engine.Coefficients; c != (config.CoefficientsConfig{}) {
		if c.HomeBoost > 0 {
			coefficients.HomeBoost = c.HomeBoost
		}
		if c.AwayPenalty > 0 {
			coefficients.AwayPenalty = c.AwayPenalty
		}
		if c.FatiguePenalty > 0 {
			coefficients.FatiguePenalty = c.FatiguePenalty
		}
		if c.UsageBoost > 0 {
			coefficients.UsageBoost = c.UsageBoost
		}
	}

	return engine.Options{
		RecentWindow:       cfg.Engine.RecentWindow,
		ReliabilityMinutes: cfg.Engine.ReliabilityMinutes,
		Coefficients:       coefficients,
		Overdispersed:      cfg.Engine.Overdispersed,
		Volatility:         cfg.Engine.Volatility,
		Iterations:         cfg.Engine.Iterations,
		Seed:               cfg.Engine.Seed,
		Bankroll:           cfg.Engine.Bankroll,
		KellyFraction:      cfg.Engine.KellyFraction,
		PositionDefense:    cfg.Engine.PositionDefense,
		RefereeBias:        cfg.Engine.RefereeBias,
	}
}

func buildProviders(cfg *config.Config, log *logrus.Logger, playerID, team, opponent string, home, b2b bool, teammates, referee, gamelogPath, teamStatsPath string) provider.Providers {
	situational := provider.NewStaticProvider()
	if opponent != "" {
		situational.Matchups[team] = provider.Matchup{Opponent: opponent, Home: home, BackToBack: b2b}
	}
	for _, name := range splitList(teammates) {
		situational.Injuries[name] = true
	}
	if referee != "" {
		situational.Officials[team] = referee
	}
	if teamStatsPath != "" {
		stats, err := loadLeagueStats(teamStatsPath)
		if err != nil {
			log.Fatalf("Failed to load team stats: %v", err)
		}
		situational.Stats = stats
	}

	providers := situational.Providers()
	if situational.Stats == nil {
		providers.Stats = nil
		logger.NewAnalysisLogger(log).LogProviderFallback("team_stats", "pace_and_defense", "no -team-stats file supplied")
	}

	if gamelogPath != "" {
		profile, err := loadProfile(gamelogPath)
		if err != nil {
			log.Fatalf("Failed to load game log fixture: %v", err)
		}
		situational.Profiles[playerID] = profile
		return providers
	}

	httpClient := provider.NewRateLimitedHTTPClient(provider.HTTPClientConfig{
		Timeout:           cfg.ProviderTimeout(),
		MaxRetries:        cfg.Providers.MaxRetries,
		RetryWaitMin:      provider.DefaultHTTPClientConfig().RetryWaitMin,
		RetryWaitMax:      provider.DefaultHTTPClientConfig().RetryWaitMax,
		RateLimit:         cfg.Providers.RateLimit,
		CircuitBreakerMax: provider.DefaultHTTPClientConfig().CircuitBreakerMax,
	}, log)

	live := provider.NewNBAStatsProvider(cfg.Providers.NBAStatsBaseURL, httpClient, log)
	providers.Logs = provider.NewCachedLogProvider(live, cfg.CacheTTL())
	return providers
}

func loadConfigWithSecrets(path string, log *logrus.Logger) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatal("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func loadProfile(path string) (*models.PlayerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profile := &models.PlayerProfile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func loadLeagueStats(path string) (*provider.LeagueStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stats := &provider.LeagueStats{}
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printAnalysis(analysis *engine.Analysis, line float64, odds int) {
	fmt.Printf("\n%s %s\n", analysis.Player, analysis.Category)
	fmt.Printf("  Projected (lambda):   %.2f\n", analysis.Projection.Lambda)
	fmt.Printf("  Reliability factor:   %.2f\n", analysis.Projection.ReliabilityFactor)
	fmt.Printf("  Context composite:    %.3f\n", analysis.Projection.CompositeContext)
	fmt.Printf("  Line %.1f @ %+d\n", line, odds)
	fmt.Printf("  P(over) analytic:     %.1f%%\n", analysis.Analytic*100)
	fmt.Printf("  P(over) simulated:    %.1f%%\n", analysis.Simulation.HitFrequency[line]*100)
	fmt.Printf("  Simulated p10/p50/p90: %.0f / %.0f / %.0f\n", analysis.Simulation.P10, analysis.Simulation.P50, analysis.Simulation.P90)
	fmt.Printf("  Implied probability:  %.1f%%\n", analysis.Decision.ImpliedProbability*100)
	fmt.Printf("  Edge:                 %+.1f%%\n", analysis.Decision.Edge*100)
	if analysis.Decision.HasEdge() {
		fmt.Printf("  Recommended stake:    $%s on the OVER\n\n", analysis.Decision.StakeAmount().StringFixed(2))
	} else {
		fmt.Printf("  Recommended stake:    no bet\n\n")
	}
}
