// Package provider implements the upstream data collaborators the engine
// consumes: player game logs, schedules, team pace and defense tables,
// injury reports and referee assignments.
package provider

import (
	"context"

	"github.com/yourusername/sharp-props/internal/models"
)

// Matchup describes a team's upcoming game
type Matchup struct {
	Opponent   string `json:"opponent"`
	Home       bool   `json:"home"`
	BackToBack bool   `json:"back_to_back"`
}

// TeamRates holds a single team's tempo and defensive strength
type TeamRates struct {
	Pace            float64 `json:"pace"`
	DefensiveRating float64 `json:"defensive_rating"`
}

// LeagueStats holds per-team rates plus the league averages used to
// normalize them
type LeagueStats struct {
	Teams                 map[string]TeamRates `json:"teams"`
	LeaguePace            float64              `json:"league_average_pace"`
	LeagueDefensiveRating float64              `json:"league_average_defensive_rating"`
}

// UnknownOfficial is returned when no referee has been assigned yet
const UnknownOfficial = "Unknown"

// PlayerLogProvider resolves a player's profile with ordered (recent-first)
// game observations for a season
type PlayerLogProvider interface {
	PlayerProfile(ctx context.Context, playerID, season string) (*models.PlayerProfile, error)
}

// ScheduleProvider resolves a team's next matchup on or after a date
type ScheduleProvider interface {
	NextMatchup(ctx context.Context, team, date string) (Matchup, error)
}

// TeamStatsProvider resolves the current pace and defense table
type TeamStatsProvider interface {
	LeagueStats(ctx context.Context) (*LeagueStats, error)
}

// InjuryListProvider resolves the set of players currently ruled out
type InjuryListProvider interface {
	RuledOut(ctx context.Context) (map[string]bool, error)
}

// RefereeAssignmentProvider resolves the assigned official for a game,
// returning UnknownOfficial when the assignment has not been published
type RefereeAssignmentProvider interface {
	AssignedOfficial(ctx context.Context, team, date string) (string, error)
}

// Providers bundles the collaborator set injected into the engine
type Providers struct {
	Logs     PlayerLogProvider
	Schedule ScheduleProvider
	Stats    TeamStatsProvider
	Injuries InjuryListProvider
	Referees RefereeAssignmentProvider
}
