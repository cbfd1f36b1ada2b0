package provider

import (
	"context"
	"fmt"

	"github.com/yourusername/sharp-props/internal/models"
)

// StaticProvider serves a fixed in-memory snapshot of every collaborator
// interface. The analyze CLI uses it for offline runs and tests use it as a
// deterministic fixture.
type StaticProvider struct {
	Profiles  map[string]*models.PlayerProfile
	Matchups  map[string]Matchup
	Stats     *LeagueStats
	Injuries  map[string]bool
	Officials map[string]string
}

// NewStaticProvider creates an empty static snapshot
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		Profiles:  make(map[string]*models.PlayerProfile),
		Matchups:  make(map[string]Matchup),
		Injuries:  make(map[string]bool),
		Officials: make(map[string]string),
	}
}

// Providers returns the snapshot wired as the full collaborator bundle
func (s *StaticProvider) Providers() Providers {
	return Providers{
		Logs:     s,
		Schedule: s,
		Stats:    s,
		Injuries: s,
		Referees: s,
	}
}

// PlayerProfile returns the stored profile for a player and season
func (s *StaticProvider) PlayerProfile(ctx context.Context, playerID, season string) (*models.PlayerProfile, error) {
	profile, ok := s.Profiles[playerID]
	if !ok {
		return nil, models.ErrInsufficientData
	}
	return profile, nil
}

// NextMatchup returns the stored matchup for a team
func (s *StaticProvider) NextMatchup(ctx context.Context, team, date string) (Matchup, error) {
	matchup, ok := s.Matchups[team]
	if !ok {
		return Matchup{}, fmt.Errorf("no scheduled game for team %s", team)
	}
	return matchup, nil
}

// LeagueStats returns the stored pace and defense table
func (s *StaticProvider) LeagueStats(ctx context.Context) (*LeagueStats, error) {
	if s.Stats == nil {
		return nil, fmt.Errorf("no team stats loaded")
	}
	return s.Stats, nil
}

// RuledOut returns the stored injury set
func (s *StaticProvider) RuledOut(ctx context.Context) (map[string]bool, error) {
	return s.Injuries, nil
}

// AssignedOfficial returns the stored official for a team's game, or
// UnknownOfficial when none has been published
func (s *StaticProvider) AssignedOfficial(ctx context.Context, team, date string) (string, error) {
	official, ok := s.Officials[team]
	if !ok {
		return UnknownOfficial, nil
	}
	return official, nil
}
