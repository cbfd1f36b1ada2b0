package models

import (
	"time"
)

// StatCategory identifies the statistical category being projected
type StatCategory string

const (
	StatPoints   StatCategory = "PTS"
	StatRebounds StatCategory = "REB"
	StatAssists  StatCategory = "AST"
	StatSteals   StatCategory = "STL"
	StatBlocks   StatCategory = "BLK"
	StatThrees   StatCategory = "FG3M"
)

// IsValid reports whether the category is a recognized stat category
func (c StatCategory) IsValid() bool {
	switch c {
	case StatPoints, StatRebounds, StatAssists, StatSteals, StatBlocks, StatThrees:
		return true
	default:
		return false
	}
}

// GameObservation represents a single played game for a player.
// Instances are immutable once created by the upstream provider.
type GameObservation struct {
	Date     time.Time                `json:"date"`
	Minutes  float64                  `json:"minutes"`
	Stats    map[StatCategory]float64 `json:"stats"`
	Opponent string                   `json:"opponent"`
	Home     bool                     `json:"home"`
}

// Stat returns the raw value recorded for a category (0 when absent)
func (g GameObservation) Stat(cat StatCategory) float64 {
	return g.Stats[cat]
}

// Rate returns the per-minute production for a category.
// Games with no recorded minutes contribute a zero rate.
func (g GameObservation) Rate(cat StatCategory) float64 {
	if g.Minutes <= 0 {
		return 0
	}
	return g.Stats[cat] / g.Minutes
}

// PlayerProfile is an ordered (recent-first) sequence of game observations
// for one player. Profiles are rebuilt fresh per query and never mutated.
type PlayerProfile struct {
	PlayerID string            `json:"player_id"`
	Name     string            `json:"name"`
	Team     string            `json:"team"`
	Position string            `json:"position"`
	Season   string            `json:"season"`
	Games    []GameObservation `json:"games"`
}

// SeasonRates returns per-minute rates for the full observed sample, recent-first
func (p *PlayerProfile) SeasonRates(cat StatCategory) []float64 {
	rates := make([]float64, 0, len(p.Games))
	for _, g := range p.Games {
		rates = append(rates, g.Rate(cat))
	}
	return rates
}

// RecentRates returns per-minute rates for the most recent k games
func (p *PlayerProfile) RecentRates(cat StatCategory, k int) []float64 {
	if k > len(p.Games) {
		k = len(p.Games)
	}
	rates := make([]float64, 0, k)
	for _, g := range p.Games[:k] {
		rates = append(rates, g.Rate(cat))
	}
	return rates
}

// AverageMinutes returns the mean minutes per game across the sample
func (p *PlayerProfile) AverageMinutes() float64 {
	if len(p.Games) == 0 {
		return 0
	}
	return p.TotalMinutes() / float64(len(p.Games))
}

// TotalMinutes returns the sum of minutes across the observed sample
func (p *PlayerProfile) TotalMinutes() float64 {
	total := 0.0
	for _, g := range p.Games {
		total += g.Minutes
	}
	return total
}

// LastGameDate returns the date of the most recent observation and whether
// the profile contains any games at all
func (p *PlayerProfile) LastGameDate() (time.Time, bool) {
	if len(p.Games) == 0 {
		return time.Time{}, false
	}
	return p.Games[0].Date, true
}
