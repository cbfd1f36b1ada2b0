package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/sharp-props/internal/metrics"
	"github.com/yourusername/sharp-props/internal/models"
)

// NBAStatsProvider fetches player game logs from the stats.nba.com API
type NBAStatsProvider struct {
	baseURL string
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewNBAStatsProvider creates a game log provider against the given base URL
func NewNBAStatsProvider(baseURL string, client *RateLimitedHTTPClient, logger *logrus.Logger) *NBAStatsProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &NBAStatsProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// statsResponse mirrors the stats.nba.com tabular envelope
type statsResponse struct {
	ResultSets []struct {
		Name    string          `json:"name"`
		Headers []string        `json:"headers"`
		RowSet  [][]interface{} `json:"rowSet"`
	} `json:"resultSets"`
}

// PlayerProfile fetches the season game log for a player and assembles a
// recent-first profile
func (p *NBAStatsProvider) PlayerProfile(ctx context.Context, playerID, season string) (*models.PlayerProfile, error) {
	endpoint := fmt.Sprintf("%s/stats/playergamelog?%s", p.baseURL, url.Values{
		"PlayerID":   {playerID},
		"Season":     {season},
		"SeasonType": {"Regular Season"},
	}.Encode())

	start := time.Now()
	resp, err := p.client.Get(ctx, endpoint)
	if err != nil {
		metrics.RecordProviderRequest("nba_stats", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("game log request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordProviderRequest("nba_stats", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("game log request returned status %d", resp.StatusCode)
	}
	metrics.RecordProviderRequest("nba_stats", "success", time.Since(start).Seconds())

	var payload statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode game log response: %w", err)
	}

	games, err := parseGameLog(payload)
	if err != nil {
		return nil, err
	}

	p.logger.WithFields(logrus.Fields{
		"player_id": playerID,
		"season":    season,
		"games":     len(games),
	}).Debug("Game log fetched")

	return &models.PlayerProfile{
		PlayerID: playerID,
		Season:   season,
		Games:    games,
	}, nil
}

func parseGameLog(payload statsResponse) ([]models.GameObservation, error) {
	for _, rs := range payload.ResultSets {
		if rs.Name != "PlayerGameLog" {
			continue
		}
		idx := make(map[string]int, len(rs.Headers))
		for i, h := range rs.Headers {
			idx[h] = i
		}
		games := make([]models.GameObservation, 0, len(rs.RowSet))
		for _, row := range rs.RowSet {
			game, err := parseGameRow(row, idx)
			if err != nil {
				return nil, err
			}
			games = append(games, game)
		}
		return games, nil
	}
	return nil, fmt.Errorf("response contains no PlayerGameLog result set")
}

func parseGameRow(row []interface{}, idx map[string]int) (models.GameObservation, error) {
	date, err := parseGameDate(cell(row, idx, "GAME_DATE"))
	if err != nil {
		return models.GameObservation{}, err
	}

	matchup := fmt.Sprintf("%v", cell(row, idx, "MATCHUP"))
	opponent := ""
	if parts := strings.Fields(matchup); len(parts) == 3 {
		opponent = parts[2]
	}

	return models.GameObservation{
		Date:    date,
		Minutes: cellFloat(row, idx, "MIN"),
		Stats: map[models.StatCategory]float64{
			models.StatPoints:   cellFloat(row, idx, "PTS"),
			models.StatRebounds: cellFloat(row, idx, "REB"),
			models.StatAssists:  cellFloat(row, idx, "AST"),
			models.StatSteals:   cellFloat(row, idx, "STL"),
			models.StatBlocks:   cellFloat(row, idx, "BLK"),
			models.StatThrees:   cellFloat(row, idx, "FG3M"),
		},
		Opponent: opponent,
		Home:     strings.Contains(matchup, "vs."),
	}, nil
}

func cell(row []interface{}, idx map[string]int, name string) interface{} {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

func cellFloat(row []interface{}, idx map[string]int, name string) float64 {
	switch v := cell(row, idx, name).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// The API reports dates like "APR 09, 2026"
func parseGameDate(v interface{}) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("game date missing from row")
	}
	normalized := strings.TrimSpace(s)
	if len(normalized) >= 3 {
		normalized = strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:3]) + normalized[3:]
	}
	t, err := time.Parse("Jan 02, 2006", normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable game date %q: %w", s, err)
	}
	return t, nil
}
