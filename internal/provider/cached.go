package provider

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/sharp-props/internal/metrics"
	"github.com/yourusername/sharp-props/internal/models"
)

// CachedLogProvider wraps a PlayerLogProvider with a TTL cache. Game logs
// only change once a day, so repeated queries for the same player should not
// hit the upstream API.
type CachedLogProvider struct {
	inner PlayerLogProvider
	cache *cache.Cache
}

// NewCachedLogProvider creates a caching decorator with the given TTL
func NewCachedLogProvider(inner PlayerLogProvider, ttl time.Duration) *CachedLogProvider {
	return &CachedLogProvider{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

// PlayerProfile returns a cached profile when fresh, delegating otherwise
func (c *CachedLogProvider) PlayerProfile(ctx context.Context, playerID, season string) (*models.PlayerProfile, error) {
	key := fmt.Sprintf("%s:%s", playerID, season)
	if cached, found := c.cache.Get(key); found {
		if profile, ok := cached.(*models.PlayerProfile); ok {
			metrics.RecordCacheHit("player_logs")
			return profile, nil
		}
	}
	metrics.RecordCacheMiss("player_logs")

	profile, err := c.inner.PlayerProfile(ctx, playerID, season)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, profile)
	return profile, nil
}

// CachedStatsProvider wraps a TeamStatsProvider with a TTL cache
type CachedStatsProvider struct {
	inner TeamStatsProvider
	cache *cache.Cache
}

// NewCachedStatsProvider creates a caching decorator with the given TTL
func NewCachedStatsProvider(inner TeamStatsProvider, ttl time.Duration) *CachedStatsProvider {
	return &CachedStatsProvider{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

const leagueStatsKey = "league_stats"

// LeagueStats returns the cached pace and defense table when fresh
func (c *CachedStatsProvider) LeagueStats(ctx context.Context) (*LeagueStats, error) {
	if cached, found := c.cache.Get(leagueStatsKey); found {
		if stats, ok := cached.(*LeagueStats); ok {
			metrics.RecordCacheHit("team_stats")
			return stats, nil
		}
	}
	metrics.RecordCacheMiss("team_stats")

	stats, err := c.inner.LeagueStats(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(leagueStatsKey, stats)
	return stats, nil
}

// CachedInjuryProvider wraps an InjuryListProvider with a TTL cache. Injury
// reports move faster than game logs, so callers typically configure a
// shorter TTL here.
type CachedInjuryProvider struct {
	inner InjuryListProvider
	cache *cache.Cache
}

// NewCachedInjuryProvider creates a caching decorator with the given TTL
func NewCachedInjuryProvider(inner InjuryListProvider, ttl time.Duration) *CachedInjuryProvider {
	return &CachedInjuryProvider{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

const injuryListKey = "ruled_out"

// RuledOut returns the cached injury set when fresh
func (c *CachedInjuryProvider) RuledOut(ctx context.Context) (map[string]bool, error) {
	if cached, found := c.cache.Get(injuryListKey); found {
		if ruledOut, ok := cached.(map[string]bool); ok {
			metrics.RecordCacheHit("injury_list")
			return ruledOut, nil
		}
	}
	metrics.RecordCacheMiss("injury_list")

	ruledOut, err := c.inner.RuledOut(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(injuryListKey, ruledOut)
	return ruledOut, nil
}
