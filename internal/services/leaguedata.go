package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fantasyops/leaguedesk/internal/models"
	"github.com/fantasyops/leaguedesk/internal/providers"
)

// LeagueProvider is the upstream the data service fetches from. The
// concrete implementation is the ESPN client; tests substitute mocks.
type LeagueProvider interface {
	GetLeague(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair) (*models.League, error)
	GetTeams(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Team, error)
	GetStandings(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair) ([]models.Team, error)
	GetMatchups(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Matchup, error)
	GetPlayers(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Player, error)
}

// CacheTTLs is the freshness policy per resource liveness class.
type CacheTTLs struct {
	// LiveWeek covers data for the in-progress scoring week; short so
	// score checks stay fresh without hammering the provider.
	LiveWeek time.Duration
	// Settled covers completed weeks, which cannot change.
	Settled time.Duration
	// Settings covers league configuration.
	Settings time.Duration
}

// DefaultCacheTTLs returns the production freshness policy.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		LiveWeek: 30 * time.Second,
		Settled:  24 * time.Hour,
		Settings: time.Hour,
	}
}

// LeagueDataService is the cached data-access layer the request API and
// analytics read through. The presentation layer never reaches the
// provider client except through here.
type LeagueDataService struct {
	provider LeagueProvider
	cache    *CacheService
	creds    *CredentialStore
	ttls     CacheTTLs
	logger   *logrus.Logger

	// recently accessed league refs, consumed by the cache refresher
	mu     sync.Mutex
	active map[models.LeagueRef]time.Time
}

// NewLeagueDataService wires the cached data-access layer.
func NewLeagueDataService(provider LeagueProvider, cache *CacheService, creds *CredentialStore, ttls CacheTTLs, logger *logrus.Logger) *LeagueDataService {
	return &LeagueDataService{
		provider: provider,
		cache:    cache,
		creds:    creds,
		ttls:     ttls,
		logger:   logger,
		active:   make(map[models.LeagueRef]time.Time),
	}
}

// League returns the normalized league settings.
func (s *LeagueDataService) League(ctx context.Context, ref models.LeagueRef) (*models.League, error) {
	s.touch(ref)

	key := BuildCacheKey(ref.LeagueID, ref.Season, string(providers.ResourceSettings), 0)
	var league models.League
	err := s.cache.GetOrFetch(ctx, key, s.ttls.Settings, &league, func(fctx context.Context) (interface{}, error) {
		pair, err := s.creds.Get(fctx, ref.LeagueID, ref.Season)
		if err != nil {
			return nil, err
		}
		return s.provider.GetLeague(fctx, ref, pair)
	})
	if err != nil {
		return nil, err
	}
	return &league, nil
}

// Teams returns all teams with rosters for a week (0 = current).
func (s *LeagueDataService) Teams(ctx context.Context, ref models.LeagueRef, week int) ([]models.Team, error) {
	s.touch(ref)

	ttl, err := s.ttlForWeek(ctx, ref, week)
	if err != nil {
		return nil, err
	}

	key := BuildCacheKey(ref.LeagueID, ref.Season, string(providers.ResourceRosters), week)
	var teams []models.Team
	err = s.cache.GetOrFetch(ctx, key, ttl, &teams, func(fctx context.Context) (interface{}, error) {
		pair, err := s.creds.Get(fctx, ref.LeagueID, ref.Season)
		if err != nil {
			return nil, err
		}
		return s.provider.GetTeams(fctx, ref, pair, week)
	})
	return teams, err
}

// Standings returns teams ordered by record then points.
func (s *LeagueDataService) Standings(ctx context.Context, ref models.LeagueRef) ([]models.Team, error) {
	s.touch(ref)

	key := BuildCacheKey(ref.LeagueID, ref.Season, string(providers.ResourceStandings), 0)
	var teams []models.Team
	err := s.cache.GetOrFetch(ctx, key, s.ttls.LiveWeek, &teams, func(fctx context.Context) (interface{}, error) {
		pair, err := s.creds.Get(fctx, ref.LeagueID, ref.Season)
		if err != nil {
			return nil, err
		}
		return s.provider.GetStandings(fctx, ref, pair)
	})
	if err != nil {
		return nil, err
	}
	providers.SortTeamsByStandings(teams)
	return teams, nil
}

// Matchups returns the head-to-head pairings for a week (0 = current).
func (s *LeagueDataService) Matchups(ctx context.Context, ref models.LeagueRef, week int) ([]models.Matchup, error) {
	s.touch(ref)
	return s.matchupsCached(ctx, ref, week)
}

// RefreshMatchups warms the live matchup cache key for a league without
// marking it active; used by the background refresher so warmed leagues
// still age out of the active set.
func (s *LeagueDataService) RefreshMatchups(ctx context.Context, ref models.LeagueRef) error {
	_, err := s.matchupsCached(ctx, ref, 0)
	return err
}

func (s *LeagueDataService) matchupsCached(ctx context.Context, ref models.LeagueRef, week int) ([]models.Matchup, error) {
	ttl, err := s.ttlForWeek(ctx, ref, week)
	if err != nil {
		return nil, err
	}

	key := BuildCacheKey(ref.LeagueID, ref.Season, string(providers.ResourceMatchups), week)
	var matchups []models.Matchup
	err = s.cache.GetOrFetch(ctx, key, ttl, &matchups, func(fctx context.Context) (interface{}, error) {
		pair, err := s.creds.Get(fctx, ref.LeagueID, ref.Season)
		if err != nil {
			return nil, err
		}
		return s.provider.GetMatchups(fctx, ref, pair, week)
	})
	return matchups, err
}

// Players returns the league-wide player pool including free agents.
func (s *LeagueDataService) Players(ctx context.Context, ref models.LeagueRef, week int) ([]models.Player, error) {
	s.touch(ref)

	ttl, err := s.ttlForWeek(ctx, ref, week)
	if err != nil {
		return nil, err
	}

	key := BuildCacheKey(ref.LeagueID, ref.Season, string(providers.ResourcePlayers), week)
	var players []models.Player
	err = s.cache.GetOrFetch(ctx, key, ttl, &players, func(fctx context.Context) (interface{}, error) {
		pair, err := s.creds.Get(fctx, ref.LeagueID, ref.Season)
		if err != nil {
			return nil, err
		}
		return s.provider.GetPlayers(fctx, ref, pair, week)
	})
	return players, err
}

// ttlForWeek picks the freshness class for a week-scoped resource: the
// in-progress week (or "current", week 0) is live, completed weeks are
// settled and effectively immutable.
func (s *LeagueDataService) ttlForWeek(ctx context.Context, ref models.LeagueRef, week int) (time.Duration, error) {
	if week == 0 {
		return s.ttls.LiveWeek, nil
	}
	league, err := s.League(ctx, ref)
	if err != nil {
		return 0, err
	}
	if week >= league.Current {
		return s.ttls.LiveWeek, nil
	}
	return s.ttls.Settled, nil
}

func (s *LeagueDataService) touch(ref models.LeagueRef) {
	s.mu.Lock()
	s.active[ref] = time.Now()
	s.mu.Unlock()
}

// ActiveLeagues returns refs accessed within the given window, for the
// cache refresher.
func (s *LeagueDataService) ActiveLeagues(window time.Duration) []models.LeagueRef {
	cutoff := time.Now().Add(-window)
	s.mu.Lock()
	defer s.mu.Unlock()

	var refs []models.LeagueRef
	for ref, at := range s.active {
		if at.After(cutoff) {
			refs = append(refs, ref)
		} else {
			delete(s.active, ref)
		}
	}
	return refs
}
