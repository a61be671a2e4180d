package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fantasyops/leaguedesk/internal/models"
)

var (
	// ErrDuplicateLeague means the league and season are already
	// registered for that user.
	ErrDuplicateLeague = errors.New("league already registered")

	// ErrLeagueNotRegistered means the named league is not in the user's
	// registered set.
	ErrLeagueNotRegistered = errors.New("league not registered")
)

// RegistryStorage persists a user's registered-league set. ReplaceSet
// swaps the whole set atomically, which gives the per-key last-writer-
// wins semantics the registry serializes above it.
type RegistryStorage interface {
	ListByUser(ctx context.Context, community, user string) ([]models.RegisteredLeague, error)
	ListByCommunity(ctx context.Context, community string) ([]models.RegisteredLeague, error)
	ReplaceSet(ctx context.Context, community, user string, entries []models.RegisteredLeague) error
}

// LeagueRegistry maps a requesting identity (community + user) to its
// registered leagues and one designated default. All mutations for a
// given identity are serialized through a per-key lock; independent
// identities proceed concurrently.
type LeagueRegistry struct {
	storage RegistryStorage
	logger  *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLeagueRegistry creates a registry over the given storage.
func NewLeagueRegistry(storage RegistryStorage, logger *logrus.Logger) *LeagueRegistry {
	return &LeagueRegistry{
		storage: storage,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (r *LeagueRegistry) lockFor(community, user string) *sync.Mutex {
	key := community + "/" + user
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[key] = l
	return l
}

// Register adds a league to the user's set. The first registered league
// becomes the user's default.
func (r *LeagueRegistry) Register(ctx context.Context, community, user, leagueID string, season int, name string) (*models.RegisteredLeague, error) {
	lock := r.lockFor(community, user)
	lock.Lock()
	defer lock.Unlock()

	entries, err := r.storage.ListByUser(ctx, community, user)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.LeagueID == leagueID && e.Season == season {
			return nil, ErrDuplicateLeague
		}
	}

	position := 0
	for _, e := range entries {
		if e.Position >= position {
			position = e.Position + 1
		}
	}

	now := time.Now()
	entry := models.RegisteredLeague{
		ID:        uuid.New(),
		Community: community,
		UserID:    user,
		LeagueID:  leagueID,
		Season:    season,
		Name:      name,
		IsDefault: len(entries) == 0,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	entries = append(entries, entry)

	if err := r.storage.ReplaceSet(ctx, community, user, entries); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"component": "registry",
		"community": community,
		"user":      user,
		"league_id": leagueID,
		"season":    season,
		"default":   entry.IsDefault,
	}).Info("League registered")

	return &entry, nil
}

// entryIndex locates the single registration for leagueID. Entries are
// keyed by league plus season, so the same league registered in two
// seasons is two rows; season zero selects the most recent of them.
func entryIndex(entries []models.RegisteredLeague, leagueID string, season int) int {
	best := -1
	for i, e := range entries {
		if e.LeagueID != leagueID {
			continue
		}
		if season != 0 {
			if e.Season == season {
				return i
			}
			continue
		}
		if best < 0 || e.Season > entries[best].Season {
			best = i
		}
	}
	return best
}

// SetDefault designates an already-registered league as the default.
// Season zero means the most recent registered season of that league.
func (r *LeagueRegistry) SetDefault(ctx context.Context, community, user, leagueID string, season int) error {
	lock := r.lockFor(community, user)
	lock.Lock()
	defer lock.Unlock()

	entries, err := r.storage.ListByUser(ctx, community, user)
	if err != nil {
		return err
	}

	idx := entryIndex(entries, leagueID, season)
	if idx < 0 {
		return ErrLeagueNotRegistered
	}
	for i := range entries {
		entries[i].IsDefault = i == idx
	}
	entries[idx].UpdatedAt = time.Now()

	return r.storage.ReplaceSet(ctx, community, user, entries)
}

// Remove deletes a league from the user's set. Season zero means the
// most recent registered season of that league. Removing the default
// promotes the remaining entry with the lowest insertion order, so the
// default is never left dangling.
func (r *LeagueRegistry) Remove(ctx context.Context, community, user, leagueID string, season int) error {
	lock := r.lockFor(community, user)
	lock.Lock()
	defer lock.Unlock()

	entries, err := r.storage.ListByUser(ctx, community, user)
	if err != nil {
		return err
	}

	idx := entryIndex(entries, leagueID, season)
	if idx < 0 {
		return ErrLeagueNotRegistered
	}
	removedDefault := entries[idx].IsDefault

	kept := make([]models.RegisteredLeague, 0, len(entries)-1)
	for i, e := range entries {
		if i != idx {
			kept = append(kept, e)
		}
	}

	if removedDefault && len(kept) > 0 {
		lowest := 0
		for i := range kept {
			if kept[i].Position < kept[lowest].Position {
				lowest = i
			}
		}
		kept[lowest].IsDefault = true
		kept[lowest].UpdatedAt = time.Now()
	}

	return r.storage.ReplaceSet(ctx, community, user, kept)
}

// List returns the user's leagues in insertion order.
func (r *LeagueRegistry) List(ctx context.Context, community, user string) ([]models.RegisteredLeague, error) {
	return r.storage.ListByUser(ctx, community, user)
}

// ListAll returns the union of registered leagues across a community,
// for discovery commands.
func (r *LeagueRegistry) ListAll(ctx context.Context, community string) ([]models.RegisteredLeague, error) {
	return r.storage.ListByCommunity(ctx, community)
}

// Default returns the user's default league.
func (r *LeagueRegistry) Default(ctx context.Context, community, user string) (*models.RegisteredLeague, error) {
	entries, err := r.storage.ListByUser(ctx, community, user)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDefault {
			entry := e
			return &entry, nil
		}
	}
	return nil, ErrLeagueNotRegistered
}

// Resolve returns the registered league to use for a request: the named
// league when leagueID is set, otherwise the user's default. A league
// registered in multiple seasons resolves to the most recent one.
func (r *LeagueRegistry) Resolve(ctx context.Context, community, user, leagueID string) (*models.RegisteredLeague, error) {
	if leagueID == "" {
		return r.Default(ctx, community, user)
	}
	entries, err := r.storage.ListByUser(ctx, community, user)
	if err != nil {
		return nil, err
	}
	if idx := entryIndex(entries, leagueID, 0); idx >= 0 {
		entry := entries[idx]
		return &entry, nil
	}
	return nil, ErrLeagueNotRegistered
}
