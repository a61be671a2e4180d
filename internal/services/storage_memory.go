package services

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// MemoryRegistryStorage keeps registry entries in process memory. Used
// by tests and local development without postgres.
type MemoryRegistryStorage struct {
	mu   sync.RWMutex
	sets map[string][]models.RegisteredLeague
}

// NewMemoryRegistryStorage creates empty in-memory registry storage.
func NewMemoryRegistryStorage() *MemoryRegistryStorage {
	return &MemoryRegistryStorage{sets: make(map[string][]models.RegisteredLeague)}
}

func registryKey(community, user string) string {
	return community + "/" + user
}

func (s *MemoryRegistryStorage) ListByUser(ctx context.Context, community, user string) ([]models.RegisteredLeague, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.sets[registryKey(community, user)]
	out := make([]models.RegisteredLeague, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *MemoryRegistryStorage) ListByCommunity(ctx context.Context, community string) ([]models.RegisteredLeague, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.RegisteredLeague
	for _, entries := range s.sets {
		for _, e := range entries {
			if e.Community == community {
				out = append(out, e)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (s *MemoryRegistryStorage) ReplaceSet(ctx context.Context, community, user string, entries []models.RegisteredLeague) error {
	stored := make([]models.RegisteredLeague, len(entries))
	copy(stored, entries)
	s.mu.Lock()
	s.sets[registryKey(community, user)] = stored
	s.mu.Unlock()
	return nil
}

// MemoryCredentialStorage keeps credential pairs in process memory.
type MemoryCredentialStorage struct {
	mu    sync.RWMutex
	creds map[string]models.LeagueCredential
}

// NewMemoryCredentialStorage creates empty in-memory credential storage.
func NewMemoryCredentialStorage() *MemoryCredentialStorage {
	return &MemoryCredentialStorage{creds: make(map[string]models.LeagueCredential)}
}

func credentialKey(leagueID string, season int) string {
	return leagueID + "/" + strconv.Itoa(season)
}

func (s *MemoryCredentialStorage) Get(ctx context.Context, leagueID string, season int) (*models.LeagueCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cred, ok := s.creds[credentialKey(leagueID, season)]; ok {
		out := cred
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryCredentialStorage) Put(ctx context.Context, cred models.LeagueCredential) error {
	s.mu.Lock()
	s.creds[credentialKey(cred.LeagueID, cred.Season)] = cred
	s.mu.Unlock()
	return nil
}

func (s *MemoryCredentialStorage) Delete(ctx context.Context, leagueID string, season int) error {
	s.mu.Lock()
	delete(s.creds, credentialKey(leagueID, season))
	s.mu.Unlock()
	return nil
}
