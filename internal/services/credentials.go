package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// ErrInvalidCredentialFormat means a private-league credential pair was
// incomplete; both halves must be present together.
var ErrInvalidCredentialFormat = errors.New("invalid credential format")

// CredentialStorage persists credential pairs keyed by league + season,
// separate from registry entries.
type CredentialStorage interface {
	Get(ctx context.Context, leagueID string, season int) (*models.LeagueCredential, error)
	Put(ctx context.Context, cred models.LeagueCredential) error
	Delete(ctx context.Context, leagueID string, season int) error
}

// CredentialStore owns all credential material. Values leave it only as
// the opaque models.Credential type, which redacts itself in any
// diagnostic surface; nothing outside the provider client ever sees the
// raw tokens.
type CredentialStore struct {
	storage CredentialStorage
	logger  *logrus.Logger
}

// NewCredentialStore creates a credential store over the given storage.
func NewCredentialStore(storage CredentialStorage, logger *logrus.Logger) *CredentialStore {
	return &CredentialStore{storage: storage, logger: logger}
}

// Store validates and persists a credential pair for a league. A pair
// with only one half present fails with ErrInvalidCredentialFormat; an
// entirely empty pair is the public marker and stores nothing.
func (s *CredentialStore) Store(ctx context.Context, leagueID string, season int, pair models.CredentialPair) error {
	if pair.IsPublic() {
		return nil
	}
	if !pair.Complete() {
		return ErrInvalidCredentialFormat
	}

	now := time.Now()
	err := s.storage.Put(ctx, models.LeagueCredential{
		LeagueID:  leagueID,
		Season:    season,
		SWID:      pair.SWID.Reveal(),
		ESPNS2:    pair.ESPNS2.Reveal(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}

	// Log the fact, never the values.
	s.logger.WithFields(logrus.Fields{
		"component": "credentials",
		"league_id": leagueID,
		"season":    season,
	}).Info("Stored private league credentials")
	return nil
}

// Get returns the credential pair for a league, or the public marker
// (an empty pair) when none is stored.
func (s *CredentialStore) Get(ctx context.Context, leagueID string, season int) (models.CredentialPair, error) {
	cred, err := s.storage.Get(ctx, leagueID, season)
	if err != nil {
		return models.CredentialPair{}, err
	}
	if cred == nil {
		return models.CredentialPair{}, nil
	}
	return models.NewCredentialPair(cred.SWID, cred.ESPNS2), nil
}

// Remove deletes stored credentials for a league.
func (s *CredentialStore) Remove(ctx context.Context, leagueID string, season int) error {
	return s.storage.Delete(ctx, leagueID, season)
}
