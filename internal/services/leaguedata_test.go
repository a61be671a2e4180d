package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// MockLeagueProvider for testing
type MockLeagueProvider struct {
	mock.Mock
}

func (m *MockLeagueProvider) GetLeague(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair) (*models.League, error) {
	args := m.Called(ctx, ref, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueProvider) GetTeams(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Team, error) {
	args := m.Called(ctx, ref, creds, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockLeagueProvider) GetStandings(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair) ([]models.Team, error) {
	args := m.Called(ctx, ref, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockLeagueProvider) GetMatchups(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Matchup, error) {
	args := m.Called(ctx, ref, creds, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Matchup), args.Error(1)
}

func (m *MockLeagueProvider) GetPlayers(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Player, error) {
	args := m.Called(ctx, ref, creds, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func newTestDataService(t *testing.T, provider LeagueProvider) *LeagueDataService {
	t.Helper()
	logger := testLogger()
	cache := NewCacheService(NewMemoryCacheStore(), logger)
	creds := NewCredentialStore(NewMemoryCredentialStorage(), logger)
	return NewLeagueDataService(provider, cache, creds, DefaultCacheTTLs(), logger)
}

func TestLeagueDataService_LeagueIsCached(t *testing.T) {
	provider := new(MockLeagueProvider)
	svc := newTestDataService(t, provider)
	ref := models.LeagueRef{LeagueID: "111", Season: 2025}

	provider.On("GetLeague", mock.Anything, ref, mock.Anything).
		Return(&models.League{ID: "111", Season: 2025, Name: "Main", Current: 5}, nil).Once()

	ctx := context.Background()
	first, err := svc.League(ctx, ref)
	require.NoError(t, err)
	second, err := svc.League(ctx, ref)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	provider.AssertNumberOfCalls(t, "GetLeague", 1)
}

func TestLeagueDataService_CredentialsReachProvider(t *testing.T) {
	provider := new(MockLeagueProvider)
	logger := testLogger()
	cache := NewCacheService(NewMemoryCacheStore(), logger)
	creds := NewCredentialStore(NewMemoryCredentialStorage(), logger)
	svc := NewLeagueDataService(provider, cache, creds, DefaultCacheTTLs(), logger)

	ctx := context.Background()
	ref := models.LeagueRef{LeagueID: "222", Season: 2025}
	require.NoError(t, creds.Store(ctx, "222", 2025, models.NewCredentialPair("{SWID}", "s2")))

	provider.On("GetLeague", mock.Anything, ref, mock.MatchedBy(func(pair models.CredentialPair) bool {
		return pair.SWID.Reveal() == "{SWID}" && pair.ESPNS2.Reveal() == "s2"
	})).Return(&models.League{ID: "222", Season: 2025, Current: 3}, nil).Once()

	_, err := svc.League(ctx, ref)
	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestLeagueDataService_ProviderErrorsAreNotCached(t *testing.T) {
	provider := new(MockLeagueProvider)
	svc := newTestDataService(t, provider)
	ref := models.LeagueRef{LeagueID: "333", Season: 2025}

	provider.On("GetLeague", mock.Anything, ref, mock.Anything).
		Return(nil, assert.AnError).Once()
	provider.On("GetLeague", mock.Anything, ref, mock.Anything).
		Return(&models.League{ID: "333", Season: 2025, Current: 2}, nil).Once()

	ctx := context.Background()
	_, err := svc.League(ctx, ref)
	require.Error(t, err)

	league, err := svc.League(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "333", league.ID)
	provider.AssertNumberOfCalls(t, "GetLeague", 2)
}

func TestLeagueDataService_ActiveLeagueTracking(t *testing.T) {
	provider := new(MockLeagueProvider)
	svc := newTestDataService(t, provider)
	ref := models.LeagueRef{LeagueID: "444", Season: 2025}

	provider.On("GetLeague", mock.Anything, ref, mock.Anything).
		Return(&models.League{ID: "444", Season: 2025, Current: 1}, nil)

	_, err := svc.League(context.Background(), ref)
	require.NoError(t, err)

	assert.Contains(t, svc.ActiveLeagues(time.Minute), ref)
	assert.Empty(t, svc.ActiveLeagues(-time.Second), "stale refs age out of the active set")
}

func TestLeagueDataService_RefreshDoesNotMarkActive(t *testing.T) {
	provider := new(MockLeagueProvider)
	svc := newTestDataService(t, provider)
	ref := models.LeagueRef{LeagueID: "555", Season: 2025}

	provider.On("GetMatchups", mock.Anything, ref, mock.Anything, 0).
		Return([]models.Matchup{}, nil)

	require.NoError(t, svc.RefreshMatchups(context.Background(), ref))
	assert.Empty(t, svc.ActiveLeagues(time.Minute), "background warming must not keep a league active")
}
