package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyops/leaguedesk/internal/models"
	"github.com/fantasyops/leaguedesk/internal/services"
)

// stubProvider satisfies the data service with canned responses; the
// registration flow only exercises GetLeague.
type stubProvider struct{}

func (stubProvider) GetLeague(_ context.Context, ref models.LeagueRef, _ models.CredentialPair) (*models.League, error) {
	return &models.League{ID: ref.LeagueID, Season: ref.Season, Name: "Stub League", Current: 4}, nil
}

func (stubProvider) GetTeams(context.Context, models.LeagueRef, models.CredentialPair, int) ([]models.Team, error) {
	return nil, nil
}

func (stubProvider) GetStandings(context.Context, models.LeagueRef, models.CredentialPair) ([]models.Team, error) {
	return nil, nil
}

func (stubProvider) GetMatchups(context.Context, models.LeagueRef, models.CredentialPair, int) ([]models.Matchup, error) {
	return nil, nil
}

func (stubProvider) GetPlayers(context.Context, models.LeagueRef, models.CredentialPair, int) ([]models.Player, error) {
	return nil, nil
}

func newLeagueRouter(t *testing.T) (*gin.Engine, *services.CredentialStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cache := services.NewCacheService(services.NewMemoryCacheStore(), logger)
	creds := services.NewCredentialStore(services.NewMemoryCredentialStorage(), logger)
	data := services.NewLeagueDataService(stubProvider{}, cache, creds, services.DefaultCacheTTLs(), logger)
	registry := services.NewLeagueRegistry(services.NewMemoryRegistryStorage(), logger)

	handler := NewLeagueHandler(registry, creds, data, logger)
	router := gin.New()
	router.POST("/api/v1/leagues", handler.RegisterLeague)
	return router, creds
}

func postLeague(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leagues?community=guild-1&user=user-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterLeague_DuplicateKeepsStoredCredentials(t *testing.T) {
	router, creds := newLeagueRouter(t)

	first := postLeague(router, `{"league_id":"111","season":2025,"swid":"{ORIGINAL}","espn_s2":"token-a"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	// A duplicate registration is rejected before the credential table is
	// touched, so the existing pair survives intact.
	second := postLeague(router, `{"league_id":"111","season":2025,"swid":"{REPLACEMENT}","espn_s2":"token-b"}`)
	assert.Equal(t, http.StatusConflict, second.Code)

	pair, err := creds.Get(context.Background(), "111", 2025)
	require.NoError(t, err)
	assert.Equal(t, "{ORIGINAL}", pair.SWID.Reveal())
	assert.Equal(t, "token-a", pair.ESPNS2.Reveal())
}
