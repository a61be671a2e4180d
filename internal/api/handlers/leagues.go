package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fantasyops/leaguedesk/internal/models"
	"github.com/fantasyops/leaguedesk/internal/services"
	"github.com/fantasyops/leaguedesk/internal/utils"
)

// LeagueHandler handles league registration and discovery endpoints
type LeagueHandler struct {
	registry *services.LeagueRegistry
	creds    *services.CredentialStore
	data     *services.LeagueDataService
	logger   *logrus.Logger
}

// NewLeagueHandler creates a new league handler
func NewLeagueHandler(
	registry *services.LeagueRegistry,
	creds *services.CredentialStore,
	data *services.LeagueDataService,
	logger *logrus.Logger,
) *LeagueHandler {
	return &LeagueHandler{
		registry: registry,
		creds:    creds,
		data:     data,
		logger:   logger,
	}
}

// identity pulls the requesting community and user out of the request.
// Every endpoint is scoped to this pair; the chat front end fills both
// from its own session.
func identity(c *gin.Context) (community, user string, ok bool) {
	community = c.Query("community")
	user = c.Query("user")
	if community == "" || user == "" {
		utils.SendBadRequest(c, "community and user query parameters are required")
		return "", "", false
	}
	return community, user, true
}

type registerLeagueRequest struct {
	LeagueID string `json:"league_id" binding:"required"`
	Season   int    `json:"season" binding:"required"`
	Name     string `json:"name"`
	SWID     string `json:"swid"`
	ESPNS2   string `json:"espn_s2"`
}

// RegisterLeague registers a league for the requesting user, storing the
// optional private-league credential pair and verifying the league is
// reachable before committing the registration.
func (h *LeagueHandler) RegisterLeague(c *gin.Context) {
	community, user, ok := identity(c)
	if !ok {
		return
	}

	var req registerLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// Reject duplicates before touching the credential table so a repeat
	// registration cannot clobber the credentials the existing entry uses.
	existing, err := h.registry.List(c.Request.Context(), community, user)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	for _, e := range existing {
		if e.LeagueID == req.LeagueID && e.Season == req.Season {
			utils.SendDomainError(c, services.ErrDuplicateLeague)
			return
		}
	}

	pair := models.NewCredentialPair(req.SWID, req.ESPNS2)
	if err := h.creds.Store(c.Request.Context(), req.LeagueID, req.Season, pair); err != nil {
		utils.SendDomainError(c, err)
		return
	}

	// Fetch settings before registering so a bad id or bad credentials
	// fail the whole request instead of leaving a broken registration.
	ref := models.LeagueRef{LeagueID: req.LeagueID, Season: req.Season}
	league, err := h.data.League(c.Request.Context(), ref)
	if err != nil {
		if !pair.IsPublic() {
			if rmErr := h.creds.Remove(c.Request.Context(), req.LeagueID, req.Season); rmErr != nil {
				h.logger.WithError(rmErr).WithField("league_id", req.LeagueID).
					Warn("Failed to clean up credentials after verification failure")
			}
		}
		utils.SendDomainError(c, err)
		return
	}

	name := req.Name
	if name == "" {
		name = league.Name
	}

	entry, err := h.registry.Register(c.Request.Context(), community, user, req.LeagueID, req.Season, name)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	utils.SendCreated(c, entry)
}

// ListLeagues returns the requesting user's registered leagues.
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	community, user, ok := identity(c)
	if !ok {
		return
	}

	entries, err := h.registry.List(c.Request.Context(), community, user)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, entries)
}

// ListCommunityLeagues returns every league registered by anyone in the
// community, for discovery.
func (h *LeagueHandler) ListCommunityLeagues(c *gin.Context) {
	community := c.Query("community")
	if community == "" {
		utils.SendBadRequest(c, "community query parameter is required")
		return
	}

	entries, err := h.registry.ListAll(c.Request.Context(), community)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, entries)
}

type setDefaultRequest struct {
	LeagueID string `json:"league_id" binding:"required"`
	Season   int    `json:"season"`
}

// SetDefaultLeague marks a registered league as the user's default.
// Season disambiguates a league registered across multiple seasons;
// omitting it targets the most recent one.
func (h *LeagueHandler) SetDefaultLeague(c *gin.Context) {
	community, user, ok := identity(c)
	if !ok {
		return
	}

	var req setDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.registry.SetDefault(c.Request.Context(), community, user, req.LeagueID, req.Season); err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccessWithMessage(c, gin.H{"league_id": req.LeagueID}, "Default league updated")
}

// RemoveLeague deletes a league from the user's registered set. An
// optional season query parameter disambiguates multi-season entries.
func (h *LeagueHandler) RemoveLeague(c *gin.Context) {
	community, user, ok := identity(c)
	if !ok {
		return
	}
	leagueID := c.Param("id")

	season := 0
	if s := c.Query("season"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			utils.SendBadRequest(c, "invalid season parameter")
			return
		}
		season = parsed
	}

	if err := h.registry.Remove(c.Request.Context(), community, user, leagueID, season); err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccessWithMessage(c, gin.H{"league_id": leagueID}, "League removed")
}

// resolveLeague maps the request identity plus an optional league_id
// query parameter to a registered league ref. Season may be overridden
// with a season query parameter.
func resolveLeague(c *gin.Context, registry *services.LeagueRegistry) (models.LeagueRef, bool) {
	community, user, ok := identity(c)
	if !ok {
		return models.LeagueRef{}, false
	}

	entry, err := registry.Resolve(c.Request.Context(), community, user, c.Query("league_id"))
	if err != nil {
		utils.SendDomainError(c, err)
		return models.LeagueRef{}, false
	}

	ref := models.LeagueRef{LeagueID: entry.LeagueID, Season: entry.Season}
	if s := c.Query("season"); s != "" {
		season, err := strconv.Atoi(s)
		if err != nil {
			utils.SendBadRequest(c, "invalid season parameter")
			return models.LeagueRef{}, false
		}
		ref.Season = season
	}
	return ref, true
}

// weekParam parses the optional week query parameter; 0 means the
// current scoring week.
func weekParam(c *gin.Context) (int, bool) {
	s := c.Query("week")
	if s == "" {
		return 0, true
	}
	week, err := strconv.Atoi(s)
	if err != nil || week < 0 {
		utils.SendBadRequest(c, "invalid week parameter")
		return 0, false
	}
	return week, true
}

// completedWeeks derives the number of settled scoring weeks from the
// league's current week.
func completedWeeks(league *models.League) int {
	if league.Current <= 1 {
		return 1
	}
	return league.Current - 1
}
