package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fantasyops/leaguedesk/internal/analytics"
	"github.com/fantasyops/leaguedesk/internal/models"
	"github.com/fantasyops/leaguedesk/internal/services"
	"github.com/fantasyops/leaguedesk/internal/utils"
)

// AnalyticsHandler handles comparison and recommendation endpoints
type AnalyticsHandler struct {
	registry *services.LeagueRegistry
	data     *services.LeagueDataService
	engine   *analytics.Engine
	logger   *logrus.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	registry *services.LeagueRegistry,
	data *services.LeagueDataService,
	engine *analytics.Engine,
	logger *logrus.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		registry: registry,
		data:     data,
		engine:   engine,
		logger:   logger,
	}
}

// findTeam matches a team by id or, failing that, case-insensitive name.
func findTeam(teams []models.Team, key string) (models.Team, bool) {
	for _, t := range teams {
		if t.ID == key {
			return t, true
		}
	}
	for _, t := range teams {
		if strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return models.Team{}, false
}

// CompareTeams compares two teams. When league_id_b is given the second
// team is looked up in that league and both sides are rescaled onto the
// common baseline scoring before comparison.
func (h *AnalyticsHandler) CompareTeams(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}

	teamAKey := c.Query("team_a")
	teamBKey := c.Query("team_b")
	if teamAKey == "" || teamBKey == "" {
		utils.SendBadRequest(c, "team_a and team_b query parameters are required")
		return
	}

	league, err := h.data.League(c.Request.Context(), ref)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	teams, err := h.data.Teams(c.Request.Context(), ref, 0)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	teamA, found := findTeam(teams, teamAKey)
	if !found {
		utils.SendNotFound(c, "team_a not found in league")
		return
	}

	// Same-league comparison is the common path.
	leagueBID := c.Query("league_id_b")
	if leagueBID == "" || leagueBID == ref.LeagueID {
		teamB, found := findTeam(teams, teamBKey)
		if !found {
			utils.SendNotFound(c, "team_b not found in league")
			return
		}
		utils.SendSuccess(c, h.engine.Compare(teamA, teamB, completedWeeks(league)))
		return
	}

	community, user, ok := identity(c)
	if !ok {
		return
	}
	entryB, err := h.registry.Resolve(c.Request.Context(), community, user, leagueBID)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	refB := models.LeagueRef{LeagueID: entryB.LeagueID, Season: entryB.Season}

	leagueB, err := h.data.League(c.Request.Context(), refB)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	teamsB, err := h.data.Teams(c.Request.Context(), refB, 0)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	teamB, found := findTeam(teamsB, teamBKey)
	if !found {
		utils.SendNotFound(c, "team_b not found in league")
		return
	}

	weeks := completedWeeks(league)
	if wb := completedWeeks(leagueB); wb < weeks {
		weeks = wb
	}
	comparison, err := h.engine.CompareCrossLeague(teamA, league.Scoring, teamB, leagueB.Scoring, weeks)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, comparison)
}

type tradeRequest struct {
	Give []string `json:"give" binding:"required"`
	Get  []string `json:"get" binding:"required"`
}

// EvaluateTrade scores a trade proposal between two sides of player ids.
func (h *AnalyticsHandler) EvaluateTrade(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}

	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.Give) == 0 || len(req.Get) == 0 {
		utils.SendBadRequest(c, "both give and get sides must name at least one player")
		return
	}

	league, err := h.data.League(c.Request.Context(), ref)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	pool, err := h.data.Players(c.Request.Context(), ref, 0)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	give, missing := pickPlayers(pool, req.Give)
	if missing != "" {
		utils.SendNotFound(c, "player not found: "+missing)
		return
	}
	get, missing := pickPlayers(pool, req.Get)
	if missing != "" {
		utils.SendNotFound(c, "player not found: "+missing)
		return
	}

	eval := h.engine.TradeEvaluate(give, get, analytics.TradeContext{CompletedWeeks: completedWeeks(league)})
	utils.SendSuccess(c, eval)
}

// pickPlayers resolves player ids or names against the pool, reporting
// the first key it cannot match.
func pickPlayers(pool []models.Player, keys []string) ([]models.Player, string) {
	picked := make([]models.Player, 0, len(keys))
	for _, key := range keys {
		found := false
		for _, p := range pool {
			if p.ID == key || strings.EqualFold(p.Name, key) {
				picked = append(picked, p)
				found = true
				break
			}
		}
		if !found {
			return nil, key
		}
	}
	return picked, ""
}

// parsePct parses an ownership percentage in [0, 100].
func parsePct(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 100 {
		return 0, fmt.Errorf("percentage %v out of range", f)
	}
	return f, nil
}

// GetWaiverTargets ranks free agents inside an ownership band.
func (h *AnalyticsHandler) GetWaiverTargets(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}

	filter := analytics.WaiverFilter{
		Position:     c.Query("position"),
		MinOwnership: 0,
		MaxOwnership: 100,
	}
	if v := c.Query("min_ownership"); v != "" {
		if f, err := parsePct(v); err == nil {
			filter.MinOwnership = f
		} else {
			utils.SendBadRequest(c, "invalid min_ownership parameter")
			return
		}
	}
	if v := c.Query("max_ownership"); v != "" {
		if f, err := parsePct(v); err == nil {
			filter.MaxOwnership = f
		} else {
			utils.SendBadRequest(c, "invalid max_ownership parameter")
			return
		}
	}

	league, err := h.data.League(c.Request.Context(), ref)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	pool, err := h.data.Players(c.Request.Context(), ref, 0)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	utils.SendSuccess(c, h.engine.WaiverRank(pool, filter, completedWeeks(league)))
}

// GetSleepers flags low-owned players on a rising scoring trend.
func (h *AnalyticsHandler) GetSleepers(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}

	pool, err := h.data.Players(c.Request.Context(), ref, 0)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	utils.SendSuccess(c, h.engine.SleeperDetect(pool, c.Query("position")))
}

// AnalyzeMatchup breaks a head-to-head pairing down slot by slot.
func (h *AnalyticsHandler) AnalyzeMatchup(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}

	teamAKey := c.Query("team_a")
	teamBKey := c.Query("team_b")
	if teamAKey == "" || teamBKey == "" {
		utils.SendBadRequest(c, "team_a and team_b query parameters are required")
		return
	}

	if week == 0 {
		league, err := h.data.League(c.Request.Context(), ref)
		if err != nil {
			utils.SendDomainError(c, err)
			return
		}
		week = league.Current
	}

	teams, err := h.data.Teams(c.Request.Context(), ref, week)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	teamA, found := findTeam(teams, teamAKey)
	if !found {
		utils.SendNotFound(c, "team_a not found in league")
		return
	}
	teamB, found := findTeam(teams, teamBKey)
	if !found {
		utils.SendNotFound(c, "team_b not found in league")
		return
	}

	utils.SendSuccess(c, h.engine.MatchupAnalyze(teamA, teamB, week))
}
