package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fantasyops/leaguedesk/internal/services"
	"github.com/fantasyops/leaguedesk/internal/utils"
)

// DataHandler handles standings, roster and matchup endpoints
type DataHandler struct {
	registry *services.LeagueRegistry
	data     *services.LeagueDataService
	logger   *logrus.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(registry *services.LeagueRegistry, data *services.LeagueDataService, logger *logrus.Logger) *DataHandler {
	return &DataHandler{registry: registry, data: data, logger: logger}
}

// GetLeague returns the resolved league's settings snapshot.
func (h *DataHandler) GetLeague(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}

	league, err := h.data.League(c.Request.Context(), ref)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, league)
}

// GetStandings returns teams ordered by record then points for.
func (h *DataHandler) GetStandings(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}

	teams, err := h.data.Standings(c.Request.Context(), ref)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	standings := make([]gin.H, 0, len(teams))
	for i, t := range teams {
		standings = append(standings, gin.H{
			"rank":           i + 1,
			"team_id":        t.ID,
			"name":           t.Name,
			"record":         t.Record(),
			"points_for":     t.PointsFor,
			"points_against": t.PointsAgainst,
		})
	}
	utils.SendSuccess(c, standings)
}

// GetRosters returns all team rosters for a week (0 = current).
func (h *DataHandler) GetRosters(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}

	teams, err := h.data.Teams(c.Request.Context(), ref, week)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, teams)
}

// GetMatchups returns the head-to-head pairings for a week (0 = current).
func (h *DataHandler) GetMatchups(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}

	matchups, err := h.data.Matchups(c.Request.Context(), ref, week)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, matchups)
}

// GetPlayers returns the league player pool including free agents.
func (h *DataHandler) GetPlayers(c *gin.Context) {
	ref, ok := resolveLeague(c, h.registry)
	if !ok {
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}

	players, err := h.data.Players(c.Request.Context(), ref, week)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, players)
}
