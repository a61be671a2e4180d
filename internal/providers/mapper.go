package providers

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// The builder normalizes raw provider payloads into domain entities. It
// tolerates partial data (a player with no score yet this week maps to a
// zero score) and fails with ErrMalformedResponse only when structurally
// required fields are absent.

func buildLeague(raw *rawLeagueResponse) (*models.League, error) {
	if raw.ID == 0 {
		return nil, fmt.Errorf("%w: league id missing", ErrMalformedResponse)
	}

	categories := make(map[string]float64)
	for _, item := range raw.Settings.ScoringSettings.ScoringItems {
		name, ok := statNames[item.StatID]
		if !ok {
			// Unknown categories are kept under a stable synthetic name
			// so the normalizer sees them instead of silently dropping.
			name = "stat_" + strconv.Itoa(item.StatID)
		}
		categories[name] = item.Points
	}

	league := &models.League{
		ID:      strconv.Itoa(raw.ID),
		Season:  raw.SeasonID,
		Name:    raw.Settings.Name,
		Current: raw.ScoringPeriodID,
		Scoring: models.ScoringSettings{Categories: categories},
	}
	for _, t := range raw.Teams {
		league.TeamsIDs = append(league.TeamsIDs, strconv.Itoa(t.ID))
	}
	return league, nil
}

func buildTeams(raw *rawLeagueResponse, ref models.LeagueRef) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(raw.Teams))
	for _, rt := range raw.Teams {
		if rt.ID == 0 {
			return nil, fmt.Errorf("%w: team id missing", ErrMalformedResponse)
		}

		team := models.Team{
			LeagueID:      ref.LeagueID,
			Season:        ref.Season,
			ID:            strconv.Itoa(rt.ID),
			Name:          teamName(rt),
			Wins:          rt.Record.Overall.Wins,
			Losses:        rt.Record.Overall.Losses,
			Ties:          rt.Record.Overall.Ties,
			PointsFor:     rt.Record.Overall.PointsFor,
			PointsAgainst: rt.Record.Overall.PointsAgainst,
		}

		for _, entry := range rt.Roster.Entries {
			player, err := buildPlayer(entry.PlayerPoolEntry.Player, raw.SeasonID)
			if err != nil {
				return nil, err
			}
			player.LineupSlot = lineupSlotNames[entry.LineupSlotID]
			team.Roster = append(team.Roster, *player)
		}

		teams = append(teams, team)
	}
	return teams, nil
}

func buildMatchups(raw *rawLeagueResponse, ref models.LeagueRef, week int) ([]models.Matchup, error) {
	teams, err := buildTeams(raw, ref)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	if week == 0 {
		week = raw.ScoringPeriodID
	}

	fetchedAt := time.Now()
	var matchups []models.Matchup
	for _, rm := range raw.Schedule {
		if rm.MatchupPeriodID != week {
			continue
		}
		if rm.Home.TeamID == 0 || rm.Away.TeamID == 0 {
			// Bye weeks come through with a missing side; skip them.
			continue
		}
		matchups = append(matchups, models.Matchup{
			LeagueID:  ref.LeagueID,
			Season:    ref.Season,
			Week:      week,
			HomeTeam:  byID[strconv.Itoa(rm.Home.TeamID)],
			AwayTeam:  byID[strconv.Itoa(rm.Away.TeamID)],
			HomeScore: rm.Home.TotalPoints,
			AwayScore: rm.Away.TotalPoints,
			FetchedAt: fetchedAt,
		})
	}
	return matchups, nil
}

func buildPlayerPool(raw *rawLeagueResponse) ([]models.Player, error) {
	players := make([]models.Player, 0, len(raw.Players))
	for _, wrap := range raw.Players {
		player, err := buildPlayer(wrap.Player, raw.SeasonID)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	return players, nil
}

func buildPlayer(rp rawPlayer, season int) (*models.Player, error) {
	if rp.ID == 0 {
		return nil, fmt.Errorf("%w: player id missing", ErrMalformedResponse)
	}

	player := &models.Player{
		ID:           strconv.Itoa(rp.ID),
		Name:         rp.FullName,
		Position:     positionNames[rp.DefaultPositionID],
		ProTeam:      rp.ProTeamAbbrev,
		OwnershipPct: rp.Ownership.PercentOwned,
		InjuryStatus: rp.InjuryStatus,
	}
	if player.Position == "" {
		player.Position = "UNK"
	}

	// Collect per-week actuals and season-level lines. ESPN encodes the
	// season total as scoringPeriodId 0; projections carry source id 1.
	weekly := make(map[int]float64)
	maxWeek := 0
	for _, line := range rp.Stats {
		if line.SeasonID != 0 && line.SeasonID != season {
			continue
		}
		switch {
		case line.StatSourceID == 1 && line.ScoringPeriodID == 0:
			player.ProjectedPoints = line.AppliedTotal
		case line.StatSourceID == 0 && line.ScoringPeriodID == 0:
			player.SeasonPoints = line.AppliedTotal
		case line.StatSourceID == 0 && line.ScoringPeriodID > 0:
			weekly[line.ScoringPeriodID] = line.AppliedTotal
			if line.ScoringPeriodID > maxWeek {
				maxWeek = line.ScoringPeriodID
			}
		}
	}

	if maxWeek > 0 {
		player.WeekScores = make([]float64, maxWeek)
		for week, score := range weekly {
			player.WeekScores[week-1] = score
		}
	}

	// Derive the season total when the provider omits the rollup line.
	if player.SeasonPoints == 0 && len(player.WeekScores) > 0 {
		for _, s := range player.WeekScores {
			player.SeasonPoints += s
		}
	}

	return player, nil
}

func teamName(rt rawTeam) string {
	if rt.Name != "" {
		return rt.Name
	}
	return rt.Abbrev
}

// SortTeamsByStandings orders teams by record then points for, the order
// standings views present.
func SortTeamsByStandings(teams []models.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		return teams[i].PointsFor > teams[j].PointsFor
	})
}
