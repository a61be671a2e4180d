package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyops/leaguedesk/internal/models"
)

func TestBuildLeague_MapsScoringCategories(t *testing.T) {
	raw := &rawLeagueResponse{
		ID:              12345,
		SeasonID:        2025,
		ScoringPeriodID: 6,
		Settings: rawSettings{
			Name: "Dynasty League",
			ScoringSettings: rawScoringSettings{
				ScoringItems: []rawScoringItem{
					{StatID: 53, Points: 1.0},
					{StatID: 4, Points: 4.0},
					{StatID: 999, Points: 2.5},
				},
			},
		},
		Teams: []rawTeam{{ID: 1}, {ID: 2}},
	}

	league, err := buildLeague(raw)
	require.NoError(t, err)
	assert.Equal(t, "12345", league.ID)
	assert.Equal(t, 2025, league.Season)
	assert.Equal(t, "Dynasty League", league.Name)
	assert.Equal(t, 6, league.Current)
	assert.Equal(t, 1.0, league.Scoring.Categories["reception"])
	assert.Equal(t, 4.0, league.Scoring.Categories["passing_td"])
	// Unknown stat ids survive under a synthetic name instead of vanishing.
	assert.Equal(t, 2.5, league.Scoring.Categories["stat_999"])
	assert.Equal(t, []string{"1", "2"}, league.TeamsIDs)
}

func TestBuildLeague_MissingIDFails(t *testing.T) {
	_, err := buildLeague(&rawLeagueResponse{SeasonID: 2025})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestBuildTeams_PartialFieldsTolerated(t *testing.T) {
	raw := &rawLeagueResponse{
		ID:       12345,
		SeasonID: 2025,
		Teams: []rawTeam{
			{
				// No record, no roster, abbrev only: still a valid team.
				ID:     7,
				Abbrev: "ABC",
			},
		},
	}

	teams, err := buildTeams(raw, models.LeagueRef{LeagueID: "12345", Season: 2025})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "7", teams[0].ID)
	assert.Equal(t, "ABC", teams[0].Name)
	assert.Zero(t, teams[0].Wins)
	assert.Empty(t, teams[0].Roster)
}

func TestBuildTeams_MissingTeamIDFails(t *testing.T) {
	raw := &rawLeagueResponse{
		ID:       12345,
		SeasonID: 2025,
		Teams:    []rawTeam{{Name: "No ID"}},
	}

	_, err := buildTeams(raw, models.LeagueRef{LeagueID: "12345", Season: 2025})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestBuildPlayer_WeeklyAndSeasonStats(t *testing.T) {
	rp := rawPlayer{
		ID:                1001,
		FullName:          "Test Receiver",
		DefaultPositionID: 3,
		ProTeamAbbrev:     "KC",
		InjuryStatus:      "QUESTIONABLE",
		Ownership:         rawOwnership{PercentOwned: 42.5},
		Stats: []rawStatLine{
			{ScoringPeriodID: 0, SeasonID: 2025, StatSourceID: 0, AppliedTotal: 55.4},
			{ScoringPeriodID: 0, SeasonID: 2025, StatSourceID: 1, AppliedTotal: 180.0},
			{ScoringPeriodID: 1, SeasonID: 2025, StatSourceID: 0, AppliedTotal: 12.3},
			{ScoringPeriodID: 3, SeasonID: 2025, StatSourceID: 0, AppliedTotal: 20.1},
			// Stale season line must be ignored.
			{ScoringPeriodID: 2, SeasonID: 2024, StatSourceID: 0, AppliedTotal: 99.0},
		},
	}

	player, err := buildPlayer(rp, 2025)
	require.NoError(t, err)
	assert.Equal(t, "1001", player.ID)
	assert.Equal(t, "WR", player.Position)
	assert.Equal(t, 55.4, player.SeasonPoints)
	assert.Equal(t, 180.0, player.ProjectedPoints)
	assert.Equal(t, 42.5, player.OwnershipPct)
	assert.True(t, player.Injured())

	// Week 2 was not played: zero score, not a gap.
	require.Len(t, player.WeekScores, 3)
	assert.Equal(t, 12.3, player.WeekScores[0])
	assert.Zero(t, player.WeekScores[1])
	assert.Equal(t, 20.1, player.WeekScores[2])
}

func TestBuildPlayer_DerivesSeasonTotalFromWeeks(t *testing.T) {
	rp := rawPlayer{
		ID:       1002,
		FullName: "No Rollup",
		Stats: []rawStatLine{
			{ScoringPeriodID: 1, SeasonID: 2025, StatSourceID: 0, AppliedTotal: 10.0},
			{ScoringPeriodID: 2, SeasonID: 2025, StatSourceID: 0, AppliedTotal: 8.5},
		},
	}

	player, err := buildPlayer(rp, 2025)
	require.NoError(t, err)
	assert.InDelta(t, 18.5, player.SeasonPoints, 0.001)
	assert.Equal(t, "UNK", player.Position)
}

func TestBuildPlayer_MissingIDFails(t *testing.T) {
	_, err := buildPlayer(rawPlayer{FullName: "Ghost"}, 2025)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestBuildMatchups_SkipsByeSidesAndFiltersWeek(t *testing.T) {
	raw := &rawLeagueResponse{
		ID:              12345,
		SeasonID:        2025,
		ScoringPeriodID: 4,
		Teams:           []rawTeam{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}},
		Schedule: []rawMatchup{
			{MatchupPeriodID: 4, Home: rawMatchupSide{TeamID: 1, TotalPoints: 101.2}, Away: rawMatchupSide{TeamID: 2, TotalPoints: 98.7}},
			{MatchupPeriodID: 4, Home: rawMatchupSide{TeamID: 1}}, // bye side
			{MatchupPeriodID: 5, Home: rawMatchupSide{TeamID: 1}, Away: rawMatchupSide{TeamID: 2}},
		},
	}

	// Week 0 resolves to the current scoring period.
	matchups, err := buildMatchups(raw, models.LeagueRef{LeagueID: "12345", Season: 2025}, 0)
	require.NoError(t, err)
	require.Len(t, matchups, 1)
	assert.Equal(t, 4, matchups[0].Week)
	assert.Equal(t, "Alpha", matchups[0].HomeTeam.Name)
	assert.Equal(t, "Beta", matchups[0].AwayTeam.Name)
	assert.Equal(t, 101.2, matchups[0].HomeScore)
	assert.Equal(t, 98.7, matchups[0].AwayScore)
	assert.False(t, matchups[0].FetchedAt.IsZero(), "matchups carry their fetch time")
}

func TestSortTeamsByStandings(t *testing.T) {
	teams := []models.Team{
		{Name: "Gamma", Wins: 3, PointsFor: 900},
		{Name: "Alpha", Wins: 5, PointsFor: 1000},
		{Name: "Beta", Wins: 5, PointsFor: 1100},
	}

	SortTeamsByStandings(teams)
	assert.Equal(t, "Beta", teams[0].Name)
	assert.Equal(t, "Alpha", teams[1].Name)
	assert.Equal(t, "Gamma", teams[2].Name)
}
