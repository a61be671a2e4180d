package models

import (
	"fmt"
	"time"
)

// League is one fantasy competition instance, identified by the provider
// league id plus season year.
type League struct {
	ID       string          `json:"id"`
	Season   int             `json:"season"`
	Name     string          `json:"name"`
	Scoring  ScoringSettings `json:"scoring"`
	Current  int             `json:"current_week"`
	TeamsIDs []string        `json:"team_ids,omitempty"`
}

// ScoringSettings is a snapshot of the league's scoring configuration.
// Category keys are provider stat names ("passing_td", "reception", ...)
// and values are points awarded per unit of that stat.
type ScoringSettings struct {
	Categories map[string]float64 `json:"categories"`
}

// Team is a fantasy roster inside a league.
type Team struct {
	LeagueID      string   `json:"league_id"`
	Season        int      `json:"season"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Roster        []Player `json:"roster"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	Ties          int      `json:"ties"`
	PointsFor     float64  `json:"points_for"`
	PointsAgainst float64  `json:"points_against"`
}

// Record returns wins, losses and ties as a display string.
func (t Team) Record() string {
	if t.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
	}
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// Player is a rostered or free-agent player.
type Player struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	LineupSlot   string  `json:"lineup_slot,omitempty"`
	ProTeam      string  `json:"pro_team,omitempty"`
	OwnershipPct float64 `json:"ownership_pct"`
	// WeekScores is ordered by week; index 0 is week 1. Weeks not yet
	// played carry a zero score.
	WeekScores      []float64 `json:"week_scores"`
	SeasonPoints    float64   `json:"season_points"`
	ProjectedPoints float64   `json:"projected_points"`
	InjuryStatus    string    `json:"injury_status,omitempty"`
}

// SeasonAverage returns the per-week season average through the given
// number of completed weeks.
func (p Player) SeasonAverage(completedWeeks int) float64 {
	if completedWeeks <= 0 {
		return 0
	}
	return p.SeasonPoints / float64(completedWeeks)
}

// RecentAverage returns the average over the most recent window weeks of
// the score history.
func (p Player) RecentAverage(window int) float64 {
	n := len(p.WeekScores)
	if window <= 0 || n == 0 {
		return 0
	}
	if window > n {
		window = n
	}
	var sum float64
	for _, s := range p.WeekScores[n-window:] {
		sum += s
	}
	return sum / float64(window)
}

// Injured reports whether the player carries a non-active injury flag.
func (p Player) Injured() bool {
	switch p.InjuryStatus {
	case "", "ACTIVE", "NORMAL":
		return false
	}
	return true
}

// Matchup is one head-to-head pairing for a week.
type Matchup struct {
	LeagueID  string    `json:"league_id"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	HomeTeam  Team      `json:"home_team"`
	AwayTeam  Team      `json:"away_team"`
	HomeScore float64   `json:"home_score"`
	AwayScore float64   `json:"away_score"`
	FetchedAt time.Time `json:"fetched_at"`
}

