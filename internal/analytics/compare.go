package analytics

import (
	"github.com/fantasyops/leaguedesk/internal/models"
)

// TeamComparison holds per-category deltas between two teams. Deltas
// are signed from team A's perspective: positive means A leads.
type TeamComparison struct {
	TeamA string `json:"team_a"`
	TeamB string `json:"team_b"`

	WinDelta  int `json:"win_delta"`
	LossDelta int `json:"loss_delta"`
	TieDelta  int `json:"tie_delta"`

	PointsDelta        float64 `json:"points_delta"`
	PointsAgainstDelta float64 `json:"points_against_delta"`

	RosterStrengthA     float64 `json:"roster_strength_a"`
	RosterStrengthB     float64 `json:"roster_strength_b"`
	RosterStrengthDelta float64 `json:"roster_strength_delta"`
}

// Compare returns per-category deltas between two teams: season record,
// cumulative points and roster strength.
func (e *Engine) Compare(teamA, teamB models.Team, completedWeeks int) TeamComparison {
	strengthA := e.rosterStrength(teamA, completedWeeks)
	strengthB := e.rosterStrength(teamB, completedWeeks)

	return TeamComparison{
		TeamA:               teamA.Name,
		TeamB:               teamB.Name,
		WinDelta:            teamA.Wins - teamB.Wins,
		LossDelta:           teamA.Losses - teamB.Losses,
		TieDelta:            teamA.Ties - teamB.Ties,
		PointsDelta:         teamA.PointsFor - teamB.PointsFor,
		PointsAgainstDelta:  teamA.PointsAgainst - teamB.PointsAgainst,
		RosterStrengthA:     strengthA,
		RosterStrengthB:     strengthB,
		RosterStrengthDelta: strengthA - strengthB,
	}
}
