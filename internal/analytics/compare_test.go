package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fantasyops/leaguedesk/internal/models"
)

func TestCompare_RecordAndPointsDeltas(t *testing.T) {
	engine := NewEngine(Options{})

	alpha := models.Team{
		Name:          "Alpha",
		Wins:          5,
		Losses:        2,
		PointsFor:     812.4,
		PointsAgainst: 700.0,
	}
	beta := models.Team{
		Name:          "Beta",
		Wins:          3,
		Losses:        4,
		PointsFor:     768.9,
		PointsAgainst: 790.2,
	}

	cmp := engine.Compare(alpha, beta, 7)

	assert.Equal(t, "Alpha", cmp.TeamA)
	assert.Equal(t, "Beta", cmp.TeamB)
	assert.Equal(t, 2, cmp.WinDelta)
	assert.Equal(t, -2, cmp.LossDelta)
	assert.InDelta(t, 43.5, cmp.PointsDelta, 0.001)
	assert.InDelta(t, -90.2, cmp.PointsAgainstDelta, 0.001)
}

func TestCompare_RosterStrength(t *testing.T) {
	engine := NewEngine(Options{})

	strong := models.Team{
		Name: "Strong",
		Roster: []models.Player{
			playerWithWeeks("1", "A", "RB", 20, 20, 20),
			playerWithWeeks("2", "B", "WR", 18, 18, 18),
		},
	}
	weak := models.Team{
		Name: "Weak",
		Roster: []models.Player{
			playerWithWeeks("3", "C", "RB", 5, 5, 5),
			playerWithWeeks("4", "D", "WR", 4, 4, 4),
		},
	}

	cmp := engine.Compare(strong, weak, 3)
	assert.Greater(t, cmp.RosterStrengthA, cmp.RosterStrengthB)
	assert.InDelta(t, cmp.RosterStrengthA-cmp.RosterStrengthB, cmp.RosterStrengthDelta, 0.0001)

	// A comparison is antisymmetric on every delta.
	flipped := engine.Compare(weak, strong, 3)
	assert.InDelta(t, -cmp.RosterStrengthDelta, flipped.RosterStrengthDelta, 0.0001)
}

func TestCompare_EmptyRosterIsZeroStrength(t *testing.T) {
	engine := NewEngine(Options{})

	cmp := engine.Compare(models.Team{Name: "Empty"}, models.Team{Name: "AlsoEmpty"}, 5)
	assert.Zero(t, cmp.RosterStrengthA)
	assert.Zero(t, cmp.RosterStrengthB)
	assert.Zero(t, cmp.RosterStrengthDelta)
}

func TestPlayerValue_RecencyBlend(t *testing.T) {
	engine := NewEngine(Options{RecencyWeight: 0.6, RecentWindow: 3})

	// Season average 10 over 6 weeks, recent average 15.
	p := playerWithWeeks("1", "Blend", "WR", 5, 5, 5, 15, 15, 15)

	// 0.6*15 + 0.4*10 = 13
	assert.InDelta(t, 13.0, engine.playerValue(p, 6), 0.0001)
}
