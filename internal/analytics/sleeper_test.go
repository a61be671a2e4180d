package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// trendingPlayer scores 4 points a week for the prior window and 10 a
// week for the recent window: a 150 percent rise.
func trendingPlayer(id, name string, ownership float64) models.Player {
	p := playerWithWeeks(id, name, "WR", 4, 4, 4, 10, 10, 10)
	p.OwnershipPct = ownership
	return p
}

func TestSleeperDetect_OwnershipCeiling(t *testing.T) {
	engine := NewEngine(Options{})

	lowOwned := trendingPlayer("1", "Hidden Riser", 4.0)
	highOwned := trendingPlayer("2", "Everyone Knows", 60.0)

	sleepers := engine.SleeperDetect([]models.Player{lowOwned, highOwned}, "")

	require.Len(t, sleepers, 1, "same trend above the ownership ceiling must not flag")
	assert.Equal(t, "Hidden Riser", sleepers[0].PlayerName)
	assert.Contains(t, sleepers[0].Tags, "trend:+150%")
	assert.Contains(t, sleepers[0].Tags, "ownership:4.0%")
}

func TestSleeperDetect_TrendThreshold(t *testing.T) {
	engine := NewEngine(Options{})

	// 10% rise: under the 25% threshold.
	flat := playerWithWeeks("1", "Steady", "RB", 10, 10, 10, 11, 11, 11)
	flat.OwnershipPct = 5

	// 30% rise: over the threshold.
	rising := playerWithWeeks("2", "Riser", "RB", 10, 10, 10, 13, 13, 13)
	rising.OwnershipPct = 5

	sleepers := engine.SleeperDetect([]models.Player{flat, rising}, "")
	require.Len(t, sleepers, 1)
	assert.Equal(t, "Riser", sleepers[0].PlayerName)
}

func TestSleeperDetect_RequiresTwoFullWindows(t *testing.T) {
	engine := NewEngine(Options{})

	// Only four weeks of history with a three-week window: no trend yet.
	young := playerWithWeeks("1", "Rookie", "WR", 2, 12, 14, 13)
	young.OwnershipPct = 3

	assert.Empty(t, engine.SleeperDetect([]models.Player{young}, ""))
}

func TestSleeperDetect_ScorelessPriorWindowIgnored(t *testing.T) {
	engine := NewEngine(Options{})

	// Zero prior-window production would make any output an infinite
	// trend; such players are skipped rather than dominating the list.
	fromNothing := playerWithWeeks("1", "From Nothing", "TE", 0, 0, 0, 8, 9, 10)
	fromNothing.OwnershipPct = 1

	assert.Empty(t, engine.SleeperDetect([]models.Player{fromNothing}, ""))
}

func TestSleeperDetect_PositionFilter(t *testing.T) {
	engine := NewEngine(Options{})

	wr := trendingPlayer("1", "WR Riser", 4.0)
	rb := trendingPlayer("2", "RB Riser", 4.0)
	rb.Position = "RB"

	sleepers := engine.SleeperDetect([]models.Player{wr, rb}, "rb")
	require.Len(t, sleepers, 1)
	assert.Equal(t, "RB Riser", sleepers[0].PlayerName)
}
