package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyops/leaguedesk/internal/models"
)

func waiverCandidate(id, name, position string, ownership, weekly float64) models.Player {
	p := playerWithWeeks(id, name, position, weekly, weekly, weekly, weekly)
	p.OwnershipPct = ownership
	return p
}

func TestWaiverRank_OwnershipBandAndPositionFilter(t *testing.T) {
	engine := NewEngine(Options{})

	pool := []models.Player{
		waiverCandidate("1", "In Band WR", "WR", 12, 9),
		waiverCandidate("2", "Too Owned WR", "WR", 80, 14),
		waiverCandidate("3", "In Band RB", "RB", 10, 11),
		waiverCandidate("4", "Unowned WR", "WR", 0.5, 6),
	}

	recs := engine.WaiverRank(pool, WaiverFilter{
		Position:     "WR",
		MinOwnership: 1,
		MaxOwnership: 40,
	}, 4)

	require.Len(t, recs, 1)
	assert.Equal(t, "In Band WR", recs[0].PlayerName)
	assert.Equal(t, 1, recs[0].Rank)
}

func TestWaiverRank_OrderedAndCapped(t *testing.T) {
	engine := NewEngine(Options{WaiverTopN: 2})

	pool := []models.Player{
		waiverCandidate("1", "Third", "RB", 5, 6),
		waiverCandidate("2", "First", "RB", 5, 14),
		waiverCandidate("3", "Second", "RB", 5, 10),
	}

	recs := engine.WaiverRank(pool, WaiverFilter{MaxOwnership: 100}, 4)
	require.Len(t, recs, 2)
	assert.Equal(t, "First", recs[0].PlayerName)
	assert.Equal(t, "Second", recs[1].PlayerName)
	assert.Equal(t, []int{1, 2}, []int{recs[0].Rank, recs[1].Rank})
}

func TestWaiverRank_HiddenGemTag(t *testing.T) {
	engine := NewEngine(Options{})

	gem := waiverCandidate("1", "Hidden Gem", "TE", 8, 12)
	known := waiverCandidate("2", "Well Known", "TE", 45, 12)
	cheap := waiverCandidate("3", "Low Output", "TE", 8, 3)

	recs := engine.WaiverRank([]models.Player{gem, known, cheap}, WaiverFilter{MaxOwnership: 100}, 4)
	require.Len(t, recs, 3)

	tagsByName := map[string][]string{}
	for _, r := range recs {
		tagsByName[r.PlayerName] = r.Tags
	}
	assert.Contains(t, tagsByName["Hidden Gem"], "hidden-gem")
	assert.NotContains(t, tagsByName["Well Known"], "hidden-gem")
	assert.NotContains(t, tagsByName["Low Output"], "hidden-gem")
}

func TestWaiverRank_InjuryAndRisingTags(t *testing.T) {
	engine := NewEngine(Options{})

	hurt := waiverCandidate("1", "Hurt Guy", "WR", 20, 10)
	hurt.InjuryStatus = "QUESTIONABLE"

	riser := trendingPlayer("2", "Riser", 20)

	recs := engine.WaiverRank([]models.Player{hurt, riser}, WaiverFilter{MaxOwnership: 100}, 6)
	require.Len(t, recs, 2)

	tagsByName := map[string][]string{}
	for _, r := range recs {
		tagsByName[r.PlayerName] = r.Tags
	}
	assert.Contains(t, tagsByName["Hurt Guy"], "injury-risk:QUESTIONABLE")
	assert.Contains(t, tagsByName["Riser"], "rising:+150%")
}

func TestWaiverRank_ScorelessPlayersOmitted(t *testing.T) {
	engine := NewEngine(Options{})

	nothing := waiverCandidate("1", "No Production", "K", 2, 0)
	recs := engine.WaiverRank([]models.Player{nothing}, WaiverFilter{MaxOwnership: 100}, 4)
	assert.Empty(t, recs)
}
