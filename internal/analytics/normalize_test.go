package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyops/leaguedesk/internal/models"
)

func standardScheme() models.ScoringSettings {
	return models.ScoringSettings{Categories: map[string]float64{
		"passing_td":      4.0,
		"rushing_yards":   0.1,
		"receiving_yards": 0.1,
		"reception":       0.0,
	}}
}

func pprScheme() models.ScoringSettings {
	return models.ScoringSettings{Categories: map[string]float64{
		"passing_td":      4.0,
		"rushing_yards":   0.1,
		"receiving_yards": 0.1,
		"reception":       1.0,
	}}
}

func TestNormalizationFactor_PPRScoresScaledDown(t *testing.T) {
	standard, err := NormalizationFactor(standardScheme())
	require.NoError(t, err)
	ppr, err := NormalizationFactor(pprScheme())
	require.NoError(t, err)

	// PPR awards more points for the same underlying production, so its
	// factor back to the baseline must be smaller.
	assert.Less(t, ppr, standard)
	assert.InDelta(t, 1.0, standard, 0.0001, "a scheme identical to the baseline categories maps one to one")
}

func TestNormalizationFactor_UnmappableCategoryFails(t *testing.T) {
	scheme := models.ScoringSettings{Categories: map[string]float64{
		"passing_td": 4.0,
		"stat_210":   2.5, // provider stat with no recognized name
	}}

	_, err := NormalizationFactor(scheme)
	assert.ErrorIs(t, err, ErrIncompatibleScoringSchemes)
	assert.Contains(t, err.Error(), "stat_210", "the offending category is named, never silently dropped")
}

func TestNormalizationFactor_EmptySchemeFails(t *testing.T) {
	_, err := NormalizationFactor(models.ScoringSettings{Categories: map[string]float64{}})
	assert.ErrorIs(t, err, ErrIncompatibleScoringSchemes)
}

func TestCompareCrossLeague_RescalesPoints(t *testing.T) {
	engine := NewEngine(Options{})

	// Identical production; team B's league hands out double points
	// across the board.
	teamA := models.Team{
		Name:      "Std Team",
		PointsFor: 700,
		Roster:    []models.Player{playerWithWeeks("1", "A", "WR", 10, 10, 10)},
	}
	teamB := models.Team{
		Name:      "Inflated Team",
		PointsFor: 1400,
		Roster:    []models.Player{playerWithWeeks("2", "B", "WR", 20, 20, 20)},
	}
	inflated := models.ScoringSettings{Categories: map[string]float64{
		"passing_td":      8.0,
		"rushing_yards":   0.2,
		"receiving_yards": 0.2,
		"reception":       0.0,
	}}

	cmp, err := engine.CompareCrossLeague(teamA, standardScheme(), teamB, inflated, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmp.PointsDelta, 0.0001, "equal production in different scoring must compare even")
	assert.InDelta(t, 0, cmp.RosterStrengthDelta, 0.0001)
}

func TestCompareCrossLeague_IncompatibleSchemeSurfaces(t *testing.T) {
	engine := NewEngine(Options{})

	bad := models.ScoringSettings{Categories: map[string]float64{"stat_999": 1.0}}
	_, err := engine.CompareCrossLeague(models.Team{}, standardScheme(), models.Team{}, bad, 3)
	assert.ErrorIs(t, err, ErrIncompatibleScoringSchemes)
}

func TestNormalizeRanking_TagsLeagueOfOrigin(t *testing.T) {
	engine := NewEngine(Options{})

	sides := map[string]struct {
		Scoring models.ScoringSettings
		Players []models.Player
	}{
		"L1": {Scoring: standardScheme(), Players: []models.Player{playerWithWeeks("1", "Std Player", "WR", 12, 12, 12)}},
		"L2": {Scoring: pprScheme(), Players: []models.Player{playerWithWeeks("2", "PPR Player", "WR", 12, 12, 12)}},
	}

	ranked, err := engine.NormalizeRanking(sides, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// Equal raw output, but the PPR score deflates toward the baseline.
	assert.Equal(t, "Std Player", ranked[0].PlayerName)
	assert.Contains(t, ranked[0].Tags, "league:L1")
	assert.Contains(t, ranked[1].Tags, "league:L2")
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}
