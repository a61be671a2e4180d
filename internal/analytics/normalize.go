package analytics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// ErrIncompatibleScoringSchemes means two leagues' scoring settings
// cannot be mapped onto the common baseline, so their scores are not
// comparable.
var ErrIncompatibleScoringSchemes = errors.New("incompatible scoring schemes")

// standardScoring is the common baseline scheme cross-league values are
// expressed in. Category weights follow standard (non-PPR) scoring.
var standardScoring = map[string]float64{
	"passing_yards":        0.04,
	"passing_td":           4.0,
	"passing_int":          -2.0,
	"rushing_yards":        0.1,
	"rushing_td":           6.0,
	"receiving_yards":      0.1,
	"receiving_td":         6.0,
	"reception":            0.0,
	"fumble_lost":          -2.0,
	"fg_made":              3.0,
	"fg_made_50_plus":      5.0,
	"xp_made":              1.0,
	"def_points_allowed_0": 5.0,
	"def_interception":     2.0,
	"def_fumble_recovery":  2.0,
	"def_sack":             1.0,
}

// NormalizationFactor computes the multiplier that converts scores
// earned under the given scheme into baseline-equivalent scores. Every
// category the league scores must exist in the baseline table; an
// unknown category (including provider stats with no recognized name)
// makes the scheme incompatible rather than being silently dropped.
func NormalizationFactor(s models.ScoringSettings) (float64, error) {
	var leagueWeight, baseWeight float64
	for category, pts := range s.Categories {
		base, ok := standardScoring[category]
		if !ok {
			return 0, fmt.Errorf("%w: category %q has no baseline mapping", ErrIncompatibleScoringSchemes, category)
		}
		leagueWeight += abs(pts)
		baseWeight += abs(base)
	}
	if leagueWeight == 0 {
		return 0, fmt.Errorf("%w: scheme awards no points", ErrIncompatibleScoringSchemes)
	}
	return baseWeight / leagueWeight, nil
}

// CompareCrossLeague compares two teams from different leagues after
// rescaling each side's scores into the baseline scheme. Points and
// player scoring histories are scaled; win/loss records are league-local
// and pass through unchanged.
func (e *Engine) CompareCrossLeague(teamA models.Team, scoringA models.ScoringSettings, teamB models.Team, scoringB models.ScoringSettings, completedWeeks int) (TeamComparison, error) {
	factorA, err := NormalizationFactor(scoringA)
	if err != nil {
		return TeamComparison{}, err
	}
	factorB, err := NormalizationFactor(scoringB)
	if err != nil {
		return TeamComparison{}, err
	}
	return e.Compare(rescaleTeam(teamA, factorA), rescaleTeam(teamB, factorB), completedWeeks), nil
}

// NormalizeRanking scores players drawn from several leagues on the
// baseline scale. Entries are ranked by their rescaled composite value.
func (e *Engine) NormalizeRanking(sides map[string]struct {
	Scoring models.ScoringSettings
	Players []models.Player
}, completedWeeks int) ([]models.RecommendationScore, error) {
	var ranked []models.RecommendationScore
	for leagueID, side := range sides {
		factor, err := NormalizationFactor(side.Scoring)
		if err != nil {
			return nil, fmt.Errorf("league %s: %w", leagueID, err)
		}
		for _, p := range side.Players {
			ranked = append(ranked, models.RecommendationScore{
				PlayerID:   p.ID,
				PlayerName: p.Name,
				Position:   p.Position,
				Score:      e.playerValue(rescalePlayer(p, factor), completedWeeks),
				Tags:       []string{"league:" + leagueID},
			})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func rescaleTeam(t models.Team, factor float64) models.Team {
	t.PointsFor *= factor
	t.PointsAgainst *= factor
	roster := make([]models.Player, len(t.Roster))
	for i, p := range t.Roster {
		roster[i] = rescalePlayer(p, factor)
	}
	t.Roster = roster
	return t
}

func rescalePlayer(p models.Player, factor float64) models.Player {
	scores := make([]float64, len(p.WeekScores))
	for i, s := range p.WeekScores {
		scores[i] = s * factor
	}
	p.WeekScores = scores
	p.SeasonPoints *= factor
	p.ProjectedPoints *= factor
	return p
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
