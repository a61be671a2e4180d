package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// WaiverFilter narrows the candidate pool for waiver recommendations.
type WaiverFilter struct {
	// Position filters to one position when set ("QB", "RB", ...).
	Position string
	// MinOwnership and MaxOwnership bound the ownership percentage
	// band, inclusive.
	MinOwnership float64
	MaxOwnership float64
}

// hiddenGemOwnership / hiddenGemScore mark the low-owned, high-value
// pickups worth calling out.
const (
	hiddenGemOwnership = 10.0
	hiddenGemScore     = 8.0
)

// WaiverRank filters the player pool by position and ownership band and
// ranks the remainder by the recency-weighted composite score. Returns
// at most WaiverTopN entries with explanation tags.
func (e *Engine) WaiverRank(pool []models.Player, filter WaiverFilter, completedWeeks int) []models.RecommendationScore {
	var candidates []models.RecommendationScore
	for _, p := range pool {
		if filter.Position != "" && !strings.EqualFold(p.Position, filter.Position) {
			continue
		}
		if p.OwnershipPct < filter.MinOwnership || p.OwnershipPct > filter.MaxOwnership {
			continue
		}

		score := e.playerValue(p, completedWeeks)
		if score <= 0 {
			continue
		}

		rec := models.RecommendationScore{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Position:   p.Position,
			Score:      score,
			Tags: []string{
				fmt.Sprintf("ownership:%.1f%%", p.OwnershipPct),
			},
		}
		if p.OwnershipPct <= hiddenGemOwnership && score >= hiddenGemScore {
			rec.Tags = append(rec.Tags, "hidden-gem")
		}
		if rising, pct := e.risingTrend(p); rising {
			rec.Tags = append(rec.Tags, fmt.Sprintf("rising:+%.0f%%", pct*100))
		}
		if p.Injured() {
			rec.Tags = append(rec.Tags, "injury-risk:"+p.InjuryStatus)
		}
		candidates = append(candidates, rec)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > e.opts.WaiverTopN {
		candidates = candidates[:e.opts.WaiverTopN]
	}
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}
