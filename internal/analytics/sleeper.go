package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// SleeperDetect flags players whose recent performance trend is rising
// while ownership has not caught up. A rising trend means the average of
// the most recent RecentWindow weeks exceeds the average of the prior
// RecentWindow weeks by at least SleeperTrendThreshold; ownership must
// sit below SleeperOwnershipCeiling.
func (e *Engine) SleeperDetect(pool []models.Player, position string) []models.RecommendationScore {
	var sleepers []models.RecommendationScore
	for _, p := range pool {
		if position != "" && !strings.EqualFold(p.Position, position) {
			continue
		}
		if p.OwnershipPct >= e.opts.SleeperOwnershipCeiling {
			continue
		}

		rising, pct := e.risingTrend(p)
		if !rising {
			continue
		}

		recent := p.RecentAverage(e.opts.RecentWindow)
		sleepers = append(sleepers, models.RecommendationScore{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Position:   p.Position,
			Score:      recent * (1 + pct),
			Tags: []string{
				fmt.Sprintf("trend:+%.0f%%", pct*100),
				fmt.Sprintf("ownership:%.1f%%", p.OwnershipPct),
			},
		})
	}

	sort.SliceStable(sleepers, func(i, j int) bool {
		return sleepers[i].Score > sleepers[j].Score
	})
	for i := range sleepers {
		sleepers[i].Rank = i + 1
	}
	return sleepers
}

// risingTrend compares the most recent window's average against the
// prior window's and reports the fractional increase when it clears the
// configured threshold. Players without two full windows of history, or
// with a scoreless prior window, never qualify.
func (e *Engine) risingTrend(p models.Player) (bool, float64) {
	k := e.opts.RecentWindow
	n := len(p.WeekScores)
	if n < 2*k {
		return false, 0
	}

	var recent, prior float64
	for _, s := range p.WeekScores[n-k:] {
		recent += s
	}
	for _, s := range p.WeekScores[n-2*k : n-k] {
		prior += s
	}
	recent /= float64(k)
	prior /= float64(k)

	if prior <= 0 {
		return false, 0
	}
	pct := (recent - prior) / prior
	return pct >= e.opts.SleeperTrendThreshold, pct
}
