package analytics

import (
	"fmt"
	"sort"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// TradeContext carries the league state a trade is evaluated under.
type TradeContext struct {
	CompletedWeeks int `json:"completed_weeks"`
}

// TradeEvaluation is the outcome of scoring both sides of a proposal.
// NetDelta is get-side value minus give-side value, so a positive delta
// means the proposing team comes out ahead.
type TradeEvaluation struct {
	GiveValue float64                      `json:"give_value"`
	GetValue  float64                      `json:"get_value"`
	NetDelta  float64                      `json:"net_delta"`
	Verdict   models.TradeVerdict          `json:"verdict"`
	Give      []models.RecommendationScore `json:"give"`
	Get       []models.RecommendationScore `json:"get"`
	Tags      []string                     `json:"tags,omitempty"`
}

// TradeEvaluate scores each side by the recency-weighted blend of recent
// and season averages and renders a verdict inside the configured
// balanced band. Evaluating the mirrored proposal yields the mirrored
// verdict with an equal-magnitude delta.
func (e *Engine) TradeEvaluate(give, get []models.Player, tctx TradeContext) TradeEvaluation {
	eval := TradeEvaluation{
		Give: e.scoreSide(give, tctx.CompletedWeeks),
		Get:  e.scoreSide(get, tctx.CompletedWeeks),
	}
	for _, s := range eval.Give {
		eval.GiveValue += s.Score
	}
	for _, s := range eval.Get {
		eval.GetValue += s.Score
	}
	eval.NetDelta = eval.GetValue - eval.GiveValue

	switch {
	case eval.NetDelta > e.opts.TradeBalancedBand:
		eval.Verdict = models.VerdictFavorsGet
	case eval.NetDelta < -e.opts.TradeBalancedBand:
		eval.Verdict = models.VerdictFavorsGive
	default:
		eval.Verdict = models.VerdictBalanced
	}

	eval.Tags = append(eval.Tags, e.positionTags(give, get, tctx.CompletedWeeks)...)
	for _, p := range append(append([]models.Player{}, give...), get...) {
		if p.Injured() {
			eval.Tags = append(eval.Tags, fmt.Sprintf("injury-risk:%s (%s)", p.Name, p.InjuryStatus))
		}
	}

	return eval
}

func (e *Engine) scoreSide(side []models.Player, completedWeeks int) []models.RecommendationScore {
	scores := make([]models.RecommendationScore, 0, len(side))
	for _, p := range side {
		scores = append(scores, models.RecommendationScore{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Position:   p.Position,
			Score:      e.playerValue(p, completedWeeks),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

// positionTags reports which side holds the edge at each position
// touched by the trade.
func (e *Engine) positionTags(give, get []models.Player, completedWeeks int) []string {
	giveByPos := make(map[string]float64)
	getByPos := make(map[string]float64)
	for _, p := range give {
		giveByPos[p.Position] += e.playerValue(p, completedWeeks)
	}
	for _, p := range get {
		getByPos[p.Position] += e.playerValue(p, completedWeeks)
	}

	positions := make(map[string]bool)
	for pos := range giveByPos {
		positions[pos] = true
	}
	for pos := range getByPos {
		positions[pos] = true
	}

	sorted := make([]string, 0, len(positions))
	for pos := range positions {
		sorted = append(sorted, pos)
	}
	sort.Strings(sorted)

	var tags []string
	for _, pos := range sorted {
		diff := getByPos[pos] - giveByPos[pos]
		switch {
		case diff > 0:
			tags = append(tags, fmt.Sprintf("%s-edge:get (+%.1f)", pos, diff))
		case diff < 0:
			tags = append(tags, fmt.Sprintf("%s-edge:give (+%.1f)", pos, -diff))
		default:
			tags = append(tags, fmt.Sprintf("%s-edge:even", pos))
		}
	}
	return tags
}
