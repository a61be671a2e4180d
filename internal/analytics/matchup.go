package analytics

import (
	"fmt"
	"sort"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// SlotPairing lines up one starter from each side at the same lineup
// slot. Delta is signed from team A's perspective.
type SlotPairing struct {
	Slot    string  `json:"slot"`
	PlayerA string  `json:"player_a,omitempty"`
	ScoreA  float64 `json:"score_a"`
	PlayerB string  `json:"player_b,omitempty"`
	ScoreB  float64 `json:"score_b"`
	Delta   float64 `json:"delta"`
}

// MatchupAnalysis is a slot-by-slot breakdown of one head-to-head
// pairing for a week.
type MatchupAnalysis struct {
	TeamA    string        `json:"team_a"`
	TeamB    string        `json:"team_b"`
	Week     int           `json:"week"`
	Pairings []SlotPairing `json:"pairings"`
	TotalA   float64       `json:"total_a"`
	TotalB   float64       `json:"total_b"`
	Notes    []string      `json:"notes,omitempty"`
}

// benched slots are excluded from starter pairings.
func benched(slot string) bool {
	return slot == "BE" || slot == "IR"
}

// MatchupAnalyze pairs the two rosters' starters by lineup slot and
// reports per-pairing score deltas for the given week. When projection
// data is present it adds an aggregate projected-versus-actual note per
// side.
func (e *Engine) MatchupAnalyze(teamA, teamB models.Team, week int) MatchupAnalysis {
	analysis := MatchupAnalysis{
		TeamA: teamA.Name,
		TeamB: teamB.Name,
		Week:  week,
	}

	slotsA := startersBySlot(teamA, week)
	slotsB := startersBySlot(teamB, week)

	slots := make(map[string]bool)
	for slot := range slotsA {
		slots[slot] = true
	}
	for slot := range slotsB {
		slots[slot] = true
	}
	ordered := make([]string, 0, len(slots))
	for slot := range slots {
		ordered = append(ordered, slot)
	}
	sort.Strings(ordered)

	for _, slot := range ordered {
		a, b := slotsA[slot], slotsB[slot]
		for i := 0; i < len(a) || i < len(b); i++ {
			pairing := SlotPairing{Slot: slot}
			if i < len(a) {
				pairing.PlayerA = a[i].name
				pairing.ScoreA = a[i].score
			}
			if i < len(b) {
				pairing.PlayerB = b[i].name
				pairing.ScoreB = b[i].score
			}
			pairing.Delta = pairing.ScoreA - pairing.ScoreB
			analysis.TotalA += pairing.ScoreA
			analysis.TotalB += pairing.ScoreB
			analysis.Pairings = append(analysis.Pairings, pairing)
		}
	}

	if note, ok := projectionNote(teamA, analysis.TotalA); ok {
		analysis.Notes = append(analysis.Notes, note)
	}
	if note, ok := projectionNote(teamB, analysis.TotalB); ok {
		analysis.Notes = append(analysis.Notes, note)
	}
	return analysis
}

type starter struct {
	name  string
	score float64
}

// startersBySlot groups a roster's non-bench players by lineup slot with
// their score for the given week. Within a slot, higher scores sort
// first so multi-player slots pair strongest against strongest.
func startersBySlot(t models.Team, week int) map[string][]starter {
	slots := make(map[string][]starter)
	for _, p := range t.Roster {
		slot := p.LineupSlot
		if slot == "" {
			slot = p.Position
		}
		if benched(slot) {
			continue
		}
		slots[slot] = append(slots[slot], starter{name: p.Name, score: weekScore(p, week)})
	}
	for slot := range slots {
		s := slots[slot]
		sort.SliceStable(s, func(i, j int) bool { return s[i].score > s[j].score })
	}
	return slots
}

func weekScore(p models.Player, week int) float64 {
	if week < 1 || week > len(p.WeekScores) {
		return 0
	}
	return p.WeekScores[week-1]
}

// projectionNote summarizes actual total against the roster's projection
// when any starter carries projection data.
func projectionNote(t models.Team, actual float64) (string, bool) {
	var projected float64
	var present bool
	for _, p := range t.Roster {
		if benched(p.LineupSlot) {
			continue
		}
		if p.ProjectedPoints > 0 {
			present = true
		}
		projected += p.ProjectedPoints
	}
	if !present {
		return "", false
	}
	diff := actual - projected
	direction := "over"
	if diff < 0 {
		direction = "under"
		diff = -diff
	}
	return fmt.Sprintf("%s: %.1f actual vs %.1f projected (%.1f %s)", t.Name, actual, projected, diff, direction), true
}
