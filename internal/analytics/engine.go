// Package analytics computes comparisons and recommendations over
// already-built domain entities. Every function here is pure: no
// network, no cache, no clock — results derive only from the inputs and
// the engine's tunables.
package analytics

import (
	"github.com/fantasyops/leaguedesk/internal/models"
)

// Options are the scoring tunables. The recency weighting is a design
// choice: a hot streak should count more than stale season totals, so
// the recent-window average is weighted above the season-long average.
type Options struct {
	// RecencyWeight is the share of a player's composite value taken
	// from the recent-window average; the remainder comes from the
	// season average. Default 0.6.
	RecencyWeight float64
	// RecentWindow is the number of trailing weeks in the recent
	// average and the sleeper trend windows. Default 3.
	RecentWindow int
	// TradeBalancedBand is the half-width of the neutral band around a
	// zero net delta inside which a trade is called balanced. Default 5.
	TradeBalancedBand float64
	// SleeperTrendThreshold is the minimum fractional increase of the
	// recent-window average over the prior window to count as a rising
	// trend. Default 0.25 (25 percent).
	SleeperTrendThreshold float64
	// SleeperOwnershipCeiling is the ownership percentage a player must
	// be under to qualify as a sleeper. Default 15.
	SleeperOwnershipCeiling float64
	// WaiverTopN caps waiver recommendations. Default 15.
	WaiverTopN int
}

// DefaultOptions returns the documented default tunables.
func DefaultOptions() Options {
	return Options{
		RecencyWeight:           0.6,
		RecentWindow:            3,
		TradeBalancedBand:       5.0,
		SleeperTrendThreshold:   0.25,
		SleeperOwnershipCeiling: 15.0,
		WaiverTopN:              15,
	}
}

// Engine evaluates analytics queries with a fixed set of tunables.
type Engine struct {
	opts Options
}

// NewEngine creates an engine, filling zero-valued tunables with the
// documented defaults.
func NewEngine(opts Options) *Engine {
	defaults := DefaultOptions()
	if opts.RecencyWeight == 0 {
		opts.RecencyWeight = defaults.RecencyWeight
	}
	if opts.RecentWindow == 0 {
		opts.RecentWindow = defaults.RecentWindow
	}
	if opts.TradeBalancedBand == 0 {
		opts.TradeBalancedBand = defaults.TradeBalancedBand
	}
	if opts.SleeperTrendThreshold == 0 {
		opts.SleeperTrendThreshold = defaults.SleeperTrendThreshold
	}
	if opts.SleeperOwnershipCeiling == 0 {
		opts.SleeperOwnershipCeiling = defaults.SleeperOwnershipCeiling
	}
	if opts.WaiverTopN == 0 {
		opts.WaiverTopN = defaults.WaiverTopN
	}
	return &Engine{opts: opts}
}

// Options returns the engine's effective tunables.
func (e *Engine) Options() Options {
	return e.opts
}

// playerValue blends the recent-window average with the season average
// under the recency weight.
func (e *Engine) playerValue(p models.Player, completedWeeks int) float64 {
	recent := p.RecentAverage(e.opts.RecentWindow)
	season := p.SeasonAverage(completedWeeks)
	return e.opts.RecencyWeight*recent + (1-e.opts.RecencyWeight)*season
}

// rosterStrength is the mean composite value across a roster.
func (e *Engine) rosterStrength(t models.Team, completedWeeks int) float64 {
	if len(t.Roster) == 0 {
		return 0
	}
	var sum float64
	for _, p := range t.Roster {
		sum += e.playerValue(p, completedWeeks)
	}
	return sum / float64(len(t.Roster))
}
