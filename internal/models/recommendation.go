package models

// RecommendationScore is a ranked, explained score for a player or a
// trade side. Scores are derived fresh from cached data on every request
// and never persisted.
type RecommendationScore struct {
	PlayerID   string   `json:"player_id,omitempty"`
	PlayerName string   `json:"player_name,omitempty"`
	Position   string   `json:"position,omitempty"`
	Score      float64  `json:"score"`
	Rank       int      `json:"rank"`
	Tags       []string `json:"tags,omitempty"`
}

// TradeVerdict is the qualitative outcome of a trade evaluation.
type TradeVerdict string

const (
	VerdictFavorsGive TradeVerdict = "favors-give"
	VerdictFavorsGet  TradeVerdict = "favors-get"
	VerdictBalanced   TradeVerdict = "balanced"
)

// Mirror returns the verdict seen from the opposite side of the table.
func (v TradeVerdict) Mirror() TradeVerdict {
	switch v {
	case VerdictFavorsGive:
		return VerdictFavorsGet
	case VerdictFavorsGet:
		return VerdictFavorsGive
	}
	return VerdictBalanced
}
