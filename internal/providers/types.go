package providers

// Raw ESPN fantasy v3 response structures. Only the fields the mapper
// consumes are declared; everything else in the payload is ignored.

type rawLeagueResponse struct {
	ID              int             `json:"id"`
	SeasonID        int             `json:"seasonId"`
	ScoringPeriodID int             `json:"scoringPeriodId"`
	Settings        rawSettings     `json:"settings"`
	Teams           []rawTeam       `json:"teams"`
	Schedule        []rawMatchup    `json:"schedule"`
	Players         []rawPlayerWrap `json:"players"`
}

type rawSettings struct {
	Name            string             `json:"name"`
	ScoringSettings rawScoringSettings `json:"scoringSettings"`
}

type rawScoringSettings struct {
	ScoringItems []rawScoringItem `json:"scoringItems"`
}

type rawScoringItem struct {
	StatID int     `json:"statId"`
	Points float64 `json:"points"`
}

type rawTeam struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Abbrev string    `json:"abbrev"`
	Record rawRecord `json:"record"`
	Points float64   `json:"points"`
	Roster rawRoster `json:"roster"`
}

type rawRecord struct {
	Overall rawRecordLine `json:"overall"`
}

type rawRecordLine struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type rawRoster struct {
	Entries []rawRosterEntry `json:"entries"`
}

type rawRosterEntry struct {
	PlayerID        int                `json:"playerId"`
	LineupSlotID    int                `json:"lineupSlotId"`
	PlayerPoolEntry rawPlayerPoolEntry `json:"playerPoolEntry"`
}

type rawPlayerPoolEntry struct {
	Player rawPlayer `json:"player"`
}

type rawPlayerWrap struct {
	Player rawPlayer `json:"player"`
}

type rawPlayer struct {
	ID                int           `json:"id"`
	FullName          string        `json:"fullName"`
	DefaultPositionID int           `json:"defaultPositionId"`
	ProTeamAbbrev     string        `json:"proTeamAbbreviation"`
	InjuryStatus      string        `json:"injuryStatus"`
	Ownership         rawOwnership  `json:"ownership"`
	Stats             []rawStatLine `json:"stats"`
}

type rawOwnership struct {
	PercentOwned float64 `json:"percentOwned"`
}

type rawStatLine struct {
	ScoringPeriodID int `json:"scoringPeriodId"`
	SeasonID        int `json:"seasonId"`
	// StatSourceID 0 is actuals, 1 is projections.
	StatSourceID int     `json:"statSourceId"`
	AppliedTotal float64 `json:"appliedTotal"`
}

type rawMatchup struct {
	ID              int            `json:"id"`
	MatchupPeriodID int            `json:"matchupPeriodId"`
	Home            rawMatchupSide `json:"home"`
	Away            rawMatchupSide `json:"away"`
}

type rawMatchupSide struct {
	TeamID      int     `json:"teamId"`
	TotalPoints float64 `json:"totalPoints"`
}

// statNames maps ESPN scoring stat ids onto the category names used by
// ScoringSettings and the cross-league normalizer.
var statNames = map[int]string{
	3:  "passing_yards",
	4:  "passing_td",
	20: "passing_int",
	24: "rushing_yards",
	25: "rushing_td",
	42: "receiving_yards",
	43: "receiving_td",
	53: "reception",
	72: "fumble_lost",
	74: "fg_made",
	77: "fg_made_50_plus",
	86: "xp_made",
	89: "def_points_allowed_0",
	95: "def_interception",
	96: "def_fumble_recovery",
	99: "def_sack",
}

// positionNames maps ESPN default position ids onto roster positions.
var positionNames = map[int]string{
	1:  "QB",
	2:  "RB",
	3:  "WR",
	4:  "TE",
	5:  "K",
	16: "D/ST",
}

// lineupSlotNames maps ESPN lineup slot ids onto display slots. Bench
// and IR matter for matchup pairing; starters map to their position.
var lineupSlotNames = map[int]string{
	0:  "QB",
	2:  "RB",
	4:  "WR",
	6:  "TE",
	16: "D/ST",
	17: "K",
	20: "BE",
	21: "IR",
	23: "FLEX",
}
