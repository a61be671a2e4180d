package models

import (
	"time"

	"github.com/google/uuid"
)

// RegisteredLeague is one league entry in a user's registry set. Rows
// never embed credential material; tokens live in their own table keyed
// by (league id, season).
type RegisteredLeague struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Community string    `json:"community" gorm:"index:idx_reg_owner"`
	UserID    string    `json:"user_id" gorm:"column:user_id;index:idx_reg_owner"`
	LeagueID  string    `json:"league_id"`
	Season    int       `json:"season"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	// Position preserves insertion order; the lowest position wins when
	// a removed default has to be re-derived.
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm default.
func (RegisteredLeague) TableName() string {
	return "registered_leagues"
}

// LeagueRef is the identifier pair handed to the provider client.
type LeagueRef struct {
	LeagueID string `json:"league_id"`
	Season   int    `json:"season"`
}

// Ref returns the provider-facing identifier pair for the entry.
func (r RegisteredLeague) Ref() LeagueRef {
	return LeagueRef{LeagueID: r.LeagueID, Season: r.Season}
}

// LeagueCredential is the persisted form of a private-league token pair,
// stored separately from registry entries.
type LeagueCredential struct {
	LeagueID  string    `json:"league_id" gorm:"primaryKey"`
	Season    int       `json:"season" gorm:"primaryKey"`
	SWID      string    `json:"-" gorm:"column:swid"`
	ESPNS2    string    `json:"-" gorm:"column:espn_s2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm default.
func (LeagueCredential) TableName() string {
	return "league_credentials"
}
