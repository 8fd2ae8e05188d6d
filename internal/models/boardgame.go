package models

import "time"

// Boardgame represents a catalog entry. Categories are shared labels attached
// through the boardgame_categories join table.
//
// The validate tags mirror the persistence invariants; rows reconstructed
// from raw join results are checked against them before being returned.
type Boardgame struct {
	ID          uint        `gorm:"primaryKey" json:"id" validate:"required,min=1"`
	Title       string      `gorm:"size:100;unique;not null" json:"title" validate:"required,max=100"`
	ImageURL    string      `gorm:"size:255" json:"image_url,omitempty" validate:"omitempty,uri,max=255"`
	Description string      `gorm:"size:500;not null" json:"description" validate:"required,max=500"`
	MinPlayers  int         `gorm:"not null" json:"min_players" validate:"required,min=1"`
	MaxPlayers  int         `gorm:"not null" json:"max_players" validate:"required,min=1"`
	MinTime     int         `gorm:"not null" json:"min_time" validate:"required,min=1"`
	MaxTime     int         `gorm:"not null" json:"max_time" validate:"required,min=1"`
	MinAge      int         `gorm:"not null" json:"min_age" validate:"required,min=1"`
	Categories  []*Category `gorm:"many2many:boardgame_categories;" json:"categories" validate:"dive"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}
