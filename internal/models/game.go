package models

import "time"

// Game is one poker session. GameNumber is assigned sequentially and never
// reused, even after a game is cancelled or removed.
type Game struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GameNumber  int        `gorm:"uniqueIndex;not null" json:"game_number"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	IsFinished  bool       `gorm:"not null;default:false" json:"is_finished"`
	RebuyValue  *int       `json:"rebuy_value,omitempty"`
	BountyValue *int       `json:"bounty_value,omitempty"`
}
