package models

import "time"

// Score is a single ledger entry. A player can have any number of entries in
// a game; removing an entry zeroes its value instead of deleting the row.
type Score struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GameID    uint      `gorm:"not null;index" json:"game_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
