package models

import "time"

// HallOfFame records the winner of a finished game, one row per game.
type HallOfFame struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GameID       uint      `gorm:"not null;uniqueIndex" json:"game_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	WinningScore int       `gorm:"not null" json:"winning_score"`
	WinDate      time.Time `json:"win_date"`
}
