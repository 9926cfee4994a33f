package models

type GameParticipant struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	GameID         uint `gorm:"not null;uniqueIndex:idx_game_participant" json:"game_id"`
	UserID         uint `gorm:"not null;uniqueIndex:idx_game_participant" json:"user_id"`
	RebuyCount     int  `gorm:"not null;default:0" json:"rebuy_count"`
	ActiveBounties int  `gorm:"not null;default:0" json:"active_bounties"`
}
