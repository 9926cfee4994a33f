package services

import (
	"time"

	"github.com/Janussr/jsr-casino-backend/internal/models"

	"gorm.io/gorm"
)

type HallOfFameService struct {
	db *gorm.DB
}

func NewHallOfFameService(db *gorm.DB) *HallOfFameService {
	return &HallOfFameService{db: db}
}

type HallOfFameEntry struct {
	UserID     uint      `json:"user_id"`
	PlayerName string    `json:"player_name"`
	Wins       int       `json:"wins"`
	LastWin    time.Time `json:"last_win"`
}

// GetHallOfFame aggregates the winner records into a per-player win count,
// most wins first. Ties on win count go to the lowest user id.
func (s *HallOfFameService) GetHallOfFame() ([]HallOfFameEntry, error) {
	var rows []struct {
		UserID  uint
		Wins    int
		LastWin time.Time
	}
	if err := s.db.Model(&models.HallOfFame{}).
		Select("user_id, COUNT(*) AS wins, MAX(win_date) AS last_win").
		Group("user_id").
		Order("wins DESC, user_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}

	names := map[uint]string{}
	if len(userIDs) > 0 {
		var users []models.User
		if err := s.db.Select("id, name").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	entries := make([]HallOfFameEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, HallOfFameEntry{
			UserID:     row.UserID,
			PlayerName: names[row.UserID],
			Wins:       row.Wins,
			LastWin:    row.LastWin,
		})
	}
	return entries, nil
}
