package services

import (
	"fmt"
	"time"

	"github.com/Janussr/jsr-casino-backend/internal/models"

	"gorm.io/gorm"
)

type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

type ScoreInput struct {
	UserID uint `json:"user_id" binding:"required" example:"1"`
	Points int  `json:"points" example:"50"`
}

type ScoreInfo struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Points   int    `json:"points"`
}

type ParticipantInfo struct {
	UserID         uint   `json:"user_id"`
	UserName       string `json:"user_name"`
	RebuyCount     int    `json:"rebuy_count"`
	ActiveBounties int    `json:"active_bounties"`
}

type ScoreboardEntry struct {
	UserID      uint   `json:"user_id"`
	UserName    string `json:"user_name"`
	TotalPoints int    `json:"total_points"`
}

type WinnerInfo struct {
	UserID       uint      `json:"user_id"`
	UserName     string    `json:"user_name"`
	WinningScore int       `json:"winning_score"`
	WinDate      time.Time `json:"win_date"`
}

type GameSummary struct {
	ID           uint              `json:"id"`
	GameNumber   int               `json:"game_number"`
	StartedAt    time.Time         `json:"started_at"`
	EndedAt      *time.Time        `json:"ended_at,omitempty"`
	IsFinished   bool              `json:"is_finished"`
	RebuyValue   *int              `json:"rebuy_value,omitempty"`
	BountyValue  *int              `json:"bounty_value,omitempty"`
	Participants []ParticipantInfo `json:"participants"`
	Scores       []ScoreInfo       `json:"scores"`
	Winner       *WinnerInfo       `json:"winner,omitempty"`
}

type GameDetails struct {
	ID         uint              `json:"id"`
	GameNumber int               `json:"game_number"`
	StartedAt  time.Time         `json:"started_at"`
	EndedAt    *time.Time        `json:"ended_at,omitempty"`
	IsFinished bool              `json:"is_finished"`
	Scores     []ScoreboardEntry `json:"scores"`
	Winner     *WinnerInfo       `json:"winner,omitempty"`
}

type PlayerScoreDetails struct {
	UserID      uint           `json:"user_id"`
	UserName    string         `json:"user_name"`
	TotalPoints int            `json:"total_points"`
	Entries     []models.Score `json:"entries"`
}

// StartGame opens a new game with the next free game number. Numbers are
// never reused; the unique index on game_number rejects a racing duplicate.
func (s *GameService) StartGame() (*models.Game, error) {
	var game models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.Game{}).
			Select("COALESCE(MAX(game_number), 0) + 1").
			Scan(&next).Error; err != nil {
			return err
		}

		game = models.Game{
			GameNumber: next,
			StartedAt:  time.Now().UTC(),
			IsFinished: false,
		}
		return tx.Create(&game).Error
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// AddScore appends a ledger entry for a player. Entries are never merged; a
// player's total is the sum of all their entries in the game.
func (s *GameService) AddScore(gameID, userID uint, points int) (*models.Score, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, fmt.Errorf("game %w", ErrNotFound)
	}
	if game.IsFinished {
		return nil, fmt.Errorf("%w: game is finished, no more points can be added", ErrInvalidState)
	}

	score := models.Score{
		GameID:    gameID,
		UserID:    userID,
		Value:     points,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&score).Error; err != nil {
		return nil, err
	}
	return &score, nil
}

// AddScoresBulk inserts a batch of ledger entries in one transaction. Any
// failure, including an unknown user mid-batch, rolls back the whole batch.
func (s *GameService) AddScoresBulk(gameID uint, entries []ScoreInput) ([]models.Score, error) {
	var scores []models.Score
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			return fmt.Errorf("game %w", ErrNotFound)
		}
		if game.IsFinished {
			return fmt.Errorf("%w: game is finished, no more points can be added", ErrInvalidState)
		}

		now := time.Now().UTC()
		for _, entry := range entries {
			var user models.User
			if err := tx.Select("id").First(&user, entry.UserID).Error; err != nil {
				return fmt.Errorf("user %d %w", entry.UserID, ErrNotFound)
			}

			score := models.Score{
				GameID:    gameID,
				UserID:    entry.UserID,
				Value:     entry.Points,
				CreatedAt: now,
			}
			if err := tx.Create(&score).Error; err != nil {
				return err
			}
			scores = append(scores, score)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// RemoveScore zeroes a ledger entry instead of deleting it, so the entry
// history of the game stays intact.
func (s *GameService) RemoveScore(scoreID uint) (*models.Score, error) {
	var score models.Score
	if err := s.db.First(&score, scoreID).Error; err != nil {
		return nil, fmt.Errorf("score %w", ErrNotFound)
	}

	var game models.Game
	if err := s.db.First(&game, score.GameID).Error; err != nil {
		return nil, fmt.Errorf("game %w", ErrNotFound)
	}
	if game.IsFinished {
		return nil, fmt.Errorf("%w: cannot remove points from a finished game", ErrInvalidState)
	}

	if err := s.db.Model(&score).Update("value", 0).Error; err != nil {
		return nil, err
	}
	return &score, nil
}

// EndGame freezes the game, computes the winner and writes the hall of fame
// record. Ties on total points go to the lowest user id. The game update is
// conditional on is_finished still being false, so two concurrent calls
// cannot both crown a winner.
func (s *GameService) EndGame(gameID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, gameID).Error; err != nil {
			return fmt.Errorf("game %w", ErrNotFound)
		}
		if game.IsFinished {
			return fmt.Errorf("%w: game already finished", ErrInvalidState)
		}

		var count int64
		if err := tx.Model(&models.Score{}).Where("game_id = ?", gameID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: no scores registered", ErrInvalidState)
		}

		var winner struct {
			UserID uint
			Total  int
		}
		if err := tx.Model(&models.Score{}).
			Select("user_id, SUM(value) AS total").
			Where("game_id = ?", gameID).
			Group("user_id").
			Order("total DESC, user_id ASC").
			Limit(1).
			Scan(&winner).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		hof := models.HallOfFame{
			GameID:       game.ID,
			UserID:       winner.UserID,
			WinningScore: winner.Total,
			WinDate:      now,
		}
		if err := tx.Create(&hof).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Game{}).
			Where("id = ? AND is_finished = ?", gameID, false).
			Updates(map[string]interface{}{"is_finished": true, "ended_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: game already finished", ErrInvalidState)
		}

		game.IsFinished = true
		game.EndedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// CancelGame deletes a scoreless open game. Its game number is not freed.
func (s *GameService) CancelGame(gameID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, gameID).Error; err != nil {
			return fmt.Errorf("game %w", ErrNotFound)
		}
		if game.IsFinished {
			return fmt.Errorf("%w: game already finished", ErrInvalidState)
		}

		var count int64
		if err := tx.Model(&models.Score{}).Where("game_id = ?", gameID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: cannot cancel a game with scores", ErrInvalidState)
		}

		if err := tx.Where("game_id = ?", gameID).Delete(&models.GameParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, gameID).Error
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// RemoveGame hard-deletes a game and everything that hangs off it, finished
// or not. Removing a finished game also erases its hall of fame record.
func (s *GameService) RemoveGame(gameID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			return fmt.Errorf("game %w", ErrNotFound)
		}

		if err := tx.Where("game_id = ?", gameID).Delete(&models.Score{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&models.GameParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&models.HallOfFame{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, gameID).Error
	})
}

// AddParticipants registers users on the game's roster. Users already on the
// roster are skipped, so the call is idempotent.
func (s *GameService) AddParticipants(gameID uint, userIDs []uint) error {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return fmt.Errorf("game %w", ErrNotFound)
	}
	if game.IsFinished {
		return fmt.Errorf("%w: cannot add participants to a finished game", ErrInvalidState)
	}

	for _, userID := range userIDs {
		var count int64
		if err := s.db.Model(&models.GameParticipant{}).
			Where("game_id = ? AND user_id = ?", gameID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		participant := models.GameParticipant{GameID: gameID, UserID: userID}
		if err := s.db.Create(&participant).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *GameService) GetParticipants(gameID uint) ([]ParticipantInfo, error) {
	var participants []models.GameParticipant
	if err := s.db.Where("game_id = ?", gameID).Order("id ASC").Find(&participants).Error; err != nil {
		return nil, err
	}

	names, err := s.userNames(participantUserIDs(participants))
	if err != nil {
		return nil, err
	}

	infos := make([]ParticipantInfo, 0, len(participants))
	for _, p := range participants {
		infos = append(infos, ParticipantInfo{
			UserID:         p.UserID,
			UserName:       names[p.UserID],
			RebuyCount:     p.RebuyCount,
			ActiveBounties: p.ActiveBounties,
		})
	}
	return infos, nil
}

func (s *GameService) IsUserParticipant(gameID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.GameParticipant{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Count(&count).Error
	return count > 0, err
}

// RemoveParticipant drops a user from the roster and returns the refreshed
// roster.
func (s *GameService) RemoveParticipant(gameID, userID uint) ([]ParticipantInfo, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, fmt.Errorf("game %w", ErrNotFound)
	}
	if game.IsFinished {
		return nil, fmt.Errorf("%w: cannot remove participants from a finished game", ErrInvalidState)
	}

	var participant models.GameParticipant
	if err := s.db.Where("game_id = ? AND user_id = ?", gameID, userID).
		First(&participant).Error; err != nil {
		return nil, fmt.Errorf("%w: user is not a participant in this game", ErrInvalidState)
	}

	if err := s.db.Delete(&participant).Error; err != nil {
		return nil, err
	}

	return s.GetParticipants(gameID)
}

// GetGameDetails returns the per-player totals and the winner. Before the
// game ends only admins may look at the scoreboard.
func (s *GameService) GetGameDetails(gameID uint, callerRole string) (*GameDetails, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, fmt.Errorf("game %w", ErrNotFound)
	}

	if !canViewScoreboard(&game, callerRole) {
		return nil, fmt.Errorf("%w: game is not finished yet", ErrForbidden)
	}

	var totals []struct {
		UserID uint
		Total  int
	}
	if err := s.db.Model(&models.Score{}).
		Select("user_id, SUM(value) AS total").
		Where("game_id = ?", gameID).
		Group("user_id").
		Order("total DESC, user_id ASC").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(totals))
	for _, t := range totals {
		userIDs = append(userIDs, t.UserID)
	}
	names, err := s.userNames(userIDs)
	if err != nil {
		return nil, err
	}

	scoreboard := make([]ScoreboardEntry, 0, len(totals))
	for _, t := range totals {
		scoreboard = append(scoreboard, ScoreboardEntry{
			UserID:      t.UserID,
			UserName:    names[t.UserID],
			TotalPoints: t.Total,
		})
	}

	winner, err := s.winnerInfo(gameID)
	if err != nil {
		return nil, err
	}

	return &GameDetails{
		ID:         game.ID,
		GameNumber: game.GameNumber,
		StartedAt:  game.StartedAt,
		EndedAt:    game.EndedAt,
		IsFinished: game.IsFinished,
		Scores:     scoreboard,
		Winner:     winner,
	}, nil
}

// GetPlayerScoreEntries returns a player's individual ledger entries in a
// game, oldest first, plus their running total.
func (s *GameService) GetPlayerScoreEntries(gameID, userID uint) (*PlayerScoreDetails, error) {
	var entries []models.Score
	if err := s.db.Where("game_id = ? AND user_id = ?", gameID, userID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no scores for this player in this game", ErrNotFound)
	}

	total := 0
	for _, entry := range entries {
		total += entry.Value
	}

	names, err := s.userNames([]uint{userID})
	if err != nil {
		return nil, err
	}

	return &PlayerScoreDetails{
		UserID:      userID,
		UserName:    names[userID],
		TotalPoints: total,
		Entries:     entries,
	}, nil
}

func (s *GameService) ListGames() ([]GameSummary, error) {
	var games []models.Game
	if err := s.db.Order("game_number ASC").Find(&games).Error; err != nil {
		return nil, err
	}

	var participants []models.GameParticipant
	if err := s.db.Order("id ASC").Find(&participants).Error; err != nil {
		return nil, err
	}
	var scores []models.Score
	if err := s.db.Order("created_at ASC, id ASC").Find(&scores).Error; err != nil {
		return nil, err
	}
	var winners []models.HallOfFame
	if err := s.db.Find(&winners).Error; err != nil {
		return nil, err
	}

	idSet := map[uint]struct{}{}
	for _, p := range participants {
		idSet[p.UserID] = struct{}{}
	}
	for _, sc := range scores {
		idSet[sc.UserID] = struct{}{}
	}
	for _, w := range winners {
		idSet[w.UserID] = struct{}{}
	}
	userIDs := make([]uint, 0, len(idSet))
	for id := range idSet {
		userIDs = append(userIDs, id)
	}
	names, err := s.userNames(userIDs)
	if err != nil {
		return nil, err
	}

	participantsByGame := map[uint][]ParticipantInfo{}
	for _, p := range participants {
		participantsByGame[p.GameID] = append(participantsByGame[p.GameID], ParticipantInfo{
			UserID:         p.UserID,
			UserName:       names[p.UserID],
			RebuyCount:     p.RebuyCount,
			ActiveBounties: p.ActiveBounties,
		})
	}
	scoresByGame := map[uint][]ScoreInfo{}
	for _, sc := range scores {
		scoresByGame[sc.GameID] = append(scoresByGame[sc.GameID], ScoreInfo{
			ID:       sc.ID,
			UserID:   sc.UserID,
			UserName: names[sc.UserID],
			Points:   sc.Value,
		})
	}
	winnersByGame := map[uint]*WinnerInfo{}
	for _, w := range winners {
		winnersByGame[w.GameID] = &WinnerInfo{
			UserID:       w.UserID,
			UserName:     names[w.UserID],
			WinningScore: w.WinningScore,
			WinDate:      w.WinDate,
		}
	}

	summaries := make([]GameSummary, 0, len(games))
	for _, game := range games {
		summaries = append(summaries, GameSummary{
			ID:           game.ID,
			GameNumber:   game.GameNumber,
			StartedAt:    game.StartedAt,
			EndedAt:      game.EndedAt,
			IsFinished:   game.IsFinished,
			RebuyValue:   game.RebuyValue,
			BountyValue:  game.BountyValue,
			Participants: participantsByGame[game.ID],
			Scores:       scoresByGame[game.ID],
			Winner:       winnersByGame[game.ID],
		})
	}
	return summaries, nil
}

// UpdateRules sets the game's rebuy and bounty stake values. Nil fields are
// left untouched.
func (s *GameService) UpdateRules(gameID uint, rebuyValue, bountyValue *int) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, fmt.Errorf("game %w", ErrNotFound)
	}
	if game.IsFinished {
		return nil, fmt.Errorf("%w: cannot change rules of a finished game", ErrInvalidState)
	}

	updates := map[string]interface{}{}
	if rebuyValue != nil {
		updates["rebuy_value"] = *rebuyValue
		game.RebuyValue = rebuyValue
	}
	if bountyValue != nil {
		updates["bounty_value"] = *bountyValue
		game.BountyValue = bountyValue
	}
	if len(updates) == 0 {
		return &game, nil
	}

	if err := s.db.Model(&models.Game{}).Where("id = ?", gameID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// RegisterRebuy increments the caller's rebuy count for an open game.
func (s *GameService) RegisterRebuy(gameID, userID uint) (*models.GameParticipant, error) {
	participant, err := s.activeParticipant(gameID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(participant).
		Update("rebuy_count", gorm.Expr("rebuy_count + 1")).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(participant, participant.ID).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

// RegisterKnockout credits a bounty to the caller for knocking out another
// participant of the same open game.
func (s *GameService) RegisterKnockout(gameID, userID, knockedOutUserID uint) (*models.GameParticipant, error) {
	participant, err := s.activeParticipant(gameID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeParticipant(gameID, knockedOutUserID); err != nil {
		return nil, err
	}

	if err := s.db.Model(participant).
		Update("active_bounties", gorm.Expr("active_bounties + 1")).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(participant, participant.ID).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *GameService) activeParticipant(gameID, userID uint) (*models.GameParticipant, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, fmt.Errorf("game %w", ErrNotFound)
	}
	if game.IsFinished {
		return nil, fmt.Errorf("%w: game is finished", ErrInvalidState)
	}

	var participant models.GameParticipant
	if err := s.db.Where("game_id = ? AND user_id = ?", gameID, userID).
		First(&participant).Error; err != nil {
		return nil, fmt.Errorf("%w: user is not a participant in this game", ErrInvalidState)
	}
	return &participant, nil
}

func (s *GameService) winnerInfo(gameID uint) (*WinnerInfo, error) {
	var hof models.HallOfFame
	if err := s.db.Where("game_id = ?", gameID).First(&hof).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	names, err := s.userNames([]uint{hof.UserID})
	if err != nil {
		return nil, err
	}
	return &WinnerInfo{
		UserID:       hof.UserID,
		UserName:     names[hof.UserID],
		WinningScore: hof.WinningScore,
		WinDate:      hof.WinDate,
	}, nil
}

func (s *GameService) userNames(userIDs []uint) (map[uint]string, error) {
	names := map[uint]string{}
	if len(userIDs) == 0 {
		return names, nil
	}

	var users []models.User
	if err := s.db.Select("id, name").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func participantUserIDs(participants []models.GameParticipant) []uint {
	ids := make([]uint, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	return ids
}
