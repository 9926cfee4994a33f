package handlers

import (
	"net/http"

	"github.com/Janussr/jsr-casino-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type AddScoreRequest struct {
	UserID uint `json:"user_id" binding:"required" example:"1"`
	Points int  `json:"points" example:"50"`
}

type BulkAddScoresRequest struct {
	GameID uint                  `json:"game_id" binding:"required" example:"1"`
	Scores []services.ScoreInput `json:"scores" binding:"required,min=1,dive"`
}

type AddParticipantsRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

type UpdateRulesRequest struct {
	RebuyValue  *int `json:"rebuy_value" example:"50"`
	BountyValue *int `json:"bounty_value" example:"20"`
}

type KnockoutRequest struct {
	KnockedOutUserID uint `json:"knocked_out_user_id" binding:"required" example:"2"`
}

// StartGame godoc
// @Summary      Start a new game
// @Description  Open a game with the next sequential game number
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Game
// @Router       /games/start [post]
func (h *GameHandler) StartGame(c *gin.Context) {
	game, err := h.gameService.StartGame()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// AddScore godoc
// @Summary      Add a score entry
// @Description  Append a point-value ledger entry for a player in an open game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        request body AddScoreRequest true "Score data"
// @Success      200 {object} Score
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/score [post]
func (h *GameHandler) AddScore(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	score, err := h.gameService.AddScore(gameID, req.UserID, req.Points)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// AddScoresBulk godoc
// @Summary      Add score entries in bulk
// @Description  Insert a batch of score entries atomically; on any failure nothing is persisted
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        request body BulkAddScoresRequest true "Batch of scores"
// @Success      200 {array} Score
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/points/bulk [post]
func (h *GameHandler) AddScoresBulk(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req BulkAddScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.GameID != gameID {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "game id mismatch"})
		return
	}

	scores, err := h.gameService.AddScoresBulk(gameID, req.Scores)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

// RemoveScore godoc
// @Summary      Remove a score entry
// @Description  Zero a ledger entry's value; the row itself is kept
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        scoreId path int true "Score ID"
// @Success      200 {object} Score
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /points/{scoreId} [delete]
func (h *GameHandler) RemoveScore(c *gin.Context) {
	scoreID, ok := pathID(c, "scoreId")
	if !ok {
		return
	}

	score, err := h.gameService.RemoveScore(scoreID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// EndGame godoc
// @Summary      End a game
// @Description  Freeze the game, compute the winner and write the hall of fame record
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} Game
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/end [post]
func (h *GameHandler) EndGame(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	game, err := h.gameService.EndGame(gameID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// CancelGame godoc
// @Summary      Cancel a game
// @Description  Delete an open game that has no score entries
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} Game
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/cancel [post]
func (h *GameHandler) CancelGame(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	game, err := h.gameService.CancelGame(gameID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// RemoveGame godoc
// @Summary      Remove a game
// @Description  Hard-delete a game and all its scores, participants and winner record
// @Tags         games
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /games/remove/{id} [delete]
func (h *GameHandler) RemoveGame(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.gameService.RemoveGame(gameID); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGames godoc
// @Summary      List games
// @Description  All games with rosters, score ledgers and winners
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.GameSummary
// @Router       /games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.gameService.ListGames()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGameDetails godoc
// @Summary      Game details
// @Description  Per-player totals and the winner; live scoreboards are admin-only
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} services.GameDetails
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameDetails(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	details, err := h.gameService.GetGameDetails(gameID, c.GetString("role"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// AddParticipants godoc
// @Summary      Add participants
// @Description  Register users on the game's roster; duplicates are skipped
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        request body AddParticipantsRequest true "User IDs"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/participants [post]
func (h *GameHandler) AddParticipants(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.gameService.AddParticipants(gameID, req.UserIDs); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "participants added"})
}

// GetParticipants godoc
// @Summary      List participants
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {array} services.ParticipantInfo
// @Router       /games/{id}/participants [get]
func (h *GameHandler) GetParticipants(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	participants, err := h.gameService.GetParticipants(gameID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// RemoveParticipant godoc
// @Summary      Remove a participant
// @Description  Drop a user from an open game's roster and return the refreshed roster
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        userId path int true "User ID"
// @Success      200 {array} services.ParticipantInfo
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/participants/{userId} [delete]
func (h *GameHandler) RemoveParticipant(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	participants, err := h.gameService.RemoveParticipant(gameID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// GetPlayerScoreEntries godoc
// @Summary      Player score entries
// @Description  A player's individual ledger entries in a game, oldest first, with their total
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        userId path int true "User ID"
// @Success      200 {object} services.PlayerScoreDetails
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/players/{userId}/scores [get]
func (h *GameHandler) GetPlayerScoreEntries(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	details, err := h.gameService.GetPlayerScoreEntries(gameID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdateRules godoc
// @Summary      Update game rules
// @Description  Set the rebuy and bounty stake values of an open game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        request body UpdateRulesRequest true "Rule values"
// @Success      200 {object} Game
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/rules [patch]
func (h *GameHandler) UpdateRules(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	game, err := h.gameService.UpdateRules(gameID, req.RebuyValue, req.BountyValue)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Rebuy godoc
// @Summary      Register a rebuy
// @Description  Increment the calling participant's rebuy count
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} GameParticipant
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/rebuy [post]
func (h *GameHandler) Rebuy(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	participant, err := h.gameService.RegisterRebuy(gameID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// RegisterKnockout godoc
// @Summary      Register a knockout
// @Description  Credit a bounty to the caller for knocking out another participant
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        request body KnockoutRequest true "Knockout data"
// @Success      200 {object} GameParticipant
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /games/{id}/bounty [post]
func (h *GameHandler) RegisterKnockout(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	var req KnockoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	participant, err := h.gameService.RegisterKnockout(gameID, userID, req.KnockedOutUserID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}
