package handlers

import (
	"net/http"

	"github.com/Janussr/jsr-casino-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type HallOfFameHandler struct {
	hofService *services.HallOfFameService
}

func NewHallOfFameHandler(hofService *services.HallOfFameService) *HallOfFameHandler {
	return &HallOfFameHandler{hofService: hofService}
}

// GetHallOfFame godoc
// @Summary      Hall of fame
// @Description  Win counts per player across all finished games, most wins first
// @Tags         hall-of-fame
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.HallOfFameEntry
// @Router       /hall-of-fame [get]
func (h *HallOfFameHandler) GetHallOfFame(c *gin.Context) {
	entries, err := h.hofService.GetHallOfFame()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
