package services

import "github.com/Janussr/jsr-casino-backend/internal/models"

// canViewScoreboard decides whether a caller may see a game's per-player
// totals. Live scoreboards are admin-only; finished games are public.
func canViewScoreboard(game *models.Game, callerRole string) bool {
	return game.IsFinished || callerRole == models.RoleAdmin
}
