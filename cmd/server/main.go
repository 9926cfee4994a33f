package main

import (
	"log"

	"github.com/Janussr/jsr-casino-backend/internal/config"
	"github.com/Janussr/jsr-casino-backend/internal/database"
	"github.com/Janussr/jsr-casino-backend/internal/handlers"
	"github.com/Janussr/jsr-casino-backend/internal/middleware"
	"github.com/Janussr/jsr-casino-backend/internal/models"
	"github.com/Janussr/jsr-casino-backend/internal/services"

	_ "github.com/Janussr/jsr-casino-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Poker Night API
// @version         1.0
// @description     API for tracking recurring poker-session games, scores and the hall of fame
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	gameService := services.NewGameService(db)
	hofService := services.NewHallOfFameService(db)

	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(gameService)
	hofHandler := handlers.NewHallOfFameHandler(hofService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.JWTAuth(authService)
	admin := middleware.RequireRole(models.RoleAdmin)

	users := r.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.GET("", auth, authHandler.ListUsers)
		users.GET("/:id", auth, authHandler.GetUser)
	}

	games := r.Group("/games")
	games.Use(auth)
	{
		games.POST("/start", admin, gameHandler.StartGame)
		games.GET("", gameHandler.ListGames)
		games.GET("/:id", gameHandler.GetGameDetails)
		games.POST("/:id/score", gameHandler.AddScore)
		games.POST("/:id/points/bulk", gameHandler.AddScoresBulk)
		games.POST("/:id/end", admin, gameHandler.EndGame)
		games.POST("/:id/cancel", admin, gameHandler.CancelGame)
		games.DELETE("/remove/:id", admin, gameHandler.RemoveGame)
		games.POST("/:id/participants", gameHandler.AddParticipants)
		games.GET("/:id/participants", gameHandler.GetParticipants)
		games.DELETE("/:id/participants/:userId", admin, gameHandler.RemoveParticipant)
		games.GET("/:id/players/:userId/scores", gameHandler.GetPlayerScoreEntries)
		games.PATCH("/:id/rules", admin, gameHandler.UpdateRules)
		games.POST("/:id/rebuy", gameHandler.Rebuy)
		games.POST("/:id/bounty", gameHandler.RegisterKnockout)
	}

	points := r.Group("/points")
	points.Use(auth, admin)
	{
		points.DELETE("/:scoreId", gameHandler.RemoveScore)
	}

	r.GET("/hall-of-fame", auth, hofHandler.GetHallOfFame)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
