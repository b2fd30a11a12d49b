package main

import (
	"net/http"
	"os"
	"time"

	"restaurant-api/config"
	"restaurant-api/geocode"
	"restaurant-api/handlers"
	"restaurant-api/routes"
	"restaurant-api/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Load()
	db := config.InitDB(cfg.DBPath)
	logger.Info().Str("db", cfg.DBPath).Msg("database connected and migrated")

	store, err := storage.NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.AWSKeyID, cfg.AWSSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise object storage")
	}
	geocoder := geocode.NewOSMGeocoder()

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Discovery API",
		})
	})

	routes.SetupRoutes(
		r,
		handlers.NewAuthHandler(db),
		handlers.NewRestaurantHandler(db, store, geocoder, logger),
		handlers.NewMealHandler(db),
	)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
