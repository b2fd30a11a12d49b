package config

import (
	"log"
	"os"

	"restaurant-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultJWTSecret = "restaurant_api_super_secret"

// JWTSecret used to sign tokens. Load resolves it from the environment after
// reading .env; the fallback only applies when JWT_SECRET is set nowhere.
var JWTSecret = []byte(defaultJWTSecret)

type Config struct {
	Port      string
	DBPath    string
	S3Bucket  string
	S3Region  string
	AWSKeyID  string
	AWSSecret string
}

// Load reads .env (if present) and the environment
func Load() Config {
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", defaultJWTSecret))
	return Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "restaurants.db"),
		S3Bucket:  getEnv("S3_BUCKET", "restaurant-images"),
		S3Region:  getEnv("AWS_S3_REGION", "us-east-1"),
		AWSKeyID:  os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecret: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database and migrates all models
func InitDB(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Image{},
		&models.Meal{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}
