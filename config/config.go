package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Env              string
	Port             string
	MongoURI         string
	DBName           string
	JWTSecret        string
	RedisURL         string
	PostmarkAPIToken string
	EmailSender      string
}

// Load reads the .env file (when present) and assembles the configuration
// from environment variables.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	return Config{
		Env:              getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "3001"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:           getEnv("MONGO_DB", "nike_store"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RedisURL:         os.Getenv("REDIS_URL"),
		PostmarkAPIToken: os.Getenv("POSTMARK_API_TOKEN"),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
	}
}

// getEnv returns the environment variable or the fallback when unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
