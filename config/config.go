package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
)

type SeventeenTrackConfig struct {
	APIKey  string
	BaseURI string
}

type Config struct {
	DatabasePath   string
	LogsDirectory  string
	SeventeenTrack *SeventeenTrackConfig
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/tracker.db"
	}

	return &Config{
		DatabasePath:  databasePath,
		LogsDirectory: os.Getenv("LOGS_DIRECTORY"),
		SeventeenTrack: &SeventeenTrackConfig{
			APIKey:  os.Getenv("SEVENTEEN_TRACK_API_KEY"),
			BaseURI: os.Getenv("SEVENTEEN_TRACK_BASE_URI"),
		},
	}
}
