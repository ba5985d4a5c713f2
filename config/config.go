package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort     string
	HOST        string
	DatabaseURL string

	// JWT Settings
	JWTSecret         string
	JWTExpiration     string
	RefreshExpiration string

	// CORS Settings
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

func LoadConfig() *Config {
	// Load configuration from the environment, with .env as a convenience
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{
		AppPort:     os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HOST:        os.Getenv("HOST"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiration:     os.Getenv("JWT_EXPIRES_IN"),
		RefreshExpiration: os.Getenv("REFRESH_EXPIRES_IN"),

		CORSAllowOrigins: []string{"*"},
		CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}

	if config.AppPort == "" {
		config.AppPort = "8080"
	}

	return config
}
