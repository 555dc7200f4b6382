package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// JWT
	JWTSecret string

	// Generation scheduler
	GenerationCron string
	HorizonDays    int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Scheduler: regenerate the upcoming horizon nightly by default
		GenerationCron: getEnv("GENERATION_CRON", "0 3 * * *"),
	}

	horizonStr := getEnv("GENERATION_HORIZON_DAYS", "90")
	horizon, err := strconv.Atoi(horizonStr)
	if err != nil || horizon < 1 {
		log.Printf("Warning: invalid GENERATION_HORIZON_DAYS value '%s', falling back to 90\n", horizonStr)
		horizon = 90
	}
	config.HorizonDays = horizon

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
