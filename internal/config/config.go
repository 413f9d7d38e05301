// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Dataset     DatasetConfig
	Dashboard   DashboardConfig
	Twitter     TwitterConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatasetConfig holds corpus file configuration
type DatasetConfig struct {
	Dir           string
	WorldFile     string
	RegionFile    string
	TweetsFile    string
	Watch         bool
	WatchDebounce time.Duration
}

// DashboardConfig holds dashboard presentation configuration
type DashboardConfig struct {
	TableLimit int
}

// TwitterConfig holds configuration for the corpus refresher
type TwitterConfig struct {
	BearerToken string
	BaseURL     string
	Timeout     time.Duration
	WorldWoeID  string
	RegionWoeID string
	Query       string
	SearchCount int
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Dataset: DatasetConfig{
			Dir:           getEnv("DATASET_DIR", "datasets"),
			WorldFile:     getEnv("DATASET_WORLD_FILE", "WWTrends.json"),
			RegionFile:    getEnv("DATASET_REGION_FILE", "USTrends.json"),
			TweetsFile:    getEnv("DATASET_TWEETS_FILE", "WeLoveTheEarth.json"),
			Watch:         getEnvAsBool("DATASET_WATCH", true),
			WatchDebounce: getEnvAsDuration("DATASET_WATCH_DEBOUNCE", 500*time.Millisecond),
		},
		Dashboard: DashboardConfig{
			TableLimit: getEnvAsInt("DASHBOARD_TABLE_LIMIT", 10),
		},
		Twitter: TwitterConfig{
			BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			BaseURL:     getEnv("TWITTER_BASE_URL", "https://api.twitter.com/1.1"),
			Timeout:     getEnvAsDuration("TWITTER_TIMEOUT", 10*time.Second),
			WorldWoeID:  getEnv("TWITTER_WORLD_WOEID", "1"),
			RegionWoeID: getEnv("TWITTER_REGION_WOEID", "23424977"),
			Query:       getEnv("TWITTER_QUERY", "#WeLoveTheEarth"),
			SearchCount: getEnvAsInt("TWITTER_SEARCH_COUNT", 100),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Dataset.Dir == "" {
		return fmt.Errorf("dataset directory must be set")
	}
	if config.Dashboard.TableLimit <= 0 {
		return fmt.Errorf("dashboard table limit must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
