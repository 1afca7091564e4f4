package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Store   StoreConfig
	Feed    FeedConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
}

type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RetryInterval  time.Duration
}

type StoreConfig struct {
	Backend  string // "file" or "redis"
	DataDir  string
	RedisURL string
}

type FeedConfig struct {
	StaleAfter     time.Duration
	CacheRetention time.Duration
	PageSize       int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "4000"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "feedd.log"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
			RequestTimeout: getEnvAsDuration("BACKEND_REQUEST_TIMEOUT", 30*time.Second),
			RetryInterval:  getEnvAsDuration("BACKEND_RETRY_INTERVAL", 500*time.Millisecond),
		},
		Store: StoreConfig{
			Backend:  getEnv("STORE_BACKEND", "file"),
			DataDir:  getEnv("STORE_DATA_DIR", defaultDataDir()),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Feed: FeedConfig{
			StaleAfter:     getEnvAsDuration("FEED_STALE_AFTER", 5*time.Minute),
			CacheRetention: getEnvAsDuration("FEED_CACHE_RETENTION", 1*time.Hour),
			PageSize:       getEnvAsInt("FEED_PAGE_SIZE", 10),
		},
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".newsfeed"
	}
	return base + string(os.PathSeparator) + "newsfeed"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
