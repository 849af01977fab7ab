package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the root configuration for the service.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	JWT        JWTConfig        `json:"jwt"`
	Cache      CacheConfig      `json:"cache"`
	Classifier ClassifierConfig `json:"classifier"`
	TikTok     TikTokConfig     `json:"tiktok"`
	Scrape     ScrapeConfig     `json:"scrape"`
	Worker     WorkerConfig     `json:"worker"`
	RateLimits RateLimitsConfig `json:"rateLimits"`
	App        AppConfig        `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host  string `json:"host"`
	Port  int    `json:"port"`
	Debug bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres PostgreSQLConfig `json:"postgres"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnectTimeout  int           `json:"connectTimeout"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	PublicKey string `json:"publicKey"`
}

// CacheConfig holds the redis cache configuration
type CacheConfig struct {
	Enabled  bool          `json:"enabled"`
	Address  string        `json:"address"`
	Password string        `json:"password"`
	Database int           `json:"database"`
	TTL      time.Duration `json:"ttl"`
}

// ClassifierConfig holds classification service configuration
type ClassifierConfig struct {
	APIKey  string        `json:"apiKey"`
	BaseURL string        `json:"baseUrl"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// TikTokConfig holds TikTok platform API configuration
type TikTokConfig struct {
	APIBaseURL   string `json:"apiBaseUrl"`
	AuthBaseURL  string `json:"authBaseUrl"`
	ClientKey    string `json:"clientKey"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectUri"`
}

// ScrapeConfig holds page-fetch configuration for URL imports
type ScrapeConfig struct {
	Timeout   time.Duration `json:"timeout"`
	UserAgent string        `json:"userAgent"`
}

// WorkerConfig holds enrichment worker pool configuration
type WorkerConfig struct {
	Enabled           bool          `json:"enabled"`
	Concurrency       int           `json:"concurrency"`
	PollInterval      time.Duration `json:"pollInterval"`
	ProcessingTimeout time.Duration `json:"processingTimeout"`
}

// RateLimitConfig holds rate limiting configuration for a specific endpoint
type RateLimitConfig struct {
	Enabled  bool          `json:"enabled"`
	Max      int           `json:"max"`
	Duration time.Duration `json:"duration"`
}

// RateLimitsConfig holds rate limiting configuration for all endpoints
type RateLimitsConfig struct {
	Ingest RateLimitConfig `json:"ingest"`
	Import RateLimitConfig `json:"import"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name      string `json:"name"`
	WebDomain string `json:"webDomain"`
}

// LoadFromEnv builds the configuration from environment variables, loading a
// .env file first when one is present.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's not an error if the .env file doesn't exist.
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := &Config{
		Server: ServerConfig{
			Host:  getEnvOrDefault("HOST", "0.0.0.0"),
			Port:  getEnvAsInt("SERVER_PORT", 8080),
			Debug: getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:            getEnvAsInt("POSTGRES_PORT", 5432),
				Username:        getEnvOrDefault("POSTGRES_USERNAME", "postgres"),
				Password:        getEnvOrDefault("POSTGRES_PASSWORD", ""),
				Database:        getEnvOrDefault("POSTGRES_DATABASE", "pocketmark"),
				SSLMode:         getEnvOrDefault("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
				ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
		JWT: JWTConfig{
			PublicKey: getEnvOrDefault("JWT_PUBLIC_KEY", ""),
		},
		Cache: CacheConfig{
			Enabled:  getEnvAsBool("CACHE_ENABLED", true),
			Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			Database: getEnvAsInt("REDIS_DATABASE", 0),
			TTL:      getEnvAsDuration("CACHE_TTL", 1*time.Hour),
		},
		Classifier: ClassifierConfig{
			APIKey:  getEnvOrDefault("CLASSIFIER_API_KEY", ""),
			BaseURL: getEnvOrDefault("CLASSIFIER_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnvOrDefault("CLASSIFIER_MODEL", "gpt-4o-mini"),
			Timeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 30*time.Second),
		},
		TikTok: TikTokConfig{
			APIBaseURL:   getEnvOrDefault("TIKTOK_API_BASE_URL", "https://open.tiktokapis.com"),
			AuthBaseURL:  getEnvOrDefault("TIKTOK_AUTH_BASE_URL", "https://www.tiktok.com"),
			ClientKey:    getEnvOrDefault("TIKTOK_CLIENT_KEY", ""),
			ClientSecret: getEnvOrDefault("TIKTOK_CLIENT_SECRET", ""),
			RedirectURI:  getEnvOrDefault("TIKTOK_REDIRECT_URI", ""),
		},
		Scrape: ScrapeConfig{
			Timeout:   getEnvAsDuration("SCRAPE_TIMEOUT", 15*time.Second),
			UserAgent: getEnvOrDefault("SCRAPE_USER_AGENT", "pocketmark-bot/1.0"),
		},
		Worker: WorkerConfig{
			Enabled:           getEnvAsBool("WORKER_ENABLED", true),
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 4),
			PollInterval:      getEnvAsDuration("WORKER_POLL_INTERVAL", 5*time.Second),
			ProcessingTimeout: getEnvAsDuration("WORKER_PROCESSING_TIMEOUT", 5*time.Minute),
		},
		RateLimits: RateLimitsConfig{
			Ingest: RateLimitConfig{
				Enabled:  getEnvAsBool("RATE_LIMIT_INGEST_ENABLED", true),
				Max:      getEnvAsInt("RATE_LIMIT_INGEST_MAX", 60),
				Duration: getEnvAsDuration("RATE_LIMIT_INGEST_DURATION", 1*time.Minute),
			},
			Import: RateLimitConfig{
				Enabled:  getEnvAsBool("RATE_LIMIT_IMPORT_ENABLED", true),
				Max:      getEnvAsInt("RATE_LIMIT_IMPORT_MAX", 10),
				Duration: getEnvAsDuration("RATE_LIMIT_IMPORT_DURATION", 1*time.Minute),
			},
		},
		App: AppConfig{
			Name:      getEnvOrDefault("APP_NAME", "Pocketmark"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
		},
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
