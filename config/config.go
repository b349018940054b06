// Package config loads the application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binary needs at startup. It is constructed
// once in main and passed down explicitly; there is no global state.
type Config struct {
	AppName string
	Debug   bool

	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	DatabaseDSN     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	SecretKey string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string
	LogOutput string
	LogFile   string

	SeedOnStartup bool
}

// Load reads .env when present and builds the configuration with
// development defaults for anything unset.
func Load() *Config {
	// Missing .env is fine, the environment may be fully populated already.
	_ = godotenv.Load()

	return &Config{
		AppName: getString("APP_NAME", "ecommerce-api"),
		Debug:   getBool("DEBUG", false),

		HTTPAddr:        getString("HTTP_ADDR", ":8000"),
		ReadTimeout:     getDurationSeconds("HTTP_READ_TIMEOUT", 30),
		WriteTimeout:    getDurationSeconds("HTTP_WRITE_TIMEOUT", 30),
		ShutdownTimeout: getDurationSeconds("HTTP_SHUTDOWN_TIMEOUT", 10),

		DatabaseDSN:     getString("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=ecommerce port=5432 sslmode=disable"),
		MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getDurationSeconds("DB_CONN_MAX_LIFETIME", 300),

		SecretKey: getString("SECRET_KEY", "your-secret-key-change-in-production"),
		TokenTTL:  time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		LogLevel:  getString("LOG_LEVEL", "info"),
		LogFormat: getString("LOG_FORMAT", "json"),
		LogOutput: getString("LOG_OUTPUT", "stdout"),
		LogFile:   getString("LOG_FILE", "logs/api.log"),

		SeedOnStartup: getBool("SEED_ON_STARTUP", true),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationSeconds(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Second
}
