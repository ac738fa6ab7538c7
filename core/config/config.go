package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	AI        AIConfig
	AutoPilot AutoPilotConfig
	Security  SecurityConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasicAuth          []string
	BasePath           string
	BaseUrl            string
	CorsAllowedOrigins []string
	ServerID           string
}

type DatabaseConfig struct {
	// Driver selects the post/profile store: memory, sqlite or postgres.
	Driver          string
	Name            string // File path for SQLite
	DSN             string // Connection string for Postgres
	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

type AIConfig struct {
	// Provider is gemini or openai.
	Provider string
	Model    string
	Gemini   string
	OpenAI   string
}

type AutoPilotConfig struct {
	Interval time.Duration
}

type SecurityConfig struct {
	SecretKey string
}

// Global provides access to the loaded configuration globally.
var Global *Config

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*Config, error) {
	debug := false
	if v := os.Getenv("APP_DEBUG"); v == "true" || v == "1" || v == "on" {
		debug = true
	} else if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		debug = true
	}

	var basicAuth []string
	if v := os.Getenv("APP_BASIC_AUTH"); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := os.Getenv("APP_CORS_ALLOWED_ORIGINS"); v != "" {
		corsOrigins = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            "v1.0.0",
		Port:               getEnv("APP_PORT", "3000"),
		Debug:              debug,
		Environment:        getEnv("APP_ENV", "development"),
		BasicAuth:          basicAuth,
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsAllowedOrigins: corsOrigins,
		ServerID:           getEnv("SERVER_ID", ""),
	}

	storages := getEnv("APP_BASE_DIR", "storages")
	dbCfg := DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", "memory"),
		Name:            filepath.Join(storages, "postpilot.db"),
		DSN:             getEnv("DB_DSN", ""),
		ValkeyEnabled:   getEnvBool("VALKEY_ENABLED", false),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "postpilot:"),
	}

	aiCfg := AIConfig{
		Provider: getEnv("AI_PROVIDER", "gemini"),
		Model:    getEnv("AI_MODEL", ""),
		Gemini:   getEnv("GEMINI_API_KEY", ""),
		OpenAI:   getEnv("OPENAI_API_KEY", ""),
	}

	autopilotCfg := AutoPilotConfig{
		Interval: getEnvDuration("AUTOPILOT_INTERVAL", 45*time.Second),
	}

	cfg := &Config{
		App:       appCfg,
		Database:  dbCfg,
		AI:        aiCfg,
		AutoPilot: autopilotCfg,
		Security:  SecurityConfig{SecretKey: getEnv("APP_SECRET_KEY", "changeme_please_change_me_in_prod_12345")},
	}

	Global = cfg
	return cfg, nil
}
