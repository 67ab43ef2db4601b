package config

import (
	"os"

	"github.com/joho/godotenv"
)

// ServerConfig is the environment-driven configuration for the HTTP server
// and its collaborators. A missing .env file is not an error; explicit
// environment variables always win.
type ServerConfig struct {
	ListenAddr   string
	RedisAddr    string // empty means in-memory result cache
	SettingsPath string // sqlite file for persisted waterfall settings
	Pretty       bool   // console log output instead of JSON
}

// LoadServerConfig reads .env (if present) and the process environment.
func LoadServerConfig() ServerConfig {
	_ = godotenv.Load()
	return ServerConfig{
		ListenAddr:   envOr("FIREPLAN_LISTEN_ADDR", ":8080"),
		RedisAddr:    os.Getenv("FIREPLAN_REDIS_ADDR"),
		SettingsPath: envOr("FIREPLAN_SETTINGS_PATH", "fireplan.db"),
		Pretty:       os.Getenv("FIREPLAN_ENV") != "production",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
