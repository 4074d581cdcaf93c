package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	FrontendURL  string
}

// Load reads configuration from the environment.
//
// Recognized variables:
//
//	PORT          - server port (default 5000)
//	DATABASE_URL  - connection string (required)
//	DATABASE_TYPE - "postgres" or "sqlite" (default "postgres")
//	FRONTEND_URL  - allowed CORS origin (default http://localhost:3000)
func Load() (Config, error) {
	v := viper.New()

	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("database_type", "DATABASE_TYPE")
	_ = v.BindEnv("frontend_url", "FRONTEND_URL")

	v.SetDefault("port", 5000)
	v.SetDefault("database_type", "postgres")
	v.SetDefault("frontend_url", "http://localhost:3000")

	cfg := Config{
		Port:         v.GetInt("port"),
		DatabaseURL:  v.GetString("database_url"),
		DatabaseType: v.GetString("database_type"),
		FrontendURL:  v.GetString("frontend_url"),
	}

	if cfg.Port <= 0 {
		return Config{}, errors.New("invalid PORT env variable")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (set DATABASE_URL)")
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("DATABASE_TYPE must be postgres or sqlite")
	}

	return cfg, nil
}
