package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                    string   `mapstructure:"PORT"`
	Env                     string   `mapstructure:"ENV"`
	LabAPIURL               string   `mapstructure:"LAB_API_URL"`
	LabAPIToken             string   `mapstructure:"LAB_API_TOKEN"`
	LabAPITimeoutSeconds    int      `mapstructure:"LAB_API_TIMEOUT_SECONDS"`
	RedisURL                string   `mapstructure:"REDIS_URL"`
	ProgressCacheTTLSeconds int      `mapstructure:"PROGRESS_CACHE_TTL_SECONDS"`
	CORSOrigins             []string `mapstructure:"CORS_ORIGINS"`
	AuthMode                string   `mapstructure:"AUTH_MODE"`
	AuthSigningKey          string   `mapstructure:"AUTH_SIGNING_KEY"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LAB_API_TIMEOUT_SECONDS", 30)
	v.SetDefault("PROGRESS_CACHE_TTL_SECONDS", 30)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("AUTH_MODE", "") // "" -> inferred from ENV

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("LAB_API_URL")
	v.BindEnv("LAB_API_TOKEN")
	v.BindEnv("LAB_API_TIMEOUT_SECONDS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("PROGRESS_CACHE_TTL_SECONDS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("AUTH_MODE")
	v.BindEnv("AUTH_SIGNING_KEY")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.LabAPIURL == "" {
		return nil, fmt.Errorf("LAB_API_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolvedAuthMode returns the effective auth mode. If AUTH_MODE is explicitly
// set, it is returned. Otherwise the mode is inferred: development environments
// run without auth (every request gets a fixed dev user), anything else
// requires a signed bearer token.
func (c *Config) ResolvedAuthMode() string {
	if c.AuthMode != "" {
		return c.AuthMode
	}
	if c.IsDev() {
		return "development"
	}
	return "token"
}
