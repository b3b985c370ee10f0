// Package config loads runtime configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. Every field maps 1:1 to an env var.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Auth
	AuthSecret string `mapstructure:"AUTH_SECRET"`

	// Mail
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	ContactEmail   string `mapstructure:"CONTACT_EMAIL"`

	// Rendering
	ChromiumPath  string        `mapstructure:"CHROMIUM_PATH"`
	RenderTimeout time.Duration `mapstructure:"RENDER_TIMEOUT"`
	MaxRenders    int           `mapstructure:"MAX_RENDERS"`
	StylesheetURL string        `mapstructure:"STYLESHEET_URL"`

	// Card front image fetch
	ImageFetchTimeout time.Duration `mapstructure:"IMAGE_FETCH_TIMEOUT"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 3000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("RENDER_TIMEOUT", "30s")
	viper.SetDefault("MAX_RENDERS", 2)
	viper.SetDefault("IMAGE_FETCH_TIMEOUT", "20s")
	viper.SetDefault("CONTACT_EMAIL", "hello@biglittlethings.de")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET must be set")
	}
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY must be set")
	}
	return cfg, nil
}
