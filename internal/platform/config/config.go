package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSessionSecret = "default_insecure_session_secret_please_change_this_!@#$"
)

// Config holds application configuration.
type Config struct {
	Port          string `mapstructure:"PORT" validate:"required,numeric"`
	IsProduction  bool   `mapstructure:"IS_PRODUCTION"`
	DBDriver      string `mapstructure:"DB_DRIVER" validate:"oneof=postgres sqlite"`
	DatabaseURL   string `mapstructure:"PGSQL_URL" validate:"required_if=DBDriver postgres"`
	SQLitePath    string `mapstructure:"SQLITE_PATH" validate:"required_if=DBDriver sqlite"`
	EnableDBCheck bool   `mapstructure:"ENABLE_DB_CHECK"`

	// Session cookie
	SessionSecret         string        `mapstructure:"SESSION_SECRET" validate:"required,min=16"`
	SessionExpiryDuration time.Duration `validate:"gt=0"`
	SessionCookieName     string        `mapstructure:"SESSION_COOKIE_NAME" validate:"required"`
	SessionIssuer         string        `mapstructure:"SESSION_ISSUER" validate:"required"`

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL" validate:"omitempty,url"`

	DefaultCurrencySymbol string `mapstructure:"DEFAULT_CURRENCY_SYMBOL" validate:"required,max=8"`

	// Rates in ulule/limiter format, e.g. "30-M"
	EditRateLimit  string `mapstructure:"EDIT_RATE_LIMIT" validate:"required"`
	LoginRateLimit string `mapstructure:"LOGIN_RATE_LIMIT" validate:"required"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/budget.db")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_EXPIRY_DURATION", "168h")
	v.SetDefault("SESSION_COOKIE_NAME", "budget_session")
	v.SetDefault("SESSION_ISSUER", "budget-tracker")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("DEFAULT_CURRENCY_SYMBOL", "£")
	v.SetDefault("EDIT_RATE_LIMIT", "60-M")
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.AutomaticEnv()

	cfg := &Config{
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		DBDriver:              v.GetString("DB_DRIVER"),
		DatabaseURL:           v.GetString("PGSQL_URL"),
		SQLitePath:            v.GetString("SQLITE_PATH"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		SessionSecret:         v.GetString("SESSION_SECRET"),
		SessionCookieName:     v.GetString("SESSION_COOKIE_NAME"),
		SessionIssuer:         v.GetString("SESSION_ISSUER"),
		GoogleClientID:        v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:    v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:     v.GetString("GOOGLE_REDIRECT_URL"),
		DefaultCurrencySymbol: v.GetString("DEFAULT_CURRENCY_SYMBOL"),
		EditRateLimit:         v.GetString("EDIT_RATE_LIMIT"),
		LoginRateLimit:        v.GetString("LOGIN_RATE_LIMIT"),
	}

	// Load Session Expiry Duration (e.g., "168h" for 7 days)
	sessionExpiryStr := v.GetString("SESSION_EXPIRY_DURATION")
	sessionExpiry, err := time.ParseDuration(sessionExpiryStr)
	if err != nil {
		sessionExpiry = time.Hour * 24 * 7
		slog.Warn("Invalid SESSION_EXPIRY_DURATION, using default",
			slog.String("value", sessionExpiryStr), slog.String("default", sessionExpiry.String()))
	}
	cfg.SessionExpiryDuration = sessionExpiry

	if cfg.SessionSecret == defaultSessionSecret {
		if cfg.IsProduction {
			return nil, errors.New("SESSION_SECRET must be set in production")
		}
		slog.Warn("SESSION_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		slog.Warn("Google OAuth is not fully configured. Login will not function.",
			slog.Bool("client_id_set", cfg.GoogleClientID != ""),
			slog.Bool("client_secret_set", cfg.GoogleClientSecret != ""),
			slog.Bool("redirect_url_set", cfg.GoogleRedirectURL != ""))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
