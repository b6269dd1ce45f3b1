// config/config.go - Environment driven configuration
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string `env:"PORT,default=3000"`
	AppEnv      string `env:"APP_ENV,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	JWTSecret   string `env:"JWT_SECRET"`
	CORSOrigins string `env:"CORS_ORIGINS,default=http://localhost:3000"`

	Database Database

	BodyStorePath      string `env:"BODY_STORE_PATH,default=./data/body.db"`
	FCMCredentialsFile string `env:"FCM_CREDENTIALS_FILE"`

	BattleCron             string        `env:"BATTLE_CRON,default=0 0 * * 0"`
	BattleSchedulerEnabled bool          `env:"BATTLE_SCHEDULER_ENABLED,default=true"`
	LiveFeedInterval       time.Duration `env:"LIVE_FEED_INTERVAL,default=5s"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=40"`
}

type Database struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST,default=localhost"`
	Port     string `env:"DB_PORT,default=5432"`
	User     string `env:"DB_USER,default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,default=crewfit"`
	SSLMode  string `env:"DB_SSLMODE,default=disable"`
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* fields.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads .env (if present) and decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters long")
	}
	if c.LiveFeedInterval <= 0 {
		return errors.New("LIVE_FEED_INTERVAL must be positive")
	}
	if c.IsProduction() && (c.CORSOrigins == "" || c.CORSOrigins == "http://localhost:3000") {
		log.Warn().Msg("CORS_ORIGINS not properly configured for production")
	}
	return nil
}
