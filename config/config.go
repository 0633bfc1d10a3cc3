package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"nhtransport/db"
)

type Config struct {
	DBType      string `envconfig:"DB_TYPE" default:"postgres"`
	PostgresURL string `envconfig:"POSTGRES_URL"`
	MongoURL    string `envconfig:"MONGO_URL"`
	MongoDB     string `envconfig:"MONGO_DB" default:"nhtransport"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"nhtransport.db"`

	PGMaxOpenConns    int           `envconfig:"PG_MAX_OPEN_CONNS" default:"5"`
	PGMaxIdleConns    int           `envconfig:"PG_MAX_IDLE_CONNS" default:"2"`
	PGConnMaxLifetime time.Duration `envconfig:"PG_CONN_MAX_LIFETIME" default:"30m"`

	Port       string `envconfig:"PORT" default:"8080"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`

	RateLimitPerMin int    `envconfig:"RATE_LIMIT_PER_MIN" default:"300"`
	UploadDir       string `envconfig:"UPLOAD_DIR" default:"./uploads"`

	R2 R2Config

	ChromeTimeout time.Duration `envconfig:"CHROME_TIMEOUT" default:"30s"`
}

// R2Config is optional. When the bucket is empty files are kept under UploadDir.
type R2Config struct {
	AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	Bucket          string `envconfig:"R2_BUCKET"`
	PublicURL       string `envconfig:"R2_PUBLIC_URL"`
	AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
	Endpoint        string `envconfig:"R2_ENDPOINT"`
}

func (c R2Config) Enabled() bool {
	return c.Bucket != ""
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	t, err := db.ParseDBType(c.DBType)
	if err != nil {
		return err
	}
	c.DBType = string(t)

	switch t {
	case db.Postgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL not set in environment")
		}
	case db.Mongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL not set in environment")
		}
	case db.SQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH not set in environment")
		}
	}
	if c.R2.Enabled() && c.R2.PublicURL == "" {
		return fmt.Errorf("R2_PUBLIC_URL is required when R2_BUCKET is set")
	}
	if c.RateLimitPerMin < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must not be negative")
	}
	return nil
}

// NewLogger returns a text or JSON slog.Logger depending on LogFormat.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
