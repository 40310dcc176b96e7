package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. It is built once
// in main and injected; no package keeps secrets in module-level state.
type Config struct {
	Port      string
	MongoURI  string
	Database  string
	JWTSecret string

	Postmark struct {
		APIToken string
		Sender   string
	}
}

// Load reads configuration from the environment, honoring a local .env
// file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8000"
	}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI must be set")
	}

	cfg.Database = os.Getenv("MONGO_DATABASE")
	if cfg.Database == "" {
		cfg.Database = "bulkorder"
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	// Optional: with no token the email service runs disabled and only
	// logs what it would have sent.
	cfg.Postmark.APIToken = os.Getenv("POSTMARK_API_TOKEN")
	cfg.Postmark.Sender = os.Getenv("EMAIL_SENDER")

	return cfg, nil
}
