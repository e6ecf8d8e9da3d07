package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds server configuration resolved from the environment.
type Config struct {
	Addr        string
	DBPath      string
	Env         string // "development" or "production"
	CSRFKey     []byte // 32 bytes; generated per startup in development when unset
	ResendKey   string
	MailFrom    string
	MailReplyTo string
}

// Load reads configuration from a .env file (optional) and the environment,
// then validates it.
// PRE: none
// POST: Returns a validated Config or an error that should abort startup
func Load() (*Config, error) {
	// .env is optional; real deployments provide variables via the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        envOrDefault("EVENTHUB_ADDR", ":8080"),
		DBPath:      envOrDefault("EVENTHUB_DB", "eventhub.db"),
		Env:         envOrDefault("EVENTHUB_ENV", "development"),
		ResendKey:   os.Getenv("EVENTHUB_RESEND_KEY"),
		MailFrom:    envOrDefault("EVENTHUB_MAIL_FROM", "EventHub <noreply@eventhub.local>"),
		MailReplyTo: envOrDefault("EVENTHUB_MAIL_REPLY_TO", "events@eventhub.local"),
	}

	if err := cfg.loadCSRFKey(os.Getenv("EVENTHUB_CSRF_KEY")); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) loadCSRFKey(keyHex string) error {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return fmt.Errorf("config: EVENTHUB_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		c.CSRFKey = key
		return nil
	}
	if c.IsProduction() {
		return fmt.Errorf("config: EVENTHUB_CSRF_KEY is required in production")
	}
	// Development fallback: callers generate a random key per startup.
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: EVENTHUB_ADDR cannot be blank")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: EVENTHUB_DB cannot be blank")
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("config: EVENTHUB_ENV must be development or production, got %q", c.Env)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
