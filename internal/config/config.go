package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "8080"
	defaultDataDir         = "./data"
	defaultAdminSecret     = "change-me-admin-secret"
	defaultRetentionWindow = "48h"
	defaultSweepInterval   = "24h"
	defaultSMTPPort        = "465"
	defaultSMTPFromName    = "Artdesk"
)

// Config holds all runtime settings. It is built once at process start
// and passed explicitly to the components that need it.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	DataDir     string
	BaseURL     string

	// Shared secret required by every administrative endpoint.
	AdminSecret string

	// Operator inboxes notified on each new submission.
	OperatorEmails []string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFromName string

	// Media files older than RetentionWindow are removed by the sweeper.
	RetentionWindow time.Duration
	SweepInterval   time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", defaultDataDir))
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(getEnv("BASE_URL", "http://localhost:"+cfg.Port)), "/")
	cfg.AdminSecret = strings.TrimSpace(getEnv("ADMIN_SECRET", defaultAdminSecret))
	cfg.OperatorEmails = splitList(os.Getenv("OPERATOR_EMAILS"))

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTPUser = strings.TrimSpace(os.Getenv("SMTP_USER"))
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SMTPFromName = strings.TrimSpace(getEnv("SMTP_FROM_NAME", defaultSMTPFromName))

	port, err := strconv.Atoi(strings.TrimSpace(getEnv("SMTP_PORT", defaultSMTPPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = port

	cfg.RetentionWindow, err = parseDurationEnv("RETENTION_WINDOW", defaultRetentionWindow)
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval, err = parseDurationEnv("SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.RetentionWindow <= 0 {
		return fmt.Errorf("RETENTION_WINDOW must be > 0")
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	if cfg.AdminSecret == "" {
		return fmt.Errorf("ADMIN_SECRET must not be empty")
	}
	if isProdLike(cfg.AppEnv) && cfg.AdminSecret == defaultAdminSecret {
		return fmt.Errorf("in prod/release ADMIN_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
