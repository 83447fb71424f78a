package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultVersion     = "0.1.0-dev"
	DefaultEnvironment = "unknown"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	DatabaseURL     string
	DatabaseDriver  string
	BootstrapSchema bool

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	AMQPURL string

	Mail MailConfig
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
}

// Enabled reports whether both an SMTP host and a recipient are set.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.NotifyTo != ""
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:            getEnv("VERSION", DefaultVersion),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DatabaseDriver:     getEnv("DATABASE_DRIVER", "postgres"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			User:     os.Getenv("MAIL_USER"),
			Password: os.Getenv("MAIL_PASS"),
			From:     getEnv("MAIL_FROM", "no-reply@escriturashoy.com"),
			NotifyTo: os.Getenv("LEADS_NOTIFY_TO"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}

	var err error
	if cfg.BootstrapSchema, err = getBool("DB_BOOTSTRAP_SCHEMA", false); err != nil {
		return nil, err
	}
	if cfg.Mail.Port, err = getInt("MAIL_PORT", 587); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
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
