package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the fallback signing secret used when JWT_SECRET_KEY is
// unset. It is fine for local development and nothing else; Load warns loudly
// when it is in effect.
const DefaultJWTSecret = "your-default-secret-key"

type Config struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration
	JWTSecret          string
	TokenTTL           time.Duration
	SessionTimeout     time.Duration
	UsersFile          string
	DatabaseURL        string
	DBMaxConns         int32
	DBMinConns         int32
	PasswordScheme     string
	CORSOrigins        []string
	RateLimitRPM       int
	AuthRateLimitRPM   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		JWTSecret:          getEnv("JWT_SECRET_KEY", DefaultJWTSecret),
		TokenTTL:           getDuration("TOKEN_TTL", 24*time.Hour),
		SessionTimeout:     getDuration("SESSION_TIMEOUT", 30*time.Minute),
		UsersFile:          getEnv("USERS_FILE", "./data/users.csv"),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:         int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:         int32(getInt("DB_MIN_CONNS", 2)),
		PasswordScheme:     strings.ToLower(getEnv("PASSWORD_SCHEME", "sha256")),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:       getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM:   getInt("AUTH_RATE_LIMIT_RPM", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UsingDefaultSecret() {
		slog.Warn("JWT_SECRET_KEY is not set; using the built-in default secret, which is insecure for production")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET_KEY cannot be empty")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	if c.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}

	if c.DatabaseURL == "" && strings.TrimSpace(c.UsersFile) == "" {
		return fmt.Errorf("USERS_FILE cannot be empty when DATABASE_URL is not set")
	}

	if c.PasswordScheme != "sha256" && c.PasswordScheme != "bcrypt" {
		return fmt.Errorf("PASSWORD_SCHEME must be sha256 or bcrypt, got %q", c.PasswordScheme)
	}

	return nil
}

// UsingDefaultSecret reports whether tokens are being signed with the
// development fallback secret.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
