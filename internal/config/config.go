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

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	Audit     AuditConfig
	Integrity IntegrityConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
	// AdminPrincipal is recorded as the actor of every administrative mutation.
	AdminPrincipal string
}

// AuditConfig holds audit trail read limits
type AuditConfig struct {
	DefaultLimit int
	MaxLimit     int
}

type IntegrityConfig struct {
	// SweepInterval of zero disables the periodic integrity sweep.
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "worklog"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: autoMigrate,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		AdminPrincipal:     getEnv("ADMIN_PRINCIPAL", "Admin"),
	}

	// Audit configuration
	auditDefault, err := strconv.Atoi(getEnv("AUDIT_DEFAULT_LIMIT", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_DEFAULT_LIMIT: %w", err)
	}
	auditMax, err := strconv.Atoi(getEnv("AUDIT_MAX_LIMIT", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_MAX_LIMIT: %w", err)
	}

	config.Audit = AuditConfig{
		DefaultLimit: auditDefault,
		MaxLimit:     auditMax,
	}

	// Integrity sweep configuration
	sweepInterval, err := time.ParseDuration(getEnv("INTEGRITY_SWEEP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid INTEGRITY_SWEEP_INTERVAL: %w", err)
	}
	config.Integrity = IntegrityConfig{SweepInterval: sweepInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if strings.TrimSpace(c.App.AdminPrincipal) == "" {
		return fmt.Errorf("ADMIN_PRINCIPAL must not be empty")
	}
	if c.Audit.DefaultLimit <= 0 {
		return fmt.Errorf("AUDIT_DEFAULT_LIMIT must be positive")
	}
	if c.Audit.MaxLimit < c.Audit.DefaultLimit {
		return fmt.Errorf("AUDIT_MAX_LIMIT must be at least AUDIT_DEFAULT_LIMIT")
	}
	if c.Integrity.SweepInterval < 0 {
		return fmt.Errorf("INTEGRITY_SWEEP_INTERVAL must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
