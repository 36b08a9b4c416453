package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	SMTP         SMTPConfig
	OAuth2Google OAuth2GoogleConfig
	Devices      DeviceConfig
	Reconcile    ReconcileConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	HREmails    []string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// DeviceConfig holds biometric terminal gateway settings.
// Gateways is a comma-separated list of base URLs, one per terminal.
type DeviceConfig struct {
	Gateways []string
	APIKey   string
}

// ReconcileConfig tunes the punch reconciliation engine.
type ReconcileConfig struct {
	DedupWindowSeconds int
	Workers            int
	WindowDays         int
	ClassifyPolicy     string
}

func Load() (*Config, error) {
	// .env is optional; deployments may set the environment directly
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		HREmails:    getEnvSlice("HR_ALERT_EMAILS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@winco-group.com"),
		FromName: getEnv("SMTP_FROM_NAME", "Advanced Attendance"),
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Device gateway configuration
	config.Devices = DeviceConfig{
		Gateways: getEnvSlice("DEVICE_GATEWAYS"),
		APIKey:   getEnv("DEVICE_API_KEY", ""),
	}

	// Reconciliation engine tuning
	dedupWindow, err := strconv.Atoi(getEnv("RECONCILE_DEDUP_WINDOW_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_DEDUP_WINDOW_SECONDS: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("RECONCILE_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_WORKERS: %w", err)
	}
	windowDays, err := strconv.Atoi(getEnv("RECONCILE_WINDOW_DAYS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_WINDOW_DAYS: %w", err)
	}
	config.Reconcile = ReconcileConfig{
		DedupWindowSeconds: dedupWindow,
		Workers:            workers,
		WindowDays:         windowDays,
		ClassifyPolicy:     getEnv("RECONCILE_CLASSIFY_POLICY", "first-last"),
	}

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
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Reconcile.DedupWindowSeconds < 0 {
		return fmt.Errorf("RECONCILE_DEDUP_WINDOW_SECONDS must not be negative")
	}
	if c.Reconcile.Workers < 1 {
		return fmt.Errorf("RECONCILE_WORKERS must be at least 1")
	}
	if c.Reconcile.WindowDays < 1 {
		return fmt.Errorf("RECONCILE_WINDOW_DAYS must be at least 1")
	}
	switch c.Reconcile.ClassifyPolicy {
	case "first-last", "paired":
	default:
		return fmt.Errorf("RECONCILE_CLASSIFY_POLICY must be 'first-last' or 'paired'")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
