package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Storage — everything lives under DataDir: app.db, uploads/, receipts/
	DataDir string `mapstructure:"DATA_DIR"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	JWTRefreshHours    int    `mapstructure:"JWT_REFRESH_HOURS"`
	// AdminEmail is auto-promoted to the admin role on login
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	// NotifyEmail receives catalog-order and boleto-due notifications
	NotifyEmail string `mapstructure:"NOTIFY_EMAIL"`

	// Business
	ImportSourceURL string `mapstructure:"IMPORT_SOURCE_URL"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 3001)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("JWT_REFRESH_HOURS", 24)
	viper.SetDefault("ADMIN_EMAIL", "admin@crmestofados.com.br")
	viper.SetDefault("SMTP_PORT", 587)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string { return filepath.Join(c.DataDir, "app.db") }

// UploadRoot is where base64 uploads are written, served at /files.
func (c *Config) UploadRoot() string { return filepath.Join(c.DataDir, "uploads") }

// ReceiptDir is where generated sale receipt PDFs are written.
func (c *Config) ReceiptDir() string { return filepath.Join(c.DataDir, "receipts") }
