// Package config provides configuration management and environment variable handling for the application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the admin API
type Config struct {
	Database   DatabaseConfig   `json:"database" envconfig:"DB"`
	Server     ServerConfig     `json:"server" envconfig:"SERVER"`
	Security   SecurityConfig   `json:"security" envconfig:"SECURITY"`
	JWT        JWTConfig        `json:"jwt" envconfig:"JWT"`
	Logging    LoggingConfig    `json:"logging" envconfig:"LOG"`
	Metrics    MetricsConfig    `json:"metrics" envconfig:"METRICS"`
	Cache      CacheConfig      `json:"cache" envconfig:"CACHE"`
	Events     EventsConfig     `json:"events" envconfig:"EVENTS"`
	Deployment DeploymentConfig `json:"deployment" envconfig:"APP"`
}

type DatabaseConfig struct {
	Host            string        `json:"host" split_words:"true" default:"localhost"`
	Port            int           `json:"port" split_words:"true" default:"5432"`
	Name            string        `json:"name" split_words:"true" default:"rentora"`
	User            string        `json:"user" split_words:"true" default:"postgres"`
	Password        string        `json:"-" split_words:"true"`
	SSLMode         string        `json:"ssl_mode" split_words:"true" default:"require"`
	MaxOpenConns    int           `json:"max_open_conns" split_words:"true" default:"50"`
	MaxIdleConns    int           `json:"max_idle_conns" split_words:"true" default:"10"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" split_words:"true" default:"30m"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" split_words:"true" default:"15m"`
	SlowQueryTime   time.Duration `json:"slow_query_time" split_words:"true" default:"1s"`
}

// DSN returns the libpq connection string for this database
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type ServerConfig struct {
	Host              string        `json:"host" split_words:"true" default:"0.0.0.0"`
	Port              int           `json:"port" split_words:"true" default:"8080"`
	ReadTimeout       time.Duration `json:"read_timeout" split_words:"true" default:"30s"`
	WriteTimeout      time.Duration `json:"write_timeout" split_words:"true" default:"30s"`
	IdleTimeout       time.Duration `json:"idle_timeout" split_words:"true" default:"120s"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout" split_words:"true" default:"30s"`
	RequestTimeout    time.Duration `json:"request_timeout" split_words:"true" default:"30s"`
	BodyLimit         int           `json:"body_limit" split_words:"true" default:"4194304"`
	EnableCompression bool          `json:"enable_compression" split_words:"true" default:"true"`
}

// Address returns host:port for the HTTP listener
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SecurityConfig struct {
	// CORS
	AllowedOrigins   []string `json:"allowed_origins" split_words:"true" default:"https://admin.rentora.io"`
	AllowCredentials bool     `json:"allow_credentials" split_words:"true" default:"true"`

	// Rate Limiting
	AuthRateLimit   int           `json:"auth_rate_limit" split_words:"true" default:"20"`
	GlobalRateLimit int           `json:"global_rate_limit" split_words:"true" default:"2000"`
	RateLimitWindow time.Duration `json:"rate_limit_window" split_words:"true" default:"1m"`

	// API Security
	RequireAPIKey  bool     `json:"require_api_key" split_words:"true" default:"false"`
	AllowedAPIKeys []string `json:"-" split_words:"true"`
	IPBlacklist    []string `json:"ip_blacklist" split_words:"true"`

	// Admin login
	BcryptCost       int  `json:"bcrypt_cost" split_words:"true" default:"12"`
	CaptchaEnabled   bool `json:"captcha_enabled" split_words:"true" default:"true"`
	CaptchaPadding   int  `json:"captcha_padding" split_words:"true" default:"15"`
	CaptchaImageSize int  `json:"captcha_image_size" split_words:"true" default:"300"`
}

type JWTConfig struct {
	SecretKey       string        `json:"-" split_words:"true"`
	PrivateKey      string        `json:"-" split_words:"true"`                            // RSA private key in PEM format
	PublicKey       string        `json:"-" split_words:"true"`                            // RSA public key in PEM format
	UseRSAKeys      bool          `json:"use_rsa_keys" split_words:"true" default:"false"` // Whether to use RSA keys instead of secret key
	AccessTokenTTL  time.Duration `json:"access_token_ttl" split_words:"true" default:"24h"`
	RefreshTokenTTL time.Duration `json:"refresh_token_ttl" split_words:"true" default:"168h"`
	Issuer          string        `json:"issuer" split_words:"true" default:"rentora"`
	Audience        string        `json:"audience" split_words:"true" default:"rentora-admin-api"`
}

type LoggingConfig struct {
	Level        string `json:"level" split_words:"true" default:"info"`    // debug, info, warn, error
	Output       string `json:"output" split_words:"true" default:"stdout"` // stdout, file, both
	FilePath     string `json:"file_path" split_words:"true" default:"/var/log/rentora/app.log"`
	MaxSize      int    `json:"max_size" split_words:"true" default:"100"` // MB
	MaxBackups   int    `json:"max_backups" split_words:"true" default:"10"`
	MaxAge       int    `json:"max_age" split_words:"true" default:"30"` // days
	Compress     bool   `json:"compress" split_words:"true" default:"true"`
	EnableCaller bool   `json:"enable_caller" split_words:"true" default:"true"`
	Console      bool   `json:"console" split_words:"true" default:"false"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" split_words:"true" default:"true"`
	Path    string `json:"path" split_words:"true" default:"/metrics"`
}

type CacheConfig struct {
	Enabled             bool          `json:"enabled" split_words:"true" default:"true"`
	RedisURL            string        `json:"redis_url" split_words:"true" default:"redis://localhost:6379"`
	RedisDB             int           `json:"redis_db" split_words:"true" default:"0"`
	RedisPrefix         string        `json:"redis_prefix" split_words:"true" default:"rentora:"`
	DefaultTTL          time.Duration `json:"default_ttl" split_words:"true" default:"1h"`
	HealthCheckInterval time.Duration `json:"health_check_interval" split_words:"true" default:"30s"`
}

type EventsConfig struct {
	Enabled      bool          `json:"enabled" split_words:"true" default:"false"`
	Brokers      []string      `json:"brokers" split_words:"true" default:"localhost:9092"`
	Topic        string        `json:"topic" split_words:"true" default:"rentora.admin.events"`
	WriteTimeout time.Duration `json:"write_timeout" split_words:"true" default:"10s"`
	BatchTimeout time.Duration `json:"batch_timeout" split_words:"true" default:"50ms"`
}

type DeploymentConfig struct {
	Environment string `json:"environment" split_words:"true" default:"production"`
	Version     string `json:"version" split_words:"true" default:"1.0.0"`
	CommitHash  string `json:"commit_hash" split_words:"true" default:"unknown"`
}

// IsDevelopment reports whether the service runs in a local or development environment
func (c DeploymentConfig) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "local"
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg, err := loadFromEnv(".env")
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromEnv reads envFile when present (without overriding variables already set) and
// then decodes the environment into a Config
func loadFromEnv(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s file: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig validates the loaded configuration
func ValidateConfig(cfg *Config) error {
	var errs []string

	// Validate database configuration
	if cfg.Database.Host == "" {
		errs = append(errs, "DB_HOST is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		errs = append(errs, "DB_PORT must be between 1 and 65535")
	}
	if cfg.Database.Name == "" {
		errs = append(errs, "DB_NAME is required")
	}
	if cfg.Database.User == "" {
		errs = append(errs, "DB_USER is required")
	}
	if cfg.Database.Password == "" && !cfg.Deployment.IsDevelopment() {
		errs = append(errs, "DB_PASSWORD is required")
	}

	// Validate JWT configuration
	if cfg.JWT.UseRSAKeys {
		if cfg.JWT.PrivateKey == "" || cfg.JWT.PublicKey == "" {
			errs = append(errs, "JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required when JWT_USE_RSA_KEYS is set")
		}
	} else if len(cfg.JWT.SecretKey) < 32 {
		errs = append(errs, "JWT_SECRET_KEY must be at least 32 characters long")
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, "JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.JWT.RefreshTokenTTL <= cfg.JWT.AccessTokenTTL {
		errs = append(errs, "JWT_REFRESH_TOKEN_TTL must be longer than JWT_ACCESS_TOKEN_TTL")
	}
	if cfg.JWT.Issuer == "" {
		errs = append(errs, "JWT_ISSUER is required")
	}
	if cfg.JWT.Audience == "" {
		errs = append(errs, "JWT_AUDIENCE is required")
	}

	// Validate server configuration
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, "SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout <= 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		errs = append(errs, "SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Validate security configuration
	if cfg.Security.BcryptCost < 10 || cfg.Security.BcryptCost > 14 {
		errs = append(errs, "SECURITY_BCRYPT_COST must be between 10 and 14")
	}
	if cfg.Security.RequireAPIKey && len(cfg.Security.AllowedAPIKeys) == 0 {
		errs = append(errs, "SECURITY_ALLOWED_API_KEYS is required when SECURITY_REQUIRE_API_KEY is set")
	}

	// Validate logging configuration
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %v", validLevels))
	}
	validOutputs := []string{"stdout", "file", "both"}
	if !slices.Contains(validOutputs, cfg.Logging.Output) {
		errs = append(errs, fmt.Sprintf("LOG_OUTPUT must be one of: %v", validOutputs))
	}
	if cfg.Logging.Output != "stdout" && cfg.Logging.FilePath == "" {
		errs = append(errs, "LOG_FILE_PATH is required when logging to a file")
	}

	// Validate cache configuration if enabled
	if cfg.Cache.Enabled && cfg.Cache.RedisURL == "" {
		errs = append(errs, "CACHE_REDIS_URL is required when cache is enabled")
	}

	// Validate events configuration if enabled
	if cfg.Events.Enabled {
		if len(cfg.Events.Brokers) == 0 {
			errs = append(errs, "EVENTS_BROKERS is required when events are enabled")
		}
		if strings.TrimSpace(cfg.Events.Topic) == "" {
			errs = append(errs, "EVENTS_TOPIC is required when events are enabled")
		}
	}

	// Return validation errors if any
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
