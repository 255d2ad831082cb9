package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", Port: 5432, Name: "rentora", User: "postgres", Password: "secret"},
		Server:   ServerConfig{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second, RequestTimeout: time.Second},
		Security: SecurityConfig{BcryptCost: 12},
		JWT: JWTConfig{
			SecretKey:       "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
			Issuer:          "rentora",
			Audience:        "rentora-admin-api",
		},
		Logging:    LoggingConfig{Level: "info", Output: "stdout"},
		Cache:      CacheConfig{Enabled: true, RedisURL: "redis://localhost:6379"},
		Deployment: DeploymentConfig{Environment: "production"},
	}
}

func TestLoadFromEnv_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("EVENTS_BROKERS", "k1:9092,k2:9092")
	t.Setenv("APP_ENVIRONMENT", "development")

	cfg, err := loadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	assert.True(t, cfg.Deployment.IsDevelopment())

	// untouched defaults
	assert.Equal(t, "rentora.admin.events", cfg.Events.Topic)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenTTL)
}

func TestLoadFromEnv_ReadsDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CACHE_REDIS_PREFIX=test:\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CACHE_REDIS_PREFIX") })

	cfg, err := loadFromEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "test:", cfg.Cache.RedisPrefix)
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	_, err := loadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process environment config")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.JWT.SecretKey = "short" },
			wantErr: []string{"JWT_SECRET_KEY must be at least 32 characters long"},
		},
		{
			name: "rsa without keys",
			mutate: func(c *Config) {
				c.JWT.UseRSAKeys = true
				c.JWT.SecretKey = ""
			},
			wantErr: []string{"JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required"},
		},
		{
			name:    "refresh not longer than access",
			mutate:  func(c *Config) { c.JWT.RefreshTokenTTL = c.JWT.AccessTokenTTL },
			wantErr: []string{"JWT_REFRESH_TOKEN_TTL must be longer"},
		},
		{
			name:    "missing db password outside development",
			mutate:  func(c *Config) { c.Database.Password = "" },
			wantErr: []string{"DB_PASSWORD is required"},
		},
		{
			name: "missing db password in development is fine",
			mutate: func(c *Config) {
				c.Database.Password = ""
				c.Deployment.Environment = "development"
			},
		},
		{
			name: "several problems are joined",
			mutate: func(c *Config) {
				c.Logging.Level = "trace"
				c.Server.Port = 0
			},
			wantErr: []string{"LOG_LEVEL must be one of", "; ", "SERVER_PORT must be between 1 and 65535"},
		},
		{
			name: "events enabled without brokers",
			mutate: func(c *Config) {
				c.Events.Enabled = true
				c.Events.Topic = "t"
			},
			wantErr: []string{"EVENTS_BROKERS is required"},
		},
		{
			name:    "bcrypt cost out of range",
			mutate:  func(c *Config) { c.Security.BcryptCost = 4 },
			wantErr: []string{"SECURITY_BCRYPT_COST must be between 10 and 14"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration validation failed")
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
