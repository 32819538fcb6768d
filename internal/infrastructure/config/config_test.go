package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadBytes())
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 10*time.Minute, cfg.GitHub.CacheTTL)
	assert.Equal(t, "secret-token", cfg.Admin.Token)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret-token")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
storage:
  data_dir: /var/lib/portfolio
cache:
  driver: redis
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "/var/lib/portfolio", cfg.Storage.DataDir)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret-token")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		App:     AppConfig{Environment: "development"},
		Server:  ServerConfig{Port: 5000},
		Storage: StorageConfig{Driver: StorageDriverFile, DataDir: "data", MaxUploadMB: 10},
		Cache:   CacheConfig{Driver: CacheDriverMemory},
		Admin:   AdminConfig{Token: "token"},
		JWT:     JWTConfig{Secret: defaultJWTSecret},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server port"},
		{"unknown storage driver", func(c *Config) { c.Storage.Driver = "s3" }, "unknown storage driver"},
		{"postgres without host", func(c *Config) {
			c.Storage.Driver = StorageDriverPostgres
			c.Database.Name = "portfolio"
		}, "database host"},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "memcached" }, "unknown cache driver"},
		{"no admin credential", func(c *Config) { c.Admin = AdminConfig{} }, "admin"},
		{"password only", func(c *Config) { c.Admin = AdminConfig{Password: "hunter2"} }, ""},
		{"default secret in production", func(c *Config) { c.App.Environment = "production" }, "JWT secret"},
		{"zero upload size", func(c *Config) { c.Storage.MaxUploadMB = 0 }, "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "portfolio", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=portfolio sslmode=disable", cfg.GetDSN())
}
