package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "change-me-portfolio-jwt-secret"

	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"

	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Admin    AdminConfig    `mapstructure:"admin"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects where content collections live
type StorageConfig struct {
	Driver       string `mapstructure:"driver"`
	DataDir      string `mapstructure:"data_dir"`
	UploadsDir   string `mapstructure:"uploads_dir"`
	MaxUploadMB  int64  `mapstructure:"max_upload_mb"`
	SeedDefaults bool   `mapstructure:"seed_defaults"`
	WatchFiles   bool   `mapstructure:"watch_files"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// CacheConfig selects the cache used for GitHub responses
type CacheConfig struct {
	Driver string `mapstructure:"driver"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GitHubConfig holds GitHub API configuration
type GitHubConfig struct {
	APIURL         string        `mapstructure:"api_url"`
	RawURL         string        `mapstructure:"raw_url"`
	Token          string        `mapstructure:"token"`
	DefaultBranch  string        `mapstructure:"default_branch"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	Burst          int           `mapstructure:"burst"`
	ProbeOnCreate  bool          `mapstructure:"probe_on_create"`
	ProbeWorkers   int           `mapstructure:"probe_workers"`
}

// AdminConfig holds the shared admin credentials
type AdminConfig struct {
	Token        string `mapstructure:"token"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
	Issuer    string        `mapstructure:"issuer"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from defaults, the environment, an optional
// .env file and an optional config file (yaml, toml or json).
func Load(configFile string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Portfolio API")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Storage defaults
	v.SetDefault("storage.driver", StorageDriverFile)
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.uploads_dir", "uploads")
	v.SetDefault("storage.max_upload_mb", 10)
	v.SetDefault("storage.seed_defaults", true)
	v.SetDefault("storage.watch_files", true)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "portfolio")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "30s")
	v.SetDefault("database.auto_migrate", true)

	// Cache defaults
	v.SetDefault("cache.driver", CacheDriverMemory)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// GitHub defaults
	v.SetDefault("github.api_url", "https://api.github.com")
	v.SetDefault("github.raw_url", "https://raw.githubusercontent.com")
	v.SetDefault("github.token", "")
	v.SetDefault("github.default_branch", "main")
	v.SetDefault("github.timeout", "15s")
	v.SetDefault("github.probe_timeout", "5s")
	v.SetDefault("github.cache_ttl", "10m")
	v.SetDefault("github.requests_per_sec", 5)
	v.SetDefault("github.burst", 10)
	v.SetDefault("github.probe_on_create", true)
	v.SetDefault("github.probe_workers", 4)

	// Admin defaults
	v.SetDefault("admin.token", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.password_hash", "")

	// JWT defaults
	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.expires_in", "24h")
	v.SetDefault("jwt.issuer", "portfolio-api")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.filename", "")

	// Security defaults
	v.SetDefault("security.cors_allowed_origins", "*")
	v.SetDefault("security.rate_limit_requests", 100)
	v.SetDefault("security.rate_limit_window", "1m")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "APP_NAME")
	v.BindEnv("app.version", "APP_VERSION")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("app.debug", "APP_DEBUG")

	// Server
	v.BindEnv("server.port", "PORT", "SERVER_PORT")
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")
	v.BindEnv("server.request_timeout", "SERVER_REQUEST_TIMEOUT")
	v.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Storage
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.data_dir", "DATA_DIR")
	v.BindEnv("storage.uploads_dir", "UPLOADS_DIR")
	v.BindEnv("storage.max_upload_mb", "MAX_UPLOAD_MB")
	v.BindEnv("storage.seed_defaults", "SEED_DEFAULTS")
	v.BindEnv("storage.watch_files", "WATCH_DATA_FILES")

	// Database
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.ssl_mode", "DB_SSL_MODE")
	v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")
	v.BindEnv("database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	v.BindEnv("database.conn_max_idle_time", "DB_CONN_MAX_IDLE_TIME")
	v.BindEnv("database.auto_migrate", "DB_AUTO_MIGRATE")

	// Cache
	v.BindEnv("cache.driver", "CACHE_DRIVER")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// GitHub
	v.BindEnv("github.api_url", "GITHUB_API_URL")
	v.BindEnv("github.raw_url", "GITHUB_RAW_URL")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.default_branch", "GITHUB_DEFAULT_BRANCH")
	v.BindEnv("github.timeout", "GITHUB_TIMEOUT")
	v.BindEnv("github.cache_ttl", "GITHUB_CACHE_TTL")
	v.BindEnv("github.probe_on_create", "GITHUB_PROBE_ON_CREATE")

	// Admin
	v.BindEnv("admin.token", "ADMIN_TOKEN")
	v.BindEnv("admin.password", "ADMIN_PASSWORD")
	v.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expires_in", "JWT_EXPIRES_IN")
	v.BindEnv("jwt.issuer", "JWT_ISSUER")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.format", "LOG_FORMAT")
	v.BindEnv("logger.output", "LOG_OUTPUT")
	v.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	v.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")

	// Metrics
	v.BindEnv("metrics.enabled", "ENABLE_METRICS")
	v.BindEnv("metrics.path", "METRICS_PATH")
}

// Validate checks the loaded configuration for values the server cannot run with.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	switch cfg.Storage.Driver {
	case StorageDriverFile:
		if cfg.Storage.DataDir == "" {
			return fmt.Errorf("storage data directory is required")
		}
	case StorageDriverPostgres:
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			return fmt.Errorf("database host and name are required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	switch cfg.Cache.Driver {
	case CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}

	if cfg.Admin.Token == "" && cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		return errors.New("at least one of admin token, admin password or admin password hash must be set")
	}

	if cfg.JWT.Secret == "" || (cfg.JWT.Secret == defaultJWTSecret && cfg.App.IsProduction()) {
		return fmt.Errorf("JWT secret must be set and should not use default value")
	}

	if cfg.Storage.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	return nil
}

// GetDSN returns the database connection string
func (cfg *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
}

// GetAddr returns the Redis address
func (cfg *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// MaxUploadBytes returns the upload limit in bytes.
func (cfg *StorageConfig) MaxUploadBytes() int64 {
	return cfg.MaxUploadMB << 20
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
