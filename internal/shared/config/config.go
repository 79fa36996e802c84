package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shotboard/internal/shared/utils"

	"github.com/joho/godotenv"
)

const dateLayout = "2006-01-02"

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"

	AuthModeCredentials = "credentials"
	AuthModeTrusted     = "trusted"

	CourtUnitsFeet   = "feet"
	CourtUnitsTenths = "tenths"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Dashboard DashboardConfig
	Session   SessionConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	AuthMode        string
	Path            string
	ReadOnly        bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

type DashboardConfig struct {
	DateFrom      time.Time
	DateTo        time.Time
	CourtImageURL string
	FallbackColor string
	// CourtUnits is the unit of shots.x and shots.y in the warehouse.
	CourtUnits string
}

type SessionConfig struct {
	IdleTimeout time.Duration
	MaxSessions int
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return err
	}

	GlobalConfig = config
	return nil
}

// Load reads the environment into a validated Config without touching GlobalConfig.
func Load() (*Config, error) {
	dashboard, err := loadDashboardConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config := &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Cache:     loadCacheConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Dashboard: dashboard,
		Session:   loadSessionConfig(),
		Metrics:   loadMetricsConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout: time.Duration(utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		IdleTimeout:  time.Duration(utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          strings.ToLower(utils.GetEnv("DB_DRIVER", DriverPostgres)),
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "nba_shots"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		AuthMode:        strings.ToLower(utils.GetEnv("DB_AUTH_MODE", AuthModeCredentials)),
		Path:            utils.GetEnv("DB_PATH", "nba_shots.db"),
		ReadOnly:        utils.GetEnvBool("DB_READ_ONLY", true),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 1),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 1),
		ConnMaxLifetime: time.Duration(utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		ConnectTimeout:  time.Duration(utils.GetEnvInt("DB_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  utils.GetEnv("REDIS_ENABLED", "false") == "true",
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: utils.GetEnv("CACHE_ENABLED", "true") == "true",
		TTL:     time.Duration(utils.GetEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		Prefix:  utils.GetEnv("CACHE_PREFIX", "shotboard:ref"),
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		Format:     utils.GetEnv("LOG_FORMAT", "text"),
		JSONFormat: environment == "production" || utils.GetEnv("LOG_FORMAT", "text") == "json",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: float64(utils.GetEnvInt("RATE_LIMIT_REQUESTS_PER_SECOND", 10)),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		TrustProxy:        utils.GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadDashboardConfig() (DashboardConfig, error) {
	from, err := time.Parse(dateLayout, utils.GetEnv("DASHBOARD_DATE_FROM", "2022-10-01"))
	if err != nil {
		return DashboardConfig{}, fmt.Errorf("DASHBOARD_DATE_FROM: %w", err)
	}

	to, err := time.Parse(dateLayout, utils.GetEnv("DASHBOARD_DATE_TO", "2023-08-31"))
	if err != nil {
		return DashboardConfig{}, fmt.Errorf("DASHBOARD_DATE_TO: %w", err)
	}

	return DashboardConfig{
		DateFrom:      from,
		DateTo:        to,
		CourtImageURL: utils.GetEnv("DASHBOARD_COURT_IMAGE_URL", ""),
		FallbackColor: utils.GetEnv("DASHBOARD_FALLBACK_COLOR", "#636EFA"),
		CourtUnits:    strings.ToLower(utils.GetEnv("DASHBOARD_COURT_UNITS", CourtUnitsFeet)),
	}, nil
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		IdleTimeout: time.Duration(utils.GetEnvInt("SESSION_IDLE_TIMEOUT_MINUTES", 60)) * time.Minute,
		MaxSessions: utils.GetEnvInt("SESSION_MAX", 100),
	}
}

func loadMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: utils.GetEnv("METRICS_ENABLED", "true") == "true",
		Path:    utils.GetEnv("METRICS_PATH", "/metrics"),
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverPgx:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Database.AuthMode {
	case AuthModeTrusted:
	case AuthModeCredentials:
		if c.Database.Driver != DriverSQLite && c.Database.User == "" {
			return fmt.Errorf("DB_USER is required when DB_AUTH_MODE=credentials")
		}
	default:
		return fmt.Errorf("unsupported DB_AUTH_MODE %q", c.Database.AuthMode)
	}

	if c.Dashboard.DateTo.Before(c.Dashboard.DateFrom) {
		return fmt.Errorf("DASHBOARD_DATE_TO must not be before DASHBOARD_DATE_FROM")
	}

	switch c.Dashboard.CourtUnits {
	case CourtUnitsFeet, CourtUnitsTenths:
	default:
		return fmt.Errorf("unsupported DASHBOARD_COURT_UNITS %q", c.Dashboard.CourtUnits)
	}

	if c.Session.MaxSessions < 1 {
		return fmt.Errorf("SESSION_MAX must be at least 1")
	}

	return nil
}

// ConnectionString renders the DSN for the configured driver. Trusted auth
// leaves user and password out so the server authenticates the OS account.
func (c *Config) ConnectionString() string {
	db := c.Database

	if db.Driver == DriverSQLite {
		if db.ReadOnly {
			return db.Path + "?_pragma=query_only(1)"
		}
		return db.Path
	}

	parts := []string{
		"host=" + quoteDSN(db.Host),
		"port=" + quoteDSN(db.Port),
		"dbname=" + quoteDSN(db.Name),
		"sslmode=" + quoteDSN(db.SSLMode),
		fmt.Sprintf("connect_timeout=%d", int(db.ConnectTimeout.Seconds())),
	}

	if db.AuthMode == AuthModeCredentials {
		parts = append(parts, "user="+quoteDSN(db.User), "password="+quoteDSN(db.Password))
	}

	if db.ReadOnly {
		parts = append(parts, "default_transaction_read_only=on")
	}

	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSN single-quotes a key/value DSN value so spaces and quotes survive.
func quoteDSN(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
