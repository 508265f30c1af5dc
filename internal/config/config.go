package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/sangkips/preferences-api/internal/logger"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Identity sources
const (
	AuthModeHeader = "header"
	AuthModeJWT    = "jwt"
)

// Trace exporters
const (
	TracingExporterNone   = "none"
	TracingExporterStdout = "stdout"
	TracingExporterOTLP   = "otlp"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       logger.Config
	Tracing   TracingConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name            string
	Version         string
	Env             string
	Port            string
	Debug           bool
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	Timezone        string
	Path            string // sqlite file, or ":memory:"
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	LogLevel        string // gorm logger: silent, error, warn, info
}

type AuthConfig struct {
	Mode         string
	UserIDHeader string
	JWTSecret    string
	JWTAlgorithm string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int // seconds
}

type TracingConfig struct {
	Exporter    string
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads the optional env file at path (".env" when empty) and the process
// environment, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("env file not found, using environment variables")
	}

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Version:         v.GetString("APP_VERSION"),
			Env:             v.GetString("APP_ENV"),
			Port:            v.GetString("APP_PORT"),
			Debug:           v.GetBool("APP_DEBUG"),
			ShutdownTimeout: time.Duration(v.GetInt("SERVER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			Name:            v.GetString("DB_NAME"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			Timezone:        v.GetString("DB_TIMEZONE"),
			Path:            v.GetString("DB_PATH"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		Auth: AuthConfig{
			Mode:         strings.ToLower(v.GetString("AUTH_MODE")),
			UserIDHeader: v.GetString("AUTH_USER_ID_HEADER"),
			JWTSecret:    v.GetString("JWT_SECRET"),
			JWTAlgorithm: strings.ToUpper(v.GetString("JWT_ALGORITHM")),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: logger.Config{
			Level:        v.GetString("LOG_LEVEL"),
			Format:       v.GetString("LOG_FORMAT"),
			ReportCaller: v.GetBool("LOG_REPORT_CALLER"),
			ServiceName:  v.GetString("APP_NAME"),
			File: logger.File{
				Enabled:    v.GetBool("LOG_FILE_ENABLED"),
				Path:       v.GetString("LOG_FILE_PATH"),
				Name:       v.GetString("LOG_FILE_NAME"),
				MaxSize:    v.GetInt("LOG_FILE_MAX_SIZE"),
				MaxBackups: v.GetInt("LOG_FILE_MAX_BACKUPS"),
				MaxAge:     v.GetInt("LOG_FILE_MAX_AGE"),
			},
		},
		Tracing: TracingConfig{
			Exporter:    strings.ToLower(v.GetString("TRACING_EXPORTER")),
			Endpoint:    v.GetString("TRACING_ENDPOINT"),
			Insecure:    v.GetBool("TRACING_INSECURE"),
			SampleRatio: v.GetFloat64("TRACING_SAMPLE_RATIO"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "preferences-service")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8071")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "user_preferences")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_PATH", "preferences.db")
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_OPEN_CONNS", 15)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 1800)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("AUTH_MODE", AuthModeHeader)
	v.SetDefault("AUTH_USER_ID_HEADER", "X-User-ID")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ALGORITHM", "HS256")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")

	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_REPORT_CALLER", false)
	v.SetDefault("LOG_FILE_ENABLED", false)
	v.SetDefault("LOG_FILE_PATH", "./logs")
	v.SetDefault("LOG_FILE_NAME", "preferences.log")
	v.SetDefault("LOG_FILE_MAX_SIZE", 100)
	v.SetDefault("LOG_FILE_MAX_BACKUPS", 5)
	v.SetDefault("LOG_FILE_MAX_AGE", 30)

	v.SetDefault("TRACING_EXPORTER", TracingExporterNone)
	v.SetDefault("TRACING_ENDPOINT", "localhost:4318")
	v.SetDefault("TRACING_INSECURE", true)
	v.SetDefault("TRACING_SAMPLE_RATIO", 1.0)

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")
}

var (
	ErrEmptyPort        = errors.New("APP_PORT can not be empty")
	ErrUnknownDriver    = errors.New("DB_DRIVER must be postgres, mysql or sqlite")
	ErrUnknownAuthMode  = errors.New("AUTH_MODE must be header or jwt")
	ErrEmptyUserHeader  = errors.New("AUTH_USER_ID_HEADER can not be empty in header mode")
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required in jwt mode")
	ErrUnknownAlgorithm = errors.New("JWT_ALGORITHM must be HS256, HS384 or HS512")
	ErrUnknownExporter  = errors.New("TRACING_EXPORTER must be none, stdout or otlp")
	ErrInvalidRateLimit = errors.New("RATE_LIMIT_DURATION must be positive when RATE_LIMIT_REQUESTS is set")
)

// Validate checks the settings the service can not start without.
func (c *Config) Validate() error {
	const invalid = "invalid config"

	if c.App.Port == "" {
		return errors.Wrap(ErrEmptyPort, invalid)
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return errors.Wrap(ErrUnknownDriver, invalid)
	}

	switch c.Auth.Mode {
	case AuthModeHeader:
		if c.Auth.UserIDHeader == "" {
			return errors.Wrap(ErrEmptyUserHeader, invalid)
		}
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			return errors.Wrap(ErrMissingJWTSecret, invalid)
		}
		switch c.Auth.JWTAlgorithm {
		case "HS256", "HS384", "HS512":
		default:
			return errors.Wrap(ErrUnknownAlgorithm, invalid)
		}
	default:
		return errors.Wrap(ErrUnknownAuthMode, invalid)
	}

	switch c.Tracing.Exporter {
	case TracingExporterNone, TracingExporterStdout, TracingExporterOTLP:
	default:
		return errors.Wrap(ErrUnknownExporter, invalid)
	}

	if c.RateLimit.Requests > 0 && c.RateLimit.Duration <= 0 {
		return errors.Wrap(ErrInvalidRateLimit, invalid)
	}

	if c.App.ShutdownTimeout <= 0 {
		c.App.ShutdownTimeout = 10 * time.Second
	}

	return nil
}

// DSN builds the driver specific data source name.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=%s",
			c.User, c.Password, c.Host, c.Port, c.Name, url.QueryEscape(c.Timezone))
	case DriverSQLite:
		return c.Path
	default:
		return "host=" + c.Host +
			" user=" + c.User +
			" password=" + c.Password +
			" dbname=" + c.Name +
			" port=" + c.Port +
			" sslmode=" + c.SSLMode +
			" TimeZone=" + c.Timezone
	}
}

// splitList turns "a, b,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
