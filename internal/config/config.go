// Package config manages runtime configuration.
//
// Values are read from an optional YAML file and from environment variables
// (optionally loaded from a `.env` file), decoded into structured Go types and
// validated so the API fails fast on bad or missing settings.
//
// Precedence, lowest to highest:
//   - defaults from Default()
//   - the YAML file passed to LoadConfig (when not empty)
//   - COLLEAGUE_ prefixed environment variables
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment before
	// any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix every configuration environment variable carries.
//
// Nesting uses a double underscore:
//
//	COLLEAGUE_SERVER__PORT      -> server.port
//	COLLEAGUE_API__MAX_PAGE_SIZE -> api.max_page_size
const EnvPrefix = "COLLEAGUE_"

// ServiceName tags logs, traces and APM dashboards.
const ServiceName = "colleague-finance-api"

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	API           APIConfig            `koanf:"api" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Jobs          JobsConfig           `koanf:"jobs"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication settings.
//
// When EnforcePermissions is true, requests must carry the permission code a
// resource requires among the caller's session permissions.
type AuthConfig struct {
	SecretKey          string `koanf:"secret_key" validate:"required"`
	EnforcePermissions bool   `koanf:"enforce_permissions"`
}

// APIConfig holds the response shaping knobs shared by every resource.
type APIConfig struct {
	// DefaultPageSize is used when a paged request carries no limit.
	DefaultPageSize int `koanf:"default_page_size" validate:"required,min=1"`

	// MaxPageSize caps the limit a client may request.
	MaxPageSize int `koanf:"max_page_size" validate:"required,gtefield=DefaultPageSize"`

	// IncludeLinkSelfHeaders adds rel="self" to paged Link headers.
	IncludeLinkSelfHeaders bool `koanf:"include_link_self_headers"`

	// CacheTTL is how long reference data stays in Redis.
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"min=1s"`

	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig configures the per-client request limiter.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"required_if=Enabled true"`
	Burst             int     `koanf:"burst"`
}

// IntegrationConfig stores credentials for third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// JobsConfig controls background processing.
type JobsConfig struct {
	Concurrency int `koanf:"concurrency" validate:"min=1"`

	// CacheWarmupCron is the cron spec for reference data cache warm-up.
	// Empty disables the periodic task.
	CacheWarmupCron string `koanf:"cache_warmup_cron"`
}

// Default returns a Config populated with every optional default. Required
// values (database credentials, secrets) are left empty.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Redis: RedisConfig{Address: "localhost:6379"},
		API: APIConfig{
			DefaultPageSize: 100,
			MaxPageSize:     500,
			CacheTTL:        15 * time.Minute,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 20,
				Burst:             40,
			},
		},
		Integration: IntegrationConfig{
			EmailFrom: "Colleague Finance <finance@resend.dev>",
		},
		Jobs: JobsConfig{
			Concurrency:     10,
			CacheWarmupCron: "@every 10m",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// EnvKey converts an environment variable name into a koanf key path.
//
//	COLLEAGUE_DATABASE__SSL_MODE -> database.ssl_mode
func EnvKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig reads configuration from the optional YAML file at path and from
// the environment, validates it and applies observability defaults.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "could not load config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil); err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	return parse(k)
}

func parse(k *koanf.Koanf) (*Config, error) {
	mainConfig := Default()

	// Unmarshal only overwrites keys that are present, so defaults survive.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal main config")
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid observability config")
	}

	return mainConfig, nil
}

// IsLocal reports whether the API runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
