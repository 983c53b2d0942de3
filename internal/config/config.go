package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"

	PostgresPasswordEnvVar = "FOOTSIES_PG_PASS"
)

type Config struct {
	Environment string `toml:"-"`

	Host string
	Port int

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	StorageDriver  string `toml:"storage_driver"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// from FOOTSIES_PG_PASS, never from the file
	PostgresPassword string `toml:"-"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	SQLitePath       string `toml:"sqlite_path"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	AllowedOrigins              []string `toml:"allowed_origins"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`

	Progression Progression
	Sessions    Sessions
	Skills      Skills
	Stats       Stats
}

type Progression struct {
	GrowthPolicy    string `toml:"growth_policy"`
	FlatStep        int    `toml:"flat_step"`
	FormulaBase     int    `toml:"formula_base"`
	FormulaPerLevel int    `toml:"formula_per_level"`
}

type Sessions struct {
	DedupeWindowSeconds int  `toml:"dedupe_window_seconds"`
	ClearOnFailure      bool `toml:"clear_on_failure"`
	// pointer to tell "not set" (defaults to true) from an explicit false
	EndClearsAlways *bool `toml:"end_clears_always"`
}

type Skills struct {
	Extra []string `toml:"extra"`
}

type Stats struct {
	CacheSizeMB     int `toml:"cache_size_mb"`
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in [%s]", env, path)
	}

	cfg.Environment = strings.ToLower(env)
	cfg.PostgresPassword = os.Getenv(PostgresPasswordEnvVar)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StorageDriver == "" {
		c.StorageDriver = StorageDriverPostgres
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.Sessions.DedupeWindowSeconds == 0 {
		c.Sessions.DedupeWindowSeconds = 5
	}
	if c.Sessions.EndClearsAlways == nil {
		endClearsAlways := true
		c.Sessions.EndClearsAlways = &endClearsAlways
	}
	if c.Stats.CacheSizeMB == 0 {
		c.Stats.CacheSizeMB = 10
	}
	if c.Stats.CacheTTLSeconds == 0 {
		c.Stats.CacheTTLSeconds = 60
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			errs = append(errs, errors.New("postgres storage needs postgres_host, postgres_port and postgres_db_name"))
		}
	case StorageDriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite storage needs sqlite_path"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver: %s", c.StorageDriver))
	}
	if c.PostgresMaxConns < 0 {
		errs = append(errs, fmt.Errorf("negative postgres max conns: %d", c.PostgresMaxConns))
	}
	if c.Sessions.DedupeWindowSeconds < 0 {
		errs = append(errs, fmt.Errorf("negative dedupe window: %d", c.Sessions.DedupeWindowSeconds))
	}
	return errors.Join(errs...)
}

func (c *Config) SessionsEndClearsAlways() bool {
	return c.Sessions.EndClearsAlways == nil || *c.Sessions.EndClearsAlways
}
