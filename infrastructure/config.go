package infrastructure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "JOBBOARD_"

type Config struct {
	HTTPAddr       string `koanf:"http_addr"`
	DBDriver       string `koanf:"db_driver"`
	DBDSN          string `koanf:"db_dsn"`
	DBAutoMigrate  bool   `koanf:"db_auto_migrate"`
	DBSeed         bool   `koanf:"db_seed"`
	LogLevel       string `koanf:"log_level"`
	LogFormat      string `koanf:"log_format"`
	GinMode        string `koanf:"gin_mode"`
	MetricsEnabled bool   `koanf:"metrics_enabled"`
}

func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":8080",
		DBDriver:       DriverSQLite,
		DBDSN:          "data.db",
		DBAutoMigrate:  true,
		LogLevel:       "info",
		LogFormat:      "json",
		GinMode:        "release",
		MetricsEnabled: true,
	}
}

// LoadConfig reads .env (if any) into the process environment and then
// layers JOBBOARD_* variables over the defaults.
func LoadConfig(envFiles ...string) (Config, error) {
	// Missing .env is fine, variables may come from the real environment.
	_ = godotenv.Load(envFiles...)

	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported db_driver %q", c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("db_dsn is empty"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is empty"))
	}
	return errors.Join(errs...)
}
