package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/gocipe/wpgraphql"
	"github.com/gocipe/wpgraphql/internal/logging"
)

const DefaultConfigPath = "config.yaml"

type Database struct {
	// Driver is one of mysql, postgres or sqlite. Empty disables the SQL store.
	Driver       string `yaml:"driver,omitempty" env:"DB_DRIVER"`
	DSN          string `yaml:"dsn,omitempty" env:"DB_DSN"`
	TablePrefix  string `yaml:"table_prefix,omitempty" envDefault:"wp_" env:"DB_TABLE_PREFIX"`
	MaxOpenConns int    `yaml:"max_open_conns,omitempty" envDefault:"10" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns int    `yaml:"max_idle_conns,omitempty" envDefault:"2" env:"DB_MAX_IDLE_CONNS"`
}

type Metrics struct {
	Enabled    bool   `yaml:"enabled" envDefault:"true" env:"METRICS_ENABLED"`
	ListenAddr string `yaml:"listen_addr,omitempty" envDefault:"127.0.0.1:8088" env:"METRICS_LISTEN_ADDR"`
	Path       string `yaml:"path,omitempty" envDefault:"/metrics" env:"METRICS_PATH"`
}

type Config struct {
	ListenAddr      string `yaml:"listen_addr,omitempty" envDefault:"localhost:3002" env:"LISTEN_ADDR"`
	GraphQLPath     string `yaml:"graphql_path,omitempty" envDefault:"/graphql" env:"GRAPHQL_PATH"`
	HealthCheckPath string `yaml:"health_check_path,omitempty" envDefault:"/health" env:"HEALTH_CHECK_PATH"`
	RootURL         string `yaml:"root_url,omitempty" env:"ROOT_URL"`
	LogLevel        string `yaml:"log_level,omitempty" envDefault:"info" env:"LOG_LEVEL"`
	JSONLog         bool   `yaml:"json_log" envDefault:"true" env:"JSON_LOG"`
	Debug           bool   `yaml:"debug" env:"DEBUG"`
	FixturesPath    string `yaml:"fixtures_path,omitempty" env:"FIXTURES_PATH"`
	// PostTypes lists registered content type names to expose in addition to
	// the wp_config section of the config file.
	PostTypes []string `yaml:"-" env:"WP_POST_TYPES" envSeparator:","`

	// MaxRequestBodySize bounds GraphQL request bodies, e.g. "1MiB" or "512kB".
	MaxRequestBodySize string `yaml:"max_request_body_size,omitempty" envDefault:"1MiB" env:"MAX_REQUEST_BODY_SIZE"`

	Database Database `yaml:"database,omitempty"`
	Metrics  Metrics  `yaml:"metrics,omitempty"`
}

type LoadResult struct {
	Config        Config
	WPConfig      wpgraphql.WPConfig
	DefaultLoaded bool
}

// fileConfig is the layout of the config file. wp_config is kept out of Config
// since it has no environment representation.
type fileConfig struct {
	Config   `yaml:",inline"`
	WPConfig wpgraphql.WPConfig `yaml:"wp_config"`
}

// LoadConfig reads .env files, then environment variables, then the YAML
// config file, each overriding the previous one.
func LoadConfig(configFilePath string, envOverride string) (*LoadResult, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	if envOverride != "" {
		_ = godotenv.Overload(envOverride)
	}

	result := &LoadResult{DefaultLoaded: true}

	if err := env.Parse(&result.Config); err != nil {
		return nil, err
	}

	if configFilePath == "" {
		configFilePath = os.Getenv("CONFIG_PATH")
		if configFilePath == "" {
			configFilePath = DefaultConfigPath
		}
	}

	isDefaultConfigPath := configFilePath == DefaultConfigPath
	configFileBytes, err := os.ReadFile(configFilePath)
	if err != nil {
		if !isDefaultConfigPath {
			return nil, fmt.Errorf("could not read custom config file %s: %w", configFilePath, err)
		}
		result.DefaultLoaded = false
	}

	if configFileBytes != nil {
		file := fileConfig{Config: result.Config}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(configFileBytes))), &file); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
		result.Config = file.Config
		result.WPConfig = file.WPConfig
	}

	for _, name := range result.Config.PostTypes {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := result.WPConfig.Lookup(name); !ok {
			result.WPConfig.PostTypes = append(result.WPConfig.PostTypes, wpgraphql.PostTypeConfig{RegisteredName: name})
		}
	}

	if err := Validate(result); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return result, nil
}

// MaxRequestBodyBytes parses MaxRequestBodySize. It is zero when unset.
func (c Config) MaxRequestBodyBytes() (int64, error) {
	if c.MaxRequestBodySize == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MaxRequestBodySize)
	if err != nil {
		return 0, fmt.Errorf("max_request_body_size: %w", err)
	}
	return int64(n), nil
}

// Validate reports every invalid setting at once.
func Validate(result *LoadResult) error {
	var errs *multierror.Error
	cfg := result.Config

	if cfg.ListenAddr == "" {
		errs = multierror.Append(errs, errors.New("listen_addr is required"))
	}
	if !strings.HasPrefix(cfg.GraphQLPath, "/") {
		errs = multierror.Append(errs, fmt.Errorf("graphql_path %q must start with /", cfg.GraphQLPath))
	}
	if _, err := logging.ZapLogLevelFromString(cfg.LogLevel); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := cfg.MaxRequestBodyBytes(); err != nil {
		errs = multierror.Append(errs, err)
	}

	switch cfg.Database.Driver {
	case "":
	case "mysql", "postgres", "sqlite":
		if cfg.Database.DSN == "" {
			errs = multierror.Append(errs, fmt.Errorf("database.dsn is required by driver %s", cfg.Database.Driver))
		}
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown database.driver %q", cfg.Database.Driver))
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = multierror.Append(errs, fmt.Errorf("metrics.path %q must start with /", cfg.Metrics.Path))
	}

	if err := result.WPConfig.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return errs.ErrorOrNil()
}
