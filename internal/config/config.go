// Package config resolves the server configuration from defaults, an
// optional config file, CSVQUERY_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/averycrespi/csvquery-mcp/internal/querycontext"
	"github.com/averycrespi/csvquery-mcp/pkg/types"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read into the config
const EnvPrefix = "CSVQUERY"

// Configuration keys
const (
	KeyCSVPath      = "csv_path"
	KeyLimitCap     = "limit_cap"
	KeyQueryTimeout = "query_timeout"
	KeyTransport    = "transport"
	KeyHost         = "host"
	KeyPort         = "port"
	KeyPath         = "path"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
)

// Defaults returns the configuration used when nothing overrides it
func Defaults() types.Config {
	return types.Config{
		LimitCap:     querycontext.DefaultLimitCap,
		QueryTimeout: querycontext.DefaultQueryTimeout,
		Transport:    types.TransportHTTP,
		Host:         "127.0.0.1",
		Port:         8765,
		Path:         "/mcp",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// FlagName maps a configuration key to its command-line flag name
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Load resolves the configuration. configFile may be empty. Only flags in
// flags that were set explicitly override lower layers.
func Load(configFile string, flags *pflag.FlagSet) (types.Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault(KeyCSVPath, defaults.CSVPath)
	v.SetDefault(KeyLimitCap, defaults.LimitCap)
	v.SetDefault(KeyQueryTimeout, defaults.QueryTimeout)
	v.SetDefault(KeyTransport, defaults.Transport)
	v.SetDefault(KeyHost, defaults.Host)
	v.SetDefault(KeyPort, defaults.Port)
	v.SetDefault(KeyPath, defaults.Path)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range v.AllKeys() {
			if flag := flags.Lookup(FlagName(key)); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return types.Config{}, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
				}
			}
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings needed to serve the dataset. transport is the
// binding about to be started.
func Validate(cfg types.Config, transport string) error {
	var errs []error

	if cfg.CSVPath == "" {
		errs = append(errs, errors.New("csv_path is required"))
	}
	if cfg.LimitCap < 1 {
		errs = append(errs, fmt.Errorf("limit_cap must be at least 1, got %d", cfg.LimitCap))
	}
	if cfg.QueryTimeout <= 0 {
		errs = append(errs, fmt.Errorf("query_timeout must be positive, got %s", cfg.QueryTimeout))
	}

	if transport != types.TransportStdio {
		switch cfg.Transport {
		case types.TransportHTTP, types.TransportStreamableHTTP, types.TransportSSE:
		default:
			errs = append(errs, fmt.Errorf("transport must be one of %s, %s or %s, got %q",
				types.TransportHTTP, types.TransportStreamableHTTP, types.TransportSSE, cfg.Transport))
		}
		if cfg.Port < 0 || cfg.Port > 65535 {
			errs = append(errs, fmt.Errorf("port must be between 0 and 65535, got %d", cfg.Port))
		}
		if !strings.HasPrefix(cfg.Path, "/") {
			errs = append(errs, fmt.Errorf("path must start with /, got %q", cfg.Path))
		}
	}

	return errors.Join(errs...)
}

// QueryOptions converts the configuration into query context options
func QueryOptions(cfg types.Config) []querycontext.Option {
	return []querycontext.Option{
		querycontext.WithLimitCap(cfg.LimitCap),
		querycontext.WithQueryTimeout(cfg.QueryTimeout),
	}
}
