package main

import (
	"context"
	"fmt"

	"github.com/averycrespi/csvquery-mcp/internal/config"
	"github.com/averycrespi/csvquery-mcp/internal/logging"
	"github.com/averycrespi/csvquery-mcp/internal/querycontext"
	"github.com/averycrespi/csvquery-mcp/pkg/project"
	"github.com/averycrespi/csvquery-mcp/pkg/types"

	"github.com/spf13/cobra"
)

var configFile string

func newRootCommand() *cobra.Command {
	defaults := config.Defaults()

	root := &cobra.Command{
		Use:           "csvquery-mcp",
		Short:         "Serve a CSV or Parquet file to MCP clients as a queryable table",
		Version:       project.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	flags.String(config.FlagName(config.KeyCSVPath), "", "Path to the CSV, TSV or Parquet file to serve")
	flags.Int(config.FlagName(config.KeyLimitCap), defaults.LimitCap, "Maximum number of records any tool returns")
	flags.Duration(config.FlagName(config.KeyQueryTimeout), defaults.QueryTimeout, "Timeout for each SQL call, including waiting for the engine")
	flags.String(config.FlagName(config.KeyLogLevel), defaults.LogLevel, "Log level (debug, info, warn, error)")
	flags.String(config.FlagName(config.KeyLogFormat), defaults.LogFormat, "Log format (text, json)")

	root.AddCommand(
		newStdioCommand(),
		newHTTPCommand(),
		newQueryCommand(),
		newCallCommand(),
	)

	return root
}

// loadConfig resolves and validates the configuration for cmd and installs
// the configured logger
func loadConfig(cmd *cobra.Command, transport string) (*types.Config, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := config.Validate(cfg, transport); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func openQueryContext(ctx context.Context, cfg *types.Config) (*querycontext.QueryContext, error) {
	return querycontext.New(ctx, cfg.CSVPath, config.QueryOptions(*cfg)...)
}
