package main

import (
	"github.com/averycrespi/csvquery-mcp/internal/config"
	"github.com/averycrespi/csvquery-mcp/internal/server"
	"github.com/averycrespi/csvquery-mcp/pkg/types"

	"github.com/spf13/cobra"
)

func newStdioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, types.TransportStdio)
			if err != nil {
				return err
			}
			cfg.Transport = types.TransportStdio
			return serve(cmd, cfg)
		},
	}
}

func newHTTPCommand() *cobra.Command {
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve MCP over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, types.TransportHTTP)
			if err != nil {
				return err
			}
			return serve(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String(config.FlagName(config.KeyTransport), defaults.Transport, "HTTP transport (http, streamable-http, sse)")
	flags.String(config.FlagName(config.KeyHost), defaults.Host, "Host to bind")
	flags.Int(config.FlagName(config.KeyPort), defaults.Port, "Port to bind")
	flags.String(config.FlagName(config.KeyPath), defaults.Path, "URL path of the MCP endpoint")

	return cmd
}

func serve(cmd *cobra.Command, cfg *types.Config) error {
	ctx := cmd.Context()

	qc, err := openQueryContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer qc.Close()

	return server.NewCSVServer(cfg, qc).Serve(ctx)
}
