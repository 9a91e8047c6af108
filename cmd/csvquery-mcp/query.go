package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/averycrespi/csvquery-mcp/internal/client"
	"github.com/averycrespi/csvquery-mcp/internal/tools"
	"github.com/averycrespi/csvquery-mcp/pkg/types"

	"github.com/spf13/cobra"
)

func newQueryCommand() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "query TOOL [key=value...]",
		Short: "Run a tool in-process and print its result",
		Example: `  csvquery-mcp query --csv-path data.csv csv_schema
  csvquery-mcp query --csv-path data.csv sql "query=SELECT COUNT(*) AS n FROM df"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := parseArguments(args[1:])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, types.TransportStdio)
			if err != nil {
				return err
			}

			qc, err := openQueryContext(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer qc.Close()

			payload, err := tools.NewRegistry(qc).Call(cmd.Context(), args[0], arguments)
			if err != nil {
				return err
			}

			return printPayload(cmd.OutOrStdout(), payload, table)
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Render the result as a table")

	return cmd
}

func newCallCommand() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "call TOOL [key=value...]",
		Short: "Call a tool through a stdio MCP server subprocess",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := parseArguments(args[1:])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, types.TransportStdio)
			if err != nil {
				return err
			}

			executable, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate executable: %w", err)
			}

			serverArgs := []string{
				"stdio",
				"--csv-path", cfg.CSVPath,
				"--limit-cap", fmt.Sprint(cfg.LimitCap),
				"--query-timeout", cfg.QueryTimeout.String(),
				"--log-level", "error",
			}

			c := client.NewStdioClient(executable, serverArgs...)
			if err := c.Start(cmd.Context()); err != nil {
				return err
			}
			defer c.Stop(cmd.Context())

			payload, err := c.CallTool(cmd.Context(), args[0], arguments)
			if err != nil {
				return err
			}

			return printPayload(cmd.OutOrStdout(), payload, table)
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Render the result as a table")

	return cmd
}

// parseArguments turns key=value pairs into tool arguments. Values stay
// strings; integer arguments are coerced during validation.
func parseArguments(pairs []string) (map[string]any, error) {
	arguments := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		if _, dup := arguments[key]; dup {
			return nil, fmt.Errorf("duplicate argument %q", key)
		}
		arguments[key] = value
	}
	return arguments, nil
}

func printPayload(w io.Writer, payload string, table bool) error {
	if table {
		return renderTable(w, payload)
	}
	_, err := fmt.Fprintln(w, payload)
	return err
}
