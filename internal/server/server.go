package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/averycrespi/csvquery-mcp/internal/metrics"
	"github.com/averycrespi/csvquery-mcp/internal/querycontext"
	"github.com/averycrespi/csvquery-mcp/internal/tools"
	"github.com/averycrespi/csvquery-mcp/pkg/project"
	"github.com/averycrespi/csvquery-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/server"
)

var _ types.Server = &CSVServer{}

// CSVServer exposes a loaded query context as an MCP server
type CSVServer struct {
	mcpServer *server.MCPServer
	qc        *querycontext.QueryContext
	registry  *tools.Registry
	config    *types.Config
}

// NewCSVServer creates an MCP server over qc. The server does not own qc.
func NewCSVServer(config *types.Config, qc *querycontext.QueryContext) *CSVServer {
	mcpServer := server.NewMCPServer(
		project.Name,
		project.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &CSVServer{
		mcpServer: mcpServer,
		qc:        qc,
		registry:  tools.NewRegistry(qc),
		config:    config,
	}
	s.registerTools()

	data := qc.Dataset()
	metrics.SetDatasetShape(data.NumRows(), data.NumColumns())

	return s
}

func (s *CSVServer) registerTools() {
	for _, tool := range s.registry.Tools() {
		s.mcpServer.AddTool(tools.Definition(tool), s.registry.Handler(tool.Name()))
	}
}

// MCPServer returns the underlying MCP server
func (s *CSVServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Registry returns the tool registry shared by every transport
func (s *CSVServer) Registry() *tools.Registry {
	return s.registry
}

// Serve runs the transport named in the config until ctx is done
func (s *CSVServer) Serve(ctx context.Context) error {
	if s.config.Transport == types.TransportStdio {
		return s.ServeStdio(ctx, os.Stdin, os.Stdout)
	}
	return s.ListenAndServe(ctx)
}

// ServeStdio serves newline-delimited JSON-RPC on in and out until in is
// closed or ctx is done
func (s *CSVServer) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	slog.Info("Starting MCP server", "transport", types.TransportStdio, "dataset", s.qc.Path())

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}

	return nil
}
