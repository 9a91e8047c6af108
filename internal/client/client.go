package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/averycrespi/csvquery-mcp/pkg/project"
	"github.com/averycrespi/csvquery-mcp/pkg/types"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

var _ types.Client = &StdioClient{}

// ToolError is a tool result the server flagged as an error
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed: %s", e.Tool, e.Message)
}

// StdioClient talks to an MCP server subprocess over its stdin and stdout
type StdioClient struct {
	command string
	args    []string
	mcp     *mcpclient.Client
}

// NewStdioClient creates a client that runs command with args on Start
func NewStdioClient(command string, args ...string) *StdioClient {
	slog.Debug("Creating new stdio client", "command", command, "args", args)

	return &StdioClient{
		command: command,
		args:    args,
	}
}

// Start spawns the server process and performs the MCP handshake
func (c *StdioClient) Start(ctx context.Context) error {
	slog.Debug("Starting stdio client", "command", c.command)

	mcpClient, err := mcpclient.NewStdioMCPClient(c.command, nil, c.args...)
	if err != nil {
		return fmt.Errorf("failed to start server command: %w", err)
	}
	c.mcp = mcpClient

	return c.initialize(ctx)
}

func (c *StdioClient) initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    project.Name,
		Version: project.Version,
	}

	result, err := c.mcp.Initialize(ctx, req)
	if err != nil {
		_ = c.mcp.Close()
		return fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	slog.Debug("MCP session initialized successfully",
		"server", result.ServerInfo.Name,
		"protocol_version", result.ProtocolVersion)

	return nil
}

// Stop closes the session and terminates the server process
func (c *StdioClient) Stop(ctx context.Context) error {
	if c.mcp == nil {
		return nil
	}

	if err := c.mcp.Close(); err != nil {
		return fmt.Errorf("failed to close MCP session: %w", err)
	}

	return nil
}

// ListTools returns the names of the tools the server offers
func (c *StdioClient) ListTools(ctx context.Context) ([]string, error) {
	result, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}

	slog.Debug("Listed tools", "count", len(names))
	return names, nil
}

// CallTool invokes a tool and returns its text payload. Error results are
// returned as a *ToolError.
func (c *StdioClient) CallTool(ctx context.Context, name string, arguments map[string]any) (string, error) {
	slog.Debug("Calling tool", "tool", name, "arguments", arguments)

	if arguments == nil {
		arguments = map[string]any{}
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = arguments

	result, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to call tool %s: %w", name, err)
	}

	text := textOf(result.Content)
	if result.IsError {
		return "", &ToolError{Tool: name, Message: text}
	}

	return text, nil
}

func textOf(contents []mcp.Content) string {
	var texts []string
	for _, content := range contents {
		switch tc := content.(type) {
		case mcp.TextContent:
			texts = append(texts, tc.Text)
		case *mcp.TextContent:
			texts = append(texts, tc.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// Pipe connects a client to a server reading from serverIn and writing to
// serverOut, without spawning a process
func Pipe(ctx context.Context, serverIn io.WriteCloser, serverOut io.Reader) (*StdioClient, error) {
	tr := transport.NewIO(serverOut, serverIn, io.NopCloser(strings.NewReader("")))

	mcpClient := mcpclient.NewClient(tr)
	if err := mcpClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start transport: %w", err)
	}

	c := &StdioClient{mcp: mcpClient}
	if err := c.initialize(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
