package types

import "context"

// Client defines the MCP client interface used to reach a server over a transport
type Client interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	ListTools(ctx context.Context) ([]string, error)
	CallTool(ctx context.Context, name string, arguments map[string]any) (string, error)
}
