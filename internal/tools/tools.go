package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/averycrespi/csvquery-mcp/internal/metrics"
	"github.com/averycrespi/csvquery-mcp/internal/querycontext"
	"github.com/averycrespi/csvquery-mcp/pkg/types"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is a named operation with an argument schema
type Tool interface {
	Name() string
	Description() string
	Arguments() []Argument
	Call(ctx context.Context, args Arguments) (string, error)
}

// Registry maps tool names to tools. Every transport dispatches through the
// same registry, so tool names, arguments and results cannot drift between them.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry creates a registry holding the dataset tools backed by querier
func NewRegistry(querier types.Querier) *Registry {
	r := &Registry{byName: make(map[string]Tool)}
	r.Register(NewCSVSchemaTool(querier))
	r.Register(NewCSVHeadTool(querier))
	r.Register(NewSQLTool(querier))
	r.Register(NewSummaryTool(querier))
	return r
}

// Register adds a tool, replacing any tool with the same name
func (r *Registry) Register(tool Tool) {
	if _, ok := r.byName[tool.Name()]; !ok {
		r.tools = append(r.tools, tool)
	} else {
		for i, existing := range r.tools {
			if existing.Name() == tool.Name() {
				r.tools[i] = tool
			}
		}
	}
	r.byName[tool.Name()] = tool
}

// Tools returns the registered tools in registration order
func (r *Registry) Tools() []Tool {
	return r.tools
}

// Lookup returns the tool registered under name
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// Call validates raw arguments against the named tool's schema and invokes it
func (r *Registry) Call(ctx context.Context, name string, raw map[string]any) (string, error) {
	callID := uuid.NewString()
	start := time.Now()

	slog.Debug("MCP tool called", "tool", name, "call_id", callID, "arguments", raw)

	payload, err := r.call(ctx, name, raw)
	elapsed := time.Since(start)

	if err != nil {
		status := classify(err)
		metrics.ObserveToolCall(name, status, elapsed)
		if status == metrics.StatusError {
			slog.Error("MCP tool failed",
				"tool", name,
				"call_id", callID,
				"duration_ms", elapsed.Milliseconds(),
				"error", err)
		} else {
			slog.Debug("MCP tool call rejected",
				"tool", name,
				"call_id", callID,
				"status", status,
				"error", err)
		}
		return "", err
	}

	metrics.ObserveToolCall(name, metrics.StatusOK, elapsed)
	slog.Debug("MCP tool completed successfully",
		"tool", name,
		"call_id", callID,
		"duration_ms", elapsed.Milliseconds(),
		"bytes", len(payload))

	return payload, nil
}

func (r *Registry) call(ctx context.Context, name string, raw map[string]any) (string, error) {
	tool, ok := r.byName[name]
	if !ok {
		return "", &InvocationError{Tool: name, Reason: "unknown tool"}
	}

	args, err := ValidateArguments(name, tool.Arguments(), raw)
	if err != nil {
		return "", err
	}

	return tool.Call(ctx, args)
}

// Handler adapts the named tool to an MCP tool handler. Failures become
// error results rather than protocol errors.
func (r *Registry) Handler(name string) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := r.Call(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(payload), nil
	}
}

// Definition builds the MCP tool definition from the tool's argument schema
func Definition(tool Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(tool.Description())}

	for _, arg := range tool.Arguments() {
		props := []mcp.PropertyOption{mcp.Description(arg.Description)}
		if arg.Required {
			props = append(props, mcp.Required())
		}

		switch arg.Type {
		case ArgumentInteger:
			if d, ok := arg.Default.(int); ok {
				props = append(props, mcp.DefaultNumber(float64(d)))
			}
			opts = append(opts, mcp.WithNumber(arg.Name, props...))
		case ArgumentString:
			if d, ok := arg.Default.(string); ok {
				props = append(props, mcp.DefaultString(d))
			}
			opts = append(opts, mcp.WithString(arg.Name, props...))
		}
	}

	return mcp.NewTool(tool.Name(), opts...)
}

func classify(err error) string {
	var invocationErr *InvocationError
	var queryErr *querycontext.QueryError
	switch {
	case errors.As(err, &invocationErr):
		return metrics.StatusInvalidArguments
	case errors.As(err, &queryErr):
		return metrics.StatusQueryError
	default:
		return metrics.StatusError
	}
}
