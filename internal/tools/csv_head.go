package tools

import (
	"context"

	"github.com/averycrespi/csvquery-mcp/pkg/types"
)

// CSVHeadTool handles csv_head requests
type CSVHeadTool struct {
	querier types.Querier
}

// NewCSVHeadTool creates a new csv_head tool
func NewCSVHeadTool(querier types.Querier) *CSVHeadTool {
	return &CSVHeadTool{querier: querier}
}

func (t *CSVHeadTool) Name() string { return ToolCSVHead }

func (t *CSVHeadTool) Description() string {
	return "Return the first n rows as JSON records."
}

func (t *CSVHeadTool) Arguments() []Argument {
	return []Argument{
		{
			Name:        "n",
			Type:        ArgumentInteger,
			Default:     DefaultHeadRows,
			Description: "Number of rows to return. Values are clamped to at least 1 and at most the server's row cap.",
		},
	}
}

// Call returns the first n rows
func (t *CSVHeadTool) Call(_ context.Context, args Arguments) (string, error) {
	return t.querier.Head(args.Int("n"))
}
