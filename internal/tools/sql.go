package tools

import (
	"context"

	"github.com/averycrespi/csvquery-mcp/pkg/types"
)

// SQLTool handles sql requests
type SQLTool struct {
	querier types.Querier
}

// NewSQLTool creates a new sql tool
func NewSQLTool(querier types.Querier) *SQLTool {
	return &SQLTool{querier: querier}
}

func (t *SQLTool) Name() string { return ToolSQL }

func (t *SQLTool) Description() string {
	return "Run a read-only SQL query against the in-memory table 'df' and return the rows as JSON records. " +
		"Example: SELECT col, AVG(val) FROM df GROUP BY col ORDER BY 2 DESC LIMIT 10"
}

func (t *SQLTool) Arguments() []Argument {
	return []Argument{
		{
			Name:        "query",
			Type:        ArgumentString,
			Required:    true,
			Description: "SQL query. The only table is 'df'.",
		},
		{
			Name:        "limit",
			Type:        ArgumentInteger,
			Default:     DefaultSQLLimit,
			Description: "Maximum number of rows to return. Values are clamped to at least 1 and at most the server's row cap.",
		},
	}
}

// Call runs the query under the requested limit
func (t *SQLTool) Call(ctx context.Context, args Arguments) (string, error) {
	return t.querier.SQL(ctx, args.String("query"), args.Int("limit"))
}
