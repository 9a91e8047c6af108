package tools

import (
	"context"

	"github.com/averycrespi/csvquery-mcp/pkg/types"
)

// CSVSchemaTool handles csv_schema requests
type CSVSchemaTool struct {
	querier types.Querier
}

// NewCSVSchemaTool creates a new csv_schema tool
func NewCSVSchemaTool(querier types.Querier) *CSVSchemaTool {
	return &CSVSchemaTool{querier: querier}
}

func (t *CSVSchemaTool) Name() string { return ToolCSVSchema }

func (t *CSVSchemaTool) Description() string {
	return "Return column names, dtypes, and row count."
}

func (t *CSVSchemaTool) Arguments() []Argument { return nil }

// Call returns the dataset schema
func (t *CSVSchemaTool) Call(_ context.Context, _ Arguments) (string, error) {
	return t.querier.Schema()
}
