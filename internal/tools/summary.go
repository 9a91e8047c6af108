package tools

import (
	"context"

	"github.com/averycrespi/csvquery-mcp/pkg/types"
)

// SummaryTool handles summary requests
type SummaryTool struct {
	querier types.Querier
}

// NewSummaryTool creates a new summary tool
func NewSummaryTool(querier types.Querier) *SummaryTool {
	return &SummaryTool{querier: querier}
}

func (t *SummaryTool) Name() string { return ToolSummary }

func (t *SummaryTool) Description() string {
	return "Summary statistics for numeric and categorical columns."
}

func (t *SummaryTool) Arguments() []Argument { return nil }

// Call returns per-column descriptive statistics
func (t *SummaryTool) Call(_ context.Context, _ Arguments) (string, error) {
	return t.querier.Summary()
}
