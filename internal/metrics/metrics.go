package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tool call outcomes
const (
	StatusOK               = "ok"
	StatusInvalidArguments = "invalid_arguments"
	StatusQueryError       = "query_error"
	StatusError            = "error"
)

var (
	// ToolCallsTotal counts tool invocations by tool and outcome.
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "csvquery_tool_calls_total",
			Help: "Total number of MCP tool calls",
		},
		[]string{"tool", "status"},
	)
	// ToolCallDuration is the latency of tool calls.
	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "csvquery_tool_call_duration_seconds",
			Help:    "MCP tool call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
	// DatasetRows is the row count of the loaded dataset.
	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "csvquery_dataset_rows",
			Help: "Number of rows in the loaded dataset",
		},
	)
	// DatasetColumns is the column count of the loaded dataset.
	DatasetColumns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "csvquery_dataset_columns",
			Help: "Number of columns in the loaded dataset",
		},
	)
)

// ObserveToolCall records one finished tool call
func ObserveToolCall(tool, status string, elapsed time.Duration) {
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// SetDatasetShape records the dimensions of the loaded dataset
func SetDatasetShape(rows, columns int) {
	DatasetRows.Set(float64(rows))
	DatasetColumns.Set(float64(columns))
}
