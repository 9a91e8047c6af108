package querycontext

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/averycrespi/csvquery-mcp/internal/dataset"
	"github.com/averycrespi/csvquery-mcp/internal/results"

	"github.com/panjf2000/ants/v2"
)

// Summary returns descriptive statistics for every column. The dataset never
// changes, so the payload is computed once and reused.
func (q *QueryContext) Summary() (string, error) {
	q.summaryOnce.Do(func() {
		q.summaryPayload, q.summaryErr = q.computeSummary()
	})
	return q.summaryPayload, q.summaryErr
}

func (q *QueryContext) computeSummary() (string, error) {
	columns := q.data.Columns()
	stats := make([]*results.Object, len(columns))

	if len(columns) > 0 {
		workers := runtime.GOMAXPROCS(0)
		if workers > len(columns) {
			workers = len(columns)
		}

		pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
			slog.Error("Summary worker panic", "panic", v)
		}))
		if err != nil {
			return "", fmt.Errorf("failed to create summary pool: %w", err)
		}
		defer pool.Release()

		var wg sync.WaitGroup
		for i, col := range columns {
			wg.Add(1)
			err := pool.Submit(func() {
				defer wg.Done()
				stats[i] = describe(col)
			})
			if err != nil {
				wg.Done()
				wg.Wait()
				return "", fmt.Errorf("failed to schedule summary of column %s: %w", col.Name, err)
			}
		}
		wg.Wait()
	}

	summary := results.NewObject(len(columns))
	for i, col := range columns {
		if stats[i] == nil {
			return "", fmt.Errorf("failed to summarize column %s", col.Name)
		}
		summary.Set(col.Name, stats[i])
	}

	return results.Encode(results.SummaryResult{Summary: summary})
}

// describe computes the statistics for one column
func describe(col dataset.Column) *results.Object {
	var values map[string]any
	switch {
	case col.Type.IsNumeric():
		values = describeNumeric(col.Values)
	case col.Type == dataset.TypeDatetime:
		values = describeTemporal(col.Values)
	default:
		values = describeCategorical(col.Values)
	}

	stats := results.NewObject(len(StatisticKeys))
	for _, key := range StatisticKeys {
		if v, ok := values[key]; ok {
			stats.Set(key, v)
		} else {
			stats.Set(key, "")
		}
	}
	return stats
}
