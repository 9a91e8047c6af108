package querycontext

import (
	"github.com/averycrespi/csvquery-mcp/internal/dataset"
	"github.com/averycrespi/csvquery-mcp/internal/results"
)

// Head returns the first n rows in original row and column order. n is
// clamped into [1, limit cap].
func (q *QueryContext) Head(n int) (string, error) {
	n = q.clamp(n)
	if rows := q.data.NumRows(); n > rows {
		n = rows
	}

	names := q.data.Names()
	records := make([]*results.Object, 0, n)
	for i := 0; i < n; i++ {
		row := q.data.Row(i)
		for j := range row {
			row[j] = dataset.JSONValue(row[j])
		}
		records = append(records, results.NewRecord(names, row))
	}

	return results.EncodeRecords(records)
}
