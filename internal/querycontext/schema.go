package querycontext

import (
	"github.com/averycrespi/csvquery-mcp/internal/results"
)

// Schema reports the column names in original order, the dtype of each
// column and the row count.
func (q *QueryContext) Schema() (string, error) {
	columns := q.data.Columns()

	names := make([]string, len(columns))
	dtypes := results.NewObject(len(columns))
	for i, col := range columns {
		names[i] = col.Name
		dtypes.Set(col.Name, string(col.Type))
	}

	return results.Encode(results.SchemaResult{
		Columns: names,
		Dtypes:  dtypes,
		Rows:    q.data.NumRows(),
	})
}
