package querycontext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/averycrespi/csvquery-mcp/internal/results"
)

var errEmptyQuery = errors.New("query is empty")

// SQL runs query against relation "df" and returns at most limit records,
// with limit clamped into [1, limit cap].
//
// The query is wrapped as a subquery under an outer LIMIT, so its own
// ORDER BY and LIMIT still apply but cannot lift the cap. Engine failures,
// including the statement timeout, are returned as *QueryError.
func (q *QueryContext) SQL(ctx context.Context, query string, limit int) (string, error) {
	limit = q.clamp(limit)

	inner := strings.TrimRight(strings.TrimSpace(query), "; \t\r\n")
	if inner == "" {
		return "", &QueryError{Query: query, Err: errEmptyQuery}
	}

	// Newlines keep a trailing line comment in the caller's query from
	// swallowing the closing parenthesis.
	wrapped := fmt.Sprintf("SELECT * FROM (\n%s\n) AS sub LIMIT %d", inner, limit)
	slog.Debug("Executing SQL", "query", wrapped, "limit", limit)

	ctx, cancel := context.WithTimeout(ctx, q.queryTimeout)
	defer cancel()

	records, err := q.execute(ctx, wrapped, limit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: exceeded timeout of %s", ctxErr, q.queryTimeout)
			}
		}
		return "", &QueryError{Query: query, Err: err}
	}

	return results.EncodeRecords(records)
}

func (q *QueryContext) execute(ctx context.Context, query string, limit int) ([]*results.Object, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	decls := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		decls[i] = strings.ToUpper(ct.DatabaseTypeName())
	}

	records := make([]*results.Object, 0)
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if len(records) >= limit {
			break
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make([]any, len(columns))
		for i, v := range values {
			row[i] = resultValue(v, decls[i])
		}
		records = append(records, results.NewRecord(columns, row))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
