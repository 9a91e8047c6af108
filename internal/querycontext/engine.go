package querycontext

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/averycrespi/csvquery-mcp/internal/dataset"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const declBoolean = "BOOLEAN"

// engine is a named shared-cache in-memory database. The anchor connection
// keeps the database alive for the engine's lifetime, so a query connection
// discarded after a timeout or cancellation can be replaced without losing
// the relation.
type engine struct {
	store  *sql.DB
	anchor *sql.Conn
	db     *sql.DB
}

// openEngine creates a private in-memory database holding the dataset as
// relation "df", and a read-only pool of one connection for queries.
func openEngine(ctx context.Context, data *dataset.Dataset) (*engine, error) {
	if data.NumColumns() == 0 {
		return nil, fmt.Errorf("dataset has no columns")
	}

	dsn := fmt.Sprintf("file:csvquery-%s?mode=memory&cache=shared", uuid.NewString())

	store, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	store.SetMaxOpenConns(1)

	anchor, err := store.Conn(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to open engine connection: %w", err)
	}

	e := &engine{store: store, anchor: anchor}

	if err := register(ctx, anchor, data); err != nil {
		_ = e.Close()
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn+"&_pragma=query_only(1)")
	if err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("failed to open query pool: %w", err)
	}
	e.db = db

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	var n int
	row := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(RelationName)))
	if err := row.Scan(&n); err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("failed to attach query pool: %w", err)
	}
	if n != data.NumRows() {
		_ = e.Close()
		return nil, fmt.Errorf("query pool sees %d rows, loaded %d", n, data.NumRows())
	}

	return e, nil
}

// Close releases the query pool, then the anchor, which frees the database
func (e *engine) Close() error {
	var errs []error
	if e.db != nil {
		errs = append(errs, e.db.Close())
	}
	errs = append(errs, e.anchor.Close(), e.store.Close())
	return errors.Join(errs...)
}

func register(ctx context.Context, conn *sql.Conn, data *dataset.Dataset) error {
	columns := data.Columns()

	defs := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col.Name) + " " + declType(col.Type)
		placeholders[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(RelationName), strings.Join(defs, ", "))
	if _, err := conn.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create relation: %w", err)
	}

	if data.NumRows() == 0 {
		return nil
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(RelationName), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(columns))
	for row := 0; row < data.NumRows(); row++ {
		for i, col := range columns {
			args[i] = engineValue(col.Values[row])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", row, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}
	return nil
}

func declType(t dataset.ColumnType) string {
	switch t {
	case dataset.TypeInt64:
		return "INTEGER"
	case dataset.TypeFloat64:
		return "REAL"
	case dataset.TypeBool:
		return declBoolean
	case dataset.TypeDatetime:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// engineValue converts a dataset cell into a value bound into the relation.
// Temporal cells are stored as RFC 3339 text so they compare lexically.
func engineValue(v any) any {
	switch val := v.(type) {
	case bool:
		if val {
			return int64(1)
		}
		return int64(0)
	case float64:
		if math.IsNaN(val) {
			return nil
		}
		return val
	case time.Time:
		return val.Format(dataset.TimeLayout)
	default:
		return v
	}
}

// resultValue converts a scanned engine value into a JSON-ready value
func resultValue(v any, decl string) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int64:
		if decl == declBoolean {
			return val != 0
		}
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case time.Time:
		return val.Format(dataset.TimeLayout)
	default:
		return v
	}
}
