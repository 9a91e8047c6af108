package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
)

// LoadParquet reads every row of a parquet file into a Dataset.
//
// Column order follows the file schema. Nested groups are kept as a single
// object column holding their JSON encoding.
func LoadParquet(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pqFile.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}

	values := make([][]any, len(names))
	types := make([]ColumnType, len(names))

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]any)
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		for i, name := range names {
			cell, cellType := normalizeCell(row[name])
			types[i] = promote(types[i], cellType)
			values[i] = append(values[i], cell)
		}
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = coerceColumn(name, types[i], values[i])
	}

	return New(columns)
}

// normalizeCell maps a decoded parquet value onto the Dataset cell types.
func normalizeCell(v any) (any, ColumnType) {
	switch val := v.(type) {
	case nil:
		return nil, ""
	case bool:
		return val, TypeBool
	case int:
		return int64(val), TypeInt64
	case int8:
		return int64(val), TypeInt64
	case int16:
		return int64(val), TypeInt64
	case int32:
		return int64(val), TypeInt64
	case int64:
		return val, TypeInt64
	case uint8:
		return int64(val), TypeInt64
	case uint16:
		return int64(val), TypeInt64
	case uint32:
		return int64(val), TypeInt64
	case uint64:
		return float64(val), TypeFloat64
	case float32:
		return float64(val), TypeFloat64
	case float64:
		return val, TypeFloat64
	case string:
		return val, TypeObject
	case []byte:
		return string(val), TypeObject
	case time.Time:
		return val, TypeDatetime
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val), TypeObject
		}
		return string(encoded), TypeObject
	}
}

// coerceColumn converts cells to the column's promoted type.
func coerceColumn(name string, colType ColumnType, cells []any) Column {
	if colType == "" {
		colType = TypeObject
	}

	for i, cell := range cells {
		if cell == nil {
			continue
		}
		switch colType {
		case TypeFloat64:
			if n, ok := cell.(int64); ok {
				cells[i] = float64(n)
			}
		case TypeObject:
			if _, ok := cell.(string); !ok {
				cells[i] = FormatValue(cell)
			}
		}
	}

	return Column{Name: name, Type: colType, Values: cells}
}
