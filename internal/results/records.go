package results

import (
	"encoding/json"
	"fmt"
)

// SchemaResult represents the result of the csv_schema tool
type SchemaResult struct {
	Columns []string `json:"columns"`
	Dtypes  *Object  `json:"dtypes"`
	Rows    int      `json:"rows"`
}

// SummaryResult represents the result of the summary tool, keyed by column
// and then by statistic
type SummaryResult struct {
	Summary *Object `json:"summary"`
}

// NewRecord builds a record from parallel column and value slices
func NewRecord(columns []string, values []any) *Object {
	record := NewObject(len(columns))
	for i, col := range columns {
		record.Set(col, values[i])
	}
	return record
}

// Encode serializes a tool result into its compact JSON payload
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result JSON: %w", err)
	}
	return string(data), nil
}

// EncodeRecords serializes records as a JSON array, never as null
func EncodeRecords(records []*Object) (string, error) {
	if records == nil {
		records = []*Object{}
	}
	return Encode(records)
}
