package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/averycrespi/csvquery-mcp/internal/results"

	"github.com/olekukonko/tablewriter"
)

// renderTable prints a tool payload as a text table. Record arrays become
// one row per record, the schema becomes one row per column, and the
// summary becomes one row per statistic.
func renderTable(w io.Writer, payload string) error {
	v, err := results.Decode([]byte(payload))
	if err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}

	header, rows := tabulate(v)

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()

	return nil
}

func tabulate(v any) ([]string, [][]string) {
	switch v := v.(type) {
	case []any:
		return tabulateRecords(v)
	case *results.Object:
		if dtypes, ok := v.Get("dtypes"); ok {
			if obj, ok := dtypes.(*results.Object); ok {
				return tabulatePairs([]string{"column", "dtype"}, obj)
			}
		}
		if summary, ok := v.Get("summary"); ok {
			if obj, ok := summary.(*results.Object); ok {
				return tabulateSummary(obj)
			}
		}
		return tabulatePairs([]string{"key", "value"}, v)
	default:
		return []string{"value"}, [][]string{{cell(v)}}
	}
}

func tabulateRecords(records []any) ([]string, [][]string) {
	var header []string
	if len(records) > 0 {
		if first, ok := records[0].(*results.Object); ok {
			header = first.Keys()
		}
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		obj, ok := record.(*results.Object)
		if !ok {
			rows = append(rows, []string{cell(record)})
			continue
		}
		row := make([]string, len(header))
		for i, key := range header {
			value, _ := obj.Get(key)
			row[i] = cell(value)
		}
		rows = append(rows, row)
	}

	return header, rows
}

func tabulatePairs(header []string, obj *results.Object) ([]string, [][]string) {
	rows := make([][]string, 0, obj.Len())
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		rows = append(rows, []string{key, cell(value)})
	}
	return header, rows
}

func tabulateSummary(summary *results.Object) ([]string, [][]string) {
	columns := summary.Keys()
	header := append([]string{"statistic"}, columns...)
	if len(columns) == 0 {
		return header, nil
	}

	first, _ := summary.Get(columns[0])
	stats, ok := first.(*results.Object)
	if !ok {
		return header, nil
	}

	rows := make([][]string, 0, stats.Len())
	for _, stat := range stats.Keys() {
		row := []string{stat}
		for _, col := range columns {
			var value any
			if colStats, ok := objectAt(summary, col); ok {
				value, _ = colStats.Get(stat)
			}
			row = append(row, cell(value))
		}
		rows = append(rows, row)
	}

	return header, rows
}

func objectAt(obj *results.Object, key string) (*results.Object, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, false
	}
	inner, ok := v.(*results.Object)
	return inner, ok
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return fmt.Sprint(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}
