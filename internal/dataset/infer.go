package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Tokens treated as missing values, matching the defaults of common CSV readers.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

func isMissing(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferColumn picks the narrowest type that parses every non-missing cell
// and converts the raw text accordingly.
func inferColumn(name string, raw []string) Column {
	present := make([]string, 0, len(raw))
	for _, s := range raw {
		if !isMissing(s) {
			present = append(present, strings.TrimSpace(s))
		}
	}

	colType := TypeObject
	if len(present) > 0 {
		switch {
		case all(present, func(s string) bool { _, err := strconv.ParseInt(s, 10, 64); return err == nil }):
			colType = TypeInt64
		case all(present, func(s string) bool { _, err := strconv.ParseFloat(s, 64); return err == nil }):
			colType = TypeFloat64
		case all(present, func(s string) bool { _, ok := parseBool(s); return ok }):
			colType = TypeBool
		case all(present, func(s string) bool { _, ok := parseTime(s); return ok }):
			colType = TypeDatetime
		}
	}

	values := make([]any, len(raw))
	for i, s := range raw {
		if isMissing(s) {
			continue
		}
		trimmed := strings.TrimSpace(s)
		switch colType {
		case TypeInt64:
			values[i], _ = strconv.ParseInt(trimmed, 10, 64)
		case TypeFloat64:
			values[i], _ = strconv.ParseFloat(trimmed, 64)
		case TypeBool:
			values[i], _ = parseBool(trimmed)
		case TypeDatetime:
			values[i], _ = parseTime(trimmed)
		default:
			values[i] = s
		}
	}

	return Column{Name: name, Type: colType, Values: values}
}

func all(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

// promote returns the common type of two observed cell types.
func promote(a, b ColumnType) ColumnType {
	switch {
	case a == "":
		return b
	case b == "" || a == b:
		return a
	case a.IsNumeric() && b.IsNumeric():
		return TypeFloat64
	default:
		return TypeObject
	}
}
