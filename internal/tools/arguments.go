package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ArgumentType is the scalar type a tool argument is coerced to
type ArgumentType string

const (
	ArgumentInteger ArgumentType = "integer"
	ArgumentString  ArgumentType = "string"
)

// Argument describes one named tool argument
type Argument struct {
	Name        string
	Type        ArgumentType
	Required    bool
	Default     any
	Description string
}

// Arguments holds validated argument values: int for integers, string for strings
type Arguments map[string]any

// Int returns the integer argument name, or 0 if absent
func (a Arguments) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

// String returns the string argument name, or "" if absent
func (a Arguments) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// InvocationError reports a tool call whose shape does not match the tool's
// argument schema
type InvocationError struct {
	Tool     string
	Argument string
	Reason   string
}

func (e *InvocationError) Error() string {
	if e.Argument == "" {
		return fmt.Sprintf("invalid call to %s: %s", e.Tool, e.Reason)
	}
	return fmt.Sprintf("invalid call to %s: argument %q %s", e.Tool, e.Argument, e.Reason)
}

// ValidateArguments checks raw arguments against schema and coerces them.
// Absent optional arguments take their default.
func ValidateArguments(tool string, schema []Argument, raw map[string]any) (Arguments, error) {
	known := make(map[string]struct{}, len(schema))
	for _, def := range schema {
		known[def.Name] = struct{}{}
	}

	unknown := make([]string, 0)
	for name := range raw {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &InvocationError{Tool: tool, Argument: unknown[0], Reason: "is not accepted by this tool"}
	}

	args := make(Arguments, len(schema))
	for _, def := range schema {
		value, ok := raw[def.Name]
		if !ok || value == nil {
			if def.Required {
				return nil, &InvocationError{Tool: tool, Argument: def.Name, Reason: "is required"}
			}
			if def.Default != nil {
				args[def.Name] = def.Default
			}
			continue
		}

		switch def.Type {
		case ArgumentInteger:
			n, ok := coerceInteger(value)
			if !ok {
				return nil, &InvocationError{Tool: tool, Argument: def.Name, Reason: fmt.Sprintf("must be an integer, got %v", value)}
			}
			args[def.Name] = n
		case ArgumentString:
			s, ok := value.(string)
			if !ok {
				return nil, &InvocationError{Tool: tool, Argument: def.Name, Reason: fmt.Sprintf("must be a string, got %T", value)}
			}
			args[def.Name] = s
		default:
			return nil, &InvocationError{Tool: tool, Argument: def.Name, Reason: fmt.Sprintf("has unsupported type %s", def.Type)}
		}
	}

	return args, nil
}

// coerceInteger accepts integral numbers and numeric strings. Integral
// values beyond the int range saturate, leaving bounds to the operation.
func coerceInteger(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return saturate(v)
	case json.Number:
		return parseInteger(v.String())
	case string:
		return parseInteger(strings.TrimSpace(v))
	default:
		return 0, false
	}
}

func saturate(f float64) (int, bool) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f):
		return 0, false
	case f >= float64(math.MaxInt):
		return math.MaxInt, true
	case f <= float64(math.MinInt):
		return math.MinInt, true
	default:
		return int(f), true
	}
}

func parseInteger(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 0)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		// ParseInt saturates on ErrRange
		return int(n), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		if math.IsInf(f, 1) {
			return math.MaxInt, true
		}
		if math.IsInf(f, -1) {
			return math.MinInt, true
		}
	}
	return saturate(f)
}
