// Package payload provides safe accessors over the loosely-typed JSON values
// returned by the backends. Reducers go through these helpers exclusively so
// that an unexpected shape surfaces as an absence, never as a panic.
package payload

import (
	"encoding/json"
	"strconv"
)

// AsMap reports v as a JSON object.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsList reports v as a JSON array.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// FirstOf returns the value of the first key present in m, in the given order.
func FirstOf(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Record resolves the nested record the backends wrap their data in: the value
// of the first present key wins, otherwise v itself. Callers still need to
// check the resolved value is a mapping.
func Record(v any, keys ...string) any {
	if m, ok := AsMap(v); ok {
		if nested, ok := FirstOf(m, keys...); ok {
			return nested
		}
	}
	return v
}

// ScalarString renders a scalar JSON value as display text. Composite values
// (objects, arrays) and nulls report ok=false.
func ScalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case json.Number:
		return s.String(), true
	default:
		return "", false
	}
}

// Truthy reports whether a scalar carries displayable content: non-empty
// strings, non-zero numbers, and true. Composite values and nulls are falsy.
func Truthy(v any) bool {
	switch s := v.(type) {
	case string:
		return s != ""
	case bool:
		return s
	case float64:
		return s != 0
	case json.Number:
		return s.String() != "0" && s.String() != ""
	default:
		return false
	}
}
