package schema

import (
	"fmt"
	"strconv"
)

// Value coercion helpers. Capture records arrive from JSON decoding and from
// an extraction service that does not always honor its own contract, so
// these helpers accept the shapes json.Unmarshal produces and silently drop
// anything malformed. They never fail.

// CoerceString converts a scalar value to its text form. Numbers are
// rendered without a decimal point when integral, matching how page counts
// and similar numeric reads arrive.
func CoerceString(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case fmt.Stringer:
		return value.String(), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10), true
		}
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(value), true
	case nil:
		return "", false
	default:
		return "", false
	}
}

// CoerceStrings converts a value to a list of text items, dropping elements
// that are not scalar.
func CoerceStrings(v any) ([]string, bool) {
	switch value := v.(type) {
	case []string:
		out := make([]string, len(value))
		copy(out, value)
		return out, true
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := CoerceString(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	case nil:
		return nil, false
	default:
		return nil, false
	}
}

// CoerceEntries converts a value to a list of structured entries, dropping
// elements that are not string-keyed mappings.
func CoerceEntries(v any) ([]map[string]string, bool) {
	switch value := v.(type) {
	case []map[string]string:
		out := make([]map[string]string, 0, len(value))
		for _, entry := range value {
			out = append(out, copyEntry(entry))
		}
		return out, true
	case []any:
		out := make([]map[string]string, 0, len(value))
		for _, item := range value {
			if entry, ok := coerceEntry(item); ok {
				out = append(out, entry)
			}
		}
		return out, true
	case nil:
		return nil, false
	default:
		return nil, false
	}
}

// CoerceStringMap converts a value to a text-to-text mapping, dropping
// non-scalar values.
func CoerceStringMap(v any) (map[string]string, bool) {
	switch value := v.(type) {
	case map[string]string:
		return copyEntry(value), true
	case map[string]any:
		out := make(map[string]string, len(value))
		for k, item := range value {
			if s, ok := CoerceString(item); ok {
				out[k] = s
			}
		}
		return out, true
	case nil:
		return nil, false
	default:
		return nil, false
	}
}

func coerceEntry(v any) (map[string]string, bool) {
	switch value := v.(type) {
	case map[string]string:
		return copyEntry(value), true
	case map[string]any:
		out := make(map[string]string, len(value))
		for k, item := range value {
			if s, ok := CoerceString(item); ok {
				out[k] = s
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func copyEntry(entry map[string]string) map[string]string {
	out := make(map[string]string, len(entry))
	for k, v := range entry {
		out[k] = v
	}
	return out
}
