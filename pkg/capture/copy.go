package capture

// cloneRecord deep-copies a field record. Values are limited to the shapes
// JSON decoding produces plus the typed forms pkg/schema coercion emits.
func cloneRecord(record map[string]any) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record))
	for name, value := range record {
		out[name] = cloneValue(value)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = cloneValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(value))
		for k, item := range value {
			out[k] = item
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(value))
		copy(out, value)
		return out
	case []map[string]string:
		out := make([]map[string]string, len(value))
		for i, entry := range value {
			inner := make(map[string]string, len(entry))
			for k, item := range entry {
				inner[k] = item
			}
			out[i] = inner
		}
		return out
	default:
		// Scalars are copied by value.
		return value
	}
}
