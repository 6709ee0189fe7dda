package models

import "time"

// Field accessors for decoded JSON payloads. Every accessor tolerates a nil
// map and a missing or mismatched field, falling back to the provided
// default, so that normalization is total over any payload shape.

func strField(data map[string]any, key, fallback string) string {
	if val, ok := data[key].(string); ok {
		return val
	}

	return fallback
}

func boolField(data map[string]any, key string, fallback bool) bool {
	if val, ok := data[key].(bool); ok {
		return val
	}

	return fallback
}

// numField reads a numeric field, accepting both float64 (the encoding/json
// representation) and native integer types from hand-built payloads.
func numField(data map[string]any, key string) (int, bool) {
	switch val := data[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

func intField(data map[string]any, key string, fallback int) int {
	if val, ok := numField(data, key); ok {
		return val
	}

	return fallback
}

// optIntField returns nil when the field is absent, preserving the
// distinction between "zero" and "not present".
func optIntField(data map[string]any, key string) *int {
	if val, ok := numField(data, key); ok {
		return &val
	}

	return nil
}

func mapField(data map[string]any, key string) map[string]any {
	if val, ok := data[key].(map[string]any); ok {
		return val
	}

	return nil
}

// listField reads a list of objects, skipping entries which aren't objects.
func listField(data map[string]any, key string) []map[string]any {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}

	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			items = append(items, item)
		}
	}

	return items
}

// timeField converts an epoch-milliseconds field into an absolute UTC
// timestamp. An absent field yields nil rather than the zero epoch.
func timeField(data map[string]any, key string) *time.Time {
	var millis int64

	switch val := data[key].(type) {
	case float64:
		millis = int64(val)
	case int:
		millis = int64(val)
	case int64:
		millis = val
	default:
		return nil
	}

	ts := time.UnixMilli(millis).UTC()

	return &ts
}
