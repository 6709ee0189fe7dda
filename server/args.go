package server

import (
	"fmt"

	"github.com/ryclarke/stash-mcp/paging"
)

// stringArg reads an optional string argument, returning fallback when
// the argument is absent or empty.
func stringArg(args map[string]any, key, fallback string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}

	return fallback
}

// requireString reads a mandatory string argument.
func requireString(args map[string]any, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}

	return val, nil
}

// intArg reads an optional integer argument. JSON numbers decode as
// float64, but exact integers are accepted as well.
func intArg(args map[string]any, key string, fallback int) int {
	switch val := args[key].(type) {
	case float64:
		return int(val)
	case int:
		return val
	case int64:
		return int(val)
	}

	return fallback
}

// requireInt reads a mandatory integer argument.
func requireInt(args map[string]any, key string) (int, error) {
	if _, ok := args[key]; !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}

	switch val := args[key].(type) {
	case float64:
		return int(val), nil
	case int:
		return val, nil
	case int64:
		return int(val), nil
	}

	return 0, fmt.Errorf("argument %q must be a number", key)
}

// boolArg reads an optional boolean argument.
func boolArg(args map[string]any, key string, fallback bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}

	return fallback
}

// pagingArg builds collection options from the standard start, limit and
// all arguments shared by every listing tool.
func pagingArg(args map[string]any) paging.Options {
	return paging.Options{
		Start: intArg(args, "start", 0),
		Limit: intArg(args, "limit", paging.DefaultPageSize),
		All:   boolArg(args, "all", false),
	}
}
