package utils

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
func ToInt(val any) int {
	return int(ToInt64(val))
}

// ToInt64 converts various types to int64. Document stores return numbers as
// int32, int64 or float64 depending on how they were written.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		return i
	default:
		i, _ := strconv.ParseInt(fmt.Sprintf("%v", v), 10, 64)
		return i
	}
}

// ParseStopID parses a positive stop id.
func ParseStopID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid stop id %q: %w", s, err)
	}
	if id < 0 {
		return 0, fmt.Errorf("invalid stop id %q: must not be negative", s)
	}
	return id, nil
}

// ParseOptionalBool parses "true"/"false"/"1"/"0". An empty string returns nil.
func ParseOptionalBool(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", s)
	}
	return &b, nil
}

// ClearOptions selects which empty values ClearValues removes.
type ClearOptions struct {
	RemoveNil          bool
	RemoveEmptyStrings bool
	RemoveEmptyLists   bool
	RemoveEmptyMaps    bool
}

// ClearValues returns a copy of d without the empty values selected by opts.
// Nested maps are cleared recursively.
func ClearValues(d map[string]any, opts ClearOptions) map[string]any {
	if d == nil {
		return nil
	}
	out := make(map[string]any, len(d))
	for key, value := range d {
		switch v := value.(type) {
		case nil:
			if opts.RemoveNil {
				continue
			}
		case string:
			if opts.RemoveEmptyStrings && v == "" {
				continue
			}
		case []any:
			if opts.RemoveEmptyLists && len(v) == 0 {
				continue
			}
		case map[string]any:
			if opts.RemoveEmptyMaps && len(v) == 0 {
				continue
			}
			value = ClearValues(v, opts)
		}
		out[key] = value
	}
	return out
}

// Without returns a copy of d without the given keys.
func Without(d map[string]any, keys ...string) map[string]any {
	if d == nil {
		return nil
	}
	out := maps.Clone(d)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
