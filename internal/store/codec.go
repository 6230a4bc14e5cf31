package store

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Encode serializes a collection for storage.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// Decode deserializes snapshot data into v. Typed destinations get their
// time.Time fields restored by encoding/json's RFC 3339 handling.
func Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return nil
}

// isoDateTime matches the RFC 3339 / ISO-8601 date-time strings produced by
// Encode for time.Time fields.
var isoDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)

// ReviveDates walks an untyped decoded value and converts every string that
// looks like an ISO-8601 date-time into a time.Time. Anything that does not
// match the pattern is left as-is. Used on the raw-dump path where no typed
// destination is available.
func ReviveDates(v any) any {
	switch val := v.(type) {
	case string:
		if isoDateTime.MatchString(val) {
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				return t
			}
		}
		return val
	case map[string]any:
		for k, item := range val {
			val[k] = ReviveDates(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = ReviveDates(item)
		}
		return val
	default:
		return v
	}
}
