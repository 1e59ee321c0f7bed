package fieldmap

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number converts JSON numbers and numeric strings to float64.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// TimeLayout is the stored form of time fields. Fixed width in UTC so the
// JSON text sorts chronologically.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time parses a timestamp value. Empty values yield (nil, nil).
func Time(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return nil, nil
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				utc := parsed.UTC()
				return &utc, nil
			}
		}
		return nil, fmt.Errorf("unrecognized timestamp %q", trimmed)
	default:
		// epoch millis
		if ms, ok := Number(v); ok {
			parsed := time.UnixMilli(int64(ms)).UTC()
			return &parsed, nil
		}
		return nil, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

// Strings collects the string elements of a JSON array value. Non-arrays and
// non-string elements are skipped.
func Strings(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// StringPtr returns nil for non-string or empty values.
func StringPtr(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
