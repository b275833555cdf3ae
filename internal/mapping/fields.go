package mapping

import (
	"fmt"
	"math"
	"strings"
)

// stringField returns the first alias holding a non-blank string.
func stringField(fields map[string]any, aliases []string) *string {
	for _, name := range aliases {
		s, ok := fields[name].(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		return &s
	}
	return nil
}

// timestampField accepts "HH:MM:SS" style strings or a number of seconds.
func timestampField(fields map[string]any, aliases []string) *string {
	for _, name := range aliases {
		switch v := fields[name].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return &s
			}
		case int:
			return clock(float64(v))
		case int32:
			return clock(float64(v))
		case int64:
			return clock(float64(v))
		case float32:
			return clock(float64(v))
		case float64:
			return clock(v)
		}
	}
	return nil
}

func clock(seconds float64) *string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil
	}
	total := int64(seconds)
	s := fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	return &s
}

// listField accepts a list of strings or a comma separated string.
func listField(fields map[string]any, aliases []string) []string {
	for _, name := range aliases {
		var items []string
		switch v := fields[name].(type) {
		case []string:
			items = v
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
		case string:
			items = strings.Split(v, ",")
		default:
			continue
		}

		result := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return nil
}
