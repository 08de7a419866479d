package util

import (
	"encoding/json"
	"regexp"
)

// ToArray normalizes loosely typed option data into a slice. Slices pass
// through, JSON arrays are decoded, other JSON values are wrapped, and
// strings that are not JSON are split on delim when it is non-nil.
func ToArray(data interface{}, delim *regexp.Regexp) []interface{} {
	switch v := data.(type) {
	case nil:
		return []interface{}{}
	case []interface{}:
		return v
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case string:
		var parsed interface{}
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			if arr, ok := parsed.([]interface{}); ok {
				return arr
			}
			return []interface{}{parsed}
		}
		if delim != nil {
			parts := delim.Split(v, -1)
			out := make([]interface{}, 0, len(parts))
			for _, p := range parts {
				if p != "" {
					out = append(out, p)
				}
			}
			return out
		}
		return []interface{}{v}
	}
	return []interface{}{data}
}

// ToStrings is ToArray keeping only the string elements.
func ToStrings(data interface{}, delim *regexp.Regexp) []string {
	var out []string
	for _, v := range ToArray(data, delim) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
