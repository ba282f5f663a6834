package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decodeCollection extracts the array stored under key in a JSON envelope.
// A syntax error is returned to the caller; a well-formed body without an
// array under key yields nil so the caller degrades to an empty collection.
func decodeCollection(body []byte, key string) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s body: %w", key, err)
	}

	switch v := doc.(type) {
	case map[string]any:
		items, _ := v[key].([]any)
		return items, nil
	case []any:
		return v, nil
	}
	return nil, nil
}

// str returns the first non-blank string among keys.
func str(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// num returns the first finite number among keys, accepting numeric strings.
func num(raw map[string]any, keys ...string) float64 {
	for _, k := range keys {
		var f float64
		var ok bool
		switch v := raw[k].(type) {
		case float64:
			f, ok = v, true
		case int:
			f, ok = float64(v), true
		case json.Number:
			parsed, err := v.Float64()
			f, ok = parsed, err == nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			f, ok = parsed, err == nil
		}
		if ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return 0
}

func integer(raw map[string]any, keys ...string) int {
	return int(num(raw, keys...))
}

func object(raw map[string]any, key string) map[string]any {
	m, _ := raw[key].(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
