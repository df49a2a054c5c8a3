// Package codec implements the portable record format for the metamodel:
// a tagged record per element (__type discriminator plus the element's
// declared fields), with a Type's directly-owned features embedded inline.
// The format is the sole wire contract consumed by the diagram renderer and
// the save/load service, so field names must stay stable.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel failures. Callers always get a typed error, never a partially
// built element.
var (
	ErrUnknownKind  = errors.New("unknown element kind")
	ErrMissingField = errors.New("missing required field")
)

// TypeKey is the discriminator field naming the concrete kind.
const TypeKey = "__type"

// Record is one portable element record. Values are JSON-shaped: strings,
// bools, numbers, []any and nested Records survive a marshal/unmarshal
// cycle.
type Record map[string]any

// getString reads a string field, tolerating absence.
func getString(rec Record, key string) (string, bool) {
	v, ok := rec[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// requireString reads a mandatory string field.
func requireString(rec Record, key string) (string, error) {
	s, ok := getString(rec, key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return s, nil
}

// getBool reads a bool field, defaulting to false.
func getBool(rec Record, key string) bool {
	if v, ok := rec[key].(bool); ok {
		return v
	}
	return false
}

// getInt reads an integer field. JSON decoding yields float64, so both
// representations are accepted.
func getInt(rec Record, key string) (int, bool) {
	switch v := rec[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// requireInt reads a mandatory integer field.
func requireInt(rec Record, key string) (int, error) {
	n, ok := getInt(rec, key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return n, nil
}

// getStringSlice reads a list of strings, tolerating the []any shape JSON
// decoding produces.
func getStringSlice(rec Record, key string) []string {
	switch v := rec[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// getRecordSlice reads a list of nested records.
func getRecordSlice(rec Record, key string) []Record {
	switch v := rec[key].(type) {
	case []Record:
		return v
	case []any:
		var out []Record
		for _, item := range v {
			switch m := item.(type) {
			case Record:
				out = append(out, m)
			case map[string]any:
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}

// putStrings writes a string list unless empty.
func putStrings(rec Record, key string, ids []string) {
	if len(ids) > 0 {
		out := make([]string, len(ids))
		copy(out, ids)
		rec[key] = out
	}
}

// putString writes a string unless empty.
func putString(rec Record, key, value string) {
	if value != "" {
		rec[key] = value
	}
}

// putBool writes a flag only when set, keeping records compact.
func putBool(rec Record, key string, value bool) {
	if value {
		rec[key] = true
	}
}
