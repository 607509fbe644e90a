// ABOUTME: Field-level access to records keyed by their wire names
// ABOUTME: Provides immutable patch and merge helpers used by drafts and lists
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownField is returned by Patch for a name the record does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned by Patch when text cannot be stored in the
	// field's kind, such as letters in a number.
	ErrInvalidValue = errors.New("invalid value")
)

// Fields returns the record as a map keyed by JSON field name.
// Numbers decode as float64 and nested collections as []any.
func Fields(rec any) map[string]any {
	data, err := json.Marshal(rec)
	if err != nil {
		return map[string]any{}
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return map[string]any{}
	}
	return fields
}

// FieldNames lists the wire names of a record type in declaration order.
func FieldNames(rec any) []string {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return names
		}
		name, _ := tok.(string)
		names = append(names, name)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return names
		}
	}
	return names
}

// Patch returns a copy of rec with one field set. String input is coerced
// to the existing field's kind so form text can populate numeric and
// boolean fields. The original record is never modified.
func Patch[T any](rec T, field string, value any) (T, error) {
	fields := Fields(rec)
	existing, known := fields[field]
	if !known && field != "id" {
		return rec, fmt.Errorf("%w %q", ErrUnknownField, field)
	}

	coerced, err := coerce(existing, value)
	if err != nil {
		return rec, fmt.Errorf("field %q: %w: %w", field, ErrInvalidValue, err)
	}
	fields[field] = coerced

	return fromFields[T](fields)
}

// Merge overlays every field present in overlay onto base.
func Merge[T any](base, overlay T) T {
	fields := Fields(base)
	for k, v := range Fields(overlay) {
		fields[k] = v
	}
	merged, err := fromFields[T](fields)
	if err != nil {
		return overlay
	}
	return merged
}

// FormatValue renders a field value as display text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		return fmt.Sprintf("%d item(s)", len(val))
	default:
		data, _ := json.Marshal(val)
		return string(data)
	}
}

func fromFields[T any](fields map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

func coerce(existing, value any) (any, error) {
	s, isString := value.(string)
	if !isString {
		return value, nil
	}

	switch existing.(type) {
	case float64:
		if strings.TrimSpace(s) == "" {
			return float64(0), nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", s)
		}
		return n, nil
	case bool:
		if s == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(strings.ToLower(s))
		if err != nil {
			switch strings.ToLower(s) {
			case "yes", "y", "on":
				return true, nil
			case "no", "n", "off":
				return false, nil
			}
			return nil, fmt.Errorf("not a boolean: %q", s)
		}
		return b, nil
	case []any:
		return json.RawMessage(strconv.Quote(s)), nil
	}
	return s, nil
}
