// ABOUTME: Nested collection type for child records carried inside a parent record
// ABOUTME: Decodes native arrays, JSON-encoded strings, and null into a plain slice
package models

import (
	"bytes"
	"encoding/json"
)

// List is a nested collection of child records. The backend sends these
// either as a native JSON array or as a string holding an encoded array.
// Decoding never fails: null, empty, or unparseable input becomes an empty list.
type List[T any] []T

// UnmarshalJSON normalizes both wire representations into a slice.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	*l = ParseList[T](data)
	return nil
}

// MarshalJSON always emits an array, never null.
func (l List[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

// ParseList decodes raw JSON into a list, falling back to an empty list.
func ParseList[T any](data []byte) List[T] {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return List[T]{}
	}

	switch data[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return List[T]{}
		}
		return nonNil(items)
	case '"':
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return List[T]{}
		}
		return ParseListString[T](encoded)
	}
	return List[T]{}
}

// ParseListString decodes a JSON-encoded array held in a string.
func ParseListString[T any](s string) List[T] {
	s = string(bytes.TrimSpace([]byte(s)))
	if s == "" || s[0] != '[' {
		return List[T]{}
	}
	var items []T
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return List[T]{}
	}
	return nonNil(items)
}

// Append returns a new list with item added at the end.
func (l List[T]) Append(item T) List[T] {
	out := make(List[T], 0, len(l)+1)
	out = append(out, l...)
	return append(out, item)
}

// RemoveAt returns a new list without the element at index.
// An out-of-range index returns an unchanged copy.
func (l List[T]) RemoveAt(index int) List[T] {
	out := make(List[T], 0, len(l))
	for i, item := range l {
		if i != index {
			out = append(out, item)
		}
	}
	return out
}

// ReplaceAt returns a new list with the element at index replaced.
func (l List[T]) ReplaceAt(index int, item T) List[T] {
	out := make(List[T], len(l))
	copy(out, l)
	if index >= 0 && index < len(out) {
		out[index] = item
	}
	return out
}

// RemoveWhere returns a new list without the elements that match.
func (l List[T]) RemoveWhere(match func(T) bool) List[T] {
	out := make(List[T], 0, len(l))
	for _, item := range l {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}

// ReplaceWhere returns a new list with every matching element replaced.
func (l List[T]) ReplaceWhere(match func(T) bool, item T) List[T] {
	out := make(List[T], len(l))
	for i, existing := range l {
		if match(existing) {
			out[i] = item
		} else {
			out[i] = existing
		}
	}
	return out
}

func nonNil[T any](items []T) List[T] {
	if items == nil {
		return List[T]{}
	}
	return List[T](items)
}
