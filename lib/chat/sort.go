// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is a free-form JSON object: custom data, passthrough options,
// or partial-update sets.
type Payload map[string]any

// Filter is a MongoDB-style filter condition object, for example
// Filter{"members": Payload{"$in": []string{"alice"}}}.
type Filter map[string]any

// Sort directions.
const (
	Ascending  = 1
	Descending = -1
)

// SortField is one {field, direction} pair of a sort order.
type SortField struct {
	Field     string `json:"field"`
	Direction int    `json:"direction"`
}

// Sort is an ordered list of sort fields. The first field is the
// primary sort key.
//
// Sort decodes from either a JSON object, keeping key order, or an
// array of {field, direction} pairs, and always encodes as an array.
type Sort []SortField

// SortBy starts a Sort with one field.
func SortBy(field string, direction int) Sort {
	return Sort{{Field: field, Direction: direction}}
}

// Then returns s extended by one field.
func (s Sort) Then(field string, direction int) Sort {
	return append(s[:len(s):len(s)], SortField{Field: field, Direction: direction})
}

// SortFields normalizes s into the list the API expects. A nil or
// empty Sort yields an empty, non-nil list; order follows s.
func SortFields(s Sort) []SortField {
	fields := make([]SortField, 0, len(s))
	return append(fields, s...)
}

// MarshalJSON encodes s as an array, [] when empty.
func (s Sort) MarshalJSON() ([]byte, error) {
	return json.Marshal(SortFields(s))
}

// UnmarshalJSON accepts {"a": 1, "b": -1} (order preserved),
// [{"field": "a", "direction": 1}], or null.
func (s *Sort) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var fields []SortField
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return fmt.Errorf("chat: decoding sort array: %w", err)
		}
		*s = fields
		return nil
	case '{':
		return s.unmarshalObject(trimmed)
	default:
		return fmt.Errorf("chat: sort must be an object or an array, got %q", trimmed)
	}
}

// unmarshalObject walks object tokens so that key order survives.
func (s *Sort) unmarshalObject(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("chat: decoding sort object: %w", err)
	}

	fields := Sort{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("chat: decoding sort object: %w", err)
		}
		field, ok := token.(string)
		if !ok {
			return fmt.Errorf("chat: sort key %v is not a string", token)
		}
		var direction int
		if err := decoder.Decode(&direction); err != nil {
			return fmt.Errorf("chat: sort direction for %q: %w", field, err)
		}
		fields = append(fields, SortField{Field: field, Direction: direction})
	}
	*s = fields
	return nil
}

// merge returns a new Payload holding base overlaid with each of
// overlays in order. Nil inputs are skipped.
func merge(base Payload, overlays ...Payload) Payload {
	merged := make(Payload, len(base))
	for key, value := range base {
		merged[key] = value
	}
	for _, overlay := range overlays {
		for key, value := range overlay {
			merged[key] = value
		}
	}
	return merged
}

// queryPayload builds the body of a filter/sort query. Filter and sort
// take precedence over same-named keys in options.
func queryPayload(filterKey string, filter Filter, sort Sort, options Payload) Payload {
	if filter == nil {
		filter = Filter{}
	}
	return merge(options, Payload{filterKey: filter, "sort": SortFields(sort)})
}
