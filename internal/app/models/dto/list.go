package dto

import (
	"bytes"
	"encoding/json"
)

// ListPayload is a list response from the gateway. It decodes both a bare
// JSON array and the paginated {count, next, previous, results} object.
type ListPayload[T any] struct {
	Count     *int64  `json:"count,omitempty"`
	Next      *string `json:"next"`
	Previous  *string `json:"previous"`
	Results   []T     `json:"results"`
	Paginated bool    `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (l *ListPayload[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = ListPayload[T]{Results: items}
		return nil
	}

	type page ListPayload[T]
	var p page
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = ListPayload[T](p)
	l.Paginated = l.Count != nil
	if l.Results == nil {
		l.Results = []T{}
	}
	return nil
}

// Items returns the decoded records, never nil
func (l ListPayload[T]) Items() []T {
	if l.Results == nil {
		return []T{}
	}
	return l.Results
}

// Total returns count when the gateway sent one, otherwise the number of
// results
func (l ListPayload[T]) Total() int64 {
	if l.Count != nil {
		return *l.Count
	}
	return int64(len(l.Results))
}

// PageResponse is the paginated body written by the mock gateway
type PageResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
