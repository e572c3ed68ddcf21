// Package models defines data structures produced by spreadsheet imports.
package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is one imported row: a mapping from field name to cell value that
// remembers the order in which fields were set. Copies of a Record share
// their fields; use Clone for an independent copy.
type Record struct {
	fields *orderedmap.OrderedMap[string, interface{}]
}

// NewRecord returns an empty record with room for n fields.
func NewRecord(n int) Record {
	return Record{fields: orderedmap.New[string, interface{}](n)}
}

// Set stores v under key. A new key is appended after the existing ones;
// an existing key keeps its position.
func (r *Record) Set(key string, v interface{}) {
	if r.fields == nil {
		r.fields = orderedmap.New[string, interface{}]()
	}
	r.fields.Set(key, v)
}

// Get returns the value stored under key.
func (r Record) Get(key string) (interface{}, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(key)
}

// Has reports whether key is present, even when its value is nil.
func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Delete removes key from the record.
func (r *Record) Delete(key string) {
	if r.fields != nil {
		r.fields.Delete(key)
	}
}

// Keys returns the field names in column order.
func (r Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of fields.
func (r Record) Len() int {
	return r.fields.Len()
}

// Clone returns a copy that does not share fields with r.
func (r Record) Clone() Record {
	out := NewRecord(r.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		out.fields.Set(pair.Key, pair.Value)
	}
	return out
}

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]interface{} {
	out := make(map[string]interface{}, r.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}
