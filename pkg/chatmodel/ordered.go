package chatmodel

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a small insertion-ordered keyed container, used for every
// "per participant" result map in the engine. Ordering matters only for
// reproducibility of iteration in top-N lists (§3.2, §9) — it is not a
// performance-sensitive structure, so a plain slice-of-keys plus map is
// preferred over a third-party ordered-map dependency.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set inserts or updates the value for key, preserving first-insertion order.
func (o *OrderedMap[V]) Set(key string, value V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value for key and whether it was present.
func (o *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *OrderedMap[V]) Keys() []string {
	return o.keys
}

// Len returns the number of entries.
func (o *OrderedMap[V]) Len() int {
	return len(o.keys)
}

// Map returns a plain map snapshot for JSON marshaling or bulk consumption.
func (o *OrderedMap[V]) Map() map[string]V {
	out := make(map[string]V, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out
}

// Range calls fn for every key in insertion order. Stops early if fn
// returns false.
func (o *OrderedMap[V]) Range(fn func(key string, value V) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// MarshalJSON encodes the map as a JSON object with keys in insertion
// order, so a reproducible conversation input always produces
// byte-identical JSON output.
func (o *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the map, preserving the key
// order as it appears in the source document.
func (o *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &json.UnmarshalTypeError{Value: "non-object", Type: nil}
	}

	o.keys = nil
	o.values = make(map[string]V)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var value V
		if err := dec.Decode(&value); err != nil {
			return err
		}
		o.Set(key, value)
	}
	return nil
}
