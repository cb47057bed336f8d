// Package jsonobj holds a JSON object that keeps its members in document order.
//
// Descriptors are merged into the catalog verbatim, so fields the tooling does
// not know about must survive a decode/encode round trip in the order the
// author wrote them. Member values are kept as raw JSON and never reinterpreted.
package jsonobj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when the decoded document is valid JSON but not an object.
var ErrNotObject = errors.New("json value is not an object")

// Object is an ordered set of JSON members. The zero value is an empty object.
type Object struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty object.
func New() *Object {
	return &Object{values: make(map[string]json.RawMessage)}
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the member names in document order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the raw value of a member.
func (o *Object) Get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

// GetString decodes a member as a JSON string. The second result is false when
// the member is absent or holds any other JSON type.
func (o *Object) GetString(key string) (string, bool) {
	raw, ok := o.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetRaw sets a member to an already encoded JSON value. Setting an existing
// key replaces the value in place and keeps its position.
func (o *Object) SetRaw(key string, raw json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
}

// Set encodes v and stores it under key with SetRaw semantics.
func (o *Object) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode member %q: %w", key, err)
	}
	o.SetRaw(key, raw)
	return nil
}

// Merge copies every member of other into o, in other's order.
func (o *Object) Merge(other *Object) {
	for _, k := range other.keys {
		o.SetRaw(k, other.values[k])
	}
}

// UnmarshalJSON decodes a JSON object. Duplicate keys keep the first position
// and the last value.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	o.keys = nil
	o.values = make(map[string]json.RawMessage)

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key token %v", tok)
		}

		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode member %q: %w", key, err)
		}
		o.SetRaw(key, raw)
	}

	// closing brace
	if _, err = dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the members in order.
func (o *Object) MarshalJSON() ([]byte, error) {
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
		buf.Write(o.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses data into an Object, returning ErrNotObject for non-object documents.
func Decode(data []byte) (*Object, error) {
	obj := New()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, err
	}
	return obj, nil
}
