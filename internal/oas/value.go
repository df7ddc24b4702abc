// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"iter"
	"strconv"
)

// Object is a decoded JSON/YAML mapping that remembers key order.
// Values are *Object, []any, string, int64, float64, bool or nil.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores v under key. Existing keys keep their position.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// All iterates over key/value pairs in document order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Object returns the nested object under key, or nil.
func (o *Object) Object(key string) *Object {
	v, _ := o.Get(key)
	obj, _ := v.(*Object)
	return obj
}

// List returns the nested list under key, or nil.
func (o *Object) List(key string) []any {
	v, _ := o.Get(key)
	list, _ := v.([]any)
	return list
}

// String returns the string under key, or "".
func (o *Object) String(key string) string {
	v, _ := o.Get(key)
	s, _ := v.(string)
	return s
}

// Bool returns the boolean under key, or false.
func (o *Object) Bool(key string) bool {
	v, _ := o.Get(key)
	b, _ := v.(bool)
	return b
}

// Number returns the numeric value under key.
func (o *Object) Number(key string) (float64, bool) {
	v, _ := o.Get(key)
	return ToFloat(v)
}

// Int returns the integer value under key.
func (o *Object) Int(key string) (int, bool) {
	f, ok := o.Number(key)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// Strings returns the string members of the list under key.
func (o *Object) Strings(key string) []string {
	var out []string
	for _, v := range o.List(key) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ToFloat converts a decoded numeric value to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case string:
		// YAML specs occasionally quote numeric facets.
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
