// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"fmt"
)

// Map is a mapping from strings to values that remembers the order in which
// the keys have been stored. The zero value is an empty map ready to use.
//
// A nil *Map is an empty map for reading.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns a map with the given key and value pairs, stored in the
// order they are passed. It panics if the number of arguments is odd or a
// key is not a string.
func NewMap(pairs ...any) *Map {
	if len(pairs)%2 != 0 {
		panic("runtime.NewMap: odd number of arguments")
	}
	m := &Map{}
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("runtime.NewMap: key of type %T is not a string", pairs[i]))
		}
		m.Store(k, pairs[i+1])
	}
	return m
}

// Clone returns a copy of the map. The values are not copied.
func (m *Map) Clone() *Map {
	c := &Map{}
	if m == nil || len(m.keys) == 0 {
		return c
	}
	c.keys = make([]string, len(m.keys))
	copy(c.keys, m.keys)
	c.values = make(map[string]any, len(m.values))
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Delete deletes the value for a key.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value stored in the map for a key, or Undefined if no value
// is present.
func (m *Map) Get(key string) any {
	if v, ok := m.Load(key); ok {
		return v
	}
	return Undefined
}

// Keys returns the keys of the map in insertion order. The returned slice
// must not be modified.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys of the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Load returns the value stored in the map for a key, or nil if no value is
// present. The ok result indicates whether value was found in the map.
func (m *Map) Load(key string) (value any, ok bool) {
	if m == nil {
		return nil, false
	}
	value, ok = m.values[key]
	return
}

// Range calls f sequentially for each key and value present in the map, in
// insertion order. If f returns false, range stops the iteration.
func (m *Map) Range(f func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !f(k, m.values[k]) {
			return
		}
	}
}

// Store sets the value for a key. A new key is placed after the existing
// keys; storing an existing key keeps its position.
func (m *Map) Store(key string, value any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// String returns the representation of the map used when it is printed in a
// template, that is "[object Object]".
func (m *Map) String() string {
	return objectString
}
