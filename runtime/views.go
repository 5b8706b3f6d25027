// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"reflect"
	"sort"
)

// object is implemented by the mapping values.
type object interface {
	Keys() []string
	Len() int
	Load(key string) (any, bool)
}

// array is implemented by the sequence values.
type array interface {
	Len() int
	At(i int) any
}

// anySlice is the array implementation of []any.
type anySlice []any

func (s anySlice) Len() int     { return len(s) }
func (s anySlice) At(i int) any { return s[i] }

// reflectArray is the array implementation of slices and arrays of other
// types.
type reflectArray struct{ rv reflect.Value }

func (s reflectArray) Len() int     { return s.rv.Len() }
func (s reflectArray) At(i int) any { return s.rv.Index(i).Interface() }

// stringMap is the object implementation of map[string]any. Keys are
// returned in sorted order.
type stringMap map[string]any

func (m stringMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m stringMap) Len() int { return len(m) }

func (m stringMap) Load(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// reflectMap is the object implementation of the maps, of other types, with
// a key of kind string. Keys are returned in sorted order.
type reflectMap struct{ rv reflect.Value }

func (m reflectMap) Keys() []string {
	keys := make([]string, 0, m.rv.Len())
	iter := m.rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)
	return keys
}

func (m reflectMap) Len() int { return m.rv.Len() }

func (m reflectMap) Load(key string) (any, bool) {
	k := reflect.ValueOf(key).Convert(m.rv.Type().Key())
	v := m.rv.MapIndex(k)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

// structObject is the object implementation of structs. Its keys are the
// names of the exported fields in declaration order.
type structObject struct{ rv reflect.Value }

func (s structObject) Keys() []string {
	t := s.rv.Type()
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

func (s structObject) Len() int {
	n := 0
	t := s.rv.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			n++
		}
	}
	return n
}

func (s structObject) Load(key string) (any, bool) {
	f, ok := s.rv.Type().FieldByName(key)
	if !ok || !f.IsExported() || len(f.Index) != 1 {
		return nil, false
	}
	return s.rv.Field(f.Index[0]).Interface(), true
}

// asArray returns v as an array. ok reports whether v is a sequence.
func asArray(v any) (a array, ok bool) {
	switch s := v.(type) {
	case []any:
		return anySlice(s), true
	case nil, undefined, string, *Map, map[string]any:
		return nil, false
	}
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return reflectArray{rv}, true
	}
	return nil, false
}

// asObject returns v as an object. ok reports whether v is a mapping.
func asObject(v any) (o object, ok bool) {
	switch m := v.(type) {
	case *Map:
		return m, true
	case map[string]any:
		return stringMap(m), true
	case nil, undefined, string, []any:
		return nil, false
	}
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Pointer:
		return rv.Interface().(*Map), true
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return reflectMap{rv}, true
		}
	case reflect.Struct:
		return structObject{rv}, true
	}
	return nil, false
}

// Len returns the length of a sequence and the number of keys of a mapping.
// ok is false if v is neither a sequence nor a mapping.
func Len(v any) (n int, ok bool) {
	if a, ok := asArray(v); ok {
		return a.Len(), true
	}
	if o, ok := asObject(v); ok {
		return o.Len(), true
	}
	return 0, false
}

// Values returns the elements of the sequence v as a new []any. ok is false
// if v is not a sequence.
func Values(v any) (values []any, ok bool) {
	a, ok := asArray(v)
	if !ok {
		return nil, false
	}
	values = make([]any, a.Len())
	for i := range values {
		values[i] = a.At(i)
	}
	return values, true
}

// Attr returns the value of the key name of the mapping v, or Undefined if v
// is not a mapping or has no such key. If v is a sequence and name is a
// non-negative index, it returns the element at that index.
func Attr(v any, name any) any {
	switch n := name.(type) {
	case string:
		if o, ok := asObject(v); ok {
			if value, ok := o.Load(n); ok {
				return value
			}
		}
	case int:
		if a, ok := asArray(v); ok && n >= 0 && n < a.Len() {
			return a.At(n)
		}
	}
	return Undefined
}
