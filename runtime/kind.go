// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runtime provides the primitives called by compiled templates at
// render time: value classification, truthiness, iteration over sequences
// and mappings, deep equality and HTML escaping.
//
// Values are plain Go values. A compiled template works with nil (null),
// Undefined, booleans, numbers of any Go numeric type, strings, slices and
// arrays (sequences), *Map, maps with string keys and structs (mappings) and
// functions.
//
// For example, a compiled
//
//    {% for item in items %}{% if item %}{{ item }}{% endif %}{% endfor %}
//
// is
//
//    err := runtime.Each(ctx.Get("items"), func(item, _ any) error {
//        if runtime.Boolean(item) {
//            b.WriteString(runtime.Escape(item))
//        }
//        return nil
//    })
//
package runtime

import (
	"reflect"
	"strconv"
)

// A Kind represents the kind of a template value.
type Kind uint8

const (
	UndefinedKind Kind = iota
	NullKind
	BooleanKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
	FunctionKind
	OtherKind
)

var kindNames = [...]string{
	UndefinedKind: "Undefined",
	NullKind:      "Null",
	BooleanKind:   "Boolean",
	NumberKind:    "Number",
	StringKind:    "String",
	ArrayKind:     "Array",
	ObjectKind:    "Object",
	FunctionKind:  "Function",
	OtherKind:     "Other",
}

// String returns the name of the kind, for example "Array".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// undefined is the type of Undefined.
type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the value of a variable, attribute or element that does not
// exist. It differs from nil, that is the null value.
var Undefined = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// KindOf returns the kind of v.
//
// The common types are classified without reflection. Other values are
// classified by their reflect kind, so a named slice type is an Array and a
// named string type is a String. Pointers are followed and a nil pointer is
// Null.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return NullKind
	case undefined:
		return UndefinedKind
	case bool:
		return BooleanKind
	case string:
		return StringKind
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr, float32, float64:
		return NumberKind
	case []any:
		return ArrayKind
	case *Map, map[string]any:
		return ObjectKind
	}
	return kindOfValue(reflect.ValueOf(v))
}

// kindOfValue returns the kind of the value rv.
func kindOfValue(rv reflect.Value) Kind {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return NullKind
		}
		if _, ok := rv.Interface().(*Map); ok {
			return ObjectKind
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Invalid:
		return NullKind
	case reflect.Bool:
		return BooleanKind
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return NumberKind
	case reflect.String:
		return StringKind
	case reflect.Slice, reflect.Array:
		return ArrayKind
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return ObjectKind
		}
	case reflect.Struct:
		return ObjectKind
	case reflect.Func:
		if rv.IsNil() {
			return NullKind
		}
		return FunctionKind
	case reflect.Interface:
		if rv.IsNil() {
			return NullKind
		}
		return kindOfValue(rv.Elem())
	}
	return OtherKind
}

// indirect follows the pointers of rv, except *Map pointers. It returns the
// zero Value for a nil pointer.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		if rv.Kind() == reflect.Pointer {
			if _, ok := rv.Interface().(*Map); ok {
				return rv
			}
		}
		rv = rv.Elem()
	}
	return rv
}
