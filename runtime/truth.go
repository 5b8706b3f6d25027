// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"math"
	"reflect"
)

// Boolean reports whether v is true in a template condition.
//
// Undefined, nil, false, the numeric zero, NaN, the empty string, an empty
// sequence and a mapping without keys are false. Every other value is true,
// so a sequence or a mapping with only false elements is true.
func Boolean(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	switch KindOf(v) {
	case UndefinedKind, NullKind:
		return false
	case BooleanKind:
		return indirect(reflect.ValueOf(v)).Bool()
	case NumberKind:
		f, _ := toFloat(v)
		return f != 0 && !math.IsNaN(f)
	case StringKind:
		return indirect(reflect.ValueOf(v)).Len() > 0
	case ArrayKind, ObjectKind:
		n, _ := Len(v)
		return n > 0
	}
	return true
}

// toFloat returns the number v as a float64. ok is false if v is not a
// number.
func toFloat(v any) (f float64, ok bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Number returns the number v as a float64. ok is false if v is not a number.
func Number(v any) (f float64, ok bool) {
	return toFloat(v)
}

// Integer returns v as an int. ok is false if v is not a number, is not
// integral or does not fit in an int.
func Integer(v any) (i int, ok bool) {
	if n, ok := v.(int); ok {
		return n, true
	}
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}
