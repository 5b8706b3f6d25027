// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"reflect"
)

// IsEqual reports whether a and b are deeply equal.
//
// Two values are equal only if they have the same kind, so a sequence is
// never equal to a mapping and "1" is never equal to 1. Sequences are equal
// if they have the same length and equal elements in the same order.
// Mappings are equal if they have the same number of keys and equal values
// for each key, regardless of the key order. Numbers are compared by value,
// also if they have different Go types. Functions are equal only if they
// have the same type and code. Other non-comparable values, as maps with
// non-string keys, are equal only if they are the same value.
func IsEqual(a, b any) bool {
	if m, ok := a.(*Map); ok {
		if n, ok := b.(*Map); ok && m == n {
			return true
		}
	}
	k := KindOf(a)
	if k != KindOf(b) {
		return false
	}
	switch k {
	case UndefinedKind, NullKind:
		return true
	case BooleanKind:
		return indirect(reflect.ValueOf(a)).Bool() == indirect(reflect.ValueOf(b)).Bool()
	case NumberKind:
		return numberEqual(a, b)
	case StringKind:
		return indirect(reflect.ValueOf(a)).String() == indirect(reflect.ValueOf(b)).String()
	case ArrayKind:
		x, _ := asArray(a)
		y, _ := asArray(b)
		if x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if !IsEqual(x.At(i), y.At(i)) {
				return false
			}
		}
		return true
	case ObjectKind:
		x, _ := asObject(a)
		y, _ := asObject(b)
		if x.Len() != y.Len() {
			return false
		}
		for _, key := range x.Keys() {
			v, _ := x.Load(key)
			w, ok := y.Load(key)
			if !ok {
				w = Undefined
			}
			if !IsEqual(v, w) {
				return false
			}
		}
		return true
	case FunctionKind:
		ra, rb := indirect(reflect.ValueOf(a)), indirect(reflect.ValueOf(b))
		return ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
	case OtherKind:
		ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
		if ra.Type() != rb.Type() {
			return false
		}
		if ra.Comparable() {
			return ra.Equal(rb)
		}
		switch ra.Kind() {
		case reflect.Map, reflect.Slice:
			return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
		}
	}
	return false
}

// numberEqual reports whether the numbers a and b have the same value.
func numberEqual(a, b any) bool {
	ra := indirect(reflect.ValueOf(a))
	rb := indirect(reflect.ValueOf(b))
	ia, aInt := integer(ra)
	ib, bInt := integer(rb)
	if aInt && bInt {
		if ia.neg != ib.neg {
			return ia.abs == 0 && ib.abs == 0
		}
		return ia.abs == ib.abs
	}
	fa, _ := toFloat(a)
	fb, _ := toFloat(b)
	return fa == fb
}

// signed is an integer value as sign and absolute value, so that every Go
// integer can be represented.
type signed struct {
	neg bool
	abs uint64
}

// integer returns the integer value of rv. ok is false if rv is not an
// integer.
func integer(rv reflect.Value) (i signed, ok bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 {
			return signed{true, uint64(-(n + 1)) + 1}, true
		}
		return signed{false, uint64(n)}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return signed{false, rv.Uint()}, true
	}
	return signed{}, false
}
