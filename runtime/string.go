// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const objectString = "[object Object]"

// ToString returns the string form of v, the one a template prints.
//
// Strings are returned as they are, booleans are "true" and "false", nil is
// "null" and Undefined is "undefined". Numbers are printed in base 10 with
// the shortest representation, integral floats without a fractional part
// and with an exponent only from 1e21. The elements of a sequence are joined
// with a comma, where nil and Undefined elements are empty. A mapping is
// "[object Object]" and a function is "function".
func ToString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case float64:
		return formatFloat(s)
	}
	switch KindOf(v) {
	case NullKind:
		return "null"
	case BooleanKind:
		return strconv.FormatBool(indirect(reflect.ValueOf(v)).Bool())
	case NumberKind:
		rv := indirect(reflect.ValueOf(v))
		switch rv.Kind() {
		case reflect.Float32:
			return formatFloat32(rv.Float())
		case reflect.Float64:
			return formatFloat(rv.Float())
		}
		i, _ := integer(rv)
		str := strconv.FormatUint(i.abs, 10)
		if i.neg {
			str = "-" + str
		}
		return str
	case StringKind:
		return indirect(reflect.ValueOf(v)).String()
	case ArrayKind:
		a, _ := asArray(v)
		var b strings.Builder
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			switch e := a.At(i); KindOf(e) {
			case NullKind, UndefinedKind:
			default:
				b.WriteString(ToString(e))
			}
		}
		return b.String()
	case ObjectKind:
		return objectString
	case FunctionKind:
		return "function"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// formatFloat formats f as a template prints a number.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		// Go writes the exponent with at least two digits, "1e-07".
		s := strconv.FormatFloat(f, 'e', -1, 64)
		i := strings.IndexByte(s, 'e')
		exp := strings.TrimLeft(s[i+2:], "0")
		return s[:i+2] + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatFloat32 is like formatFloat but uses the shortest representation of
// a float32 value.
func formatFloat32(f float64) string {
	if abs := math.Abs(f); abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(f, 'f', -1, 32)
	}
	return formatFloat(f)
}
