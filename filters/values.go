// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/open2b/jinja/runtime"
)

// Default returns defaultValue if value is runtime.Undefined, otherwise it
// returns value. If boolean is true, it returns defaultValue also if value
// is false as reported by runtime.Boolean.
//
// With boolean false, a value that is present but false, as nil, 0 and "",
// is returned unchanged.
func Default(value, defaultValue any, boolean bool) any {
	if boolean {
		if runtime.Boolean(value) {
			return value
		}
		return defaultValue
	}
	if runtime.IsUndefined(value) {
		return defaultValue
	}
	return value
}

// Int parses value, converted to string, as a base 10 integer and returns
// it. Leading white space is skipped, an optional sign is accepted and the
// parsing stops at the first character that is not a digit, so "12px" is 12
// and 3.9 is 3. If there are no digits, it returns defaultValue.
//
// The returned value is an int, or a float64 if the integer does not fit in
// an int.
func Int(value, defaultValue any) any {
	s := strings.TrimLeftFunc(runtime.ToString(value), unicode.IsSpace)
	n := 0
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	digits := n
	for n < len(s) && '0' <= s[n] && s[n] <= '9' {
		n++
	}
	if n == digits {
		return defaultValue
	}
	s = s[:n]
	if i, err := strconv.ParseInt(s, 10, 0); err == nil {
		return int(i)
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// Abs returns the absolute value of the number v. An integer is returned as
// an int, or as a float64 if it does not fit in an int, and a float as a
// float64. It returns an error if v is not a number.
func Abs(v any) (any, error) {
	f, ok := runtime.Number(v)
	if !ok {
		return nil, errorf("abs", "cannot get the absolute value of a value of kind %s", runtime.KindOf(v))
	}
	switch v.(type) {
	case float32, float64:
		return math.Abs(f), nil
	}
	if i, ok := runtime.Integer(v); ok && i != math.MinInt {
		if i < 0 {
			i = -i
		}
		return i, nil
	}
	return math.Abs(f), nil
}

// defaultFilter implements default(value, defaultValue='', boolean=false).
func defaultFilter(value any, args ...any) (any, error) {
	if err := checkArgs("default", args, 2); err != nil {
		return nil, err
	}
	def := arg(args, 0)
	if runtime.IsUndefined(def) {
		def = ""
	}
	boolean, _ := arg(args, 1).(bool)
	return Default(value, def, boolean), nil
}

// intFilter implements int(value, defaultValue=0).
func intFilter(value any, args ...any) (any, error) {
	if err := checkArgs("int", args, 1); err != nil {
		return nil, err
	}
	def := arg(args, 0)
	if runtime.IsUndefined(def) {
		def = 0
	}
	return Int(value, def), nil
}

func absFilter(value any, args ...any) (any, error) {
	if err := checkArgs("abs", args, 0); err != nil {
		return nil, err
	}
	return Abs(value)
}
