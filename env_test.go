// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jinja_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/open2b/jinja"
	"github.com/open2b/jinja/filters"
	"github.com/open2b/jinja/runtime"
)

func TestEnvLookup(t *testing.T) {
	env := jinja.NewEnv()
	env.Globals["site"] = "example.com"
	env.Globals["name"] = "global"
	ctx := runtime.NewMap("name", "local", "empty", nil)
	if v := env.Lookup(ctx, "name"); v != "local" {
		t.Fatalf("expecting %q, got %v", "local", v)
	}
	if v := env.Lookup(ctx, "site"); v != "example.com" {
		t.Fatalf("expecting %q, got %v", "example.com", v)
	}
	if v := env.Lookup(ctx, "empty"); v != nil {
		t.Fatalf("expecting nil, got %v", v)
	}
	if v := env.Lookup(ctx, "missing"); !runtime.IsUndefined(v) {
		t.Fatalf("expecting Undefined, got %v", v)
	}
	if v := env.Lookup(nil, "site"); v != "example.com" {
		t.Fatalf("expecting %q, got %v", "example.com", v)
	}
}

func TestEnvFilter(t *testing.T) {
	env := jinja.NewEnv()
	v, err := env.Filter("truncate", "The quick brown fox", 10)
	if err != nil {
		t.Fatal(err)
	}
	if v != "The ..." {
		t.Fatalf("expecting %q, got %q", "The ...", v)
	}
	env.Filters.Register("reverse", func(v any, _ ...any) (any, error) {
		r := []rune(runtime.ToString(v))
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r), nil
	})
	v, err = env.Filter("reverse", "abc")
	if err != nil {
		t.Fatal(err)
	}
	if v != "cba" {
		t.Fatalf("expecting %q, got %q", "cba", v)
	}
	_, err = env.Filter("nope", "abc")
	var ferr *filters.UnknownFilterError
	if !errors.As(err, &ferr) || ferr.Name != "nope" {
		t.Fatalf("expecting *UnknownFilterError, got %#v", err)
	}
	if _, ok := jinja.NewEnv().Filters.Lookup("reverse"); ok {
		t.Fatal("filter registered in a new environment")
	}
}

var errCall = errors.New("call error")

var callTests = []struct {
	fn       any
	args     []any
	expected string
}{
	{strings.ToUpper, []any{"abc"}, "ABC"},
	{strings.ToUpper, []any{5}, "5"},
	{strings.ToUpper, []any{runtime.Undefined}, "UNDEFINED"},
	{strings.ToUpper, []any{nil}, "NULL"},
	{func(s ...string) int { return len(s) }, []any{nil, "a"}, "2"},
	{func() string { return "hello" }, nil, "hello"},
	{func() {}, nil, "<nil>"},
	{func(a, b int) int { return a + b }, []any{1, 2}, "3"},
	{func(a, b int) int { return a + b }, []any{1, 2.0}, "3"},
	{func(a float64) float64 { return a / 2 }, []any{3}, "1.5"},
	{func(s ...string) string { return strings.Join(s, "-") }, []any{"a", "b", 3}, "a-b-3"},
	{func(sep string, s ...string) string { return strings.Join(s, sep) }, []any{"+"}, ""},
	{func(v any) string { return fmt.Sprint(v) }, []any{nil}, "<nil>"},
	{func(v []any) int { return len(v) }, []any{[]any{1, 2}}, "2"},
	{func() (int, error) { return 5, nil }, nil, "5"},
	{func() (int, error) { return 0, errCall }, nil, "error: call error"},
	{func() error { return errCall }, nil, "error: call error"},
	{func() error { return nil }, nil, "<nil>"},
	{func() (int, int) { return 1, 2 }, nil, "error: call: second result of func() (int, int) is not an error"},
	{func(a int) int { return a }, nil, "error: call: not enough arguments in call to func(int) int"},
	{func(a int) int { return a }, []any{1, 2}, "error: call: too many arguments in call to func(int) int"},
	{func(a int) int { return a }, []any{"a"}, "error: call: argument 1 in call to func(int) int: cannot convert string to int"},
	{func(a int) int { return a }, []any{nil}, "error: call: argument 1 in call to func(int) int: cannot convert null to int"},
	{"abc", nil, "error: call: cannot call a value of kind String"},
	{nil, nil, "error: call: cannot call a value of kind Null"},
	{runtime.Undefined, nil, "error: call: cannot call a value of kind Undefined"},
}

func TestCall(t *testing.T) {
	for _, test := range callTests {
		v, err := jinja.Call(test.fn, test.args...)
		got := fmt.Sprint(v)
		if err != nil {
			got = "error: " + err.Error()
		}
		if got != test.expected {
			t.Errorf("call %T with %v: expecting %q, got %q", test.fn, test.args, test.expected, got)
		}
	}
}

func TestCallError(t *testing.T) {
	_, err := jinja.Call(func() error { return errCall })
	if !errors.Is(err, errCall) {
		t.Fatalf("expecting errCall, got %v", err)
	}
}
