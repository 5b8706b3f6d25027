// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jinja_test

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/open2b/jinja"
	"github.com/open2b/jinja/runtime"
)

func text(s string) jinja.Compiled {
	return func(*jinja.Env, *runtime.Map, jinja.Resolver) (string, error) {
		return s, nil
	}
}

var addVersionTests = []struct {
	version string
	err     string
}{
	{"v1.0.0", ""},
	{"v1", ""},
	{"v1.0.0-rc.1", ""},
	{"1.0.0", `template "t": version 1.0.0 is not a valid semantic version`},
	{"", `template "t": version  is not a valid semantic version`},
	{"v0.9.0", `template "t": version v0.9.0 has not major version v1`},
	{"v2.0.0", `template "t": version v2.0.0 has not major version v1`},
	{"v1.0.1", `template "t": version v1.0.1 is newer than runtime version v1.0.0`},
	{"v1.1.0", `template "t": version v1.1.0 is newer than runtime version v1.0.0`},
}

func TestSetAddVersion(t *testing.T) {
	for _, test := range addVersionTests {
		set := jinja.NewSet(nil)
		err := set.Add("t", test.version, text("a"))
		if test.err == "" {
			if err != nil {
				t.Errorf("version %q: unexpected error %q", test.version, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("version %q: expecting error, got nil", test.version)
			continue
		}
		var verr *jinja.VersionError
		if !errors.As(err, &verr) {
			t.Errorf("version %q: expecting a *VersionError, got %T", test.version, err)
			continue
		}
		if err.Error() != test.err {
			t.Errorf("version %q: expecting error %q, got %q", test.version, test.err, err)
		}
		if set.Has("t") {
			t.Errorf("version %q: template has been added", test.version)
		}
	}
}

func TestSetAddNil(t *testing.T) {
	set := jinja.NewSet(nil)
	if err := set.Add("t", jinja.ABIVersion, nil); err == nil {
		t.Fatal("expecting error, got nil")
	}
}

func TestSetNames(t *testing.T) {
	set := jinja.NewSet(nil)
	for _, name := range []string{"c.jinja", "a.jinja", "b.jinja"} {
		if err := set.Add(name, jinja.ABIVersion, text(name)); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"a.jinja", "b.jinja", "c.jinja"}, set.Names()); diff != "" {
		t.Fatalf("unexpected names (-want, +got):\n%s", diff)
	}
	if err := set.Add("a.jinja", jinja.ABIVersion, text("A")); err != nil {
		t.Fatal(err)
	}
	if s, _ := set.RenderString("a.jinja", nil); s != "A" {
		t.Fatalf("expecting replaced template, got %q", s)
	}
}

func TestSetRender(t *testing.T) {
	set := jinja.NewSet(nil)
	err := set.Add("t", jinja.ABIVersion, func(env *jinja.Env, ctx *runtime.Map, _ jinja.Resolver) (string, error) {
		return "<b>" + runtime.Escape(ctx.Get("v")) + "</b>", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := set.Render(&b, "t", runtime.NewMap("v", "a&b")); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "<b>a&amp;b</b>"; got != want {
		t.Fatalf("expecting %q, got %q", want, got)
	}
	s, err := set.RenderString("t", nil)
	if err != nil {
		t.Fatal(err)
	}
	if s != "<b></b>" {
		t.Fatalf("expecting %q, got %q", "<b></b>", s)
	}
	if err := set.Render(nil, "t", nil); err == nil {
		t.Fatal("expecting error with nil out, got nil")
	}
}

func TestSetRenderNotExist(t *testing.T) {
	set := jinja.NewSet(nil)
	_, err := set.RenderString("missing.jinja", nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expecting fs.ErrNotExist, got %v", err)
	}
	var nerr *jinja.NotExistError
	if !errors.As(err, &nerr) || nerr.Name != "missing.jinja" {
		t.Fatalf("expecting *NotExistError for missing.jinja, got %#v", err)
	}
	if got, want := err.Error(), `template "missing.jinja" does not exist`; got != want {
		t.Fatalf("expecting error %q, got %q", want, got)
	}
}

func TestSetInclude(t *testing.T) {
	set := jinja.NewSet(nil)
	err := set.Add("outer", jinja.ABIVersion, func(env *jinja.Env, ctx *runtime.Map, include jinja.Resolver) (string, error) {
		render, err := include("inner")
		if err != nil {
			return "", err
		}
		scope := ctx.Clone()
		scope.Store("who", "inner")
		s, err := render(scope)
		if err != nil {
			return "", err
		}
		return "[" + s + "]", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = set.RenderString("outer", nil)
	var nerr *jinja.NotExistError
	if !errors.As(err, &nerr) || nerr.Name != "inner" {
		t.Fatalf("expecting *NotExistError for inner, got %v", err)
	}
	err = set.Add("inner", jinja.ABIVersion, func(env *jinja.Env, ctx *runtime.Map, _ jinja.Resolver) (string, error) {
		return runtime.ToString(ctx.Get("who")) + " of " + runtime.ToString(ctx.Get("name")), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := runtime.NewMap("name", "outer")
	s, err := set.RenderString("outer", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s != "[inner of outer]" {
		t.Fatalf("expecting %q, got %q", "[inner of outer]", s)
	}
	if _, ok := ctx.Load("who"); ok {
		t.Fatal("context has been modified")
	}
}

func TestSetIncludeDepth(t *testing.T) {
	set := jinja.NewSet(nil)
	err := set.Add("loop", jinja.ABIVersion, func(env *jinja.Env, ctx *runtime.Map, include jinja.Resolver) (string, error) {
		render, err := include("loop")
		if err != nil {
			return "", err
		}
		return render(ctx)
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = set.RenderString("loop", nil)
	if err == nil {
		t.Fatal("expecting error, got nil")
	}
	if got, want := err.Error(), `template "loop": too many nested includes`; got != want {
		t.Fatalf("expecting error %q, got %q", want, got)
	}
}

func TestSetRenderPanic(t *testing.T) {
	errBoom := errors.New("boom")
	set := jinja.NewSet(nil)
	_ = set.Add("string", jinja.ABIVersion, func(*jinja.Env, *runtime.Map, jinja.Resolver) (string, error) {
		panic("out of range")
	})
	_ = set.Add("error", jinja.ABIVersion, func(*jinja.Env, *runtime.Map, jinja.Resolver) (string, error) {
		panic(errBoom)
	})
	_ = set.Add("outer", jinja.ABIVersion, func(env *jinja.Env, ctx *runtime.Map, include jinja.Resolver) (string, error) {
		render, err := include("string")
		if err != nil {
			return "", err
		}
		if _, err := render(ctx); err != nil {
			panic(err)
		}
		return "", nil
	})

	_, err := set.RenderString("string", nil)
	var p *jinja.PanicError
	if !errors.As(err, &p) {
		t.Fatalf("expecting a *PanicError, got %#v", err)
	}
	if p.Name() != "string" || p.String() != "out of range" || p.Message() != "out of range" {
		t.Fatalf("unexpected panic error %q", p)
	}
	if got, want := err.Error(), `template "string": panic: out of range`; got != want {
		t.Fatalf("expecting error %q, got %q", want, got)
	}

	_, err = set.RenderString("error", nil)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expecting errBoom, got %#v", err)
	}

	_, err = set.RenderString("outer", nil)
	if !errors.As(err, &p) {
		t.Fatalf("expecting a *PanicError, got %#v", err)
	}
	if p.Name() != "outer" || p.Next() == nil || p.Next().Name() != "string" {
		t.Fatalf("unexpected panic chain %q", p)
	}
	want := "template \"outer\": panic: out of range\n\ttemplate \"string\": panic: out of range"
	if got := err.Error(); got != want {
		t.Fatalf("expecting error %q, got %q", want, got)
	}
}

func TestSetRenderIncludePanicReturned(t *testing.T) {
	includes := func(name string) jinja.Compiled {
		return func(_ *jinja.Env, ctx *runtime.Map, include jinja.Resolver) (string, error) {
			render, err := include(name)
			if err != nil {
				return "", err
			}
			s, err := render(ctx)
			if err != nil {
				return "", fmt.Errorf("include %s: %w", name, err)
			}
			return "[" + s + "]", nil
		}
	}
	errBoom := errors.New("boom")
	set := jinja.NewSet(nil)
	_ = set.Add("page", jinja.ABIVersion, includes("list"))
	_ = set.Add("list", jinja.ABIVersion, includes("item"))
	_ = set.Add("item", jinja.ABIVersion, func(*jinja.Env, *runtime.Map, jinja.Resolver) (string, error) {
		panic(errBoom)
	})

	_, err := set.RenderString("page", nil)
	var p *jinja.PanicError
	if !errors.As(err, &p) {
		t.Fatalf("expecting a *PanicError, got %#v", err)
	}
	var names []string
	for e := p; e != nil; e = e.Next() {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"page", "list", "item"}, names); diff != "" {
		t.Fatalf("unexpected panic chain (-want, +got):\n%s", diff)
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("expecting errBoom, got %#v", err)
	}
	want := "template \"page\": panic: boom\n\ttemplate \"list\": panic: boom\n\ttemplate \"item\": panic: boom"
	if got := err.Error(); got != want {
		t.Fatalf("expecting error %q, got %q", want, got)
	}
}

func TestSetConcurrentRender(t *testing.T) {
	set := jinja.NewSet(nil)
	_ = set.Add("t", jinja.ABIVersion, func(env *jinja.Env, ctx *runtime.Map, _ jinja.Resolver) (string, error) {
		v, err := env.Filter("upper", ctx.Get("v"))
		if err != nil {
			return "", err
		}
		return runtime.ToString(v), nil
	})
	done := make(chan error)
	for i := 0; i < 8; i++ {
		go func() {
			s, err := set.RenderString("t", runtime.NewMap("v", "a"))
			if err == nil && s != "A" {
				err = errors.New("unexpected output " + s)
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}
