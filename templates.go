// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jinja

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"golang.org/x/mod/semver"

	"github.com/open2b/jinja/runtime"
)

// Compiled is a compiled template. It renders the template in the
// environment env with the context ctx and returns the rendered text.
// include resolves the templates included by the template.
//
// ctx must not be modified; a template that sets a variable or includes a
// template with additional variables works on a clone of ctx.
type Compiled func(env *Env, ctx *runtime.Map, include Resolver) (string, error)

// Renderer renders a template with the context ctx.
type Renderer func(ctx *runtime.Map) (string, error)

// Resolver returns the renderer of the named template. If the template does
// not exist, it returns a *NotExistError error.
type Resolver func(name string) (Renderer, error)

// maxIncludeDepth is the maximum depth of nested includes.
const maxIncludeDepth = 100

// Set is a set of compiled templates that share the same environment.
//
// Templates must be added before the first render. After that, a Set is
// safe for concurrent use by multiple goroutines.
type Set struct {
	env       *Env
	templates map[string]Compiled
}

// NewSet returns a new empty set with environment env. If env is nil, the
// set uses the environment returned by NewEnv.
func NewSet(env *Env) *Set {
	if env == nil {
		env = NewEnv()
	}
	return &Set{env: env, templates: map[string]Compiled{}}
}

// Env returns the environment of the set.
func (s *Set) Env() *Env {
	return s.env
}

// Add adds the compiled template fn with the given name. abi is the runtime
// version for which fn has been compiled, for example "v1.0.0". If abi is
// not compatible with ABIVersion, Add returns a *VersionError error.
//
// If a template with the same name already exists, it is replaced.
func (s *Set) Add(name, abi string, fn Compiled) error {
	if fn == nil {
		return errors.New("jinja: Add template is nil")
	}
	if err := checkVersion(name, abi); err != nil {
		return err
	}
	s.templates[name] = fn
	return nil
}

// checkVersion checks that a template with the given name, compiled for the
// runtime version abi, can be executed by this runtime.
func checkVersion(name, abi string) error {
	if !semver.IsValid(abi) {
		return &VersionError{Name: name, Version: abi, Reason: "is not a valid semantic version"}
	}
	if semver.Major(abi) != semver.Major(ABIVersion) {
		return &VersionError{Name: name, Version: abi, Reason: "has not major version " + semver.Major(ABIVersion)}
	}
	if semver.Compare(abi, ABIVersion) > 0 {
		return &VersionError{Name: name, Version: abi, Reason: "is newer than runtime version " + ABIVersion}
	}
	return nil
}

// Names returns the names of the templates in the set in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the set has a template with the given name.
func (s *Set) Has(name string) bool {
	_, ok := s.templates[name]
	return ok
}

// Render renders the named template with the context ctx and writes the
// result to out. A nil ctx is an empty context.
//
// If the template does not exist, Render returns a *NotExistError error.
// If the template, or a template it includes, panics, Render returns a
// *PanicError error. The panic of an included template is the Next of the
// panic of the including template, whether the including template panics
// again or returns the error.
func (s *Set) Render(out io.Writer, name string, ctx *runtime.Map) error {
	if out == nil {
		return errors.New("invalid nil out")
	}
	text, err := s.RenderString(name, ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

// RenderString is like Render but returns the result as a string.
func (s *Set) RenderString(name string, ctx *runtime.Map) (string, error) {
	if ctx == nil {
		ctx = runtime.NewMap()
	}
	return s.render(name, ctx, 0)
}

// render renders the named template at the given include depth.
func (s *Set) render(name string, ctx *runtime.Map, depth int) (text string, err error) {
	fn, ok := s.templates[name]
	if !ok {
		return "", &NotExistError{Name: name}
	}
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("template %q: too many nested includes", name)
	}
	include := func(name string) (Renderer, error) {
		if _, ok := s.templates[name]; !ok {
			return nil, &NotExistError{Name: name}
		}
		return func(ctx *runtime.Map) (string, error) {
			return s.render(name, ctx, depth+1)
		}, nil
	}
	defer func() {
		if r := recover(); r != nil {
			p := &PanicError{name: name, message: r}
			if e, ok := r.(*PanicError); ok {
				p.message = e.message
				p.next = e
			}
			text, err = "", p
		}
	}()
	text, err = fn(s.env, ctx, include)
	var p *PanicError
	if errors.As(err, &p) {
		return "", &PanicError{name: name, message: p.message, next: p}
	}
	return text, err
}
