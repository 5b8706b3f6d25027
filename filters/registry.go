// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filters implements the filters applied by compiled templates with
// the pipe syntax, as in {{ name|capitalize }}.
//
// Each filter is available as a Go function, with typed parameters, and as
// an entry of a Registry, with the Func signature. Compiled templates call
// the registry entries
//
//    v, err := env.Filters.Apply("truncate", ctx.Get("title"), 20)
//
// and the registry can be extended, or a built-in filter replaced, before
// the first render
//
//    r := filters.New()
//    r.Register("reverse", func(v any, args ...any) (any, error) {
//        ...
//    })
//
package filters

import (
	"fmt"
	"sort"

	"github.com/open2b/jinja/runtime"
)

// Func is a filter. value is the filtered value and args are the filter
// arguments, already evaluated. A missing optional argument is either not
// passed or runtime.Undefined.
type Func func(value any, args ...any) (any, error)

// Registry maps filter names to filters.
//
// A Registry must not be modified while templates that use it are rendered.
type Registry struct {
	filters map[string]Func
}

// New returns a new registry with the built-in filters.
func New() *Registry {
	r := &Registry{filters: make(map[string]Func, len(builtins))}
	for name, fn := range builtins {
		r.filters[name] = fn
	}
	return r
}

// Register registers the filter fn with the given name. If a filter with the
// same name is already registered, it is replaced.
func (r *Registry) Register(name string, fn Func) {
	if fn == nil {
		panic("filters: Register filter is nil")
	}
	if r.filters == nil {
		r.filters = map[string]Func{}
	}
	r.filters[name] = fn
}

// Lookup returns the filter with the given name. ok reports whether the
// filter exists.
func (r *Registry) Lookup(name string) (fn Func, ok bool) {
	fn, ok = r.filters[name]
	return
}

// Apply applies the named filter to value with the given arguments. If the
// filter does not exist, it returns an *UnknownFilterError error.
func (r *Registry) Apply(name string, value any, args ...any) (any, error) {
	fn, ok := r.filters[name]
	if !ok {
		return nil, &UnknownFilterError{Name: name}
	}
	return fn(value, args...)
}

// Names returns the names of the registered filters in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownFilterError is returned by Apply when a filter does not exist.
type UnknownFilterError struct {
	Name string
}

func (err *UnknownFilterError) Error() string {
	return "unknown filter " + err.Name
}

// builtins contains the built-in filters.
var builtins = map[string]Func{
	"abs":        absFilter,
	"batch":      batchFilter,
	"capitalize": capitalizeFilter,
	"default":    defaultFilter,
	"first":      firstFilter,
	"int":        intFilter,
	"last":       lastFilter,
	"length":     sizeFilter,
	"lower":      lowerFilter,
	"size":       sizeFilter,
	"slice":      sliceFilter,
	"title":      titleFilter,
	"trim":       trimFilter,
	"truncate":   truncateFilter,
	"upper":      upperFilter,
}

// errorf returns an error for the named filter.
func errorf(filter string, format string, a ...any) error {
	return fmt.Errorf(filter+": "+format, a...)
}

// checkArgs returns an error if more than max arguments are passed to the
// named filter.
func checkArgs(filter string, args []any, max int) error {
	if len(args) > max {
		return errorf(filter, "too many arguments: got %d, expected at most %d", len(args), max)
	}
	return nil
}

// arg returns the argument with index i, or runtime.Undefined if it has not
// been passed.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return runtime.Undefined
}

// intArg returns the argument with index i as an int. If the argument has
// not been passed, it returns def.
func intArg(filter string, args []any, i int, def int) (int, error) {
	v := arg(args, i)
	if runtime.IsUndefined(v) {
		return def, nil
	}
	n, ok := runtime.Integer(v)
	if !ok {
		return 0, errorf(filter, "argument %d is not an integer: %s", i+1, runtime.ToString(v))
	}
	return n, nil
}

// stringArg returns the argument with index i as a string. If the argument
// has not been passed, it returns def.
func stringArg(args []any, i int, def string) string {
	v := arg(args, i)
	if runtime.IsUndefined(v) {
		return def
	}
	return runtime.ToString(v)
}
