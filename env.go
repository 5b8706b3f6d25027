// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jinja

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/open2b/jinja/filters"
	"github.com/open2b/jinja/runtime"
)

// Env is the environment in which templates are rendered. It holds the
// filters and the global values available to every template.
//
// An Env must not be modified while templates are rendered.
type Env struct {
	Filters *filters.Registry
	Globals map[string]any
}

// NewEnv returns a new environment with the built-in filters and no
// globals.
func NewEnv() *Env {
	return &Env{
		Filters: filters.New(),
		Globals: map[string]any{},
	}
}

// Filter applies the named filter to value with the given arguments.
func (env *Env) Filter(name string, value any, args ...any) (any, error) {
	return env.Filters.Apply(name, value, args...)
}

// Global returns the value of the named global, or runtime.Undefined if it
// does not exist.
func (env *Env) Global(name string) any {
	if v, ok := env.Globals[name]; ok {
		return v
	}
	return runtime.Undefined
}

// Lookup returns the value of the named variable, looking first in ctx and
// then in the globals. If it does not exist, it returns runtime.Undefined.
func (env *Env) Lookup(ctx *runtime.Map, name string) any {
	if v, ok := ctx.Load(name); ok {
		return v
	}
	return env.Global(name)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Call calls the function fn, a value of a context or a global, with the
// given arguments and returns its result.
//
// fn can have any signature. Each argument is converted to the type of the
// corresponding parameter, if possible. fn can return no values, a value, an
// error, or a value and an error. Call returns an error if fn is not a
// function.
func Call(fn any, args ...any) (any, error) {
	if runtime.KindOf(fn) != runtime.FunctionKind {
		return nil, fmt.Errorf("call: cannot call a value of kind %s", runtime.KindOf(fn))
	}
	rv := reflect.ValueOf(fn)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return call(rv.Type().String(), rv, args)
}

// call calls fn with args.
func call(name string, fn reflect.Value, args []any) (any, error) {
	typ := fn.Type()
	numIn := typ.NumIn()
	if typ.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("call: not enough arguments in call to %s", name)
		}
	} else if len(args) != numIn {
		if len(args) < numIn {
			return nil, fmt.Errorf("call: not enough arguments in call to %s", name)
		}
		return nil, fmt.Errorf("call: too many arguments in call to %s", name)
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var t reflect.Type
		if typ.IsVariadic() && i >= numIn-1 {
			t = typ.In(numIn - 1).Elem()
		} else {
			t = typ.In(i)
		}
		v, err := convertArg(arg, t)
		if err != nil {
			return nil, fmt.Errorf("call: argument %d in call to %s: %w", i+1, name, err)
		}
		in[i] = v
	}
	out := fn.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if typ.Out(0) == errorType {
			err, _ := out[0].Interface().(error)
			return nil, err
		}
		return out[0].Interface(), nil
	case 2:
		if typ.Out(1) != errorType {
			return nil, fmt.Errorf("call: second result of %s is not an error", name)
		}
		err, _ := out[1].Interface().(error)
		return out[0].Interface(), err
	}
	return nil, fmt.Errorf("call: %s returns too many values", name)
}

var errCannotConvert = errors.New("cannot convert")

// convertArg returns arg as a value of type t. Any value, nil included, is
// converted to a string parameter with runtime.ToString.
func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.String {
		return reflect.ValueOf(runtime.ToString(arg)).Convert(t), nil
	}
	if arg == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w null to %s", errCannotConvert, t)
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if _, ok := runtime.Number(arg); ok && v.CanConvert(t) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w %s to %s", errCannotConvert, v.Type(), t)
}
