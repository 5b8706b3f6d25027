// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jinja

import (
	"fmt"
	"io/fs"
	"strconv"
)

// NotExistError is returned when a template does not exist in a set. It
// satisfies errors.Is(err, fs.ErrNotExist).
type NotExistError struct {
	Name string
}

func (err *NotExistError) Error() string {
	return "template " + strconv.Quote(err.Name) + " does not exist"
}

// Unwrap returns fs.ErrNotExist.
func (err *NotExistError) Unwrap() error {
	return fs.ErrNotExist
}

// VersionError is returned by Set.Add when a compiled template targets a
// runtime version that is not compatible with ABIVersion.
type VersionError struct {
	Name    string // template name
	Version string // version targeted by the template
	Reason  string
}

func (err *VersionError) Error() string {
	return "template " + strconv.Quote(err.Name) + ": version " + err.Version + " " + err.Reason
}

// PanicError represents the error that occurs when a compiled template
// panics while it is rendered.
type PanicError struct {
	name    string
	message any
	next    *PanicError
}

// Error returns the panic, and the panics of the included templates that
// caused it, as a string.
//
// To print only the message, use the String method instead.
func (p *PanicError) Error() string {
	s := "template " + strconv.Quote(p.name) + ": panic: " + p.String()
	if p.next != nil {
		s += "\n\t" + p.next.Error()
	}
	return s
}

// Message returns the panic message.
func (p *PanicError) Message() any {
	return p.message
}

// Next returns the panic of the included template that caused this panic,
// or nil if the panic has not been caused by an included template.
func (p *PanicError) Next() *PanicError {
	return p.next
}

// Name returns the name of the template that panicked.
func (p *PanicError) Name() string {
	return p.name
}

// String returns the panic message as a string.
func (p *PanicError) String() string {
	switch v := p.message.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", p.message)
}

// Unwrap returns the panic message if it is an error.
func (p *PanicError) Unwrap() error {
	err, _ := p.message.(error)
	return err
}
