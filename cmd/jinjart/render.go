// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/natefinch/atomic"

	"github.com/open2b/jinja"
	"github.com/open2b/jinja/runtime"
)

// renderer renders a template with the context read from a file.
type renderer struct {
	set     *jinja.Set
	name    string // template name
	ctxPath string // context file
	outPath string // output file, empty for the standard output
	logger  *slog.Logger
	stdout  io.Writer
}

// render renders the template once.
func (r *renderer) render() error {
	ctx, err := readContext(r.ctxPath)
	if err != nil {
		return err
	}
	r.logger.Debug("rendering template", "template", r.name, "context", r.ctxPath)
	if r.outPath == "" {
		return r.set.Render(r.stdout, r.name, ctx)
	}
	s, err := r.set.RenderString(r.name, ctx)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(r.outPath, strings.NewReader(s)); err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}
	r.logger.Info("output written", "file", r.outPath, "bytes", len(s))
	return nil
}

// watch renders the template and then renders it again each time the
// context file changes, until an interrupt signal is received. Errors that
// occur after the first render are logged.
func (r *renderer) watch() error {
	if err := r.render(); err != nil {
		return err
	}
	w, err := newFileWatcher(r.ctxPath)
	if err != nil {
		return err
	}
	defer w.Close()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	r.logger.Info("watching context file", "file", r.ctxPath)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stop watching", "file", r.ctxPath)
			return nil
		case <-w.Changed():
			r.logger.Info("context file changed", "file", r.ctxPath)
			if err := r.render(); err != nil {
				r.logger.Error("cannot render template", "template", r.name, "error", err)
			}
		case err := <-w.Errors():
			r.logger.Error("cannot watch context file", "file", r.ctxPath, "error", err)
		}
	}
}

// readContext reads the context from the named JSON or YAML file.
func readContext(name string) (*runtime.Map, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("cannot read context file: %w", err)
	}
	v, err := runtime.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse context file %s: %w", name, err)
	}
	ctx, ok := v.(*runtime.Map)
	if !ok {
		return nil, fmt.Errorf("context file %s does not contain an object", name)
	}
	replaceFunctionMarkers(ctx)
	return ctx, nil
}
