// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher watches a file for changes.
type fileWatcher struct {
	name    string
	watcher *fsnotify.Watcher
	changed chan struct{}
	errors  chan error
}

// newFileWatcher returns a watcher for the named file. It watches the
// directory of the file, so a file replaced by a rename is also notified.
func newFileWatcher(name string) (*fileWatcher, error) {
	name, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = watcher.Add(filepath.Dir(name))
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	w := &fileWatcher{
		name:    name,
		watcher: watcher,
		changed: make(chan struct{}, 1),
		errors:  make(chan error, 1),
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					// Consecutive writes are notified once.
					select {
					case w.changed <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case w.errors <- err:
				default:
				}
			}
		}
	}()
	return w, nil
}

// Changed returns a channel that receives a value when the file is written.
func (w *fileWatcher) Changed() <-chan struct{} {
	return w.changed
}

// Errors returns a channel that receives the watch errors.
func (w *fileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching the file.
func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}
