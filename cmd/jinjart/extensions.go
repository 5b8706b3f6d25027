// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/open2b/jinja"
	"github.com/open2b/jinja/runtime"
)

// functionMarker is the context value replaced by a function.
const functionMarker = "<<< MAKE ME A FUNCTION >>>"

// replaceFunctionMarkers replaces the values of ctx equal to functionMarker
// with a function that returns "hello".
func replaceFunctionMarkers(ctx *runtime.Map) {
	for _, key := range ctx.Keys() {
		if v, _ := ctx.Load(key); v == functionMarker {
			ctx.Store(key, func() string { return "hello" })
		}
	}
}

// registerExtensions registers in env the filters and the globals that are
// not built-in.
func registerExtensions(env *jinja.Env) {
	env.Filters.Register("unicode_snowmen", unicodeSnowmen)
	env.Filters.Register("markdown", markdown)
	env.Filters.Register("striptags", striptags)
	env.Globals["convert_to_uppercase"] = convertToUppercase
}

// unicodeSnowmen replaces each character of the value with a snowman.
func unicodeSnowmen(value any, _ ...any) (any, error) {
	n := utf8.RuneCountInString(runtime.ToString(value))
	return strings.Repeat("☃", n), nil
}

// markdown converts the value from Markdown to HTML.
func markdown(value any, _ ...any) (any, error) {
	var b bytes.Buffer
	err := goldmark.Convert([]byte(runtime.ToString(value)), &b)
	if err != nil {
		return nil, err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// striptags removes the HTML tags from the value, unescapes the entities
// and collapses adjacent white space.
func striptags(value any, _ ...any) (any, error) {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	s := stripPolicy.Sanitize(runtime.ToString(value))
	return strings.Join(strings.Fields(html.UnescapeString(s)), " "), nil
}

func convertToUppercase(val string) string {
	return strings.ToUpper(val)
}
