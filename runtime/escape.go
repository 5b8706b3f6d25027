// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"io"
	"strings"
)

type strWriter interface {
	WriteString(s string) (int, error)
}

// escapeChars contains the characters replaced by Escape.
const escapeChars = "&<>\"'`"

// Escape returns the string form of v escaped so it can be placed inside
// HTML. nil and Undefined are escaped as the empty string.
//
// The characters &, <, >, ", ' and ` are replaced with the entities &amp;,
// &lt;, &gt;, &#34;, &#x27; and &#x60;. Escape is not idempotent: escaping
// an escaped string escapes again its ampersands.
func Escape(v any) string {
	var s string
	switch v := v.(type) {
	case nil, undefined:
		return ""
	case string:
		s = v
	default:
		if KindOf(v) == NullKind {
			return ""
		}
		s = ToString(v)
	}
	if !strings.ContainsAny(s, escapeChars) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	_ = htmlEscape(&b, s)
	return b.String()
}

// EscapeTo escapes s as Escape does and writes it to w.
func EscapeTo(w io.StringWriter, s string) error {
	return htmlEscape(w, s)
}

// htmlEscape escapes the string s, so it can be placed inside HTML, and
// writes it on w.
func htmlEscape(w strWriter, s string) error {
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&#34;"
		case '\'':
			esc = "&#x27;"
		case '`':
			esc = "&#x60;"
		default:
			continue
		}
		if last != i {
			_, err := w.WriteString(s[last:i])
			if err != nil {
				return err
			}
		}
		_, err := w.WriteString(esc)
		if err != nil {
			return err
		}
		last = i + 1
	}
	if last != len(s) {
		_, err := w.WriteString(s[last:])
		return err
	}
	return nil
}
