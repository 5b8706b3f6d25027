// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"strings"
	"testing"
)

var escapeTests = []struct {
	value    any
	expected string
}{
	{nil, ""},
	{Undefined, ""},
	{(*point)(nil), ""},
	{"", ""},
	{"a", "a"},
	{"<a>", "&lt;a&gt;"},
	{`<a>&"'` + "`", "&lt;a&gt;&amp;&#34;&#x27;&#x60;"},
	{"a & b", "a &amp; b"},
	{"&amp;", "&amp;amp;"},
	{"€ <€>", "€ &lt;€&gt;"},
	{label("<b>"), "&lt;b&gt;"},
	{5, "5"},
	{2.5, "2.5"},
	{true, "true"},
	{[]any{"<", ">"}, "&lt;,&gt;"},
	{NewMap("a", "<"), "[object Object]"},
}

func TestEscape(t *testing.T) {
	for _, test := range escapeTests {
		if got := Escape(test.value); got != test.expected {
			t.Errorf("Escape(%#v): expecting %q, got %q", test.value, test.expected, got)
		}
	}
}

func TestEscapeIsNotIdempotent(t *testing.T) {
	s := `<script>alert("x & y")</script>`
	once := Escape(s)
	twice := Escape(once)
	if once == twice {
		t.Fatalf("expecting double escaping, got %q", twice)
	}
	if expected := "&amp;lt;script&amp;gt;"; !strings.HasPrefix(twice, expected) {
		t.Fatalf("expecting prefix %q, got %q", expected, twice)
	}
}

func TestEscapeTo(t *testing.T) {
	var b strings.Builder
	b.WriteString("<p>")
	if err := EscapeTo(&b, `"hello" & 'bye'`); err != nil {
		t.Fatal(err)
	}
	b.WriteString("</p>")
	expected := "<p>&#34;hello&#34; &amp; &#x27;bye&#x27;</p>"
	if got := b.String(); got != expected {
		t.Fatalf("expecting %q, got %q", expected, got)
	}
}

func BenchmarkEscapeNoChars(b *testing.B) {
	s := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	for i := 0; i < b.N; i++ {
		_ = Escape(s)
	}
}

func BenchmarkEscape(b *testing.B) {
	s := strings.Repeat("<p class=\"lorem\">ipsum & dolor</p>", 20)
	for i := 0; i < b.N; i++ {
		_ = Escape(s)
	}
}
