// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/open2b/jinja/runtime"
)

// Capitalize returns s with the first character in upper case. The other
// characters are left unchanged. If s is false, as runtime.Boolean reports,
// it is returned unchanged; other non-string values are converted to
// string.
func Capitalize(s any) any {
	if !runtime.Boolean(s) {
		return s
	}
	src := runtime.ToString(s)
	r, size := utf8.DecodeRuneInString(src)
	u := unicode.ToUpper(r)
	if u == r {
		return src
	}
	b := strings.Builder{}
	b.Grow(len(src))
	b.WriteRune(u)
	b.WriteString(src[size:])
	return b.String()
}

// Title returns s, converted to string, with the first character of each
// word in upper case and the remaining characters in lower case. Words are
// separated by single spaces, and consecutive spaces are kept.
func Title(s any) string {
	words := strings.Split(runtime.ToString(s), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

// Truncate truncates s, converted to string, to length characters.
//
// If s is not longer than length, it is returned unchanged. Otherwise it is
// cut so that, appending end, the result is not longer than length. If
// killwords is false, the last word, that can be cut, is removed and a space
// is added before end.
func Truncate(s any, length int, killwords bool, end string) string {
	src := runtime.ToString(s)
	if utf8.RuneCountInString(src) <= length {
		return src
	}
	n := length - utf8.RuneCountInString(end)
	if n < 0 {
		n = 0
	}
	cut := src[:runeOffset(src, n)]
	if killwords {
		return cut + end
	}
	words := strings.Split(cut, " ")
	cut = strings.Join(words[:len(words)-1], " ")
	if utf8.RuneCountInString(cut) < length {
		cut += " "
	}
	return cut + end
}

// runeOffset returns the byte offset of the n-th rune of s.
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// Lower returns s, converted to string, in lower case.
func Lower(s any) string {
	return strings.ToLower(runtime.ToString(s))
}

// Upper returns s, converted to string, in upper case.
func Upper(s any) string {
	return strings.ToUpper(runtime.ToString(s))
}

// Trim returns s, converted to string, without leading and trailing white
// space.
func Trim(s any) string {
	return strings.TrimSpace(runtime.ToString(s))
}

func capitalizeFilter(value any, args ...any) (any, error) {
	if err := checkArgs("capitalize", args, 0); err != nil {
		return nil, err
	}
	return Capitalize(value), nil
}

func titleFilter(value any, args ...any) (any, error) {
	if err := checkArgs("title", args, 0); err != nil {
		return nil, err
	}
	return Title(value), nil
}

// truncateFilter implements truncate(s, length=255, killwords=false, end='...').
func truncateFilter(value any, args ...any) (any, error) {
	if err := checkArgs("truncate", args, 3); err != nil {
		return nil, err
	}
	length, err := intArg("truncate", args, 0, 255)
	if err != nil {
		return nil, err
	}
	killwords := runtime.Boolean(arg(args, 1))
	end := stringArg(args, 2, "...")
	return Truncate(value, length, killwords, end), nil
}

func lowerFilter(value any, args ...any) (any, error) {
	if err := checkArgs("lower", args, 0); err != nil {
		return nil, err
	}
	return Lower(value), nil
}

func upperFilter(value any, args ...any) (any, error) {
	if err := checkArgs("upper", args, 0); err != nil {
		return nil, err
	}
	return Upper(value), nil
}

func trimFilter(value any, args ...any) (any, error) {
	if err := checkArgs("trim", args, 0); err != nil {
		return nil, err
	}
	return Trim(value), nil
}
