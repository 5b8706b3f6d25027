// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

import (
	"unicode/utf8"

	"github.com/open2b/jinja/runtime"
)

// Batch partitions the sequence seq into consecutive chunks of size
// elements. The last chunk can have fewer elements; if fillWith is not
// runtime.Undefined, it is filled up to size elements with fillWith.
//
// The returned value is a []any with a []any for each chunk. It returns an
// error if seq is not a sequence or size is less than 1.
func Batch(seq any, size int, fillWith any) ([]any, error) {
	values, ok := runtime.Values(seq)
	if !ok {
		return nil, errorf("batch", "cannot batch a value of kind %s", runtime.KindOf(seq))
	}
	if size < 1 {
		return nil, errorf("batch", "size %d is less than 1", size)
	}
	batches := make([]any, 0, (len(values)+size-1)/size)
	for i := 0; i < len(values); i += size {
		n := min(size, len(values)-i)
		batch := make([]any, n, size)
		copy(batch, values[i:i+n])
		if n < size && !runtime.IsUndefined(fillWith) {
			for len(batch) < size {
				batch = append(batch, fillWith)
			}
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// Slice partitions the sequence seq into slices chunks. The chunk sizes
// differ at most by one: if the length of seq is not a multiple of slices,
// the first length%slices chunks have an element more.
//
// If fillWith is not nil or runtime.Undefined, each chunk after the first
// length%slices chunks gets fillWith as last element. So when the length of
// seq is a multiple of slices, every chunk is filled.
//
// The returned value is a []any with a []any for each chunk. It returns an
// error if seq is not a sequence or slices is less than 1.
func Slice(seq any, slices int, fillWith any) ([]any, error) {
	values, ok := runtime.Values(seq)
	if !ok {
		return nil, errorf("slice", "cannot slice a value of kind %s", runtime.KindOf(seq))
	}
	if slices < 1 {
		return nil, errorf("slice", "number of slices %d is less than 1", slices)
	}
	fill := fillWith != nil && !runtime.IsUndefined(fillWith)
	itemsPerSlice := len(values) / slices
	slicesWithExtra := len(values) % slices
	result := make([]any, slices)
	offset := 0
	for i := 0; i < slices; i++ {
		start := offset + i*itemsPerSlice
		if i < slicesWithExtra {
			offset++
		}
		end := offset + (i+1)*itemsPerSlice
		chunk := make([]any, end-start, end-start+1)
		copy(chunk, values[start:end])
		if fill && i >= slicesWithExtra {
			chunk = append(chunk, fillWith)
		}
		result[i] = chunk
	}
	return result, nil
}

// First returns the first element of the sequence seq. If seq is empty it
// returns runtime.Undefined, and if seq is not a sequence it returns nil.
func First(seq any) any {
	if runtime.KindOf(seq) != runtime.ArrayKind {
		return nil
	}
	return runtime.Attr(seq, 0)
}

// Last returns the last element of the sequence seq. If seq is empty it
// returns runtime.Undefined, and if seq is not a sequence it returns nil.
func Last(seq any) any {
	n, ok := runtime.Len(seq)
	if !ok || runtime.KindOf(seq) != runtime.ArrayKind {
		return nil
	}
	return runtime.Attr(seq, n-1)
}

// Size returns the length of a sequence, the number of keys of a mapping and
// the number of characters of a string. For any other value it returns 0.
func Size(v any) int {
	if n, ok := runtime.Len(v); ok {
		return n
	}
	if runtime.KindOf(v) == runtime.StringKind {
		return utf8.RuneCountInString(runtime.ToString(v))
	}
	return 0
}

// batchFilter implements batch(seq, size, fillWith).
func batchFilter(value any, args ...any) (any, error) {
	if err := checkArgs("batch", args, 2); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, errorf("batch", "missing size argument")
	}
	size, err := intArg("batch", args, 0, 0)
	if err != nil {
		return nil, err
	}
	return Batch(value, size, arg(args, 1))
}

// sliceFilter implements slice(seq, slices, fillWith).
func sliceFilter(value any, args ...any) (any, error) {
	if err := checkArgs("slice", args, 2); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, errorf("slice", "missing slices argument")
	}
	slices, err := intArg("slice", args, 0, 0)
	if err != nil {
		return nil, err
	}
	return Slice(value, slices, arg(args, 1))
}

func firstFilter(value any, args ...any) (any, error) {
	return First(value), nil
}

func lastFilter(value any, args ...any) (any, error) {
	return Last(value), nil
}

func sizeFilter(value any, args ...any) (any, error) {
	return Size(value), nil
}
