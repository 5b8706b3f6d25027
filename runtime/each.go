// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

// Each calls fn for each element of collection.
//
// If collection is a sequence, fn is called with each element and its index,
// as an int, in order. If it is a mapping, fn is called with each value and
// its key, as a string, in key order; for a *Map it is the insertion order,
// for a Go map the sorted order and for a struct the field order.
//
// If collection is neither a sequence nor a mapping, Each does nothing and
// returns nil. A for loop over an undefined variable renders nothing.
//
// If fn returns a non-nil error, Each stops and returns that error.
func Each(collection any, fn func(value, key any) error) error {
	if a, ok := asArray(collection); ok {
		for i := 0; i < a.Len(); i++ {
			if err := fn(a.At(i), i); err != nil {
				return err
			}
		}
		return nil
	}
	o, ok := asObject(collection)
	if !ok {
		return nil
	}
	for _, k := range o.Keys() {
		v, _ := o.Load(k)
		if err := fn(v, k); err != nil {
			return err
		}
	}
	return nil
}

// Loop is the value of the loop variable inside a for loop.
type Loop struct {
	Index     int  // current iteration starting from 1
	Index0    int  // current iteration starting from 0
	RevIndex  int  // iterations until the end, ending with 1
	RevIndex0 int  // iterations until the end, ending with 0
	First     bool // first iteration
	Last      bool // last iteration
	Length    int  // number of elements
}

// NewLoop returns the loop variable for the iteration index, starting from
// 0, of a loop over length elements.
func NewLoop(index, length int) *Loop {
	return &Loop{
		Index:     index + 1,
		Index0:    index,
		RevIndex:  length - index,
		RevIndex0: length - index - 1,
		First:     index == 0,
		Last:      index == length-1,
		Length:    length,
	}
}

// EachLoop is like Each but fn receives also the loop variable. The length
// of the loop is the length of collection.
func EachLoop(collection any, fn func(value, key any, loop *Loop) error) error {
	n, ok := Len(collection)
	if !ok {
		return nil
	}
	i := 0
	return Each(collection, func(value, key any) error {
		loop := NewLoop(i, n)
		i++
		return fn(value, key, loop)
	})
}
