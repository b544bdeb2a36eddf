// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import "unsafe"

// initialCap is the starting capacity for strings, arrays, and objects.
const initialCap = 8

const maxInt = int(^uint(0) >> 1)

// A buffer accumulates the elements of one slice under construction during
// a parse. The slice header it maintains lives inside the tree node being
// built, so at every instant all granted storage is reachable from the tree
// and a single Free pass reclaims it, completed or not. Growth is charged
// to the parser's allocator; a denied request aborts the parse.
type buffer[T any] struct {
	p   *parser
	out *[]T
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// newBuffer charges and allocates storage for initialCap elements and
// installs the empty slice at out. The slot at out must be zero; if the
// grant is denied it is left that way, so the enclosing node stays
// freeable.
func newBuffer[T any](p *parser, out *[]T) buffer[T] {
	p.grant(0, initialCap*elemSize[T]())
	*out = make([]T, 0, initialCap)
	return buffer[T]{p: p, out: out}
}

// add extends the slice by one zeroed element and returns its address,
// doubling the capacity when full. The address stays valid until the next
// add call.
func (b buffer[T]) add() *T {
	data := *b.out
	if len(data) == cap(data) {
		size := elemSize[T]()
		if cap(data) > maxInt/size/2 {
			b.p.failf(ErrOutOfMemory, "capacity overflow")
		}
		newCap := cap(data) * 2
		b.p.grant(cap(data)*size, newCap*size)
		grown := make([]T, len(data), newCap)
		copy(grown, data)
		data = grown
	}
	data = data[:len(data)+1]
	*b.out = data
	return &data[len(data)-1]
}

// finish shrinks the slice to its exact final length. An empty slice
// releases its storage and becomes nil.
func (b buffer[T]) finish() {
	data := *b.out
	size := elemSize[T]()
	if len(data) == 0 {
		b.p.grant(cap(data)*size, 0)
		*b.out = nil
		return
	}
	if len(data) < cap(data) {
		b.p.grant(cap(data)*size, len(data)*size)
		exact := make([]T, len(data))
		copy(exact, data)
		*b.out = exact
	}
}
