// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/creachadair/mds/mtest"
)

// Doubling a byte buffer whose capacity already exceeds half the address
// space must be refused as an out-of-memory condition, not wrapped into a
// negative capacity. The state is unreachable through real allocation, so
// the test forges the header of an at-capacity slice; the refusal fires
// before any element is touched.
func TestCapacityOverflow(t *testing.T) {
	var data []byte
	hdr := (*struct {
		ptr      unsafe.Pointer
		len, cap int
	})(unsafe.Pointer(&data))
	hdr.len = maxInt/2 + 1
	hdr.cap = maxInt/2 + 1

	p := &parser{alloc: heapAllocator{}}
	b := buffer[byte]{p: p, out: &data}
	v := mtest.MustPanic(t, func() { b.add() })
	pe, ok := v.(*ParseError)
	if !ok {
		t.Fatalf("panic value: got %v (%[1]T), want *ParseError", v)
	}
	if !errors.Is(pe, ErrOutOfMemory) {
		t.Errorf("error class: got %v, want %v", pe.Err, ErrOutOfMemory)
	}
}
