// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj

import "fmt"

// An Allocator meters the storage a parse is allowed to retain. The parser
// reports every change in the size of its live storage through a single
// resize operation before the storage is obtained: Resize(0, n) requests n
// fresh bytes, Resize(n, 0) returns n bytes, and any other combination
// adjusts an existing grant. A non-nil error denies the request and aborts
// the parse with ErrOutOfMemory.
//
// Releases (newSize < oldSize) must not fail. An Allocator is called
// sequentially by a single parse; implementations shared across concurrent
// parses must synchronize themselves.
type Allocator interface {
	Resize(oldSize, newSize int) error
}

// heapAllocator grants every request, leaving storage to the runtime.
// It is the allocator used when the caller passes nil.
type heapAllocator struct{}

func (heapAllocator) Resize(oldSize, newSize int) error { return nil }

// A Quota is an Allocator that bounds the total bytes live at once.
// A zero or negative limit means no bound.
type Quota struct {
	limit int
	live  int
	high  int
}

// NewQuota constructs a Quota allowing at most limit live bytes.
func NewQuota(limit int) *Quota { return &Quota{limit: limit} }

// Resize implements the Allocator interface.
func (q *Quota) Resize(oldSize, newSize int) error {
	next := q.live - oldSize + newSize
	if newSize > oldSize && q.limit > 0 && next > q.limit {
		return fmt.Errorf("quota: need %d bytes, %d of %d in use", newSize-oldSize, q.live, q.limit)
	}
	q.live = next
	if next > q.high {
		q.high = next
	}
	return nil
}

// Live reports the number of bytes currently charged against q.
func (q *Quota) Live() int { return q.live }

// HighWater reports the largest number of bytes ever live at once.
func (q *Quota) HighWater() int { return q.high }
