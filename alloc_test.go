// Copyright (C) 2022 spazzylemons. All Rights Reserved.

package cj_test

import (
	"errors"
	"testing"

	"github.com/spazzylemons/cj"
)

func TestQuota(t *testing.T) {
	q := cj.NewQuota(100)

	if err := q.Resize(0, 60); err != nil {
		t.Fatalf("Resize(0, 60): unexpected error: %v", err)
	}
	if err := q.Resize(60, 120); err == nil {
		t.Error("Resize(60, 120): got nil, want error")
	}
	if got := q.Live(); got != 60 {
		t.Errorf("Live after denial: %d, want 60", got)
	}
	if err := q.Resize(60, 90); err != nil {
		t.Fatalf("Resize(60, 90): unexpected error: %v", err)
	}
	if err := q.Resize(90, 0); err != nil {
		t.Fatalf("Resize(90, 0): unexpected error: %v", err)
	}
	if got := q.Live(); got != 0 {
		t.Errorf("Live: %d, want 0", got)
	}
	if got := q.HighWater(); got != 90 {
		t.Errorf("HighWater: %d, want 90", got)
	}
}

func TestQuotaUnlimited(t *testing.T) {
	q := cj.NewQuota(0)
	if err := q.Resize(0, 1<<40); err != nil {
		t.Errorf("Resize under no limit: unexpected error: %v", err)
	}
}

func TestParseUnderQuota(t *testing.T) {
	const input = `{"alpha":[1,2,"three",{"four":"5"}],"beta":"a longer string value","gamma":[[],{},null,true]}`

	// A roomy quota admits the parse; Free returns every byte.
	q := cj.NewQuota(1 << 20)
	v, err := cj.ParseString(q, input)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if q.Live() == 0 {
		t.Error("Live after Parse: 0, want > 0")
	}
	if q.HighWater() < q.Live() {
		t.Errorf("HighWater %d < Live %d", q.HighWater(), q.Live())
	}
	live := q.Live()
	cj.Free(q, v)
	if got := q.Live(); got != 0 {
		t.Errorf("Live after Free: %d, want 0 (was %d)", got, live)
	}

	// Freeing again is a no-op.
	cj.Free(q, v)
	if got := q.Live(); got != 0 {
		t.Errorf("Live after double Free: %d, want 0", got)
	}

	// A tight quota rejects the parse as out of memory, and the failure
	// path returns everything it had charged.
	q = cj.NewQuota(64)
	v, err = cj.ParseString(q, input)
	if v != nil || !errors.Is(err, cj.ErrOutOfMemory) {
		t.Errorf("Parse under tight quota: got (%v, %v), want %v", v, err, cj.ErrOutOfMemory)
	}
	if got := q.Live(); got != 0 {
		t.Errorf("Live after failed Parse: %d, want 0", got)
	}
}

// A flakyAlloc denies the nth growth request and forwards everything else
// to a Quota, which keeps the books.
type flakyAlloc struct {
	quota   *cj.Quota
	grants  int
	denyAt  int // deny this grant, 1-based; 0 = never
	errDeny error
}

func (f *flakyAlloc) Resize(oldSize, newSize int) error {
	if newSize > oldSize {
		f.grants++
		if f.grants == f.denyAt {
			return f.errDeny
		}
	}
	return f.quota.Resize(oldSize, newSize)
}

func TestAllocFailureInjection(t *testing.T) {
	const input = `{"alpha":[1,2,"three",{"four":"5"}],"beta":"a longer string value","gamma":[[],{},null,true]}`
	injected := errors.New("injected allocation failure")

	// Count the growth requests of an undisturbed parse.
	probe := &flakyAlloc{quota: cj.NewQuota(0), errDeny: injected}
	v, err := cj.ParseString(probe, input)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	cj.Free(probe, v)
	if probe.quota.Live() != 0 {
		t.Fatalf("Live after Free: %d, want 0", probe.quota.Live())
	}
	if probe.grants == 0 {
		t.Fatal("probe saw no growth requests")
	}

	// Deny each growth request in turn. Every failure must surface as
	// ErrOutOfMemory wrapping the injected error, with no byte left
	// charged afterward.
	for n := 1; n <= probe.grants; n++ {
		f := &flakyAlloc{quota: cj.NewQuota(0), denyAt: n, errDeny: injected}
		v, err := cj.ParseString(f, input)
		if v != nil || !errors.Is(err, cj.ErrOutOfMemory) {
			t.Errorf("deny %d: got (%v, %v), want %v", n, v, err, cj.ErrOutOfMemory)
			continue
		}
		if !errors.Is(err, injected) {
			t.Errorf("deny %d: error %v does not wrap the injected cause", n, err)
		}
		if got := f.quota.Live(); got != 0 {
			t.Errorf("deny %d: %d bytes leaked", n, got)
		}
	}

	// One grant past the total succeeds undisturbed.
	f := &flakyAlloc{quota: cj.NewQuota(0), denyAt: probe.grants + 1, errDeny: injected}
	v, err = cj.ParseString(f, input)
	if err != nil {
		t.Fatalf("deny %d: unexpected error: %v", probe.grants+1, err)
	}
	cj.Free(f, v)
	if got := f.quota.Live(); got != 0 {
		t.Errorf("Live after Free: %d, want 0", got)
	}
}
