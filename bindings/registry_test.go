package main

import (
	"testing"
	"unsafe"
)

// freshRegistry gives each test its own pool-backed registry.
func freshRegistry(t *testing.T, capacity int) *registry {
	t.Helper()
	r := &registry{}
	r.init(capacity)
	t.Cleanup(r.deinit)
	return r
}

func TestAllocFreeLifecycle(t *testing.T) {
	r := freshRegistry(t, 256)

	ptr := r.alloc(64)
	if ptr == nil {
		t.Fatal("alloc returned nil")
	}
	if len(r.live) != 1 {
		t.Fatalf("live table has %d entries, want 1", len(r.live))
	}
	r.free(ptr)
	if len(r.live) != 0 {
		t.Fatalf("live table has %d entries after free, want 0", len(r.live))
	}
}

func TestAllocZeroReturnsBaseSentinel(t *testing.T) {
	r := freshRegistry(t, 256)

	sentinel := r.alloc(0)
	if sentinel == nil {
		t.Fatal("size-0 alloc must return the pool base, not nil")
	}
	if len(r.live) != 0 {
		t.Fatal("sentinel must not be registered")
	}
	first := r.alloc(16)
	if first != sentinel {
		t.Fatal("first allocation should share the base address with the sentinel")
	}
}

func TestFreeLenientNoOps(t *testing.T) {
	r := freshRegistry(t, 256)

	r.free(nil) // NULL

	var foreign [8]byte
	r.free(unsafe.Pointer(&foreign[0])) // never allocated here

	ptr := r.alloc(32)
	r.free(ptr)
	r.free(ptr) // double free

	if len(r.live) != 0 {
		t.Fatalf("live table has %d entries, want 0", len(r.live))
	}
}

func TestResizeSemantics(t *testing.T) {
	r := freshRegistry(t, 256)

	// NULL behaves like alloc.
	ptr := r.resize(nil, 16)
	if ptr == nil {
		t.Fatal("resize(NULL, n) must allocate")
	}

	// Fill with a pattern, then grow past a blocker to force a move.
	data := unsafe.Slice((*byte)(ptr), 16)
	for i := range data {
		data[i] = byte(i)
	}
	blocker := r.alloc(16)

	grown := r.resize(ptr, 64)
	if grown == nil {
		t.Fatal("grow failed")
	}
	if grown == ptr {
		t.Fatal("grow past a blocker should have moved the block")
	}
	moved := unsafe.Slice((*byte)(grown), 64)
	for i := 0; i < 16; i++ {
		if moved[i] != byte(i) {
			t.Fatalf("byte %d lost in move: got %d", i, moved[i])
		}
	}

	// Size 0 behaves like free.
	if got := r.resize(grown, 0); got != nil {
		t.Fatal("resize(ptr, 0) must return NULL")
	}
	r.free(blocker)
	if len(r.live) != 0 {
		t.Fatalf("live table has %d entries, want 0", len(r.live))
	}
}

func TestResizeFailureKeepsOldAllocation(t *testing.T) {
	r := freshRegistry(t, 128)

	ptr := r.alloc(64)
	if got := r.resize(ptr, 1024); got != nil {
		t.Fatal("oversized resize must return NULL")
	}
	if len(r.live) != 1 {
		t.Fatal("old allocation must survive a failed resize")
	}
	r.free(ptr)
}

func TestOpsBeforeInitAndAfterDeinit(t *testing.T) {
	r := &registry{}
	if r.alloc(16) != nil {
		t.Fatal("alloc before init must return NULL")
	}
	r.free(nil)
	r.deinit() // no-op

	r.init(128)
	ptr := r.alloc(16)
	r.deinit()
	if r.alloc(16) != nil {
		t.Fatal("alloc after deinit must return NULL")
	}
	r.free(ptr) // stale pointer after deinit: no-op
}
