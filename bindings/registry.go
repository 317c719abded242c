package main

import (
	"sync"
	"unsafe"

	"github.com/Jackefu123/poolkit/pool"
)

// registry adapts the pool's slice surface to the raw-pointer C ABI. It
// owns one process-wide pool and remembers every live allocation by its
// base address so the backing slice can be reconstructed for free and
// resize. The pool does its own locking; the registry mutex only guards
// the pointer table and the pool handle.
type registry struct {
	mu   sync.Mutex
	p    *pool.Pool
	live map[unsafe.Pointer][]byte
}

var defaultRegistry = &registry{}

func (r *registry) init(capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// A second init without deinit leaks the previous pool, matching the
	// documented single-pool lifecycle of this surface.
	r.p = pool.New(capacity)
	r.live = make(map[unsafe.Pointer][]byte)
}

func (r *registry) alloc(size int) unsafe.Pointer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.p == nil || size < 0 {
		return nil
	}
	buf, err := r.p.Alloc(size)
	if err != nil {
		return nil
	}
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	if size == 0 {
		// Base sentinel: not registered, must not reach free or resize.
		return ptr
	}
	r.live[ptr] = buf
	return ptr
}

func (r *registry) free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.p == nil {
		return
	}
	buf, ok := r.live[ptr]
	if !ok {
		// Foreign or already-freed pointer: lenient no-op at the C surface.
		return
	}
	if r.p.Free(buf) == nil {
		delete(r.live, ptr)
	}
}

func (r *registry) resize(ptr unsafe.Pointer, size int) unsafe.Pointer {
	if ptr == nil {
		return r.alloc(size)
	}
	if size == 0 {
		r.free(ptr)
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.p == nil || size < 0 {
		return nil
	}
	buf, ok := r.live[ptr]
	if !ok {
		return nil
	}
	newBuf, err := r.p.Resize(buf, size)
	if err != nil {
		return nil
	}
	delete(r.live, ptr)
	newPtr := unsafe.Pointer(unsafe.SliceData(newBuf))
	r.live[newPtr] = newBuf
	return newPtr
}

func (r *registry) deinit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.p == nil {
		return
	}
	_ = r.p.Close()
	r.p = nil
	r.live = nil
}
