// C surface for the pool allocator, built as a c-shared library:
//
//	go build -buildmode=c-shared -o libpoolkit.so .
//
// The exported functions mirror the classic manual-allocator API over one
// process-wide default pool. Handing interior pool pointers to C is legal
// because the pool buffer lives outside the Go heap.
package main

/*
#include <stddef.h>
*/
import "C"

import "unsafe"

// mem_init reserves a process-wide pool of size bytes. Reservation failure
// terminates the process. Calling mem_init again without mem_deinit leaks
// the previous pool; that is a documented limitation, not a re-init path.
//
//export mem_init
func mem_init(size C.size_t) {
	defaultRegistry.init(int(size))
}

// mem_alloc returns a pointer into the pool, the pool base for size 0, or
// NULL when no free block is large enough.
//
//export mem_alloc
func mem_alloc(size C.size_t) unsafe.Pointer {
	return defaultRegistry.alloc(int(size))
}

// mem_free returns ptr's block to the pool. NULL, foreign, and
// already-freed pointers are silent no-ops at this surface.
//
//export mem_free
func mem_free(ptr unsafe.Pointer) {
	defaultRegistry.free(ptr)
}

// mem_resize resizes ptr's block to size bytes, moving it when it cannot
// grow in place. NULL behaves like mem_alloc, size 0 like mem_free.
// Returns NULL on failure, leaving the old allocation untouched.
//
//export mem_resize
func mem_resize(ptr unsafe.Pointer, size C.size_t) unsafe.Pointer {
	return defaultRegistry.resize(ptr, int(size))
}

// mem_deinit releases the pool and all bookkeeping; a later mem_init
// starts clean.
//
//export mem_deinit
func mem_deinit() {
	defaultRegistry.deinit()
}

func main() {}
