// Package pool implements a fixed-capacity memory pool with manual
// allocation, freeing, and resizing over one pre-reserved buffer.
//
// # Overview
//
// A Pool owns a single contiguous byte buffer reserved once at creation and
// a chain of block descriptors that partitions the buffer into adjacent,
// non-overlapping regions, each either free or allocated. Allocation is
// first-fit in ascending offset order: the first free block large enough is
// used, splitting off the remainder as a new free block when the match is
// not exact. Freeing marks the block free and coalesces it with free
// neighbors on both sides, so adjacent free space is always represented by
// a single descriptor.
//
// # Usage Example
//
//	p := pool.New(1 << 20)
//	defer p.Close()
//
//	buf, err := p.Alloc(256)
//	if err != nil {
//	    return err
//	}
//
//	// Write through buf...
//	copy(buf, payload)
//
//	// Grow or shrink in place where possible
//	buf, err = p.Resize(buf, 512)
//	if err != nil {
//	    return err
//	}
//
//	// Later, return the region to the pool
//	err = p.Free(buf)
//
// # Pointer Surface
//
// Alloc and Resize return sub-slices of the pool buffer with capacity
// clamped to length. Free and Resize recover a slice's offset from its base
// address and validate it against the descriptor chain before trusting it:
// a slice that does not point into the pool, or whose offset does not match
// a currently allocated block, yields ErrBadPointer and changes nothing.
//
// Alloc(0) is a documented special case: it returns a zero-length view at
// the pool base with no backing descriptor. It must not be written through
// or passed to Free or Resize as a real allocation.
//
// # Failure Policy
//
// Exhaustion is reported, not smoothed: when no free block fits, Alloc
// returns ErrNoSpace immediately and the chain is unchanged. There is no
// compaction, no pool growth, and no blocking or retry. Freeing an
// already-free block returns ErrDoubleFree and freeing a foreign pointer
// returns ErrBadPointer; both are advisory and leave the chain intact.
//
// # Thread Safety
//
// A single mutex serializes every operation, including pure lookups such as
// Blocks and Check. There is no read-only fast path; the trade is
// concurrency for absolute consistency of the descriptor chain. The grow
// path of Resize runs inside one critical section, so a block is never
// visible to other goroutines in a half-resized state.
//
// # Buffer Reservation
//
// The pool buffer is reserved outside the Go heap via an anonymous private
// mapping where the platform supports it (see internal/mmbuf), which keeps
// the allocator independent of the runtime allocator and makes interior
// pointers safe to hand across a C boundary. Reservation failure at New is
// fatal: there is no recovery path for failing to obtain the foundational
// buffer.
package pool
