package pool

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/Jackefu123/poolkit/internal/mmbuf"
)

// Runtime debug flag for allocation tracing - controlled by POOLKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("POOLKIT_LOG_ALLOC") != ""

// Pool is a fixed-capacity allocator over one contiguous byte buffer.
//
// All returned slices are interior views into that buffer. A single mutex
// serializes every operation; see the package documentation for the full
// concurrency and failure policy.
type Pool struct {
	mu sync.Mutex

	buf     []byte
	release func() error
	arena   *blockArena
	closed  bool

	counters opCounters
}

// opCounters holds cumulative operation counts, guarded by Pool.mu.
type opCounters struct {
	allocs       int
	failedAllocs int
	frees        int
	resizes      int
	splits       int
	merges       int
}

// New reserves a pool of capacity bytes and installs a single free block
// spanning it.
//
// New panics when capacity is not positive or when the underlying
// reservation fails: there is no recovery path for failing to obtain the
// foundational buffer, so the failure is fatal rather than returned.
func New(capacity int) *Pool {
	if capacity <= 0 {
		panic(fmt.Sprintf("pool: invalid capacity %d", capacity))
	}
	buf, release, err := mmbuf.Reserve(capacity)
	if err != nil {
		panic(fmt.Sprintf("pool: cannot reserve %d bytes: %v", capacity, err))
	}
	return &Pool{
		buf:     buf,
		release: release,
		arena:   newBlockArena(capacity),
	}
}

// Capacity returns the fixed size of the pool buffer in bytes.
func (p *Pool) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

// Alloc returns a slice of exactly size bytes carved out of the pool, or
// ErrNoSpace when no free block is large enough. The search is first-fit in
// ascending offset order; a larger match is split, leaving the remainder as
// a new free block.
//
// Alloc(0) returns a zero-length view at the pool base with no backing
// descriptor. It must not be written through or passed to Free or Resize.
func (p *Pool) Alloc(size int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocLocked(size)
}

// allocLocked implements Alloc. Callers must hold p.mu.
func (p *Pool) allocLocked(size int) ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		return nil, ErrSize
	}
	if size == 0 {
		// Sentinel view at the pool base; no descriptor is touched. The
		// zero-length slice keeps the base address so callers can compare
		// identity, but must never be written through or grown.
		return p.buf[0:0], nil
	}
	p.counters.allocs++

	for idx := p.arena.head; idx != nilBlock; idx = p.arena.blocks[idx].next {
		b := p.arena.blocks[idx]
		if !b.free || b.size < size {
			continue
		}
		if b.size > size {
			p.arena.insertAfter(idx, blockDesc{off: b.off + size, size: b.size - size, free: true})
			p.counters.splits++
		}
		blk := &p.arena.blocks[idx] // reacquire: insertAfter may grow the arena
		blk.size = size
		blk.free = false
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[POOL] alloc %d bytes at offset %d (split=%v)\n", size, b.off, b.size > size)
		}
		return p.buf[b.off : b.off+size : b.off+size], nil
	}

	p.counters.failedAllocs++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[POOL] alloc %d bytes failed: no free block large enough\n", size)
	}
	return nil, ErrNoSpace
}

// Free returns buf's block to the pool and coalesces it with free neighbors
// on both sides, so up to three descriptors may collapse into one.
//
// A nil or empty buf is a no-op. A slice that does not correspond to an
// allocated block yields ErrBadPointer; freeing an already-free block
// yields ErrDoubleFree. Both are advisory: the chain is never altered by a
// bad call, and pool contents are never touched by coalescing.
func (p *Pool) Free(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freeLocked(buf)
}

// freeLocked implements Free. Callers must hold p.mu.
func (p *Pool) freeLocked(buf []byte) error {
	if p.closed {
		return ErrClosed
	}
	if len(buf) == 0 {
		return nil
	}
	off, ok := p.offsetOf(buf)
	if !ok {
		return ErrBadPointer
	}

	prev := nilBlock
	for idx := p.arena.head; idx != nilBlock; idx = p.arena.blocks[idx].next {
		if p.arena.blocks[idx].off != off {
			prev = idx
			continue
		}
		if p.arena.blocks[idx].free {
			return ErrDoubleFree
		}
		p.arena.blocks[idx].free = true
		p.counters.frees++
		p.coalesce(prev, idx)
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[POOL] free %d bytes at offset %d\n", len(buf), off)
		}
		return nil
	}
	return ErrBadPointer
}

// coalesce merges the free descriptor at idx with its neighbors when they
// are also free. prev is the descriptor before idx, or nilBlock when idx is
// the head. Pure bookkeeping: pool contents are never touched.
func (p *Pool) coalesce(prev, idx int) {
	if next := p.arena.blocks[idx].next; next != nilBlock && p.arena.blocks[next].free {
		p.arena.blocks[idx].size += p.arena.blocks[next].size
		p.arena.removeNext(idx)
		p.counters.merges++
	}
	if prev != nilBlock && p.arena.blocks[prev].free {
		p.arena.blocks[prev].size += p.arena.blocks[idx].size
		p.arena.removeNext(prev)
		p.counters.merges++
	}
}

// Resize changes buf's block to exactly size bytes.
//
// A nil or empty buf behaves like Alloc(size); size 0 behaves like
// Free(buf) and returns a nil slice. Shrinking (or keeping the size) never
// moves data: the same region is returned re-sliced and the remainder is
// split off free, merging with a following free neighbor. Growing
// allocates a new region, copies the old contents, and frees the old
// block; when no block fits, ErrNoSpace is returned and the old allocation
// remains valid and untouched.
func (p *Pool) Resize(buf []byte, size int) ([]byte, error) {
	if len(buf) == 0 {
		return p.Alloc(size)
	}
	if size == 0 {
		return nil, p.Free(buf)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		return nil, ErrSize
	}
	off, ok := p.offsetOf(buf)
	if !ok {
		return nil, ErrBadPointer
	}

	for idx := p.arena.head; idx != nilBlock; idx = p.arena.blocks[idx].next {
		if p.arena.blocks[idx].off != off {
			continue
		}
		if p.arena.blocks[idx].free {
			// Matches a descriptor, but not an allocated one.
			return nil, ErrBadPointer
		}
		p.counters.resizes++
		cur := p.arena.blocks[idx]

		if cur.size >= size {
			if cur.size > size {
				rem := p.arena.insertAfter(idx, blockDesc{off: off + size, size: cur.size - size, free: true})
				p.arena.blocks[idx].size = size
				p.counters.splits++
				// The remainder must not leave two adjacent free blocks;
				// its predecessor is the shrunk allocated block, so only a
				// forward merge can apply.
				p.coalesce(idx, rem)
			}
			if logAlloc {
				fmt.Fprintf(os.Stderr, "[POOL] resize offset %d: %d -> %d bytes in place\n", off, cur.size, size)
			}
			return p.buf[off : off+size : off+size], nil
		}

		// Grow path. Runs inside the same critical section via the
		// unexported helpers, so the old block is never visible to other
		// goroutines in a half-resized state.
		newBuf, err := p.allocLocked(size)
		if err != nil {
			return nil, err
		}
		copy(newBuf, p.buf[off:off+cur.size])
		// The old descriptor was matched above, so this cannot miss.
		_ = p.freeLocked(buf)
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[POOL] resize offset %d: %d -> %d bytes moved\n", off, cur.size, size)
		}
		return newBuf, nil
	}
	return nil, ErrBadPointer
}

// Close releases the pool buffer and all descriptor metadata and marks the
// pool closed. Close is idempotent; every other operation on a closed pool
// returns ErrClosed.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.buf = nil
	p.arena = nil
	release := p.release
	p.release = nil
	if release != nil {
		return release()
	}
	return nil
}

// offsetOf recovers buf's offset within the pool from its base address.
// Reports false when buf does not point into the pool buffer.
func (p *Pool) offsetOf(buf []byte) (int, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.buf)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	if ptr < base || ptr >= base+uintptr(len(p.buf)) {
		return 0, false
	}
	return int(ptr - base), true
}
