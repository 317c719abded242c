package pool

import "fmt"

// Block is a point-in-time snapshot of one descriptor.
type Block struct {
	Offset int  `json:"offset"`
	Size   int  `json:"size"`
	Free   bool `json:"free"`
}

// Stats holds a point-in-time summary of the pool.
type Stats struct {
	Capacity        int `json:"capacity"`
	FreeBytes       int `json:"freeBytes"`
	AllocatedBytes  int `json:"allocatedBytes"`
	FreeBlocks      int `json:"freeBlocks"`
	AllocatedBlocks int `json:"allocatedBlocks"`

	// Cumulative operation counts since New.
	Allocs       int `json:"allocs"`
	FailedAllocs int `json:"failedAllocs"`
	Frees        int `json:"frees"`
	Resizes      int `json:"resizes"`
	Splits       int `json:"splits"`
	Merges       int `json:"merges"`
}

// Blocks returns the descriptor chain in ascending offset order. The
// snapshot is taken under the pool lock; it is stale the moment another
// goroutine mutates the pool. Returns nil on a closed pool.
func (p *Pool) Blocks() []Block {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	out := make([]Block, 0, p.arena.live)
	for idx := p.arena.head; idx != nilBlock; idx = p.arena.blocks[idx].next {
		b := p.arena.blocks[idx]
		out = append(out, Block{Offset: b.off, Size: b.size, Free: b.free})
	}
	return out
}

// Stats returns a summary of the pool's current layout and its cumulative
// operation counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Stats{
		Allocs:       p.counters.allocs,
		FailedAllocs: p.counters.failedAllocs,
		Frees:        p.counters.frees,
		Resizes:      p.counters.resizes,
		Splits:       p.counters.splits,
		Merges:       p.counters.merges,
	}
	if p.closed {
		return s
	}
	s.Capacity = len(p.buf)
	for idx := p.arena.head; idx != nilBlock; idx = p.arena.blocks[idx].next {
		b := p.arena.blocks[idx]
		if b.free {
			s.FreeBytes += b.size
			s.FreeBlocks++
		} else {
			s.AllocatedBytes += b.size
			s.AllocatedBlocks++
		}
	}
	return s
}

// Check validates the structural invariants of the descriptor chain: the
// chain is offset-contiguous, covers exactly [0, capacity) with no gaps or
// overlaps, every block has positive size, and no two adjacent blocks are
// both free. Returns nil when all invariants hold.
func (p *Pool) Check() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	want := 0
	prevFree := false
	for idx := p.arena.head; idx != nilBlock; idx = p.arena.blocks[idx].next {
		b := p.arena.blocks[idx]
		if b.off != want {
			return fmt.Errorf("pool: chain not contiguous: expected offset %d, found %d", want, b.off)
		}
		if b.size <= 0 {
			return fmt.Errorf("pool: block at offset %d has invalid size %d", b.off, b.size)
		}
		if b.free && prevFree {
			return fmt.Errorf("pool: adjacent free blocks at offset %d", b.off)
		}
		prevFree = b.free
		want += b.size
	}
	if want != len(p.buf) {
		return fmt.Errorf("pool: chain covers %d of %d bytes", want, len(p.buf))
	}
	return nil
}
