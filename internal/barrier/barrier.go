// Package barrier provides a reusable start-line for groups of goroutines.
package barrier

import "sync"

// Barrier blocks callers of Wait until n goroutines have arrived, then
// releases them all at once. The barrier is reusable: once a generation is
// released it resets for the next n arrivals.
type Barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	n     int
	count int
	gen   uint64
}

// New returns a barrier for groups of n goroutines. Panics when n < 1.
func New(n int) *Barrier {
	if n < 1 {
		panic("barrier: group size must be at least 1")
	}
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until n goroutines have called it, then releases them all.
// The last arriver reports true, the pthread_barrier serial-thread
// convention; all others report false.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	gen := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen++
		b.cond.Broadcast()
		return true
	}
	for gen == b.gen {
		b.cond.Wait()
	}
	return false
}
