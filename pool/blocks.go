package pool

// nilBlock marks the end of a descriptor chain and the empty free-slot list.
const nilBlock = -1

// blockDesc is one descriptor in the chain partitioning the pool buffer.
// Descriptors are strictly offset-ordered: for every descriptor except the
// last, off+size equals the next descriptor's off, and the last descriptor
// ends exactly at the pool capacity.
type blockDesc struct {
	off  int
	size int
	free bool
	next int // arena index of the following descriptor, nilBlock at the tail
}

// blockArena stores descriptors in a slice and links them by index.
// Removing a descriptor recycles its slot through an internal free-slot
// list (threaded through next), so merges never release metadata storage;
// the backing slice grows on demand and never shrinks.
type blockArena struct {
	blocks   []blockDesc
	head     int // first descriptor in offset order; always offset 0
	freeSlot int // head of the recycled-slot list
	live     int // descriptors currently linked into the chain
}

// newBlockArena returns an arena holding a single free descriptor spanning
// [0, capacity).
func newBlockArena(capacity int) *blockArena {
	return &blockArena{
		blocks:   []blockDesc{{off: 0, size: capacity, free: true, next: nilBlock}},
		head:     0,
		freeSlot: nilBlock,
		live:     1,
	}
}

// take stores b in a recycled slot when one exists, appending otherwise,
// and returns its index. Callers are responsible for linking the slot into
// the chain.
func (a *blockArena) take(b blockDesc) int {
	if a.freeSlot != nilBlock {
		idx := a.freeSlot
		a.freeSlot = a.blocks[idx].next
		a.blocks[idx] = b
		a.live++
		return idx
	}
	a.blocks = append(a.blocks, b)
	a.live++
	return len(a.blocks) - 1
}

// insertAfter links a new descriptor for b directly after idx and returns
// the new descriptor's index. Appending may grow the backing slice, so any
// *blockDesc held across this call is invalid afterwards.
func (a *blockArena) insertAfter(idx int, b blockDesc) int {
	b.next = a.blocks[idx].next
	n := a.take(b)
	a.blocks[idx].next = n
	return n
}

// removeNext unlinks the descriptor following idx and recycles its slot.
func (a *blockArena) removeNext(idx int) {
	victim := a.blocks[idx].next
	a.blocks[idx].next = a.blocks[victim].next
	a.blocks[victim] = blockDesc{next: a.freeSlot}
	a.freeSlot = victim
	a.live--
}
