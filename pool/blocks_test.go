package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainOf walks the arena and returns the linked descriptors in order.
func chainOf(a *blockArena) []blockDesc {
	var out []blockDesc
	for idx := a.head; idx != nilBlock; idx = a.blocks[idx].next {
		b := a.blocks[idx]
		b.next = 0 // normalize for comparison
		out = append(out, b)
	}
	return out
}

func TestArenaStartsWithSingleFreeDescriptor(t *testing.T) {
	a := newBlockArena(128)
	require.Equal(t, 1, a.live)
	require.Equal(t, []blockDesc{{off: 0, size: 128, free: true}}, chainOf(a))
}

func TestArenaInsertAfterPreservesOrder(t *testing.T) {
	a := newBlockArena(100)
	a.blocks[a.head].size = 40
	a.blocks[a.head].free = false
	a.insertAfter(a.head, blockDesc{off: 40, size: 60, free: true})

	require.Equal(t, 2, a.live)
	require.Equal(t, []blockDesc{
		{off: 0, size: 40, free: false},
		{off: 40, size: 60, free: true},
	}, chainOf(a))
}

func TestArenaRemoveNextRecyclesSlot(t *testing.T) {
	a := newBlockArena(100)
	a.blocks[a.head].size = 40
	mid := a.insertAfter(a.head, blockDesc{off: 40, size: 30, free: true})
	a.insertAfter(mid, blockDesc{off: 70, size: 30, free: true})
	require.Equal(t, 3, a.live)
	grown := len(a.blocks)

	a.removeNext(a.head)
	require.Equal(t, 2, a.live)

	// The recycled slot is reused before the backing slice grows again.
	a.insertAfter(a.head, blockDesc{off: 40, size: 30, free: true})
	assert.Equal(t, grown, len(a.blocks), "slot was not recycled")
	require.Equal(t, 3, a.live)
}

func TestArenaSlotRecyclingIsLIFO(t *testing.T) {
	a := newBlockArena(100)
	first := a.insertAfter(a.head, blockDesc{off: 60, size: 40})
	second := a.insertAfter(first, blockDesc{off: 80, size: 20})

	a.removeNext(a.head)  // recycles first
	a.removeNext(a.head)  // recycles second
	require.Equal(t, 1, a.live)

	got := a.take(blockDesc{off: 10, size: 1})
	assert.Equal(t, second, got)
	got = a.take(blockDesc{off: 20, size: 1})
	assert.Equal(t, first, got)
}
