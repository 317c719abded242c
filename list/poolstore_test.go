package list

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jackefu123/poolkit/pool"
)

func TestPoolStoreBackedList(t *testing.T) {
	p := pool.New(1024)
	defer p.Close()

	l := New(NewPoolStore(p))
	for _, v := range []uint16{100, 200, 300} {
		require.NoError(t, l.Insert(v))
	}

	var sb strings.Builder
	require.NoError(t, l.Display(&sb))
	assert.Equal(t, "[100, 200, 300]", sb.String())

	// Three nodes live inside the pool.
	stats := p.Stats()
	assert.Equal(t, 3, stats.AllocatedBlocks)
	assert.Equal(t, 3*nodeSize, stats.AllocatedBytes)

	require.NoError(t, l.Delete(200))
	assert.Equal(t, 2, p.Stats().AllocatedBlocks)

	l.Cleanup()
	assert.Equal(t, 0, p.Stats().AllocatedBlocks)
	require.NoError(t, p.Check())
}

func TestPoolStoreMutationsThroughPoolMemory(t *testing.T) {
	p := pool.New(1024)
	defer p.Close()

	l := New(NewPoolStore(p))
	require.NoError(t, l.Insert(1))
	require.NoError(t, l.Insert(3))

	ref, ok := l.Search(1)
	require.True(t, ok)
	require.NoError(t, l.InsertAfter(ref, 2))

	var sb strings.Builder
	require.NoError(t, l.Display(&sb))
	assert.Equal(t, "[1, 2, 3]", sb.String())
	assert.Equal(t, 3, l.Count())
}

func TestPoolStoreExhaustion(t *testing.T) {
	// Room for exactly four nodes.
	p := pool.New(4 * nodeSize)
	defer p.Close()

	l := New(NewPoolStore(p))
	for v := 0; v < 4; v++ {
		require.NoError(t, l.Insert(uint16(v)))
	}

	err := l.Insert(99)
	require.ErrorIs(t, err, pool.ErrNoSpace)
	assert.Equal(t, 4, l.Count(), "failed insert must not change the list")

	// Deleting makes room again.
	require.NoError(t, l.Delete(0))
	require.NoError(t, l.Insert(99))
	assert.Equal(t, 4, l.Count())
}

func TestPoolStoreReleaseUnknownRefIsNoOp(t *testing.T) {
	p := pool.New(256)
	defer p.Close()

	s := NewPoolStore(p)
	s.Release(Ref(12345))
	require.NoError(t, p.Check())
}
