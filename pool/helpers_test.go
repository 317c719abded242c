package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestPool creates a pool that is closed when the test finishes.
func newTestPool(t *testing.T, capacity int) *Pool {
	t.Helper()
	p := New(capacity)
	t.Cleanup(func() {
		_ = p.Close()
	})
	return p
}

// requireChain asserts the exact descriptor layout and that all structural
// invariants hold.
func requireChain(t *testing.T, p *Pool, want []Block) {
	t.Helper()
	require.NoError(t, p.Check())
	require.Equal(t, want, p.Blocks())
}

// mustAlloc allocates or fails the test.
func mustAlloc(t *testing.T, p *Pool, size int) []byte {
	t.Helper()
	b, err := p.Alloc(size)
	require.NoError(t, err)
	require.Len(t, b, size)
	return b
}
