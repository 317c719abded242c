package barrier

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitReleasesAllAtOnce(t *testing.T) {
	const n = 8
	b := New(n)

	var arrived, released atomic.Int32
	var wg sync.WaitGroup
	for loopIdx := 0; loopIdx < n-1; loopIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			arrived.Add(1)
			b.Wait()
			released.Add(1)
		}()
	}

	// Give the early arrivers time to park; none may pass the barrier yet.
	for arrived.Load() != n-1 {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, int32(0), released.Load(), "barrier released before all arrived")

	b.Wait()
	wg.Wait()
	require.Equal(t, int32(n-1), released.Load())
}

func TestWaitExactlyOneSerialArriver(t *testing.T) {
	const n = 5
	b := New(n)

	var serial atomic.Int32
	var wg sync.WaitGroup
	for loopIdx := 0; loopIdx < n; loopIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Wait() {
				serial.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), serial.Load(), "exactly one waiter should be serial")
}

func TestBarrierIsReusable(t *testing.T) {
	const n = 4
	const rounds = 10
	b := New(n)

	var wg sync.WaitGroup
	var total atomic.Int32
	for loopIdx := 0; loopIdx < n; loopIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for loopIdx := 0; loopIdx < rounds; loopIdx++ {
				b.Wait()
				total.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(n*rounds), total.Load())
}

func TestNewPanicsOnInvalidSize(t *testing.T) {
	require.Panics(t, func() { New(0) })
}
