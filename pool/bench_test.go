package pool

import "testing"

func BenchmarkAllocFree(b *testing.B) {
	p := New(1 << 20)
	defer p.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for loopIdx := 0; loopIdx < b.N; loopIdx++ {
		buf, err := p.Alloc(256)
		if err != nil {
			b.Fatal(err)
		}
		if err := p.Free(buf); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAllocFreeFragmented measures first-fit search cost with a
// standing population of allocations in front of the free space.
func BenchmarkAllocFreeFragmented(b *testing.B) {
	p := New(1 << 20)
	defer p.Close()

	// Standing allocations with freed holes too small for the benchmark
	// size, forcing the search to walk past them.
	var standing [][]byte
	for loopIdx := 0; loopIdx < 256; loopIdx++ {
		keep, err := p.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		standing = append(standing, keep)
		hole, err := p.Alloc(16)
		if err != nil {
			b.Fatal(err)
		}
		if err := p.Free(hole); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for loopIdx := 0; loopIdx < b.N; loopIdx++ {
		buf, err := p.Alloc(512)
		if err != nil {
			b.Fatal(err)
		}
		if err := p.Free(buf); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	for _, keep := range standing {
		_ = p.Free(keep)
	}
}

// BenchmarkResizeShrinkGrow alternates shrinking in place with growing
// back into the adjacent free block.
func BenchmarkResizeShrinkGrow(b *testing.B) {
	p := New(1 << 20)
	defer p.Close()

	buf, err := p.Alloc(1024)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		size := 512
		if i%2 == 0 {
			size = 1024
		}
		buf, err = p.Resize(buf, size)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheck(b *testing.B) {
	p := New(1 << 20)
	defer p.Close()

	for loopIdx := 0; loopIdx < 512; loopIdx++ {
		if _, err := p.Alloc(128); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for loopIdx := 0; loopIdx < b.N; loopIdx++ {
		if err := p.Check(); err != nil {
			b.Fatal(err)
		}
	}
}
