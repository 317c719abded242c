//go:build unix

package mmbuf

import "testing"

func TestReserveReadWriteUnix(t *testing.T) {
	data, release, err := Reserve(4096)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if len(data) != 4096 {
		t.Fatalf("len mismatch: got %d want 4096", len(data))
	}
	// Mapping must be writable and zero-filled.
	for i, b := range data[:16] {
		if b != 0 {
			t.Fatalf("byte %d not zero: 0x%x", i, b)
		}
	}
	data[0] = 0xde
	data[4095] = 0xad
	if data[0] != 0xde || data[4095] != 0xad {
		t.Fatalf("write did not stick")
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	// Double release is a no-op.
	if err := release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestReserveInvalidSize(t *testing.T) {
	if _, _, err := Reserve(0); err == nil {
		t.Fatalf("expected error for zero size")
	}
	if _, _, err := Reserve(-1); err == nil {
		t.Fatalf("expected error for negative size")
	}
}
