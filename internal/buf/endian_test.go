package buf

import "testing"

func TestU16LERoundTrip(t *testing.T) {
	b := make([]byte, 2)
	PutU16LE(b, 0xBEEF)
	if got := U16LE(b); got != 0xBEEF {
		t.Fatalf("got 0x%04X want 0xBEEF", got)
	}
	if b[0] != 0xEF || b[1] != 0xBE {
		t.Fatalf("not little-endian: % X", b)
	}
}

func TestU32LERoundTrip(t *testing.T) {
	b := make([]byte, 4)
	PutU32LE(b, 0xDEADBEEF)
	if got := U32LE(b); got != 0xDEADBEEF {
		t.Fatalf("got 0x%08X want 0xDEADBEEF", got)
	}
}

func TestShortBuffers(t *testing.T) {
	if got := U16LE([]byte{0x01}); got != 0 {
		t.Fatalf("short U16LE: got %d want 0", got)
	}
	if got := U32LE([]byte{0x01, 0x02}); got != 0 {
		t.Fatalf("short U32LE: got %d want 0", got)
	}
	short := []byte{0xAA}
	PutU16LE(short, 0xFFFF)
	PutU32LE(short, 0xFFFFFFFF)
	if short[0] != 0xAA {
		t.Fatalf("short Put touched buffer: % X", short)
	}
}
