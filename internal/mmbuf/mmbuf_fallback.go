//go:build !unix

// Package mmbuf reserves fixed-size anonymous buffers outside the Go heap
// where the platform allows it.
package mmbuf

import "fmt"

// Reserve returns a heap-backed buffer when anonymous mappings are not
// available. The release function is a no-op.
func Reserve(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("mmbuf: invalid reservation size %d", n)
	}
	return make([]byte, n), func() error { return nil }, nil
}
