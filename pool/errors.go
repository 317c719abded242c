package pool

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("pool: no free block large enough")

	// ErrBadPointer indicates a slice that does not correspond to a
	// currently allocated block of this pool.
	ErrBadPointer = errors.New("pool: pointer does not belong to an allocated block")

	// ErrDoubleFree indicates an attempt to free a block that is already free.
	ErrDoubleFree = errors.New("pool: block is already free")

	// ErrSize indicates a negative size argument.
	ErrSize = errors.New("pool: size must not be negative")

	// ErrClosed indicates an operation on a closed pool.
	ErrClosed = errors.New("pool: pool is closed")
)
