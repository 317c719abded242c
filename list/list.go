// Package list implements a thread-safe singly linked list of uint16
// values with coarse-grained locking: one mutex serializes every
// operation, readers included, trading concurrency for a consistent view.
//
// Node storage is pluggable through the Store interface. The default store
// keeps nodes on the Go heap; NewPoolStore draws node storage from a
// pool.Pool instead, without the list ever depending on pool internals.
package list

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Ref identifies a node within a list. Refs are produced by Search, are
// only meaningful for the list that returned them, and become invalid once
// the node is deleted or the list is cleaned up.
type Ref uint32

// NilRef marks the absence of a node.
const NilRef Ref = 0xFFFFFFFF

var (
	// ErrNilNode indicates a NilRef where a node reference was required.
	ErrNilNode = errors.New("list: node reference is nil")

	// ErrNotFound indicates that no node carries the requested value.
	ErrNotFound = errors.New("list: value not found")
)

// Store provides node storage for a List. Implementations do not need to
// be safe for concurrent use; the list serializes all access.
type Store interface {
	// New creates a node holding data with no successor.
	New(data uint16) (Ref, error)

	// Release returns the node's storage. The ref is invalid afterwards.
	Release(ref Ref)

	// Data returns the value held by the node.
	Data(ref Ref) uint16

	// Next returns the node's successor, NilRef at the tail.
	Next(ref Ref) Ref

	// SetNext links the node to a successor.
	SetNext(ref, next Ref)
}

// List is a singly linked list of uint16 values.
type List struct {
	mu    sync.Mutex
	store Store
	head  Ref
}

// New returns an empty list. A nil store selects heap-backed node storage;
// pass a *PoolStore to draw node storage from a pool instead.
func New(store Store) *List {
	if store == nil {
		store = newHeapStore()
	}
	return &List{store: store, head: NilRef}
}

// Insert appends a node holding data at the end of the list.
func (l *List) Insert(data uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	node, err := l.store.New(data)
	if err != nil {
		return err
	}
	if l.head == NilRef {
		l.head = node
		return nil
	}
	cur := l.head
	for l.store.Next(cur) != NilRef {
		cur = l.store.Next(cur)
	}
	l.store.SetNext(cur, node)
	return nil
}

// InsertAfter inserts a node holding data directly after prev. The ref
// must have been produced by Search on this list.
func (l *List) InsertAfter(prev Ref, data uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev == NilRef {
		return ErrNilNode
	}
	node, err := l.store.New(data)
	if err != nil {
		return err
	}
	l.store.SetNext(node, l.store.Next(prev))
	l.store.SetNext(prev, node)
	return nil
}

// InsertBefore inserts a node holding data directly before next, updating
// the list head when next is the first node. Returns ErrNotFound when next
// is not part of this list.
func (l *List) InsertBefore(next Ref, data uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if next == NilRef {
		return ErrNilNode
	}
	if l.head == next {
		node, err := l.store.New(data)
		if err != nil {
			return err
		}
		l.store.SetNext(node, l.head)
		l.head = node
		return nil
	}
	cur := l.head
	for cur != NilRef && l.store.Next(cur) != next {
		cur = l.store.Next(cur)
	}
	if cur == NilRef {
		return ErrNotFound
	}
	node, err := l.store.New(data)
	if err != nil {
		return err
	}
	l.store.SetNext(node, next)
	l.store.SetNext(cur, node)
	return nil
}

// Delete removes the first node holding data, or returns ErrNotFound.
func (l *List) Delete(data uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := NilRef
	cur := l.head
	for cur != NilRef && l.store.Data(cur) != data {
		prev = cur
		cur = l.store.Next(cur)
	}
	if cur == NilRef {
		return ErrNotFound
	}
	if prev == NilRef {
		l.head = l.store.Next(cur)
	} else {
		l.store.SetNext(prev, l.store.Next(cur))
	}
	l.store.Release(cur)
	return nil
}

// Search returns a ref to the first node holding data. The ref can become
// stale if another goroutine modifies the list afterwards; callers that
// need stability must coordinate externally.
func (l *List) Search(data uint16) (Ref, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for cur := l.head; cur != NilRef; cur = l.store.Next(cur) {
		if l.store.Data(cur) == data {
			return cur, true
		}
	}
	return NilRef, false
}

// Count returns the number of nodes in the list.
func (l *List) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for cur := l.head; cur != NilRef; cur = l.store.Next(cur) {
		n++
	}
	return n
}

// Display writes the whole list to w as "[a, b, c]".
func (l *List) Display(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.render(w, l.head, NilRef)
}

// DisplayRange writes the nodes from start through end inclusive to w in
// the same format as Display. A NilRef start begins at the head; a NilRef
// end runs to the tail.
func (l *List) DisplayRange(w io.Writer, start, end Ref) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if start == NilRef {
		start = l.head
	}
	return l.render(w, start, end)
}

// Cleanup releases every node and leaves the list empty.
func (l *List) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for cur := l.head; cur != NilRef; {
		next := l.store.Next(cur)
		l.store.Release(cur)
		cur = next
	}
	l.head = NilRef
}

// render writes "[a, b, c]" for the nodes from start through end
// inclusive. Callers must hold l.mu.
func (l *List) render(w io.Writer, start, end Ref) error {
	var sb strings.Builder
	sb.WriteByte('[')
	for cur := start; cur != NilRef; cur = l.store.Next(cur) {
		if cur != start {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(l.store.Data(cur))))
		if cur == end {
			break
		}
	}
	sb.WriteByte(']')
	_, err := io.WriteString(w, sb.String())
	return err
}
