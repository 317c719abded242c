package list

import (
	"fmt"

	"github.com/Jackefu123/poolkit/internal/buf"
	"github.com/Jackefu123/poolkit/pool"
)

// Node layout inside pool memory: the value at [0:2] little-endian and the
// successor ref at [4:8]. Bytes [2:4] are padding.
const (
	nodeSize    = 8
	nodeDataOff = 0
	nodeNextOff = 4
)

// PoolStore draws node storage from a pool.Pool. Each node occupies an
// 8-byte pool allocation; the store only calls Alloc and Free and never
// inspects the pool's bookkeeping.
//
// The store itself is not safe for concurrent use; the owning List
// serializes all access.
type PoolStore struct {
	p       *pool.Pool
	nodes   map[Ref][]byte
	nextRef Ref
}

// NewPoolStore returns a store that allocates nodes inside p. The caller
// keeps ownership of the pool; closing it invalidates the store.
func NewPoolStore(p *pool.Pool) *PoolStore {
	return &PoolStore{p: p, nodes: make(map[Ref][]byte)}
}

// New allocates a node in pool memory. Pool exhaustion surfaces as a
// wrapped pool.ErrNoSpace.
func (s *PoolStore) New(data uint16) (Ref, error) {
	b, err := s.p.Alloc(nodeSize)
	if err != nil {
		return NilRef, fmt.Errorf("list: allocating node: %w", err)
	}
	buf.PutU16LE(b[nodeDataOff:], data)
	buf.PutU32LE(b[nodeNextOff:], uint32(NilRef))

	ref := s.nextRef
	s.nextRef++
	s.nodes[ref] = b
	return ref, nil
}

// Release frees the node's pool allocation.
func (s *PoolStore) Release(ref Ref) {
	b, ok := s.nodes[ref]
	if !ok {
		return
	}
	delete(s.nodes, ref)
	_ = s.p.Free(b)
}

func (s *PoolStore) Data(ref Ref) uint16 {
	return buf.U16LE(s.nodes[ref][nodeDataOff:])
}

func (s *PoolStore) Next(ref Ref) Ref {
	return Ref(buf.U32LE(s.nodes[ref][nodeNextOff:]))
}

func (s *PoolStore) SetNext(ref, next Ref) {
	buf.PutU32LE(s.nodes[ref][nodeNextOff:], uint32(next))
}
