package list

// heapNode is one node in the default heap-backed store.
type heapNode struct {
	data uint16
	next Ref
}

// heapStore keeps nodes in a slice indexed by Ref, recycling released
// slots through an internal free-slot list threaded through next.
type heapStore struct {
	nodes    []heapNode
	freeSlot Ref
}

func newHeapStore() *heapStore {
	return &heapStore{freeSlot: NilRef}
}

func (s *heapStore) New(data uint16) (Ref, error) {
	if s.freeSlot != NilRef {
		ref := s.freeSlot
		s.freeSlot = s.nodes[ref].next
		s.nodes[ref] = heapNode{data: data, next: NilRef}
		return ref, nil
	}
	s.nodes = append(s.nodes, heapNode{data: data, next: NilRef})
	return Ref(len(s.nodes) - 1), nil
}

func (s *heapStore) Release(ref Ref) {
	s.nodes[ref] = heapNode{next: s.freeSlot}
	s.freeSlot = ref
}

func (s *heapStore) Data(ref Ref) uint16 {
	return s.nodes[ref].data
}

func (s *heapStore) Next(ref Ref) Ref {
	return s.nodes[ref].next
}

func (s *heapStore) SetNext(ref, next Ref) {
	s.nodes[ref].next = next
}
