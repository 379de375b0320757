package navigator

import "container/heap"

// entry is a node waiting in a search frontier
type entry struct {
	node     int     // declaration index in the graph
	priority float64 // cost for uniform-cost, f = g + h for A*
	index    int     // position in the heap
}

// frontier implements heap.Interface. Entries with equal priority are ordered
// by node declaration index, so selection is deterministic.
type frontier []*entry

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].node < pq[j].node
}

func (pq frontier) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *frontier) Push(x any) {
	n := len(*pq)
	e := x.(*entry)
	e.index = n
	*pq = append(*pq, e)
}

func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[0 : n-1]
	return e
}

// openSet pairs the heap with a node -> entry map for membership and
// decrease-key.
type openSet struct {
	pq      frontier
	members map[int]*entry
}

func newOpenSet() *openSet {
	s := &openSet{members: make(map[int]*entry)}
	heap.Init(&s.pq)
	return s
}

func (s *openSet) Len() int { return s.pq.Len() }

func (s *openSet) Contains(node int) bool {
	_, ok := s.members[node]
	return ok
}

// Upsert inserts node or moves it to its new priority.
func (s *openSet) Upsert(node int, priority float64) {
	if e, ok := s.members[node]; ok {
		e.priority = priority
		heap.Fix(&s.pq, e.index)
		return
	}
	e := &entry{node: node, priority: priority}
	heap.Push(&s.pq, e)
	s.members[node] = e
}

// Peek returns the minimum entry without removing it.
func (s *openSet) Peek() *entry {
	return s.pq[0]
}

// PopMin removes and returns the minimum entry.
func (s *openSet) PopMin() *entry {
	e := heap.Pop(&s.pq).(*entry)
	delete(s.members, e.node)
	return e
}
