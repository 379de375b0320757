package navigator

import "math"

// searchState is what a finished search hands to the result reporter.
type searchState struct {
	start, end int
	cost       []float64 // best known cost per node, +Inf when never reached
	prev       []int     // predecessor per node, -1 for none
	visited    []int     // finalized/closed nodes in order
}

func newSearchState(n, start, end int) *searchState {
	st := &searchState{
		start: start,
		end:   end,
		cost:  make([]float64, n),
		prev:  make([]int, n),
	}
	for i := range st.cost {
		st.cost[i] = math.Inf(1)
		st.prev[i] = -1
	}
	st.cost[start] = 0
	return st
}

// uniformCost runs Dijkstra from start until end is finalized or no
// reachable node is left.
//
// Only nodes with a finite tentative cost are kept in the heap; an empty
// heap is the point where the cheapest unfinalized node costs +Inf.
func uniformCost(g *Graph, start, end int) *searchState {
	st := newSearchState(g.Len(), start, end)
	finalized := make([]bool, g.Len())

	open := newOpenSet()
	open.Upsert(start, 0)

	for open.Len() > 0 {
		current := open.PopMin().node
		finalized[current] = true
		st.visited = append(st.visited, current)

		if current == end {
			break
		}

		for _, a := range g.adj[current] {
			if finalized[a.to] {
				continue
			}
			candidate := st.cost[current] + a.weight
			if candidate < st.cost[a.to] {
				st.cost[a.to] = candidate
				st.prev[a.to] = current
				open.Upsert(a.to, candidate)
			}
		}
	}

	return st
}
