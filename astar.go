package navigator

// heuristicSearch runs A* from start towards end.
//
// The goal check happens when a node is selected, before it is closed: the
// goal never appears in the visitation trace and is not counted as a step.
// This differs from uniformCost, which finalizes the goal first.
func heuristicSearch(g *Graph, start, end int, h Heuristic) *searchState {
	st := newSearchState(g.Len(), start, end)
	closed := make([]bool, g.Len())
	goal := g.nodes[end]

	open := newOpenSet()
	open.Upsert(start, h(g.nodes[start], goal))

	for open.Len() > 0 {
		current := open.Peek().node
		if current == end {
			break
		}

		open.PopMin()
		closed[current] = true
		st.visited = append(st.visited, current)

		for _, a := range g.adj[current] {
			neighbor := a.to
			if closed[neighbor] {
				continue
			}

			tentativeG := st.cost[current] + a.weight
			if open.Contains(neighbor) && tentativeG >= st.cost[neighbor] {
				continue
			}

			// Found a better path to this neighbor, or the first one
			st.prev[neighbor] = current
			st.cost[neighbor] = tentativeG
			open.Upsert(neighbor, tentativeG+h(g.nodes[neighbor], goal))
		}
	}

	return st
}
