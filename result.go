package navigator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Algorithm selects the search variant.
type Algorithm string

const (
	// UniformCost is Dijkstra's algorithm.
	UniformCost Algorithm = "dijkstra"
	// HeuristicGuided is A*.
	HeuristicGuided Algorithm = "astar"
)

// Algorithms lists the supported variants.
var Algorithms = []Algorithm{UniformCost, HeuristicGuided}

// ParseAlgorithm accepts the canonical tags and common aliases.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dijkstra", "uniform-cost", "ucs":
		return UniformCost, nil
	case "astar", "a*", "a-star", "heuristic-guided":
		return HeuristicGuided, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// SearchResult is the outcome of one search.
//
// Distance is +Inf when the end node cannot be reached; Path is then empty.
// A same-node query yields a single-node path with distance 0.
type SearchResult struct {
	Path         []string
	Distance     float64
	Steps        int
	VisitedOrder []string
	Algorithm    Algorithm
}

// Reachable reports whether a route was found.
func (r SearchResult) Reachable() bool {
	return !math.IsInf(r.Distance, 1)
}

type searchResultJSON struct {
	Path         []string  `json:"path"`
	Distance     *float64  `json:"distance"`
	Reachable    bool      `json:"reachable"`
	Steps        int       `json:"steps"`
	VisitedOrder []string  `json:"visitedOrder"`
	Algorithm    Algorithm `json:"algorithm"`
}

// MarshalJSON writes an unreachable distance as null, since JSON has no infinity.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	out := searchResultJSON{
		Path:         r.Path,
		Reachable:    r.Reachable(),
		Steps:        r.Steps,
		VisitedOrder: r.VisitedOrder,
		Algorithm:    r.Algorithm,
	}
	if out.Path == nil {
		out.Path = []string{}
	}
	if out.VisitedOrder == nil {
		out.VisitedOrder = []string{}
	}
	if out.Reachable {
		d := r.Distance
		out.Distance = &d
	}
	return json.Marshal(out)
}

func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var in searchResultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Path = in.Path
	r.Steps = in.Steps
	r.VisitedOrder = in.VisitedOrder
	r.Algorithm = in.Algorithm
	if in.Distance == nil {
		r.Distance = math.Inf(1)
	} else {
		r.Distance = *in.Distance
	}
	return nil
}

// report turns the search bookkeeping into the result record.
func report(g *Graph, st *searchState, algo Algorithm) SearchResult {
	res := SearchResult{
		Path:         reconstructPath(g, st),
		Distance:     st.cost[st.end],
		Steps:        len(st.visited),
		VisitedOrder: make([]string, 0, len(st.visited)),
		Algorithm:    algo,
	}
	for _, i := range st.visited {
		res.VisitedOrder = append(res.VisitedOrder, g.nodes[i].ID)
	}
	return res
}

// reconstructPath follows predecessor links back from the end node.
// A lone end node counts as a path only when it is also the start.
func reconstructPath(g *Graph, st *searchState) []string {
	var rev []int
	for node := st.end; node != -1; node = st.prev[node] {
		rev = append(rev, node)
	}

	if len(rev) <= 1 && st.start != st.end {
		return []string{}
	}

	path := make([]string, len(rev))
	for i, node := range rev {
		path[len(rev)-1-i] = g.nodes[node].ID
	}
	return path
}

// AlgorithmInfo describes an algorithm for display next to a result.
type AlgorithmInfo struct {
	Algorithm   Algorithm `json:"algorithm"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Complexity  string    `json:"complexity"`
	Pros        []string  `json:"pros"`
	Cons        []string  `json:"cons"`
}

// Describe returns the display metadata of algo.
func Describe(algo Algorithm) (AlgorithmInfo, error) {
	switch algo {
	case UniformCost:
		return AlgorithmInfo{
			Algorithm:   UniformCost,
			Name:        "Dijkstra's Algorithm",
			Description: "Guarantees shortest path, explores all directions equally",
			Complexity:  "O((V + E) log V)",
			Pros:        []string{"Always finds optimal solution", "No heuristic required"},
			Cons:        []string{"Can be slower than A*", "Explores unnecessary nodes"},
		}, nil
	case HeuristicGuided:
		return AlgorithmInfo{
			Algorithm:   HeuristicGuided,
			Name:        "A* Algorithm",
			Description: "Uses heuristic to guide search toward goal",
			Complexity:  "O(b^d) where b is branching factor",
			Pros:        []string{"Usually expands fewer nodes than Dijkstra", "Heuristic guides search"},
			Cons:        []string{"Requires good heuristic", "Optimal only with an admissible heuristic"},
		}, nil
	}
	return AlgorithmInfo{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
}
