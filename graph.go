package navigator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// Category classifies a location in the city graph.
type Category string

const (
	Landmark   Category = "landmark"
	Transport  Category = "transport"
	Education  Category = "education"
	Commercial Category = "commercial"
	Medical    Category = "medical"
	Recreation Category = "recreation"
)

// Categories lists every valid category in display order.
var Categories = []Category{Landmark, Transport, Education, Commercial, Medical, Recreation}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Node is a location in the graph
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Category Category `json:"type"`
}

// Edge is a bidirectional connection between two nodes. Only Weight is used
// as traversal cost; Distance (km) and Time (minutes) are carried for display.
type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Weight   float64 `json:"weight"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

// Neighbor is an adjacent node as seen from a given node.
type Neighbor struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// arc is the index-based adjacency entry used by the search loops
type arc struct {
	to     int
	weight float64
}

// Graph is an immutable set of nodes and weighted undirected edges.
//
// Node declaration order is preserved: it is the order Nodes returns and the
// tie-break order used by both search algorithms. A Graph is read-only after
// NewGraph returns and may be searched from multiple goroutines.
type Graph struct {
	nodes []Node
	edges []Edge
	index map[string]int
	adj   [][]arc
}

// NewGraph validates nodes and edges and builds the adjacency lists.
// Every edge is registered on both endpoints.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make([]Node, len(nodes)),
		edges: make([]Edge, len(edges)),
		index: make(map[string]int, len(nodes)),
		adj:   make([][]arc, len(nodes)),
	}
	copy(g.nodes, nodes)
	copy(g.edges, edges)

	for i, n := range g.nodes {
		if _, exists := g.index[n.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		if !n.Category.Valid() {
			return nil, fmt.Errorf("%w: node %q has category %q", ErrInvalidCategory, n.ID, n.Category)
		}
		g.index[n.ID] = i
	}

	for _, e := range g.edges {
		from, ok := g.index[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %s-%s: %w", e.From, e.To, nodeNotFound(e.From))
		}
		to, ok := g.index[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %s-%s: %w", e.From, e.To, nodeNotFound(e.To))
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("edge %s-%s: %w (got %v)", e.From, e.To, ErrInvalidWeight, e.Weight)
		}

		g.adj[from] = append(g.adj[from], arc{to: to, weight: e.Weight})
		if from != to {
			g.adj[to] = append(g.adj[to], arc{to: from, weight: e.Weight})
		}
	}

	return g, nil
}

// MustGraph is NewGraph for static datasets; it panics on invalid input.
func MustGraph(nodes []Node, edges []Edge) *Graph {
	g, err := NewGraph(nodes, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns a copy of the nodes in declaration order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the edges in declaration order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// HasNode reports whether id is part of the node set.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// NodeByID looks up a node.
func (g *Graph) NodeByID(id string) (Node, error) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, nodeNotFound(id)
	}
	return g.nodes[i], nil
}

// Neighbors returns every node adjacent to id with the connecting edge's
// weight, regardless of which endpoint the edge declared as From.
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, nodeNotFound(id)
	}
	out := make([]Neighbor, 0, len(g.adj[i]))
	for _, a := range g.adj[i] {
		out = append(out, Neighbor{ID: g.nodes[a.to].ID, Weight: a.weight})
	}
	return out, nil
}

// Fingerprint returns a stable hash of the graph content. Two graphs with the
// same nodes and edges in the same order share a fingerprint.
func (g *Graph) Fingerprint() string {
	h := sha256.New()
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, n := range g.nodes {
		fmt.Fprintf(h, "n|%s|%s|%s|%s|%s\n", n.ID, n.Name, f(n.Lat), f(n.Lng), n.Category)
	}
	for _, e := range g.edges {
		fmt.Fprintf(h, "e|%s|%s|%s|%s|%s\n", e.From, e.To, f(e.Weight), f(e.Distance), f(e.Time))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// lookup resolves an id to its declaration index.
func (g *Graph) lookup(id string) (int, error) {
	i, ok := g.index[id]
	if !ok {
		return -1, nodeNotFound(id)
	}
	return i, nil
}

// RouteSummary totals the display attributes along a path. For every leg the
// cheapest connecting edge is used, matching what the search relaxed.
type RouteSummary struct {
	Legs          int     `json:"legs"`
	DistanceKm    float64 `json:"distanceKm"`
	TravelMinutes float64 `json:"travelMinutes"`
}

// Summarize walks path and adds up edge distance and time.
func (g *Graph) Summarize(path []string) (RouteSummary, error) {
	var s RouteSummary
	for i := 0; i+1 < len(path); i++ {
		e, err := g.cheapestEdge(path[i], path[i+1])
		if err != nil {
			return RouteSummary{}, err
		}
		s.Legs++
		s.DistanceKm += e.Distance
		s.TravelMinutes += e.Time
	}
	return s, nil
}

func (g *Graph) cheapestEdge(a, b string) (Edge, error) {
	if !g.HasNode(a) {
		return Edge{}, nodeNotFound(a)
	}
	if !g.HasNode(b) {
		return Edge{}, nodeNotFound(b)
	}
	var best Edge
	found := false
	for _, e := range g.edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			if !found || e.Weight < best.Weight {
				best = e
				found = true
			}
		}
	}
	if !found {
		return Edge{}, fmt.Errorf("no edge between %q and %q", a, b)
	}
	return best, nil
}
