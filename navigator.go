// Package navigator finds shortest routes between locations of a small
// weighted, undirected city graph.
//
// Two interchangeable algorithms are provided: uniform-cost search
// (Dijkstra) and heuristic-guided search (A*). Each call is self-contained
// over an immutable Graph, so independent searches can run concurrently.
//
//	g := navigator.SampleCity()
//	res, err := navigator.ComputeShortestPath(g, "A", "G", navigator.UniformCost)
//	// res.Path == [A H G], res.Distance == 2.2
package navigator

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// Navigator runs searches with a configured heuristic.
// The zero value is not usable; call New.
type Navigator struct {
	heuristic Heuristic
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithHeuristic replaces the default CoordinateDifference heuristic used by A*.
func WithHeuristic(h Heuristic) Option {
	return func(n *Navigator) {
		if h != nil {
			n.heuristic = h
		}
	}
}

// New creates a Navigator.
func New(opts ...Option) *Navigator {
	n := &Navigator{heuristic: CoordinateDifference}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNavigator = New()

// ComputeShortestPath searches g from startID to endID with the default
// heuristic. It fails with a NodeNotFoundError when either id is absent; an
// unreachable end is not an error.
func ComputeShortestPath(g *Graph, startID, endID string, algo Algorithm) (SearchResult, error) {
	return defaultNavigator.ShortestPath(g, startID, endID, algo)
}

// ShortestPath searches g from startID to endID using algo.
func (n *Navigator) ShortestPath(g *Graph, startID, endID string, algo Algorithm) (SearchResult, error) {
	algo, err := ParseAlgorithm(string(algo))
	if err != nil {
		return SearchResult{}, err
	}
	start, err := g.lookup(startID)
	if err != nil {
		return SearchResult{}, err
	}
	end, err := g.lookup(endID)
	if err != nil {
		return SearchResult{}, err
	}

	if algo == HeuristicGuided {
		return report(g, heuristicSearch(g, start, end, n.heuristic), algo), nil
	}
	return report(g, uniformCost(g, start, end), algo), nil
}

// Comparison holds both algorithms' results for the same query.
type Comparison struct {
	UniformCost     SearchResult `json:"uniformCost"`
	HeuristicGuided SearchResult `json:"heuristicGuided"`
}

// SameDistance reports whether both algorithms agree on the route cost.
func (c Comparison) SameDistance() bool {
	a, b := c.UniformCost.Distance, c.HeuristicGuided.Distance
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	return math.Abs(a-b) <= 1e-9
}

// Compare runs both algorithms concurrently over g. Cancelling ctx abandons
// the comparison; a search already running is not interrupted.
func (n *Navigator) Compare(ctx context.Context, g *Graph, startID, endID string) (Comparison, error) {
	var cmp Comparison
	eg, ctx := errgroup.WithContext(ctx)

	run := func(algo Algorithm, dst *SearchResult) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := n.ShortestPath(g, startID, endID, algo)
			if err != nil {
				return err
			}
			*dst = res
			return nil
		}
	}

	eg.Go(run(UniformCost, &cmp.UniformCost))
	eg.Go(run(HeuristicGuided, &cmp.HeuristicGuided))

	if err := eg.Wait(); err != nil {
		return Comparison{}, err
	}
	return cmp, nil
}
