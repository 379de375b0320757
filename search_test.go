package navigator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

// squareGraph has two equal-cost routes S-X-T and S-Y-T. Y is declared
// before X, so the tie-break must prefer Y.
func squareGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(
		[]Node{
			{ID: "S", Name: "S", Category: Landmark},
			{ID: "Y", Name: "Y", Category: Landmark},
			{ID: "X", Name: "X", Category: Landmark},
			{ID: "T", Name: "T", Category: Landmark},
		},
		[]Edge{
			{From: "S", To: "X", Weight: 1},
			{From: "S", To: "Y", Weight: 1},
			{From: "X", To: "T", Weight: 1},
			{From: "Y", To: "T", Weight: 1},
		},
	)
	require.NoError(t, err)
	return g
}

// sampleWithIsland adds a node with no edges to the sample city.
func sampleWithIsland(t *testing.T) *Graph {
	t.Helper()
	nodes := append(SampleNodes(), Node{ID: "I", Name: "Island", Lat: 40.70, Lng: -74.02, Category: Recreation})
	g, err := NewGraph(nodes, SampleEdges())
	require.NoError(t, err)
	return g
}

func TestUniformCost_AToG(t *testing.T) {
	res, err := ComputeShortestPath(SampleCity(), "A", "G", UniformCost)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "H", "G"}, res.Path)
	assert.InDelta(t, 2.2, res.Distance, tolerance)
	assert.Equal(t, []string{"A", "H", "D", "B", "E", "G"}, res.VisitedOrder)
	assert.Equal(t, 6, res.Steps)
	assert.Equal(t, UniformCost, res.Algorithm)
	assert.True(t, res.Reachable())
}

func TestHeuristicGuided_AToG(t *testing.T) {
	res, err := ComputeShortestPath(SampleCity(), "A", "G", HeuristicGuided)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "H", "G"}, res.Path)
	assert.InDelta(t, 2.2, res.Distance, tolerance)
	// The goal is detected on selection, so it never enters the trace.
	assert.Equal(t, []string{"A", "H", "D", "B", "E"}, res.VisitedOrder)
	assert.Equal(t, 5, res.Steps)
	assert.Equal(t, HeuristicGuided, res.Algorithm)
}

func TestAlgorithmsAgreeOnAllPairs(t *testing.T) {
	g := SampleCity()
	for _, from := range g.Nodes() {
		for _, to := range g.Nodes() {
			ucs, err := ComputeShortestPath(g, from.ID, to.ID, UniformCost)
			require.NoError(t, err)
			astar, err := ComputeShortestPath(g, from.ID, to.ID, HeuristicGuided)
			require.NoError(t, err)

			assert.InDelta(t, ucs.Distance, astar.Distance, tolerance, "%s -> %s", from.ID, to.ID)
			assert.LessOrEqual(t, astar.Steps, ucs.Steps, "%s -> %s", from.ID, to.ID)
			if from.ID != to.ID {
				require.NotEmpty(t, ucs.Path)
				assert.Equal(t, from.ID, ucs.Path[0])
				assert.Equal(t, to.ID, ucs.Path[len(ucs.Path)-1])
			}
		}
	}
}

func TestPathCostMatchesDistance(t *testing.T) {
	g := SampleCity()
	for _, algo := range Algorithms {
		res, err := ComputeShortestPath(g, "C", "F", algo)
		require.NoError(t, err)

		sum := 0.0
		for i := 0; i+1 < len(res.Path); i++ {
			e, err := g.cheapestEdge(res.Path[i], res.Path[i+1])
			require.NoError(t, err)
			sum += e.Weight
		}
		assert.InDelta(t, res.Distance, sum, tolerance, string(algo))
	}
}

func TestUniformCost_FinalizesInNonDecreasingCost(t *testing.T) {
	g := SampleCity()
	for start := 0; start < g.Len(); start++ {
		// an unreachable end forces a full expansion
		st := uniformCost(g, start, -1)
		require.Len(t, st.visited, g.Len())
		for i := 1; i < len(st.visited); i++ {
			prev, cur := st.cost[st.visited[i-1]], st.cost[st.visited[i]]
			assert.LessOrEqual(t, prev, cur, "start %d, position %d", start, i)
		}
	}
}

func TestTieBreakFollowsDeclarationOrder(t *testing.T) {
	g := squareGraph(t)

	ucs, err := ComputeShortestPath(g, "S", "T", UniformCost)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "Y", "T"}, ucs.Path)
	assert.Equal(t, []string{"S", "Y", "X", "T"}, ucs.VisitedOrder)
	assert.InDelta(t, 2.0, ucs.Distance, tolerance)

	// All nodes share coordinates, so h == 0 and f ties on g.
	astar, err := ComputeShortestPath(g, "S", "T", HeuristicGuided)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "Y", "T"}, astar.Path)
	assert.Equal(t, []string{"S", "Y", "X"}, astar.VisitedOrder)
}

func TestUnreachable(t *testing.T) {
	g := sampleWithIsland(t)
	for _, algo := range Algorithms {
		t.Run(string(algo), func(t *testing.T) {
			res, err := ComputeShortestPath(g, "A", "I", algo)
			require.NoError(t, err)

			assert.Empty(t, res.Path)
			assert.True(t, math.IsInf(res.Distance, 1))
			assert.False(t, res.Reachable())
			// every node of the connected component was expanded
			assert.Equal(t, 8, res.Steps)
		})
	}
}

func TestUnreachableFromIsland(t *testing.T) {
	g := sampleWithIsland(t)
	for _, algo := range Algorithms {
		res, err := ComputeShortestPath(g, "I", "A", algo)
		require.NoError(t, err)
		assert.Empty(t, res.Path)
		assert.False(t, res.Reachable())
		assert.Equal(t, []string{"I"}, res.VisitedOrder)
	}
}

func TestSameStartAndEnd(t *testing.T) {
	g := SampleCity()

	ucs, err := ComputeShortestPath(g, "D", "D", UniformCost)
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, ucs.Path)
	assert.Equal(t, 0.0, ucs.Distance)
	assert.True(t, ucs.Reachable())
	assert.Equal(t, 1, ucs.Steps)

	astar, err := ComputeShortestPath(g, "D", "D", HeuristicGuided)
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, astar.Path)
	assert.Equal(t, 0.0, astar.Distance)
	assert.Equal(t, 0, astar.Steps)
	assert.Empty(t, astar.VisitedOrder)
}

func TestSameStartAndEnd_IsolatedNode(t *testing.T) {
	g := sampleWithIsland(t)
	res, err := ComputeShortestPath(g, "I", "I", UniformCost)
	require.NoError(t, err)
	assert.Equal(t, []string{"I"}, res.Path)
	assert.True(t, res.Reachable())
}

func TestNodeNotFound(t *testing.T) {
	g := SampleCity()
	cases := []struct {
		name, start, end, missing string
	}{
		{"start", "Z", "A", "Z"},
		{"end", "A", "Z", "Z"},
		{"both", "X1", "X2", "X1"},
	}
	for _, algo := range Algorithms {
		for _, tc := range cases {
			t.Run(string(algo)+"/"+tc.name, func(t *testing.T) {
				_, err := ComputeShortestPath(g, tc.start, tc.end, algo)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrNodeNotFound)

				var nf *NodeNotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, tc.missing, nf.ID)
			})
		}
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	_, err := ComputeShortestPath(SampleCity(), "A", "G", Algorithm("bfs"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAlgorithmAliases(t *testing.T) {
	res, err := ComputeShortestPath(SampleCity(), "A", "G", Algorithm("A*"))
	require.NoError(t, err)
	assert.Equal(t, HeuristicGuided, res.Algorithm)

	res, err = ComputeShortestPath(SampleCity(), "A", "G", Algorithm("uniform-cost"))
	require.NoError(t, err)
	assert.Equal(t, UniformCost, res.Algorithm)
}

func TestIdempotent(t *testing.T) {
	g := SampleCity()
	for _, algo := range Algorithms {
		first, err := ComputeShortestPath(g, "F", "C", algo)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := ComputeShortestPath(g, "F", "C", algo)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestDuplicateEdgeCheaperWins(t *testing.T) {
	g, err := NewGraph(
		[]Node{
			{ID: "P", Category: Landmark},
			{ID: "Q", Category: Landmark},
		},
		[]Edge{
			{From: "P", To: "Q", Weight: 5},
			{From: "Q", To: "P", Weight: 2},
		},
	)
	require.NoError(t, err)

	for _, algo := range Algorithms {
		res, err := ComputeShortestPath(g, "P", "Q", algo)
		require.NoError(t, err)
		assert.Equal(t, []string{"P", "Q"}, res.Path)
		assert.InDelta(t, 2.0, res.Distance, tolerance)
	}
}

func TestZeroHeuristicMatchesUniformCostOrder(t *testing.T) {
	g := SampleCity()
	nav := New(WithHeuristic(ZeroHeuristic))

	astar, err := nav.ShortestPath(g, "A", "G", HeuristicGuided)
	require.NoError(t, err)
	ucs, err := nav.ShortestPath(g, "A", "G", UniformCost)
	require.NoError(t, err)

	// Same expansion order, minus the goal that A* never closes.
	assert.Equal(t, ucs.VisitedOrder[:len(ucs.VisitedOrder)-1], astar.VisitedOrder)
	assert.Equal(t, ucs.Path, astar.Path)
}

func TestCompare(t *testing.T) {
	cmp, err := New().Compare(context.Background(), SampleCity(), "A", "G")
	require.NoError(t, err)

	assert.Equal(t, UniformCost, cmp.UniformCost.Algorithm)
	assert.Equal(t, HeuristicGuided, cmp.HeuristicGuided.Algorithm)
	assert.True(t, cmp.SameDistance())
	assert.Equal(t, cmp.UniformCost.Path, cmp.HeuristicGuided.Path)
}

func TestCompare_NodeNotFound(t *testing.T) {
	_, err := New().Compare(context.Background(), SampleCity(), "A", "nope")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestCompare_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Compare(ctx, SampleCity(), "A", "G")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_UnreachableAgrees(t *testing.T) {
	cmp, err := New().Compare(context.Background(), sampleWithIsland(t), "A", "I")
	require.NoError(t, err)
	assert.True(t, cmp.SameDistance())
}
