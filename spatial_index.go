package navigator

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// nodeEntry wraps a node for R-tree storage
type nodeEntry struct {
	node  Node
	order int
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// pointTolerance gives point entries a non-degenerate box
const pointTolerance = 1e-9

// NodeIndex answers coordinate queries over a graph's nodes. The tree stores
// longitude scaled by the cosine of the graph's mean latitude, so planar
// distances track ground distance; results carry great-circle metres.
type NodeIndex struct {
	tree     *rtreego.Rtree
	size     int
	lngScale float64
}

// NearbyNode is a query hit.
type NearbyNode struct {
	Node           Node    `json:"node"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// NewNodeIndex indexes every node of g.
func NewNodeIndex(g *Graph) *NodeIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	idx := &NodeIndex{tree: tree, size: len(g.nodes), lngScale: lngScaleFor(g.nodes)}

	for i, n := range g.nodes {
		tree.Insert(&nodeEntry{
			node:  n,
			order: i,
			bbox:  idx.point(n.Lat, n.Lng).ToRect(pointTolerance),
		})
	}

	return idx
}

// minLngScale keeps near-polar graphs from collapsing onto one meridian.
const minLngScale = 0.01

func lngScaleFor(nodes []Node) float64 {
	if len(nodes) == 0 {
		return 1
	}
	var sum float64
	for _, n := range nodes {
		sum += n.Lat
	}
	scale := math.Cos(sum / float64(len(nodes)) * math.Pi / 180)
	if scale < minLngScale {
		return minLngScale
	}
	return scale
}

func (idx *NodeIndex) point(lat, lng float64) rtreego.Point {
	return rtreego.Point{lng * idx.lngScale, lat}
}

// Nearest returns up to k nodes closest to (lat, lng), closest first.
func (idx *NodeIndex) Nearest(lat, lng float64, k int) []NearbyNode {
	if k <= 0 || idx.size == 0 {
		return []NearbyNode{}
	}
	if k > idx.size {
		k = idx.size
	}

	// The projection is exact only at the mean latitude, so rank a wider
	// candidate set by metres before cutting it to k.
	candidates := 2*k + 4
	if candidates > idx.size {
		candidates = idx.size
	}

	query := Node{Lat: lat, Lng: lng}
	hits := idx.tree.NearestNeighbors(candidates, idx.point(lat, lng))

	out := make([]NearbyNode, 0, len(hits))
	for _, h := range hits {
		if h == nil {
			continue
		}
		e := h.(*nodeEntry)
		out = append(out, NearbyNode{Node: e.node, DistanceMeters: DistanceMeters(query, e.node)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// Within returns the nodes inside b in graph declaration order.
func (idx *NodeIndex) Within(b orb.Bound) []Node {
	rect, err := rtreego.NewRect(
		idx.point(b.Min.Lat(), b.Min.Lon()),
		[]float64{(b.Max.Lon()-b.Min.Lon())*idx.lngScale + pointTolerance, b.Max.Lat() - b.Min.Lat() + pointTolerance},
	)
	if err != nil {
		return []Node{}
	}

	results := idx.tree.SearchIntersect(rect)
	entries := make([]*nodeEntry, 0, len(results))
	for _, item := range results {
		entries = append(entries, item.(*nodeEntry))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	nodes := make([]Node, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, e.node)
	}
	return nodes
}
