package navigator

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Point converts a node to an orb point (longitude first).
func (n Node) Point() orb.Point {
	return orb.Point{n.Lng, n.Lat}
}

// DistanceMeters is the great-circle distance between two nodes.
func DistanceMeters(a, b Node) float64 {
	return geo.Distance(a.Point(), b.Point())
}

// Bound returns the bounding box of all nodes. An empty graph has an empty bound.
func (g *Graph) Bound() orb.Bound {
	if len(g.nodes) == 0 {
		return orb.Bound{}
	}
	mp := make(orb.MultiPoint, 0, len(g.nodes))
	for _, n := range g.nodes {
		mp = append(mp, n.Point())
	}
	return mp.Bound()
}

// PathLength is the great-circle length of a path in metres, the straight
// segments between consecutive nodes.
func (g *Graph) PathLength(path []string) (float64, error) {
	ls := make(orb.LineString, 0, len(path))
	for _, id := range path {
		n, err := g.NodeByID(id)
		if err != nil {
			return 0, err
		}
		ls = append(ls, n.Point())
	}
	if len(ls) < 2 {
		return 0, nil
	}
	return geo.Length(ls), nil
}
