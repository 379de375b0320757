package navigator

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteGeoJSON renders a search result as a FeatureCollection: one LineString
// for the route followed by a Point per route node. An empty path yields an
// empty collection.
func RouteGeoJSON(g *Graph, res SearchResult) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	if len(res.Path) == 0 {
		return fc, nil
	}

	nodes := make([]Node, 0, len(res.Path))
	line := make(orb.LineString, 0, len(res.Path))
	for _, id := range res.Path {
		n, err := g.NodeByID(id)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		line = append(line, n.Point())
	}

	if len(line) > 1 {
		route := geojson.NewFeature(line)
		route.Properties["kind"] = "route"
		route.Properties["algorithm"] = string(res.Algorithm)
		route.Properties["distance"] = res.Distance
		route.Properties["steps"] = res.Steps
		fc.Append(route)
	}

	for i, n := range nodes {
		f := nodeFeature(n)
		switch {
		case i == 0:
			f.Properties["role"] = "start"
		case i == len(nodes)-1:
			f.Properties["role"] = "end"
		default:
			f.Properties["role"] = "waypoint"
		}
		fc.Append(f)
	}
	return fc, nil
}

// GraphGeoJSON renders every node as a Point and every edge as a two-point
// LineString, for drawing the whole network.
func GraphGeoJSON(g *Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, n := range g.nodes {
		fc.Append(nodeFeature(n))
	}

	for _, e := range g.edges {
		from := g.nodes[g.index[e.From]]
		to := g.nodes[g.index[e.To]]
		f := geojson.NewFeature(orb.LineString{from.Point(), to.Point()})
		f.Properties["kind"] = "edge"
		f.Properties["from"] = e.From
		f.Properties["to"] = e.To
		f.Properties["weight"] = e.Weight
		f.Properties["distance"] = e.Distance
		f.Properties["time"] = e.Time
		fc.Append(f)
	}
	return fc
}

func nodeFeature(n Node) *geojson.Feature {
	f := geojson.NewFeature(n.Point())
	f.ID = n.ID
	f.Properties["kind"] = "node"
	f.Properties["id"] = n.ID
	f.Properties["name"] = n.Name
	f.Properties["category"] = string(n.Category)
	return f
}
