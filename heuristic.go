package navigator

import "math"

// Heuristic estimates the remaining cost from node to goal. A* only returns
// optimal routes when the estimate never exceeds the true remaining cost.
type Heuristic func(node, goal Node) float64

// CoordinateDifference is the sum of absolute latitude and longitude deltas,
// in degrees. On the sample city it is far below any edge weight (km), so it
// is admissible there; it is not a general guarantee for other datasets.
func CoordinateDifference(node, goal Node) float64 {
	return math.Abs(node.Lat-goal.Lat) + math.Abs(node.Lng-goal.Lng)
}

// GreatCircle is the haversine distance in kilometres. It is admissible only
// when no edge weight is below the straight-line distance between its
// endpoints. The sample city breaks that (A-H weighs 0.5 over ~0.93 km).
func GreatCircle(node, goal Node) float64 {
	return DistanceMeters(node, goal) / 1000
}

// ZeroHeuristic makes A* expand in uniform-cost order.
func ZeroHeuristic(node, goal Node) float64 { return 0 }

// HeuristicByName resolves the names accepted in configuration.
func HeuristicByName(name string) (Heuristic, bool) {
	switch name {
	case "", "coordinate", "manhattan":
		return CoordinateDifference, true
	case "great-circle", "haversine":
		return GreatCircle, true
	case "zero", "none":
		return ZeroHeuristic, true
	}
	return nil, false
}
