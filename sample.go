package navigator

// SampleNodes is the demonstration city: eight Manhattan locations.
func SampleNodes() []Node {
	return []Node{
		{ID: "A", Name: "Downtown Plaza", Lat: 40.7589, Lng: -73.9851, Category: Landmark},
		{ID: "B", Name: "Central Station", Lat: 40.7505, Lng: -73.9934, Category: Transport},
		{ID: "C", Name: "University Campus", Lat: 40.7282, Lng: -73.9942, Category: Education},
		{ID: "D", Name: "Shopping District", Lat: 40.7614, Lng: -73.9776, Category: Commercial},
		{ID: "E", Name: "Hospital", Lat: 40.7505, Lng: -73.9712, Category: Medical},
		{ID: "F", Name: "Park Entrance", Lat: 40.7829, Lng: -73.9654, Category: Recreation},
		{ID: "G", Name: "Airport Terminal", Lat: 40.7282, Lng: -73.9776, Category: Transport},
		{ID: "H", Name: "Business Center", Lat: 40.7505, Lng: -73.9851, Category: Commercial},
	}
}

// SampleEdges connects the sample nodes. Weight equals the road distance in
// km; Time is in minutes.
func SampleEdges() []Edge {
	return []Edge{
		{From: "A", To: "B", Weight: 1.2, Distance: 1.2, Time: 3},
		{From: "A", To: "D", Weight: 0.8, Distance: 0.8, Time: 2},
		{From: "A", To: "H", Weight: 0.5, Distance: 0.5, Time: 1},
		{From: "B", To: "C", Weight: 2.1, Distance: 2.1, Time: 5},
		{From: "B", To: "E", Weight: 1.5, Distance: 1.5, Time: 4},
		{From: "C", To: "G", Weight: 1.8, Distance: 1.8, Time: 4},
		{From: "D", To: "F", Weight: 2.3, Distance: 2.3, Time: 6},
		{From: "D", To: "H", Weight: 1.1, Distance: 1.1, Time: 3},
		{From: "E", To: "H", Weight: 1.3, Distance: 1.3, Time: 3},
		{From: "F", To: "H", Weight: 2.0, Distance: 2.0, Time: 5},
		{From: "H", To: "G", Weight: 1.7, Distance: 1.7, Time: 4},
	}
}

// SampleCity builds the sample graph.
func SampleCity() *Graph {
	return MustGraph(SampleNodes(), SampleEdges())
}
