package neo4jsource

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navigator "github.com/UtkershBasnet/CityNavigator"
)

// fakeRunner answers the two import queries from canned records.
type fakeRunner struct {
	locations []*neo4j.Record
	roads     []*neo4j.Record
	err       error
	queries   []string
}

func (f *fakeRunner) Run(_ context.Context, query string, _ map[string]any) (*neo4j.EagerResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if strings.Contains(query, ":ROAD") {
		return &neo4j.EagerResult{Records: f.roads}, nil
	}
	return &neo4j.EagerResult{Records: f.locations}, nil
}

var (
	locationKeys = []string{"id", "name", "lat", "lng", "type"}
	roadKeys     = []string{"from", "to", "weight", "distance", "time"}
)

func location(id, name string, lat, lng any, category string) *neo4j.Record {
	return &neo4j.Record{Keys: locationKeys, Values: []any{id, name, lat, lng, category}}
}

func road(from, to string, weight, distance, minutes any) *neo4j.Record {
	return &neo4j.Record{Keys: roadKeys, Values: []any{from, to, weight, distance, minutes}}
}

func sampleRunner() *fakeRunner {
	f := &fakeRunner{}
	for _, n := range navigator.SampleNodes() {
		f.locations = append(f.locations, location(n.ID, n.Name, n.Lat, n.Lng, string(n.Category)))
	}
	for _, e := range navigator.SampleEdges() {
		f.roads = append(f.roads, road(e.From, e.To, e.Weight, e.Distance, e.Time))
	}
	return f
}

func TestLoadGraph_Sample(t *testing.T) {
	runner := sampleRunner()

	g, err := LoadGraph(context.Background(), runner)
	require.NoError(t, err)
	assert.Len(t, runner.queries, 2)
	assert.Equal(t, navigator.SampleCity().Fingerprint(), g.Fingerprint())

	res, err := navigator.ComputeShortestPath(g, "A", "G", navigator.UniformCost)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "H", "G"}, res.Path)
	assert.InDelta(t, 2.2, res.Distance, 1e-9)
}

func TestLoadGraph_IntegerValues(t *testing.T) {
	runner := &fakeRunner{
		locations: []*neo4j.Record{
			location("X", "X", int64(40), int64(-73), "landmark"),
			location("Y", "Y", 40.5, -73.5, "medical"),
		},
		roads: []*neo4j.Record{road("X", "Y", int64(2), nil, nil)},
	}

	g, err := LoadGraph(context.Background(), runner)
	require.NoError(t, err)

	n, err := g.NodeByID("X")
	require.NoError(t, err)
	assert.Equal(t, 40.0, n.Lat)

	neighbors, err := g.Neighbors("X")
	require.NoError(t, err)
	assert.Equal(t, []navigator.Neighbor{{ID: "Y", Weight: 2}}, neighbors)
}

func TestLoadGraph_Errors(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := LoadGraph(context.Background(), &fakeRunner{err: boom})
	assert.ErrorIs(t, err, boom)

	_, err = LoadGraph(context.Background(), &fakeRunner{
		locations: []*neo4j.Record{location("X", "X", "north", -73.0, "landmark")},
	})
	assert.ErrorContains(t, err, `"lat"`)

	_, err = LoadGraph(context.Background(), &fakeRunner{
		locations: []*neo4j.Record{{Keys: []string{"name"}, Values: []any{"nameless"}}},
	})
	assert.ErrorContains(t, err, `missing "id"`)

	_, err = LoadGraph(context.Background(), &fakeRunner{
		locations: []*neo4j.Record{location("X", "X", 40.0, -73.0, "landmark")},
		roads:     []*neo4j.Record{road("X", "Z", 1.0, nil, nil)},
	})
	assert.ErrorIs(t, err, navigator.ErrNodeNotFound)
}

func TestNewExecutor_MissingURI(t *testing.T) {
	_, err := NewExecutor(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrMissingURI)
}
