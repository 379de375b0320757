// Package neo4jsource imports a city graph snapshot from Neo4j.
//
// Locations are read from (:Location) nodes and roads from [:ROAD]
// relationships. The import happens once; searches never touch the database.
package neo4jsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	navigator "github.com/UtkershBasnet/CityNavigator"
)

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("neo4j URI is required")

// Runner executes a Cypher query and returns a fully-buffered result.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Options configures an Executor.
type Options struct {
	URI      string
	Database string
	Username string
	Password string
}

// Executor is the Runner backed by the official driver.
type Executor struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewExecutor connects to Neo4j and verifies connectivity.
func NewExecutor(ctx context.Context, opts Options) (*Executor, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &Executor{driver: driver, database: opts.Database}, nil
}

// Run executes query with ExecuteQuery, which manages the session and
// transaction.
func (e *Executor) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{neo4j.ExecuteQueryWithReadersRouting()}
	if e.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(e.database))
	}
	result, err := neo4j.ExecuteQuery(ctx, e.driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, fmt.Errorf("execute neo4j query: %w", err)
	}
	return result, nil
}

// Close releases the driver.
func (e *Executor) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

const (
	locationsQuery = `
MATCH (l:Location)
RETURN l.id AS id, l.name AS name, l.lat AS lat, l.lng AS lng, l.type AS type
ORDER BY coalesce(l.order, 0), l.id`

	roadsQuery = `
MATCH (a:Location)-[r:ROAD]->(b:Location)
RETURN a.id AS from, b.id AS to, r.weight AS weight, r.distance AS distance, r.time AS time
ORDER BY a.id, b.id`
)

// LoadGraph reads all locations and roads through runner and builds a Graph.
func LoadGraph(ctx context.Context, runner Runner) (*navigator.Graph, error) {
	nodeResult, err := runner.Run(ctx, locationsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}
	nodes := make([]navigator.Node, 0, len(nodeResult.Records))
	for _, rec := range nodeResult.Records {
		n, err := nodeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	edgeResult, err := runner.Run(ctx, roadsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read roads: %w", err)
	}
	edges := make([]navigator.Edge, 0, len(edgeResult.Records))
	for _, rec := range edgeResult.Records {
		e, err := edgeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}

	g, err := navigator.NewGraph(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("failed to build graph from neo4j: %w", err)
	}
	return g, nil
}

func nodeFromRecord(rec *neo4j.Record) (navigator.Node, error) {
	id, err := stringValue(rec, "id", true)
	if err != nil {
		return navigator.Node{}, err
	}
	name, err := stringValue(rec, "name", false)
	if err != nil {
		return navigator.Node{}, err
	}
	category, err := stringValue(rec, "type", true)
	if err != nil {
		return navigator.Node{}, err
	}
	lat, err := floatValue(rec, "lat", true)
	if err != nil {
		return navigator.Node{}, err
	}
	lng, err := floatValue(rec, "lng", true)
	if err != nil {
		return navigator.Node{}, err
	}
	return navigator.Node{ID: id, Name: name, Lat: lat, Lng: lng, Category: navigator.Category(category)}, nil
}

func edgeFromRecord(rec *neo4j.Record) (navigator.Edge, error) {
	from, err := stringValue(rec, "from", true)
	if err != nil {
		return navigator.Edge{}, err
	}
	to, err := stringValue(rec, "to", true)
	if err != nil {
		return navigator.Edge{}, err
	}
	weight, err := floatValue(rec, "weight", true)
	if err != nil {
		return navigator.Edge{}, err
	}
	distance, err := floatValue(rec, "distance", false)
	if err != nil {
		return navigator.Edge{}, err
	}
	minutes, err := floatValue(rec, "time", false)
	if err != nil {
		return navigator.Edge{}, err
	}
	return navigator.Edge{From: from, To: to, Weight: weight, Distance: distance, Time: minutes}, nil
}

func stringValue(rec *neo4j.Record, key string, required bool) (string, error) {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		if required {
			return "", fmt.Errorf("record is missing %q", key)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, raw)
	}
	return s, nil
}

// Cypher integers arrive as int64, floats as float64.
func floatValue(rec *neo4j.Record, key string, required bool) (float64, error) {
	raw, ok := rec.Get(key)
	if !ok || raw == nil {
		if required {
			return 0, fmt.Errorf("record is missing %q", key)
		}
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("field %q: expected number, got %T", key, raw)
	}
}
