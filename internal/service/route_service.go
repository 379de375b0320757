package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb/geojson"

	navigator "github.com/UtkershBasnet/CityNavigator"
	"github.com/UtkershBasnet/CityNavigator/internal/cache"
	"github.com/UtkershBasnet/CityNavigator/internal/metrics"
)

// ErrInvalidCoordinate is returned for latitudes or longitudes out of range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ResultStore is the cache contract used by RouteService.
type ResultStore interface {
	Get(key []byte) (navigator.SearchResult, bool, error)
	Put(key []byte, res navigator.SearchResult) error
}

// Options tunes a RouteService.
type Options struct {
	DefaultAlgorithm string
	Heuristic        string
	Store            ResultStore
}

// RouteService answers route queries over one loaded graph.
type RouteService struct {
	logger      *slog.Logger
	graph       *navigator.Graph
	nav         *navigator.Navigator
	index       *navigator.NodeIndex
	store       ResultStore
	defaultAlgo navigator.Algorithm
	fingerprint string
}

// RouteRequest is one shortest-path query. An empty Algorithm uses the
// service default.
type RouteRequest struct {
	Start     string
	End       string
	Algorithm string
}

// RouteResponse carries the search result plus the route's display totals.
type RouteResponse struct {
	Result  navigator.SearchResult
	Summary navigator.RouteSummary
	Cached  bool
}

// NewRouteService validates opts and indexes g.
func NewRouteService(logger *slog.Logger, g *navigator.Graph, opts Options) (*RouteService, error) {
	if g == nil {
		return nil, errors.New("graph must not be nil")
	}

	algo := navigator.UniformCost
	if opts.DefaultAlgorithm != "" {
		parsed, err := navigator.ParseAlgorithm(opts.DefaultAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("default algorithm: %w", err)
		}
		algo = parsed
	}

	h, ok := navigator.HeuristicByName(opts.Heuristic)
	if !ok {
		return nil, fmt.Errorf("unknown heuristic %q", opts.Heuristic)
	}

	metrics.GraphNodes.Set(float64(g.Len()))

	return &RouteService{
		logger:      logger,
		graph:       g,
		nav:         navigator.New(navigator.WithHeuristic(h)),
		index:       navigator.NewNodeIndex(g),
		store:       opts.Store,
		defaultAlgo: algo,
		fingerprint: g.Fingerprint(),
	}, nil
}

// Graph returns the graph being served.
func (s *RouteService) Graph() *navigator.Graph {
	return s.graph
}

// Route runs one search, consulting the result store first.
func (s *RouteService) Route(ctx context.Context, req RouteRequest) (RouteResponse, error) {
	if err := ctx.Err(); err != nil {
		return RouteResponse{}, err
	}

	algo := s.defaultAlgo
	if req.Algorithm != "" {
		parsed, err := navigator.ParseAlgorithm(req.Algorithm)
		if err != nil {
			metrics.CountRoute("unknown", metrics.OutcomeInvalid)
			return RouteResponse{}, err
		}
		algo = parsed
	}

	key := cache.Key(s.fingerprint, algo, req.Start, req.End)
	if s.store != nil {
		res, ok, err := s.store.Get(key)
		switch {
		case err != nil:
			metrics.CountCache("error")
			s.logger.Warn("route cache read failed", "error", err)
		case ok:
			metrics.CountCache("hit")
			metrics.CountRoute(string(algo), outcomeOf(res))
			return s.respond(res, true)
		default:
			metrics.CountCache("miss")
		}
	}

	started := time.Now()
	res, err := s.nav.ShortestPath(s.graph, req.Start, req.End, algo)
	elapsed := time.Since(started)
	if err != nil {
		outcome := metrics.OutcomeInvalid
		if errors.Is(err, navigator.ErrNodeNotFound) {
			outcome = metrics.OutcomeNotFound
		}
		metrics.CountRoute(string(algo), outcome)
		return RouteResponse{}, err
	}

	metrics.ObserveSearch(string(algo), elapsed, res.Steps)
	metrics.CountRoute(string(algo), outcomeOf(res))
	s.logger.Debug("route computed",
		"algorithm", algo,
		"start", req.Start,
		"end", req.End,
		"distance", res.Distance,
		"steps", res.Steps,
		"duration_us", elapsed.Microseconds(),
	)

	if s.store != nil {
		if err := s.store.Put(key, res); err != nil {
			s.logger.Warn("route cache write failed", "error", err)
		}
	}
	return s.respond(res, false)
}

func (s *RouteService) respond(res navigator.SearchResult, cached bool) (RouteResponse, error) {
	summary, err := s.graph.Summarize(res.Path)
	if err != nil {
		return RouteResponse{}, fmt.Errorf("summarize route: %w", err)
	}
	return RouteResponse{Result: res, Summary: summary, Cached: cached}, nil
}

func outcomeOf(res navigator.SearchResult) string {
	if res.Reachable() {
		return metrics.OutcomeFound
	}
	return metrics.OutcomeUnreachable
}

// Compare runs both algorithms side by side.
func (s *RouteService) Compare(ctx context.Context, start, end string) (navigator.Comparison, error) {
	cmp, err := s.nav.Compare(ctx, s.graph, start, end)
	if err != nil {
		return navigator.Comparison{}, err
	}
	for _, res := range []navigator.SearchResult{cmp.UniformCost, cmp.HeuristicGuided} {
		metrics.CountRoute(string(res.Algorithm), outcomeOf(res))
	}
	if !cmp.SameDistance() {
		// only possible with a heuristic that overestimates
		s.logger.Warn("algorithms disagree on distance",
			"start", start,
			"end", end,
			"dijkstra", cmp.UniformCost.Distance,
			"astar", cmp.HeuristicGuided.Distance,
		)
	}
	return cmp, nil
}

// RouteGeoJSON runs req and renders the result as GeoJSON.
func (s *RouteService) RouteGeoJSON(ctx context.Context, req RouteRequest) (*geojson.FeatureCollection, error) {
	resp, err := s.Route(ctx, req)
	if err != nil {
		return nil, err
	}
	return navigator.RouteGeoJSON(s.graph, resp.Result)
}

// GraphGeoJSON renders the whole graph.
func (s *RouteService) GraphGeoJSON() *geojson.FeatureCollection {
	return navigator.GraphGeoJSON(s.graph)
}

// Nodes lists nodes in declaration order, optionally filtered by category.
func (s *RouteService) Nodes(category string) ([]navigator.Node, error) {
	nodes := s.graph.Nodes()
	if category == "" {
		return nodes, nil
	}
	c := navigator.Category(category)
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", navigator.ErrInvalidCategory, category)
	}
	out := nodes[:0]
	for _, n := range nodes {
		if n.Category == c {
			out = append(out, n)
		}
	}
	return out, nil
}

// Node looks up a single node.
func (s *RouteService) Node(id string) (navigator.Node, error) {
	return s.graph.NodeByID(id)
}

// Neighbors lists a node's adjacent nodes.
func (s *RouteService) Neighbors(id string) ([]navigator.Neighbor, error) {
	return s.graph.Neighbors(id)
}

// Edges lists every edge.
func (s *RouteService) Edges() []navigator.Edge {
	return s.graph.Edges()
}

// Nearest returns up to k nodes closest to the coordinate.
func (s *RouteService) Nearest(lat, lng float64, k int) ([]navigator.NearbyNode, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, lat, lng)
	}
	return s.index.Nearest(lat, lng, k), nil
}

// Algorithms describes every supported algorithm.
func (s *RouteService) Algorithms() []navigator.AlgorithmInfo {
	out := make([]navigator.AlgorithmInfo, 0, len(navigator.Algorithms))
	for _, algo := range navigator.Algorithms {
		info, err := navigator.Describe(algo)
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	return out
}
