package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	navigator "github.com/UtkershBasnet/CityNavigator"
	"github.com/UtkershBasnet/CityNavigator/internal/config"
	"github.com/UtkershBasnet/CityNavigator/internal/logging"
	"github.com/UtkershBasnet/CityNavigator/internal/neo4jsource"
	"github.com/UtkershBasnet/CityNavigator/internal/service"
)

// cli holds state shared by every subcommand.
type cli struct {
	configPath string
	graphFile  string
	jsonOutput bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "citynav",
		Short: "Shortest routes across a city graph",
		Long: `citynav finds shortest routes between city locations using
uniform-cost search (Dijkstra) or heuristic-guided search (A*).

The graph comes from --graph, or from the configured source
(sample, file or neo4j) when the flag is absent.

Examples:
  citynav route A G
  citynav route A G --algorithm astar --json
  citynav compare A F
  citynav nearest --k 3 -- 40.7589 -73.9851
  citynav serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFile(c.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			c.cfg = cfg
			c.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (overrides CITYNAV_CONFIG)")
	root.PersistentFlags().StringVar(&c.graphFile, "graph", "", "graph JSON file (default: configured source)")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "print machine-readable JSON")

	root.AddCommand(
		newServeCmd(c),
		newRouteCmd(c),
		newCompareCmd(c),
		newNearestCmd(c),
		newNodesCmd(c),
		newExportCmd(c),
	)
	return root
}

// loadGraph resolves the graph from --graph or the configured source.
func (c *cli) loadGraph(ctx context.Context) (*navigator.Graph, error) {
	if c.graphFile != "" {
		return navigator.LoadGraph(c.graphFile)
	}

	switch c.cfg.Graph.Source {
	case config.SourceFile:
		return navigator.LoadGraph(c.cfg.Graph.File)
	case config.SourceNeo4j:
		n := c.cfg.Graph.Neo4j
		exec, err := neo4jsource.NewExecutor(ctx, neo4jsource.Options{
			URI:      n.URI,
			Database: n.Database,
			Username: n.Username,
			Password: n.Password,
		})
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := exec.Close(context.Background()); err != nil {
				c.logger.Warn("closing neo4j driver failed", "error", err)
			}
		}()
		g, err := neo4jsource.LoadGraph(ctx, exec)
		if err != nil {
			return nil, err
		}
		c.logger.Info("graph imported from neo4j", "nodes", g.Len(), "edges", len(g.Edges()))
		return g, nil
	default:
		return navigator.SampleCity(), nil
	}
}

// newService loads the graph and wraps it in a RouteService. A nil store
// disables result caching.
func (c *cli) newService(ctx context.Context, store service.ResultStore) (*service.RouteService, error) {
	g, err := c.loadGraph(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewRouteService(c.logger, g, service.Options{
		DefaultAlgorithm: c.cfg.Search.DefaultAlgorithm,
		Heuristic:        c.cfg.Search.Heuristic,
		Store:            store,
	})
}
