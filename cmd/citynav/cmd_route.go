package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/UtkershBasnet/CityNavigator/internal/service"
)

func newRouteCmd(c *cli) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "route START END",
		Short: "Find the shortest route between two locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.newService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			resp, err := svc.Route(cmd.Context(), service.RouteRequest{
				Start:     args[0],
				End:       args[1],
				Algorithm: algorithm,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOutput {
				return writeJSON(out, map[string]any{
					"result":  resp.Result,
					"summary": resp.Summary,
				})
			}
			_, err = fmt.Fprintln(out, renderResult(svc.Graph(), resp.Result, resp.Summary))
			return err
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "dijkstra or astar (default: configured)")
	return cmd
}

func newCompareCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "compare START END",
		Short: "Run both algorithms and show them side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.newService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			cmp, err := svc.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOutput {
				return writeJSON(out, cmp)
			}

			g := svc.Graph()
			ucsSummary, err := g.Summarize(cmp.UniformCost.Path)
			if err != nil {
				return err
			}
			astarSummary, err := g.Summarize(cmp.HeuristicGuided.Path)
			if err != nil {
				return err
			}
			view := lipgloss.JoinHorizontal(lipgloss.Top,
				renderResult(g, cmp.UniformCost, ucsSummary),
				" ",
				renderResult(g, cmp.HeuristicGuided, astarSummary),
			)
			if _, err := fmt.Fprintln(out, view); err != nil {
				return err
			}
			if !cmp.SameDistance() {
				_, err = fmt.Fprintln(out, styles.Warning.Render("the algorithms disagree on distance"))
			}
			return err
		},
	}
}
