package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newNodesCmd(c *cli) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List the graph's locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.newService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			nodes, err := svc.Nodes(category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOutput {
				return writeJSON(out, nodes)
			}
			for _, n := range nodes {
				_, err := fmt.Fprintf(out, "%s  %-20s %s  %s\n",
					styles.Title.Render(n.ID),
					n.Name,
					styles.Muted.Render(fmt.Sprintf("%.4f,%.4f", n.Lat, n.Lng)),
					n.Category,
				)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list nodes of this category")
	return cmd
}

func newNearestCmd(c *cli) *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "nearest LAT LNG",
		Short: "Find the locations closest to a coordinate",
		Long: `Find the locations closest to a coordinate.

Negative coordinates must follow "--" so they are not read as flags:
  citynav nearest --k 3 -- 40.7589 -73.9851`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[0], err)
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[1], err)
			}

			svc, err := c.newService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			hits, err := svc.Nearest(lat, lng, k)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOutput {
				return writeJSON(out, hits)
			}
			for _, h := range hits {
				_, err := fmt.Fprintf(out, "%s  %-20s %s\n",
					styles.Title.Render(h.Node.ID),
					h.Node.Name,
					styles.Muted.Render(fmt.Sprintf("%.0f m", h.DistanceMeters)),
				)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 1, "number of locations to return")
	return cmd
}
