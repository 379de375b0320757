package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	navigator "github.com/UtkershBasnet/CityNavigator"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the graph as JSON or GeoJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := c.loadGraph(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "json":
				return navigator.WriteGraph(w, g)
			case "geojson":
				data, err := navigator.GraphGeoJSON(g).MarshalJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			default:
				return fmt.Errorf("unknown export format %q (want json or geojson)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or geojson")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	return cmd
}
