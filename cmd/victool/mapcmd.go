package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/hexforge/victory/pkg/formats"
)

func mapCmd() *cli.Command {
	var (
		configPath string
		logLevel   string
		gridOffset int64
	)

	return &cli.Command{
		Name:      "map",
		Usage:     "Summarize a scenario's terrain grid",
		ArgsUsage: "<scenario-file>",
		Flags: append(commonFlags(&configPath, &logLevel),
			&cli.IntFlag{
				Name:        "grid-offset",
				Usage:       "decode a grid at this absolute offset instead of the layout's own",
				Value:       -1,
				Destination: &gridOffset,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := setup(configPath, logLevel)
			if err != nil {
				return err
			}
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("usage: victool map <scenario-file>")
			}

			s, err := formats.ParseScenarioFile(path)
			if err != nil {
				return err
			}
			logWarnings(path, s)

			grid := s.Terrain
			if gridOffset >= 0 {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				grid, err = formats.DecodeTerrainGrid(data, int(gridOffset), cfg.Grid.Width, cfg.Grid.Height)
				if err != nil {
					return err
				}
			}
			if grid == nil {
				return fmt.Errorf("%s: the %s layout embeds no terrain grid (try --grid-offset)", path, s.Variant)
			}

			fmt.Printf("%s: %dx%d hexes, clustering %.3f\n", path, grid.Width, grid.Height, grid.ClusteringScore())
			printHistogram(grid)
			return nil
		},
	}
}

func printHistogram(g *formats.TerrainGrid) {
	counts := g.CountByTerrain()
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	total := g.Width * g.Height
	for _, id := range ids {
		n := counts[uint8(id)]
		fmt.Printf("  terrain %2d: %6d hexes (%4.1f%%)\n", id, n, 100*float64(n)/float64(total))
	}
}
