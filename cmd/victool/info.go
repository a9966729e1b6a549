package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/hexforge/victory/internal/logger"
	"github.com/hexforge/victory/pkg/formats"
)

func infoCmd() *cli.Command {
	var (
		configPath string
		logLevel   string
	)

	return &cli.Command{
		Name:      "info",
		Usage:     "Show a scenario file's layout, header and configuration",
		ArgsUsage: "<scenario-file>",
		Flags:     commonFlags(&configPath, &logLevel),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := setup(configPath, logLevel); err != nil {
				return err
			}
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("usage: victool info <scenario-file>")
			}

			st, err := os.Stat(path)
			if err != nil {
				return err
			}
			s, err := formats.ParseScenarioFile(path)
			if err != nil {
				return err
			}
			logWarnings(path, s)

			fmt.Printf("%s (%s)\n", path, humanize.Bytes(uint64(st.Size())))
			fmt.Printf("  layout:   %s (magic 0x%04x, version %d)\n", s.Variant, s.Header.Magic, s.Header.Version)
			switch s.Variant {
			case formats.VariantCrusader:
				fmt.Printf("  records:  %s units, %s orders, %d text blocks\n",
					humanize.Comma(int64(s.Header.UnitRecordCount)),
					humanize.Comma(int64(s.Header.OrderRecordCount)),
					s.Header.TextBlockCount)
				fmt.Printf("  tags:     0x%08x 0x%08x\n", s.Header.Persistent[0], s.Header.Persistent[1])
			case formats.VariantStalingrad:
				fmt.Printf("  counters: %v\n", s.Header.Counters)
				fmt.Printf("  pointers: %d text slots\n", len(s.Header.TextPointers))
			case formats.VariantLegacy:
				if s.Terrain != nil {
					fmt.Printf("  terrain:  %dx%d hexes\n", s.Terrain.Width, s.Terrain.Height)
				}
			}
			if s.Variant != formats.VariantLegacy {
				printConfig(&s.Config)
			}
			return nil
		},
	}
}

func printConfig(c *formats.ConfigBlock) {
	fmt.Printf("  config:   units=%d sides=%d objectives=%d locations=%d\n",
		c.UnitCount, c.SideCount, c.ObjectiveCount, c.LocationCount)
	fmt.Printf("            terrain-types=%d weather=%d reinforcements=%d victory=%d\n",
		c.TerrainTypeCount, c.WeatherParam, c.ReinforcementCount, c.VictoryCount)
	fmt.Printf("            turns=%d params=%d\n", c.TurnCount, c.ParamCount)
}

// logWarnings surfaces soft decode findings without failing the run.
func logWarnings(path string, s *formats.Scenario) {
	for _, w := range s.Warnings {
		logger.Log.Warn("decode warning", zap.String("file", path), zap.String("warning", w))
	}
}
