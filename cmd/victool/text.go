package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hexforge/victory/pkg/formats"
)

func textCmd() *cli.Command {
	var (
		configPath string
		logLevel   string
	)

	return &cli.Command{
		Name:      "text",
		Usage:     "Extract a scenario's mission narrative",
		ArgsUsage: "<scenario-file>",
		Flags:     commonFlags(&configPath, &logLevel),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := setup(configPath, logLevel); err != nil {
				return err
			}
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("usage: victool text <scenario-file>")
			}

			s, err := formats.ParseScenarioFile(path)
			if err != nil {
				return err
			}
			logWarnings(path, s)

			if len(s.Text) == 0 {
				fmt.Printf("%s: no mission text (%s layout)\n", path, s.Variant)
				return nil
			}
			for i, block := range s.Text {
				fmt.Printf("--- block %d ---\n%s\n", i, block)
			}
			return nil
		},
	}
}
