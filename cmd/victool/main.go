// Command victool inspects and converts the scenario files and art
// archives of a 1990s hex-based wargame family.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hexforge/victory/internal/config"
	"github.com/hexforge/victory/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "victool",
		Usage: "Hex-wargame scenario and asset inspection CLI",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			textCmd(),
			mapCmd(),
			tilesCmd(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	logger.Sync()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commonFlags are shared by every subcommand.
func commonFlags(configPath, logLevel *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to victool.yaml",
			Destination: configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "debug, info, warn or error",
			Destination: logLevel,
		},
	}
}

// setup loads the configuration and initializes logging.
func setup(configPath, logLevel string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logger.Init(level, cfg.Logging.LogFile)
	return cfg, nil
}
