package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/hexforge/victory/internal/logger"
	"github.com/hexforge/victory/internal/tilecache"
	"github.com/hexforge/victory/pkg/pict"
	"github.com/hexforge/victory/pkg/resfork"
	"github.com/hexforge/victory/pkg/tiles"
)

func tilesCmd() *cli.Command {
	var (
		configPath string
		logLevel   string
		archive    string
		pictType   string
		clutType   string
		pictID     int64
		clutID     int64
		cacheDir   string
		outDir     string
		force      bool
	)

	return &cli.Command{
		Name:  "tiles",
		Usage: "Decode the terrain sprite sheet from an art archive and slice it into hex tiles",
		Flags: append(commonFlags(&configPath, &logLevel),
			&cli.StringFlag{
				Name:        "archive",
				Aliases:     []string{"a"},
				Usage:       "path to the art archive (defaults to the configured one)",
				Destination: &archive,
			},
			&cli.StringFlag{Name: "pict-type", Usage: "resource type of the sprite sheet", Value: "PICT", Destination: &pictType},
			&cli.IntFlag{Name: "pict-id", Usage: "resource id of the sprite sheet", Value: 128, Destination: &pictID},
			&cli.StringFlag{Name: "clut-type", Usage: "resource type of the color table", Value: "clut", Destination: &clutType},
			&cli.IntFlag{Name: "clut-id", Usage: "resource id of the color table", Value: 8, Destination: &clutID},
			&cli.StringFlag{Name: "cache", Usage: "tile cache directory (defaults to the configured one)", Destination: &cacheDir},
			&cli.StringFlag{Name: "out", Usage: "also export raw RGBA tile blobs to this directory", Destination: &outDir},
			&cli.BoolFlag{Name: "force", Usage: "ignore the cache and re-derive", Destination: &force},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := setup(configPath, logLevel)
			if err != nil {
				return err
			}
			if archive == "" {
				archive = cfg.Data.ArchivePath
			}
			if archive == "" {
				return fmt.Errorf("no archive given: pass --archive or set data.archive_path")
			}
			if cacheDir == "" {
				cacheDir = cfg.Cache.Dir
			}
			params := cfg.TileParams()

			data, err := os.ReadFile(archive)
			if err != nil {
				return err
			}

			var cache *tilecache.Cache
			key := tilecache.Key(data, params)
			if cacheDir != "" {
				if cache, err = tilecache.New(cacheDir); err != nil {
					return err
				}
			}

			var set map[uint8]tiles.Tile
			if cache != nil && !force {
				if cached, err := cache.Get(key); err == nil {
					logger.Log.Info("tile cache hit", zap.String("key", key))
					set = cached
				}
			}

			if set == nil {
				set, err = deriveTiles(data, pictType, uint16(pictID), clutType, uint16(clutID), params)
				if err != nil {
					return err
				}
				if cache != nil {
					if err := cache.Put(key, params, set); err != nil {
						return err
					}
					logger.Log.Info("tile cache entry published", zap.String("key", key))
				}
			}

			fmt.Printf("%s (%s): %d terrain tiles, %dx%d each\n",
				archive, humanize.Bytes(uint64(len(data))), len(set), params.ContentW(), params.ContentH())

			if outDir != "" {
				if err := exportTiles(outDir, set); err != nil {
					return err
				}
				fmt.Printf("exported to %s\n", outDir)
			}
			return nil
		},
	}
}

// deriveTiles runs the full live pipeline: archive -> sprite sheet ->
// sliced tiles. No fallback happens here; substituting a cached sheet
// on failure is a policy the caller opts into explicitly.
func deriveTiles(data []byte, pictType string, pictID uint16, clutType string, clutID uint16, params tiles.Params) (map[uint8]tiles.Tile, error) {
	fork, err := resfork.Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("archive parsed",
		zap.Int("resources", fork.Len()),
		zap.Strings("types", fork.Types()))

	pictData, err := fork.Resource(pictType, pictID)
	if err != nil {
		return nil, err
	}
	clutData, err := fork.Resource(clutType, clutID)
	if err != nil {
		return nil, err
	}

	sheet, err := pict.DecodeBitmap(pictData, clutData)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("sprite sheet decoded",
		zap.Int("width", sheet.Width),
		zap.Int("height", sheet.Height),
		zap.Int("palette", len(sheet.Palette)))

	return tiles.Slice(sheet, params)
}

func exportTiles(dir string, set map[uint8]tiles.Tile) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for id, tile := range set {
		name := filepath.Join(dir, fmt.Sprintf("terrain-%02d.rgba", id))
		if err := os.WriteFile(name, tile.Pixels, 0644); err != nil {
			return err
		}
	}
	return nil
}
