// Package config handles tool configuration loading and defaults.
package config

import "github.com/hexforge/victory/pkg/tiles"

// Config holds all victool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Grid    GridConfig    `yaml:"grid"`
	Slicing SlicingConfig `yaml:"slicing"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds default input locations.
type DataConfig struct {
	ScenarioDirs []string `yaml:"scenario_dirs"` // directories scanned for scenario files
	ArchivePath  string   `yaml:"archive_path"`  // default terrain-art archive
}

// GridConfig holds the terrain grid dimensions used when a layout does
// not carry its own.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SlicingConfig is the sprite-sheet slicing calibration.
type SlicingConfig struct {
	StrideX          int `yaml:"stride_x"`
	StrideY          int `yaml:"stride_y"`
	OffsetX          int `yaml:"offset_x"`
	TileWidth        int `yaml:"tile_width"`
	TileHeight       int `yaml:"tile_height"`
	TransparentIndex int `yaml:"transparent_index"`
}

// CacheConfig holds the decoded-tile cache location.
type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock calibration.
func Default() *Config {
	p := tiles.DefaultParams()
	return &Config{
		Data: DataConfig{
			ScenarioDirs: []string{"."},
		},
		Grid: GridConfig{
			Width:  125,
			Height: 100,
		},
		Slicing: SlicingConfig{
			StrideX:          p.StrideX,
			StrideY:          p.StrideY,
			OffsetX:          p.OffsetX,
			TileWidth:        p.TileW,
			TileHeight:       p.TileH,
			TransparentIndex: p.TransparentIndex,
		},
		Cache: CacheConfig{
			Dir: "", // empty disables the tile cache
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TileParams converts the slicing section into slicer parameters.
func (c *Config) TileParams() tiles.Params {
	return tiles.Params{
		StrideX:          c.Slicing.StrideX,
		StrideY:          c.Slicing.StrideY,
		OffsetX:          c.Slicing.OffsetX,
		TileW:            c.Slicing.TileWidth,
		TileH:            c.Slicing.TileHeight,
		TransparentIndex: c.Slicing.TransparentIndex,
	}
}
