package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/tubenet/pkg/cost"
	"github.com/ChicagoDave/tubenet/pkg/geo"
	"github.com/ChicagoDave/tubenet/pkg/network"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Prices: cost.DefaultPrices(),
		Geometry: Geometry{
			Epsilon:  geo.DefaultEpsilon,
			Crossing: string(geo.CrossingStrict),
		},
		Planner: Planner{TeleporterFallback: true},
		Log:     Log{Level: "info", Format: "text"},
		Record:  Record{Dir: "runs"},
	}
}

// Load reads a YAML file on top of Default. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// NetworkOptions converts the geometry and price sections into world rules.
func (c *Config) NetworkOptions() (network.Options, error) {
	mode, err := geo.ParseCrossingMode(c.Geometry.Crossing)
	if err != nil {
		return network.Options{}, fmt.Errorf("geometry.crossing: %w", err)
	}
	return network.Options{
		Epsilon:         c.Geometry.Epsilon,
		Crossing:        mode,
		MaxTubeCapacity: c.Prices.MaxTubeCapacity,
	}, nil
}

// SlogLevel parses the configured level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a logger writing to w in the configured format.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(l.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log.format: unknown format %q", l.Format)
	}
}
