package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChicagoDave/tubenet/pkg/geo"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Prices.Pod != 1000 || c.Prices.TubePerUnit != 10 {
		t.Errorf("unexpected default prices %+v", c.Prices)
	}
	if c.Geometry.Crossing != "strict" {
		t.Errorf("crossing = %q, want %q", c.Geometry.Crossing, "strict")
	}
	if !c.Planner.TeleporterFallback {
		t.Error("expected teleporter fallback on by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tubebot.yaml")
	yml := `
prices:
  pod: 1200
geometry:
  crossing: legacy
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Prices.Pod != 1200 {
		t.Errorf("pod price = %d, want 1200", c.Prices.Pod)
	}
	if c.Prices.Teleporter != 5000 {
		t.Errorf("teleporter price = %d, want default 5000", c.Prices.Teleporter)
	}
	opts, err := c.NetworkOptions()
	if err != nil {
		t.Fatalf("NetworkOptions failed: %v", err)
	}
	if opts.Crossing != geo.CrossingLegacy {
		t.Errorf("crossing = %q, want legacy", opts.Crossing)
	}
	if opts.MaxTubeCapacity != 3 {
		t.Errorf("max tube capacity = %d, want 3", opts.MaxTubeCapacity)
	}
	if lvl, _ := c.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("level = %v, want debug", lvl)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Parse([]byte("prices: [1, 2")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Prices != Default().Prices {
		t.Error("expected defaults for empty path")
	}
}

func TestNetworkOptionsUnknownCrossing(t *testing.T) {
	c := Default()
	c.Geometry.Crossing = "fuzzy"
	if _, err := c.NetworkOptions(); err == nil {
		t.Error("expected error for unknown crossing mode")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Log{Level: "info", Format: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("turn", "resources", 900)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected debug line filtered at info level")
	}
	if !strings.Contains(out, `"resources":900`) {
		t.Errorf("expected JSON attribute in output, got %s", out)
	}
	if _, err := (Log{Level: "info", Format: "xml"}).NewLogger(&buf); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := (Log{Level: "loud"}).NewLogger(&buf); err == nil {
		t.Error("expected error for unknown level")
	}
}
