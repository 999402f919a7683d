package config

import "github.com/ChicagoDave/tubenet/pkg/cost"

// Config is the bot's full configuration as read from YAML.
type Config struct {
	Prices   cost.Prices `yaml:"prices" json:"prices"`
	Geometry Geometry    `yaml:"geometry" json:"geometry"`
	Planner  Planner     `yaml:"planner" json:"planner"`
	Log      Log         `yaml:"log" json:"log"`
	Record   Record      `yaml:"record" json:"record"`
}

// Geometry controls the tube validity checks.
type Geometry struct {
	Epsilon  float64 `yaml:"epsilon" json:"epsilon"`
	Crossing string  `yaml:"crossing" json:"crossing"` // strict | legacy
}

// Planner tunes the per-turn heuristic.
type Planner struct {
	// TeleporterFallback builds a teleporter when geometry forbids a tube.
	TeleporterFallback bool `yaml:"teleporter_fallback" json:"teleporter_fallback"`
	// UpgradeSurplus is the balance kept back when upgrading full tubes.
	// Zero disables upgrades.
	UpgradeSurplus int `yaml:"upgrade_surplus" json:"upgrade_surplus"`
}

// Log selects the stderr log output.
type Log struct {
	Level  string `yaml:"level" json:"level"`   // debug | info | warn | error
	Format string `yaml:"format" json:"format"` // text | json
}

// Record controls the turn recorder.
type Record struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir" json:"dir"`
	Index   string `yaml:"index" json:"index"` // sqlite path, empty disables the index
}
