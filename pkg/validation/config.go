package validation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ChicagoDave/tubenet/pkg/config"
	"github.com/ChicagoDave/tubenet/pkg/geo"
)

// ValidateConfig checks a loaded configuration before the game starts.
func ValidateConfig(c *config.Config) *Report {
	r := NewReport()

	validatePrices(c, r)
	validateGeometry(c, r)
	validatePlanner(c, r)
	validateLog(c, r)
	validateRecord(c, r)

	return r
}

func validatePrices(c *config.Config, r *Report) {
	p := c.Prices
	positive := []struct {
		path  string
		value int
	}{
		{"prices.tube_per_unit", p.TubePerUnit},
		{"prices.teleporter", p.Teleporter},
		{"prices.pod", p.Pod},
		{"prices.max_tube_capacity", p.MaxTubeCapacity},
	}
	for _, f := range positive {
		if f.value <= 0 {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s must be greater than 0", f.path),
				Path:        f.path,
				ActualValue: f.value,
				Expected:    "> 0",
			})
		}
	}

	if p.PodRefund < 0 || p.PodRefund > p.Pod {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("pod_refund %d must be between 0 and the pod price %d", p.PodRefund, p.Pod),
			Path:        "prices.pod_refund",
			ActualValue: p.PodRefund,
			Expected:    fmt.Sprintf("0-%d", p.Pod),
		})
	}

	if p.Teleporter > 0 && p.Teleporter < p.Pod {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "teleporter is cheaper than a pod; the planner will fall back to teleporters aggressively",
			Path:        "prices.teleporter",
			ActualValue: p.Teleporter,
		})
	}
}

func validateGeometry(c *config.Config, r *Report) {
	g := c.Geometry
	if g.Epsilon <= 0 || g.Epsilon >= 1 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("epsilon %g is outside valid range (0-1)", g.Epsilon),
			Path:        "geometry.epsilon",
			ActualValue: g.Epsilon,
			Expected:    "0 < epsilon < 1",
		})
	}

	mode, err := geo.ParseCrossingMode(g.Crossing)
	if err != nil {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     err.Error(),
			Path:        "geometry.crossing",
			ActualValue: g.Crossing,
			Expected:    "strict | legacy",
		})
		return
	}
	if mode == geo.CrossingLegacy {
		r.AddInfo(Result{
			Level:       LevelConfig,
			Message:     "legacy crossing check bounds only the candidate tube",
			Path:        "geometry.crossing",
			Suggestions: []string{"Use strict unless comparing against recorded judge runs"},
		})
	}
}

func validatePlanner(c *config.Config, r *Report) {
	if c.Planner.UpgradeSurplus < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "planner.upgrade_surplus must not be negative",
			Path:        "planner.upgrade_surplus",
			ActualValue: c.Planner.UpgradeSurplus,
			Expected:    ">= 0 (0 disables upgrades)",
		})
	}
	if !c.Planner.TeleporterFallback {
		r.AddInfo(Result{
			Level:   LevelConfig,
			Message: "teleporter fallback disabled; pads blocked by geometry stay isolated",
			Path:    "planner.teleporter_fallback",
		})
	}
}

func validateLog(c *config.Config, r *Report) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("unknown log level %q", c.Log.Level),
			Path:        "log.level",
			ActualValue: c.Log.Level,
			Expected:    "debug | info | warn | error",
		})
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("unknown log format %q", c.Log.Format),
			Path:        "log.format",
			ActualValue: c.Log.Format,
			Expected:    "text | json",
		})
	}
}

func validateRecord(c *config.Config, r *Report) {
	if c.Record.Enabled && c.Record.Dir == "" {
		r.AddError(Result{
			Level:    LevelConfig,
			Message:  "record.dir is required when recording is enabled",
			Path:     "record.dir",
			Expected: "a writable directory",
		})
	}
	if !c.Record.Enabled && c.Record.Index != "" {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "record.index is ignored while recording is disabled",
			Path:        "record.index",
			ActualValue: c.Record.Index,
		})
	}
}
