package record

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ChicagoDave/tubenet/pkg/config"
	"github.com/ChicagoDave/tubenet/pkg/network"
	"github.com/ChicagoDave/tubenet/pkg/planner"
	"github.com/ChicagoDave/tubenet/pkg/scene"
)

// ErrReplayMismatch is returned when a replayed turn differs from the log.
var ErrReplayMismatch = errors.New("replay mismatch")

// Mismatch is one field that differs between the log and the replay.
type Mismatch struct {
	Turn     int    `json:"turn"`
	Field    string `json:"field"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayResult is the outcome of replaying a turn log.
type ReplayResult struct {
	Run        string     `json:"run"`
	Turns      int        `json:"turns"`
	Resources  int        `json:"resources"` // balance after the last replayed turn
	Mismatches []Mismatch `json:"mismatches"`

	// World is the replayed world after the last turn.
	World *network.World `json:"-"`
}

// Err returns nil if every turn matched.
func (r *ReplayResult) Err() error {
	if len(r.Mismatches) == 0 {
		return nil
	}
	m := r.Mismatches[0]
	return fmt.Errorf("%d fields differ, first at turn %d %s: %w", len(r.Mismatches), m.Turn, m.Field, ErrReplayMismatch)
}

// Replay feeds the recorded inputs of the log at path through a fresh
// planner built from cfg and compares each turn's output line, balance and
// world digest with what was recorded.
func Replay(path string, cfg *config.Config, logger *slog.Logger) (*ReplayResult, error) {
	entries, err := ReadLog(path)
	if err != nil {
		return nil, err
	}
	p, err := planner.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	res := &ReplayResult{Mismatches: []Mismatch{}}
	for _, e := range entries {
		if res.Run == "" {
			res.Run = e.Run
		}
		if e.Input == nil {
			return nil, fmt.Errorf("turn %d has no recorded input", e.Turn)
		}
		tr := p.PlayTurn(e.Input)
		res.Turns++
		res.Resources = tr.ResourcesAfter

		check := func(field, recorded, replayed string) {
			if recorded != replayed {
				res.Mismatches = append(res.Mismatches, Mismatch{Turn: e.Turn, Field: field, Recorded: recorded, Replayed: replayed})
			}
		}
		check("turn", fmt.Sprint(e.Turn), fmt.Sprint(tr.Turn))
		check("line", e.Line, tr.Line)
		check("resources_after", fmt.Sprint(e.ResourcesAfter), fmt.Sprint(tr.ResourcesAfter))
		check("digest", e.Digest, scene.Digest(p.World()))
	}
	res.World = p.World()
	return res, nil
}
