// Package record persists played turns: a zstd-compressed JSONL log per run,
// an optional SQLite index over all runs, and a replay check that feeds a
// log back through a fresh planner.
package record

import (
	"github.com/ChicagoDave/tubenet/pkg/planner"
	"github.com/ChicagoDave/tubenet/pkg/protocol"
	"github.com/ChicagoDave/tubenet/pkg/schedule"
)

// Entry is one recorded turn.
type Entry struct {
	Run             string              `json:"run"`
	Turn            int                 `json:"turn"`
	Input           *protocol.Turn      `json:"input"`
	Line            string              `json:"line"`
	ResourcesBefore int                 `json:"resources_before"`
	ResourcesAfter  int                 `json:"resources_after"`
	Code            int                 `json:"code"`
	Stalled         bool                `json:"stalled,omitempty"`
	Discarded       []planner.Discarded `json:"discarded,omitempty"`
	Deferred        []schedule.Action   `json:"deferred,omitempty"`
	Digest          string              `json:"digest"`
	ElapsedMicros   int64               `json:"elapsed_us"`
}

// NewEntry captures a played turn.
func NewEntry(run string, in *protocol.Turn, res *planner.TurnResult, digest string) Entry {
	return Entry{
		Run:             run,
		Turn:            res.Turn,
		Input:           in,
		Line:            res.Line,
		ResourcesBefore: res.ResourcesBefore,
		ResourcesAfter:  res.ResourcesAfter,
		Code:            res.Code,
		Stalled:         res.Stalled,
		Discarded:       res.Discarded,
		Deferred:        res.Deferred,
		Digest:          digest,
		ElapsedMicros:   res.Elapsed.Microseconds(),
	}
}
