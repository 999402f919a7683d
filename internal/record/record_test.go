package record

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ChicagoDave/tubenet/pkg/config"
	"github.com/ChicagoDave/tubenet/pkg/planner"
	"github.com/ChicagoDave/tubenet/pkg/protocol"
	"github.com/ChicagoDave/tubenet/pkg/scene"
)

func sampleGame() []*protocol.Turn {
	return []*protocol.Turn{
		{Resources: 500, Buildings: []protocol.NewBuilding{
			{Kind: 0, ID: 0, X: 0, Y: 0, Categories: []int{5, 5, 5}},
			{Kind: 5, ID: 1, X: 10, Y: 0},
		}},
		{Resources: 2000},
		{Resources: 1500, Routes: []protocol.Route{{A: 0, B: 1, Capacity: 1}}},
	}
}

// recordGame plays the sample game with cfg and records every turn.
func recordGame(t *testing.T, cfg *config.Config) *Recorder {
	t.Helper()
	ctx := context.Background()
	p, err := planner.New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := NewRecorder(ctx, cfg.Record, nil)
	if err != nil {
		t.Fatalf("creating recorder: %v", err)
	}
	for _, in := range sampleGame() {
		res := p.PlayTurn(in)
		if err := rec.Record(ctx, in, res, scene.Digest(p.World())); err != nil {
			t.Fatalf("recording turn %d: %v", res.Turn, err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("closing recorder: %v", err)
	}
	return rec
}

func testConfig(t *testing.T, withIndex bool) *config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Record.Enabled = true
	cfg.Record.Dir = filepath.Join(dir, "runs")
	if withIndex {
		cfg.Record.Index = filepath.Join(dir, "index.db")
	}
	return cfg
}

func TestRecorderWritesLog(t *testing.T) {
	cfg := testConfig(t, false)
	rec := recordGame(t, cfg)

	if want := filepath.Join(cfg.Record.Dir, "turns-"+rec.Run()+".jsonl.zst"); rec.Path() != want {
		t.Errorf("expected path %s, got %s", want, rec.Path())
	}
	entries, err := ReadLog(rec.Path())
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Turn != i+1 || e.Run != rec.Run() {
			t.Errorf("entry %d: unexpected turn %d run %s", i, e.Turn, e.Run)
		}
		if e.Input == nil || len(e.Digest) != 64 {
			t.Errorf("entry %d: missing input or digest", i)
		}
	}
	if entries[0].Line != "WAIT" {
		t.Errorf("expected WAIT on turn 1, got %q", entries[0].Line)
	}
	if len(entries[0].Deferred) != 2 {
		t.Errorf("expected 2 deferred actions on turn 1, got %v", entries[0].Deferred)
	}
	if entries[1].Line != "TUBE 0 1;POD 0 0 1 0;WAIT" || entries[1].ResourcesAfter != 900 {
		t.Errorf("unexpected turn 2: %q with %d left", entries[1].Line, entries[1].ResourcesAfter)
	}
	if len(entries[0].Input.Buildings) != 2 || entries[0].Input.Buildings[0].Categories[2] != 5 {
		t.Errorf("input not preserved: %+v", entries[0].Input)
	}
}

func TestReadLogMissingFile(t *testing.T) {
	if _, err := ReadLog(filepath.Join(t.TempDir(), "nope.jsonl.zst")); err == nil {
		t.Error("expected error for a missing log")
	}
}

func TestReplayMatches(t *testing.T) {
	cfg := testConfig(t, false)
	rec := recordGame(t, cfg)

	res, err := Replay(rec.Path(), cfg, nil)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if res.Turns != 3 || res.Run != rec.Run() {
		t.Errorf("unexpected replay result %+v", res)
	}
	if err := res.Err(); err != nil {
		t.Errorf("expected identical replay, got %v: %+v", err, res.Mismatches)
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	cfg := testConfig(t, false)
	rec := recordGame(t, cfg)

	// A pricier pod no longer fits in turn 2's budget.
	changed := config.Default()
	changed.Prices.Pod = 2000
	res, err := Replay(rec.Path(), changed, nil)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !errors.Is(res.Err(), ErrReplayMismatch) {
		t.Fatalf("expected ErrReplayMismatch, got %v", res.Err())
	}
	first := res.Mismatches[0]
	if first.Turn != 2 || first.Field != "line" {
		t.Errorf("expected first mismatch on turn 2 line, got %+v", first)
	}
}

func TestIndexQueries(t *testing.T) {
	cfg := testConfig(t, true)
	rec := recordGame(t, cfg)
	ctx := context.Background()

	idx, err := OpenIndex(cfg.Record.Index)
	if err != nil {
		t.Fatalf("opening index: %v", err)
	}
	defer idx.Close()

	runs, err := idx.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != rec.Run() || runs[0].Turns != 3 || runs[0].Path != rec.Path() {
		t.Fatalf("unexpected runs %+v", runs)
	}

	rows, err := idx.Turns(ctx, rec.Run())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[1].Line != "TUBE 0 1;POD 0 0 1 0;WAIT" {
		t.Errorf("unexpected turn rows %+v", rows)
	}
	if runs[0].Resources != rows[2].ResourcesAfter {
		t.Errorf("expected run balance %d, got %d", rows[2].ResourcesAfter, runs[0].Resources)
	}

	e, err := idx.Turn(ctx, rec.Run(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if e.ResourcesAfter != 900 || e.Input == nil {
		t.Errorf("unexpected entry %+v", e)
	}

	if _, err := idx.Turn(ctx, rec.Run(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown turn, got %v", err)
	}
	if _, err := idx.Turns(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown run, got %v", err)
	}
}

func TestOpenIndexEmptyPath(t *testing.T) {
	if _, err := OpenIndex(""); err == nil {
		t.Error("expected error for empty path")
	}
}
