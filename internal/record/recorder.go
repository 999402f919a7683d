package record

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ChicagoDave/tubenet/pkg/config"
	"github.com/ChicagoDave/tubenet/pkg/planner"
	"github.com/ChicagoDave/tubenet/pkg/protocol"
)

// Recorder writes the turns of one run.
type Recorder struct {
	run    string
	path   string
	log    *logWriter
	index  *Index
	logger *slog.Logger
}

// NewRecorder starts a run under cfg.Dir with a fresh run id. When
// cfg.Index is set the run is also registered in the SQLite index.
func NewRecorder(ctx context.Context, cfg config.Record, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	run := uuid.NewString()
	path := filepath.Join(cfg.Dir, LogName(run))

	lw, err := createLog(path)
	if err != nil {
		return nil, fmt.Errorf("creating turn log: %w", err)
	}
	r := &Recorder{run: run, path: path, log: lw, logger: logger}

	if cfg.Index != "" {
		idx, err := OpenIndex(cfg.Index)
		if err != nil {
			_ = lw.Close()
			return nil, fmt.Errorf("opening index: %w", err)
		}
		if err := idx.AddRun(ctx, run, path, time.Now()); err != nil {
			_ = idx.Close()
			_ = lw.Close()
			return nil, err
		}
		r.index = idx
	}
	logger.Info("recording run", "run", run, "path", path, "index", cfg.Index)
	return r, nil
}

// Run returns the run id.
func (r *Recorder) Run() string { return r.run }

// Path returns the turn log path.
func (r *Recorder) Path() string { return r.path }

// Record appends a played turn. A failing index write is logged and does
// not fail the call; the log is authoritative.
func (r *Recorder) Record(ctx context.Context, in *protocol.Turn, res *planner.TurnResult, digest string) error {
	e := NewEntry(r.run, in, res, digest)
	if err := r.log.Write(e); err != nil {
		return fmt.Errorf("writing turn %d: %w", e.Turn, err)
	}
	if r.index != nil {
		if err := r.index.AddTurn(ctx, e); err != nil {
			r.logger.Warn("index write failed", "run", r.run, "turn", e.Turn, "err", err)
		}
	}
	return nil
}

// Close flushes the log and closes the index.
func (r *Recorder) Close() error {
	err := r.log.Close()
	if r.index != nil {
		if cerr := r.index.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
