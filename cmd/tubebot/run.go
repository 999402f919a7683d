package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ChicagoDave/tubenet/internal/record"
	"github.com/ChicagoDave/tubenet/internal/server"
	"github.com/ChicagoDave/tubenet/pkg/analytics"
	"github.com/ChicagoDave/tubenet/pkg/config"
	"github.com/ChicagoDave/tubenet/pkg/planner"
	"github.com/ChicagoDave/tubenet/pkg/protocol"
	"github.com/ChicagoDave/tubenet/pkg/scene"
	"github.com/ChicagoDave/tubenet/pkg/validation"
)

// loadAndValidate loads the config and runs its validation.
func loadAndValidate(path string) (*config.Config, *validation.Report, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, validation.ValidateConfig(cfg), nil
}

func runValidate(path string) error {
	_, report, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	printValidationReport(os.Stdout, report)
	return report.Err()
}

// runPlay is the game loop: one output line per input turn until the input
// ends. A malformed turn ends the game with an error.
func runPlay(ctx context.Context, path string, in io.Reader, out, errOut io.Writer) error {
	cfg, report, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(errOut, report)
		return report.Err()
	}

	logger, err := cfg.Log.NewLogger(errOut)
	if err != nil {
		return err
	}
	p, err := planner.New(cfg, logger)
	if err != nil {
		return err
	}

	var rec *record.Recorder
	if cfg.Record.Enabled {
		rec, err = record.NewRecorder(ctx, cfg.Record, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Error("closing recorder", "err", err)
			}
		}()
	}

	reader := protocol.NewReader(in)
	w := bufio.NewWriter(out)
	for {
		t, err := reader.ReadTurn()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("turn %d: %w", p.Turn()+1, err)
		}

		res := p.PlayTurn(t)
		if _, err := fmt.Fprintln(w, res.Line); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if rec != nil {
			if err := rec.Record(ctx, t, res, scene.Digest(p.World())); err != nil {
				logger.Warn("recording turn", "turn", res.Turn, "err", err)
			}
		}
	}

	summary, supply := analytics.Resolve(p.World())
	logger.Info("game over",
		"turns", p.Turn(),
		"resources", p.Resources(),
		"cities", len(summary.Cities),
		"coverage", summary.Coverage,
		"stranded", summary.StrandedDemand,
		"warnings", len(supply.Warnings))
	return nil
}

func runReplay(path, logPath, scenePath string) error {
	cfg, report, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(os.Stderr, report)
		return report.Err()
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	// The planner's per-turn lines are discarded; only the verdict is logged.
	res, err := record.Replay(logPath, cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}
	logger.Info("replayed", "log", logPath, "run", res.Run, "turns", res.Turns, "mismatches", len(res.Mismatches))

	summary, supply := analytics.Resolve(res.World)
	supply.Merge(scene.ValidateWorld(res.World))
	printReplayReport(os.Stdout, res, summary)
	printValidationReport(os.Stdout, supply)

	if scenePath != "" {
		if err := writeScene(scenePath, res); err != nil {
			return err
		}
	}
	return res.Err()
}

func writeScene(path string, res *record.ReplayResult) error {
	graph := scene.Assemble(res.World, res.Turns, res.Resources)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(graph)
}

func runServe(indexPath string, port int) error {
	idx, err := record.OpenIndex(indexPath)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer idx.Close()
	return server.New(idx, port).Start()
}
