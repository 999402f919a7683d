package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by index lookups for an unknown run or turn.
var ErrNotFound = errors.New("not found")

// Index is a SQLite catalogue of recorded runs and their turns. The JSONL
// logs stay the source of truth; the index only serves queries.
type Index struct {
	db *sql.DB
}

// RunInfo summarizes a recorded run.
type RunInfo struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	StartedAt string `json:"started_at"`
	Turns     int    `json:"turns"`
	Resources int    `json:"resources"` // balance after the last turn
}

// TurnRow is the indexed summary of one turn.
type TurnRow struct {
	Turn            int    `json:"turn"`
	ResourcesBefore int    `json:"resources_before"`
	ResourcesAfter  int    `json:"resources_after"`
	Code            int    `json:"code"`
	Line            string `json:"line"`
	Digest          string `json:"digest"`
	ElapsedMicros   int64  `json:"elapsed_us"`
}

// OpenIndex opens or creates the index at path.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty index path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			turn INTEGER NOT NULL,
			resources_before INTEGER NOT NULL,
			resources_after INTEGER NOT NULL,
			code INTEGER NOT NULL,
			line TEXT NOT NULL,
			digest TEXT NOT NULL,
			elapsed_us INTEGER NOT NULL,
			entry TEXT NOT NULL,
			PRIMARY KEY (run_id, turn)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// AddRun registers a run and the path of its turn log.
func (x *Index) AddRun(ctx context.Context, run, path string, startedAt time.Time) error {
	_, err := x.db.ExecContext(ctx,
		`INSERT INTO runs(id, path, started_at) VALUES(?, ?, ?)`,
		run, path, startedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("indexing run %s: %w", run, err)
	}
	return nil
}

// AddTurn indexes one entry. Re-indexing a turn replaces it.
func (x *Index) AddTurn(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = x.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO turns(run_id, turn, resources_before, resources_after, code, line, digest, elapsed_us, entry)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Run, e.Turn, e.ResourcesBefore, e.ResourcesAfter, e.Code, e.Line, e.Digest, e.ElapsedMicros, string(data))
	if err != nil {
		return fmt.Errorf("indexing turn %d of run %s: %w", e.Turn, e.Run, err)
	}
	return nil
}

// Runs lists every run, oldest first.
func (x *Index) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := x.db.QueryContext(ctx, `
		SELECT r.id, r.path, r.started_at, COUNT(t.turn),
			COALESCE((SELECT resources_after FROM turns WHERE run_id = r.id ORDER BY turn DESC LIMIT 1), 0)
		FROM runs r LEFT JOIN turns t ON t.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at, r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RunInfo{}
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.ID, &r.Path, &r.StartedAt, &r.Turns, &r.Resources); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Turns lists the indexed turns of a run in order.
func (x *Index) Turns(ctx context.Context, run string) ([]TurnRow, error) {
	var exists int
	if err := x.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, run).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %s: %w", run, ErrNotFound)
	}

	rows, err := x.db.QueryContext(ctx, `
		SELECT turn, resources_before, resources_after, code, line, digest, elapsed_us
		FROM turns WHERE run_id = ? ORDER BY turn`, run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TurnRow{}
	for rows.Next() {
		var t TurnRow
		if err := rows.Scan(&t.Turn, &t.ResourcesBefore, &t.ResourcesAfter, &t.Code, &t.Line, &t.Digest, &t.ElapsedMicros); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Turn returns the full recorded entry of one turn.
func (x *Index) Turn(ctx context.Context, run string, turn int) (*Entry, error) {
	var data string
	err := x.db.QueryRowContext(ctx,
		`SELECT entry FROM turns WHERE run_id = ? AND turn = ?`, run, turn).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s turn %d: %w", run, turn, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return nil, fmt.Errorf("decoding run %s turn %d: %w", run, turn, err)
	}
	return &e, nil
}
