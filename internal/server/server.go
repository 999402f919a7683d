package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/ChicagoDave/tubenet/internal/record"
)

// Store is the read side of the run index.
type Store interface {
	Runs(ctx context.Context) ([]record.RunInfo, error)
	Turns(ctx context.Context, run string) ([]record.TurnRow, error)
	Turn(ctx context.Context, run string, turn int) (*record.Entry, error)
}

// Server is the read-only inspection server over recorded runs.
type Server struct {
	store Store
	port  int
}

// New creates a server backed by store.
func New(store Store, port int) *Server {
	return &Server{
		store: store,
		port:  port,
	}
}

// Handler returns the routes without starting a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/runs/{id}/turns", s.handleTurns)
	mux.HandleFunc("GET /api/runs/{id}/turns/{turn}", s.handleTurn)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("tubebot inspection server starting on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>tubebot</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>tubebot</h1>
<p>Recorded runs are listed at <a style="color:#8cf" href="/api/runs">/api/runs</a>.</p>
</div>
</body></html>`)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.Runs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, runs)
}

func (s *Server) handleTurns(w http.ResponseWriter, r *http.Request) {
	turns, err := s.store.Turns(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, turns)
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	turn, err := strconv.Atoi(r.PathValue("turn"))
	if err != nil || turn < 1 {
		http.Error(w, "turn must be a positive integer", http.StatusBadRequest)
		return
	}
	entry, err := s.store.Turn(r.Context(), r.PathValue("id"), turn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, entry)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, record.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.Printf("query failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
