// Package server streams optimization runs to browser clients: runs are
// started over HTTP and their per-iteration progress is broadcast on a
// websocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/layout-sim/layout-sim/internal/idgen"
	"github.com/layout-sim/layout-sim/internal/session"
	"github.com/layout-sim/layout-sim/sim"
	"github.com/layout-sim/layout-sim/sim/trace"
)

// Event types broadcast on /ws.
const (
	EventConnected = "connected"
	EventStarted   = "started"
	EventIteration = "iteration"
	EventDone      = "done"
	EventError     = "error"
)

const maxRequestBytes = 1 << 20

// Limits on a single run started over HTTP. The CLI is not bounded.
const (
	maxStations   = 64
	maxNumJobs    = 10_000
	maxIterations = 100_000
)

// Event is the websocket message envelope.
type Event struct {
	Type      string `json:"type"`
	RunID     string `json:"run_id,omitempty"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ResultPayload is the payload of a done event.
type ResultPayload struct {
	BestLayout   []string  `json:"best_layout"`
	BestScore    float64   `json:"best_score"`
	History      []float64 `json:"history"`
	InitialScore float64   `json:"initial_score"`
	Accepted     int       `json:"accepted"`
	Seed         int64     `json:"seed"`
}

// Server exposes the HTTP routes.
type Server struct {
	Router http.Handler
	hub    *Hub
	runs   sync.WaitGroup
}

// New creates a server and starts its hub.
func New() *Server {
	mux := http.NewServeMux()
	hub := NewHub()
	go hub.Run()

	s := &Server{hub: hub}
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/optimize", s.handleOptimize)
	s.Router = withCORS(mux)
	return s
}

// Close waits for in-flight runs and stops the hub.
func (s *Server) Close() {
	s.runs.Wait()
	s.hub.Stop()
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	serveWS(s.hub, w, r)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
		return
	}
	cfg, err := session.ParseJSON(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := cfg.ValidateForOptimize(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := checkLimits(cfg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID := idgen.New()
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.run(runID, cfg)
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "started", "run_id": runID})
}

// checkLimits bounds the work a single request can start, so every run
// finishes and Close can drain them.
func checkLimits(cfg session.Config) error {
	switch {
	case len(cfg.Stations) > maxStations:
		return fmt.Errorf("at most %d stations per run (got %d): %w", maxStations, len(cfg.Stations), sim.ErrInvalidArgument)
	case cfg.NumJobs > maxNumJobs:
		return fmt.Errorf("num_jobs must be <= %d (got %d): %w", maxNumJobs, cfg.NumJobs, sim.ErrInvalidArgument)
	case cfg.Iterations > maxIterations:
		return fmt.Errorf("iterations must be <= %d (got %d): %w", maxIterations, cfg.Iterations, sim.ErrInvalidArgument)
	}
	return nil
}

// run executes one optimization detached from the request context, so it is
// not cut short when the HTTP response is sent.
func (s *Server) run(runID string, cfg session.Config) {
	s.emit(runID, EventStarted, cfg)
	out, err := session.OptimizeWithID(context.Background(), runID, cfg, func(rec trace.IterationRecord) {
		s.emit(runID, EventIteration, rec)
	})
	if err != nil {
		logrus.Errorf("run %s failed: %v", runID, err)
		s.emit(runID, EventError, map[string]string{"error": err.Error()})
		return
	}
	s.emit(runID, EventDone, ResultPayload{
		BestLayout:   out.Result.BestLayout,
		BestScore:    out.Result.BestScore,
		History:      out.Result.History,
		InitialScore: out.InitialScore,
		Accepted:     out.Result.Accepted,
		Seed:         int64(out.Key),
	})
}

func (s *Server) emit(runID, typ string, payload any) {
	s.hub.BroadcastJSON(Event{Type: typ, RunID: runID, Payload: payload, Timestamp: nowISO()})
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
