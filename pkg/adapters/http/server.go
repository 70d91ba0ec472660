package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	rxfsm "github.com/colintheshots/RxFsm"
	"github.com/colintheshots/RxFsm/internal/logging"
	"github.com/colintheshots/RxFsm/pkg/domain"
	"github.com/colintheshots/RxFsm/pkg/registry"
)

// Server exposes a machine and its event streams over a JSON API. The
// engine itself is single-threaded, so the server serializes every
// occurrence (and every state read) through one lock; hosts sharing the
// machine with other producers should pass the same lock to all of them.
type Server struct {
	fsm     *rxfsm.Fsm
	streams *registry.Registry
	lock    sync.Locker
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request handling errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLock shares an external lock with other occurrence producers
// (e.g. a Redis pump) feeding the same machine.
func WithLock(lock sync.Locker) Option {
	return func(s *Server) {
		if lock != nil {
			s.lock = lock
		}
	}
}

// NewHandler creates the HTTP handler for an activated machine.
func NewHandler(fsm *rxfsm.Fsm, streams *registry.Registry, opts ...Option) http.Handler {
	s := &Server{
		fsm:     fsm,
		streams: streams,
		lock:    &sync.Mutex{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Get("/states", s.handleStates)
	r.Get("/events", s.handleEvents)
	r.Post("/events/{event}", s.handleEmit)
	return r
}

type stateResponse struct {
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

type emitRequest struct {
	Target string `json:"target,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	resp := stateResponse{Path: s.fsm.CurrentPath(), Active: s.fsm.Active()}
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	paths := s.fsm.StatePaths()
	s.lock.Unlock()
	writeJSON(w, http.StatusOK, map[string][]string{"paths": paths})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"events": s.streams.Names()})
}

func (s *Server) handleEmit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "event")
	stream, ok := s.streams.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown event: " + name})
		return
	}

	var req emitRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}

	s.lock.Lock()
	err := stream.Emit(domain.NewOccurrence(req.Target))
	path := s.fsm.CurrentPath()
	s.lock.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrUnknownTargetPath) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("event dispatch failed", "event", name, "target", req.Target, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{Path: path, Active: s.fsm.Active()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
