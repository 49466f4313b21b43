package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/internal/logging"
	"github.com/aretw0/hollow/pkg/domain"
)

// maxActionBytes bounds a POST /actions body.
const maxActionBytes = 64 << 10

// Engine is the part of the game facade the API serves.
type Engine interface {
	Content() *domain.Content
	State() domain.GameState
	View() hollow.View
	Hint(puzzleID string) (string, bool)
	Dispatch(ctx context.Context, a hollow.Action) (hollow.Outcome, error)
	Subscribe(fn func(domain.GameState)) (unsubscribe func())
}

// Server exposes one playthrough over JSON and server-sent events.
type Server struct {
	engine  Engine
	streams *StreamManager
	logger  *slog.Logger
	metrics http.Handler

	mu          sync.Mutex
	last        domain.GameState
	unsubscribe func()
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics mounts a metrics handler on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer subscribes to the engine so every state change is streamed to /events.
// Close releases the subscription.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:  engine,
		streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams.logger = s.logger
	s.last = engine.State()
	s.unsubscribe = engine.Subscribe(s.onState)
	return s
}

// Close stops streaming state changes.
func (s *Server) Close() {
	s.unsubscribe()
}

func (s *Server) onState(next domain.GameState) {
	s.mu.Lock()
	prev := s.last
	s.last = next
	s.mu.Unlock()

	diff := domain.Diff(&prev, &next)
	if diff == nil {
		return
	}
	data, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("diff encode failed", "error", err)
		return
	}
	s.streams.Broadcast(string(data))
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/game", s.GetGame)
	r.Get("/state", s.GetState)
	r.Get("/view", s.GetView)
	r.Get("/hint", s.GetHint)
	r.Post("/actions", s.PostAction)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActionResponse is the body returned by POST /actions.
type ActionResponse struct {
	State   domain.GameState      `json:"state"`
	Attempt *domain.AttemptResult `json:"attempt,omitempty"`
	Diff    *domain.StateDiff     `json:"diff,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PostAction handles POST /actions.
func (s *Server) PostAction(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxActionBytes)).Decode(&raw); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	action, err := hollow.DecodeAction(raw)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.engine.Dispatch(r.Context(), action)
	if err != nil {
		switch {
		case errors.Is(err, hollow.ErrNoActivePuzzle), errors.Is(err, hollow.ErrPuzzleMismatch):
			s.fail(w, http.StatusConflict, err)
		default:
			s.logger.Error("dispatch failed", "action", action.Type(), "error", err)
			s.fail(w, http.StatusInternalServerError, err)
		}
		return
	}

	s.logger.Debug("action dispatched", "action", action.Type(), "scene", out.State.CurrentSceneID)
	s.reply(w, http.StatusOK, ActionResponse{
		State:   out.State,
		Attempt: out.Attempt,
		Diff:    domain.Diff(&out.Previous, &out.State),
	})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.reply(w, http.StatusOK, s.engine.State())
}

// GetView handles GET /view.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	s.reply(w, http.StatusOK, s.engine.View())
}

// GetGame handles GET /game.
func (s *Server) GetGame(w http.ResponseWriter, r *http.Request) {
	s.reply(w, http.StatusOK, s.engine.Content().Game)
}

// GetHint handles GET /hint?puzzle_id=. Without an id the open puzzle is used.
func (s *Server) GetHint(w http.ResponseWriter, r *http.Request) {
	hint, ok := s.engine.Hint(r.URL.Query().Get("puzzle_id"))
	if !ok {
		s.fail(w, http.StatusNotFound, errors.New("no hint available"))
		return
	}
	s.reply(w, http.StatusOK, map[string]string{"hint": hint})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.reply(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.reply(w, http.StatusOK, map[string]string{
		"app":     "hollow-http",
		"version": strings.TrimSpace(hollow.Version),
		"game":    s.engine.Content().Game.Title,
	})
}

func (s *Server) reply(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status < http.StatusInternalServerError {
		s.logger.Warn("request rejected", "status", status, "error", err)
	}
	s.reply(w, status, ErrorResponse{Error: err.Error()})
}

// StreamManager fans state diffs out to the connected SSE clients.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      logging.NewNop(),
	}
}

func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Broadcast never blocks: a client whose buffer is full misses the message.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("sse client buffer full, dropping message")
		}
	}
}

// SubscribeEvents handles GET /events (SSE). The optional watch parameter is a comma list of
// scene, mode, flags, player, inventory, dialog, puzzle, notifications and game_over; diffs
// touching none of them are skipped.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.fail(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	var watch []string
	if q := r.URL.Query().Get("watch"); q != "" {
		for _, f := range strings.Split(q, ",") {
			watch = append(watch, strings.TrimSpace(f))
		}
	}

	ch, cancel := s.streams.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("sse client connected", "watch", watch)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("sse client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !watched(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func watched(msg string, fields []string) bool {
	var diff domain.StateDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range fields {
		switch field {
		case "scene":
			if diff.CurrentSceneID != nil || len(diff.VisitedAppended) > 0 {
				return true
			}
		case "mode":
			if diff.Mode != nil {
				return true
			}
		case "flags":
			if len(diff.Flags) > 0 {
				return true
			}
		case "player":
			if diff.Player != nil {
				return true
			}
		case "inventory":
			if diff.Inventory != nil {
				return true
			}
		case "dialog":
			if diff.ActiveDialog != nil {
				return true
			}
		case "puzzle":
			if diff.ActivePuzzle != nil {
				return true
			}
		case "notifications":
			if diff.Notifications != nil {
				return true
			}
		case "game_over":
			if diff.GameOver != nil {
				return true
			}
		}
	}
	return false
}
