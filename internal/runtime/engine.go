package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/hollow/internal/logging"
	"github.com/aretw0/hollow/pkg/domain"
)

var (
	// ErrGameOver is returned by operations that report errors when the run already ended.
	ErrGameOver = errors.New("game is over")
	// ErrNoActivePuzzle is returned when a solution is submitted outside the puzzle sub-state.
	ErrNoActivePuzzle = errors.New("no active puzzle")
	// ErrPuzzleMismatch is returned when a solution names a puzzle other than the open one.
	ErrPuzzleMismatch = errors.New("submitted puzzle is not the active puzzle")
)

// maxSceneHops bounds chained scene changes caused by triggers.
const maxSceneHops = 8

// Engine applies the game rules to GameState snapshots.
// It never mutates its input: every operation clones the state before changing it.
type Engine struct {
	content  *domain.Content
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	capacity int
	now      func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithNotificationCapacity overrides the notification queue bound declared by the content.
func WithNotificationCapacity(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.capacity = n
		}
	}
}

// WithClock sets the wall clock used to timestamp lifecycle events.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a rules engine over an immutable content repository.
func NewEngine(content *domain.Content, opts ...EngineOption) *Engine {
	if content == nil {
		content = domain.NewContent()
	}
	e := &Engine{
		content:  content,
		logger:   logging.NewNop(),
		capacity: content.Game.NotificationCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.capacity <= 0 {
		e.capacity = domain.DefaultNotificationCapacity
	}
	return e
}

// Content returns the repository the engine reads from.
func (e *Engine) Content() *domain.Content {
	return e.content
}

// NewGame builds the canonical initial snapshot: the configured player, starting inventory and
// flags, positioned in the start scene with its entry triggers already fired.
func (e *Engine) NewGame(ctx context.Context, runID string) (domain.GameState, error) {
	info := e.content.Game
	if _, ok := e.content.Scene(info.StartScene); !ok {
		return domain.GameState{}, fmt.Errorf("start scene %q: %w", info.StartScene, domain.ErrUnknownScene)
	}

	s := domain.NewGameState("", info.Player.Clamped())
	s.RunID = runID
	for k, v := range info.Flags {
		s.Flags[k] = domain.NormalizeValue(v)
	}
	for _, stack := range info.Inventory {
		e.addItem(&s, stack.ID, stack.Quantity)
	}

	e.enterScene(ctx, &s, info.StartScene, 0)
	return s, nil
}

// Apply folds effects over a copy of s in list order.
func (e *Engine) Apply(ctx context.Context, s domain.GameState, effects []domain.Effect) domain.GameState {
	next := s.Clone()
	e.apply(ctx, &next, effects, 0)
	return next
}

func (e *Engine) notify(s *domain.GameState, level domain.NotificationLevel, message string) {
	s.PushNotification(level, message, 0, e.capacity)
}

func (e *Engine) refuse(action string, s domain.GameState) domain.GameState {
	e.logger.Debug("action refused", "action", action, "mode", s.Mode(), "scene", s.CurrentSceneID)
	return s
}

func (e *Engine) base(t domain.EventType, runID string) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, RunID: runID}
}

func (e *Engine) emitSceneEnter(ctx context.Context, s *domain.GameState, sceneID string) {
	if e.hooks.OnSceneEnter != nil {
		e.hooks.OnSceneEnter(ctx, &domain.SceneEvent{EventBase: e.base(domain.EventSceneEnter, s.RunID), SceneID: sceneID})
	}
}

func (e *Engine) emitSceneLeave(ctx context.Context, s *domain.GameState, sceneID string) {
	if e.hooks.OnSceneLeave != nil {
		e.hooks.OnSceneLeave(ctx, &domain.SceneEvent{EventBase: e.base(domain.EventSceneLeave, s.RunID), SceneID: sceneID})
	}
}

func (e *Engine) emitDialogStart(ctx context.Context, s *domain.GameState, dialogID string) {
	if e.hooks.OnDialogStart != nil {
		e.hooks.OnDialogStart(ctx, &domain.DialogEvent{EventBase: e.base(domain.EventDialogStart, s.RunID), DialogID: dialogID})
	}
}

func (e *Engine) emitDialogEnd(ctx context.Context, s *domain.GameState, dialogID string) {
	if e.hooks.OnDialogEnd != nil {
		e.hooks.OnDialogEnd(ctx, &domain.DialogEvent{EventBase: e.base(domain.EventDialogEnd, s.RunID), DialogID: dialogID})
	}
}

func (e *Engine) emitPuzzleAttempt(ctx context.Context, s *domain.GameState, p *domain.Puzzle, correct, closed bool) {
	if e.hooks.OnPuzzleAttempt != nil {
		e.hooks.OnPuzzleAttempt(ctx, &domain.PuzzleEvent{
			EventBase:  e.base(domain.EventPuzzleAttempt, s.RunID),
			PuzzleID:   p.ID,
			PuzzleType: p.Type,
			Correct:    correct,
			Closed:     closed,
		})
	}
}

func (e *Engine) emitGameOver(ctx context.Context, s *domain.GameState) {
	if e.hooks.OnGameOver != nil {
		e.hooks.OnGameOver(ctx, &domain.GameOverEvent{EventBase: e.base(domain.EventGameOver, s.RunID), Reason: s.GameOverReason})
	}
}
