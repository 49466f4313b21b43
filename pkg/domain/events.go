package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSceneEnter    EventType = "scene_enter"
	EventSceneLeave    EventType = "scene_leave"
	EventDialogStart   EventType = "dialog_start"
	EventDialogEnd     EventType = "dialog_end"
	EventPuzzleAttempt EventType = "puzzle_attempt"
	EventGameOver      EventType = "game_over"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
}

// SceneEvent represents entry into or exit from a scene.
type SceneEvent struct {
	EventBase
	SceneID string `json:"scene_id"`
}

// DialogEvent represents a dialog opening or closing.
type DialogEvent struct {
	EventBase
	DialogID string `json:"dialog_id"`
}

// PuzzleEvent represents a solution submission.
type PuzzleEvent struct {
	EventBase
	PuzzleID   string     `json:"puzzle_id"`
	PuzzleType PuzzleType `json:"puzzle_type"`
	Correct    bool       `json:"correct"`
	Closed     bool       `json:"closed"`
}

// GameOverEvent is emitted once when a playthrough ends.
type GameOverEvent struct {
	EventBase
	Reason string `json:"reason"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnSceneEnter    func(context.Context, *SceneEvent)
	OnSceneLeave    func(context.Context, *SceneEvent)
	OnDialogStart   func(context.Context, *DialogEvent)
	OnDialogEnd     func(context.Context, *DialogEvent)
	OnPuzzleAttempt func(context.Context, *PuzzleEvent)
	OnGameOver      func(context.Context, *GameOverEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSceneEnter:    chain(h.OnSceneEnter, other.OnSceneEnter),
		OnSceneLeave:    chain(h.OnSceneLeave, other.OnSceneLeave),
		OnDialogStart:   chain(h.OnDialogStart, other.OnDialogStart),
		OnDialogEnd:     chain(h.OnDialogEnd, other.OnDialogEnd),
		OnPuzzleAttempt: chain(h.OnPuzzleAttempt, other.OnPuzzleAttempt),
		OnGameOver:      chain(h.OnGameOver, other.OnGameOver),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
