package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/hollow/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(ctx context.Context, e *domain.SceneEvent) {
			logger.InfoContext(ctx, "scene_enter", "run_id", e.RunID, "scene_id", e.SceneID)
		},
		OnSceneLeave: func(ctx context.Context, e *domain.SceneEvent) {
			logger.DebugContext(ctx, "scene_leave", "run_id", e.RunID, "scene_id", e.SceneID)
		},
		OnDialogStart: func(ctx context.Context, e *domain.DialogEvent) {
			logger.InfoContext(ctx, "dialog_start", "run_id", e.RunID, "dialog_id", e.DialogID)
		},
		OnDialogEnd: func(ctx context.Context, e *domain.DialogEvent) {
			logger.DebugContext(ctx, "dialog_end", "run_id", e.RunID, "dialog_id", e.DialogID)
		},
		OnPuzzleAttempt: func(ctx context.Context, e *domain.PuzzleEvent) {
			logger.InfoContext(ctx, "puzzle_attempt",
				"run_id", e.RunID,
				"puzzle_id", e.PuzzleID,
				"type", e.PuzzleType,
				"correct", e.Correct,
				"closed", e.Closed,
			)
		},
		OnGameOver: func(ctx context.Context, e *domain.GameOverEvent) {
			logger.WarnContext(ctx, "game_over", "run_id", e.RunID, "reason", e.Reason)
		},
	}
}
