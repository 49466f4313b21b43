package hollow

import (
	"context"

	"github.com/aretw0/hollow/pkg/domain"
)

func (e *Engine) state(ctx context.Context, a Action) (domain.GameState, error) {
	out, err := e.Dispatch(ctx, a)
	return out.State, err
}

// TryExit dispatches TryExit.
func (e *Engine) TryExit(ctx context.Context, exitID string) (domain.GameState, error) {
	return e.state(ctx, TryExit{ExitID: exitID})
}

// Interact dispatches Interact.
func (e *Engine) Interact(ctx context.Context, elementID string) (domain.GameState, error) {
	return e.state(ctx, Interact{ElementID: elementID})
}

// StartDialog dispatches StartDialog.
func (e *Engine) StartDialog(ctx context.Context, dialogID string) (domain.GameState, error) {
	return e.state(ctx, StartDialog{DialogID: dialogID})
}

// AdvanceDialog continues the open dialog without choosing a response.
func (e *Engine) AdvanceDialog(ctx context.Context) (domain.GameState, error) {
	return e.state(ctx, AdvanceDialog{})
}

// ChooseResponse selects a response of the current dialog node.
func (e *Engine) ChooseResponse(ctx context.Context, index int) (domain.GameState, error) {
	return e.state(ctx, AdvanceDialog{Response: &index})
}

// UseItem dispatches UseItem.
func (e *Engine) UseItem(ctx context.Context, itemID string) (domain.GameState, error) {
	return e.state(ctx, UseItem{ItemID: itemID})
}

// StartPuzzle dispatches StartPuzzle.
func (e *Engine) StartPuzzle(ctx context.Context, puzzleID string) (domain.GameState, error) {
	return e.state(ctx, StartPuzzle{PuzzleID: puzzleID})
}

// SubmitPuzzleSolution attempts the open puzzle and reports the outcome.
func (e *Engine) SubmitPuzzleSolution(ctx context.Context, puzzleID string, sub domain.Solution) (domain.GameState, domain.AttemptResult, error) {
	out, err := e.Dispatch(ctx, SubmitPuzzleSolution{PuzzleID: puzzleID, Solution: sub})
	var res domain.AttemptResult
	if out.Attempt != nil {
		res = *out.Attempt
	}
	return out.State, res, err
}

// CancelPuzzle dispatches CancelPuzzle.
func (e *Engine) CancelPuzzle(ctx context.Context) (domain.GameState, error) {
	return e.state(ctx, CancelPuzzle{})
}

// DismissNotification dispatches DismissNotification.
func (e *Engine) DismissNotification(ctx context.Context, id string) (domain.GameState, error) {
	return e.state(ctx, DismissNotification{ID: id})
}

// AdvanceTime dispatches AdvanceTime.
func (e *Engine) AdvanceTime(ctx context.Context, elapsedMs int64) (domain.GameState, error) {
	return e.state(ctx, AdvanceTime{ElapsedMs: elapsedMs})
}

// Restart dispatches Restart.
func (e *Engine) Restart(ctx context.Context) (domain.GameState, error) {
	return e.state(ctx, Restart{})
}
