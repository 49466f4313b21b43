package runtime

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/aretw0/hollow/pkg/domain"
)

const (
	defaultSolvedMessage = "You have already solved this."
	defaultFailedMessage = "The mechanism locks. You will have to start over."
)

// Verify checks a submission against the puzzle's solution descriptor.
func Verify(p *domain.Puzzle, sub domain.Solution) bool {
	if p == nil {
		return false
	}
	switch p.Type {
	case domain.PuzzleSequence, domain.PuzzleRune:
		return len(p.Sequence) > 0 && slices.Equal(sub.Symbols, p.Sequence)

	case domain.PuzzleCode, domain.PuzzleRiddle:
		got := normalizeAnswer(sub.Text)
		if got == "" {
			return false
		}
		if got == normalizeAnswer(p.Answer) {
			return true
		}
		for _, alt := range p.Alternates {
			if got == normalizeAnswer(alt) {
				return true
			}
		}
		return false

	case domain.PuzzlePattern:
		return len(p.Pattern) > 0 && slices.Equal(sub.Indices, p.Pattern)

	case domain.PuzzleCombination:
		if p.Slots > 0 && len(sub.Symbols) != p.Slots {
			return false
		}
		return len(p.Sequence) > 0 && slices.Equal(sub.Symbols, p.Sequence)

	case domain.PuzzleSacrifice:
		return verifySacrifice(p, sub.Selection)

	default:
		return false
	}
}

// verifySacrifice requires the distinct selected offerings to sum exactly to the target.
func verifySacrifice(p *domain.Puzzle, selection []string) bool {
	picked := slices.Clone(selection)
	slices.Sort(picked)
	picked = slices.Compact(picked)
	if len(picked) == 0 {
		return false
	}
	if p.MaxSelections > 0 && len(picked) > p.MaxSelections {
		return false
	}
	sum := 0
	for _, id := range picked {
		v, ok := p.Offerings[id]
		if !ok {
			return false
		}
		sum += v
	}
	return sum == p.TargetValue
}

// normalizeAnswer trims surrounding space, composes to NFC and case-folds.
func normalizeAnswer(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// StartPuzzle opens one of the current scene's puzzles with a fresh attempt counter.
func (e *Engine) StartPuzzle(ctx context.Context, s domain.GameState, puzzleID string) domain.GameState {
	if s.Mode() != domain.ModeExploring {
		return e.refuse("startPuzzle", s)
	}
	scene, ok := e.content.Scene(s.CurrentSceneID)
	if !ok || !offered(scene.Puzzles, puzzleID) {
		e.logger.Warn("startPuzzle skipped", "scene", s.CurrentSceneID, "puzzle", puzzleID)
		return s
	}
	next := s.Clone()
	e.openPuzzle(ctx, &next, puzzleID)
	return next
}

// openPuzzle enters the puzzle sub-state, closing any open dialog.
// Solved puzzles stay closed.
func (e *Engine) openPuzzle(ctx context.Context, s *domain.GameState, puzzleID string) {
	p, ok := e.content.Puzzle(puzzleID)
	if !ok {
		e.logger.Warn("puzzle not opened", "error", fmt.Errorf("puzzle %q: %w", puzzleID, domain.ErrUnknownPuzzle))
		return
	}
	if s.FlagSet(domain.PuzzleSolvedFlag(p.ID)) {
		e.notify(s, domain.LevelInfo, defaultSolvedMessage)
		return
	}
	e.closeDialog(ctx, s)
	s.ActivePuzzle = &domain.PuzzleSession{PuzzleID: p.ID}
}

// Attempt submits a solution to the open puzzle. An empty puzzleID targets the open puzzle.
// A wrong answer uses up one attempt; the puzzle closes as failed when the last one is spent.
func (e *Engine) Attempt(ctx context.Context, s domain.GameState, puzzleID string, sub domain.Solution) (domain.GameState, domain.AttemptResult, error) {
	if s.GameOver {
		return s, domain.AttemptResult{}, ErrGameOver
	}
	if s.ActivePuzzle == nil {
		return s, domain.AttemptResult{}, ErrNoActivePuzzle
	}
	if puzzleID == "" {
		puzzleID = s.ActivePuzzle.PuzzleID
	}
	if puzzleID != s.ActivePuzzle.PuzzleID {
		return s, domain.AttemptResult{}, fmt.Errorf("%w: got %q, open %q", ErrPuzzleMismatch, puzzleID, s.ActivePuzzle.PuzzleID)
	}

	next := s.Clone()
	p, ok := e.content.Puzzle(puzzleID)
	if !ok {
		next.ActivePuzzle = nil
		return next, domain.AttemptResult{}, fmt.Errorf("puzzle %q: %w", puzzleID, domain.ErrUnknownPuzzle)
	}

	if Verify(p, sub) {
		res := domain.AttemptResult{Correct: true, AttemptsRemaining: remaining(p, next.ActivePuzzle.Attempts)}
		next.ActivePuzzle = nil
		next.Flags[domain.PuzzleSolvedFlag(p.ID)] = true
		e.logger.Debug("puzzle solved", "puzzle", p.ID, "type", p.Type)
		e.emitPuzzleAttempt(ctx, &next, p, true, true)
		e.apply(ctx, &next, p.Rewards, 0)
		return next, res, nil
	}

	next.ActivePuzzle.Attempts++
	res := domain.AttemptResult{AttemptsRemaining: remaining(p, next.ActivePuzzle.Attempts)}
	if p.MaxAttempts > 0 && next.ActivePuzzle.Attempts >= p.MaxAttempts {
		next.ActivePuzzle = nil
		next.Flags[domain.PuzzleFailedFlag(p.ID)] = true
		e.notify(&next, domain.LevelDanger, defaultFailedMessage)
		e.logger.Debug("puzzle failed", "puzzle", p.ID, "attempts", p.MaxAttempts)
		e.emitPuzzleAttempt(ctx, &next, p, false, true)
		e.apply(ctx, &next, p.FailureEffects, 0)
		return next, res, nil
	}
	e.emitPuzzleAttempt(ctx, &next, p, false, false)
	return next, res, nil
}

func remaining(p *domain.Puzzle, attempts int) *int {
	if p.MaxAttempts <= 0 {
		return nil
	}
	n := max(p.MaxAttempts-attempts, 0)
	return &n
}

// CancelPuzzle closes the open puzzle without solving it.
func (e *Engine) CancelPuzzle(ctx context.Context, s domain.GameState) domain.GameState {
	if s.GameOver || s.ActivePuzzle == nil {
		return e.refuse("cancelPuzzle", s)
	}
	next := s.Clone()
	next.ActivePuzzle = nil
	return next
}

// Hint returns the hint text of a puzzle. An empty puzzleID targets the open puzzle.
func (e *Engine) Hint(s domain.GameState, puzzleID string) (string, bool) {
	if puzzleID == "" {
		if s.ActivePuzzle == nil {
			return "", false
		}
		puzzleID = s.ActivePuzzle.PuzzleID
	}
	p, ok := e.content.Puzzle(puzzleID)
	if !ok || p.Hint == "" {
		return "", false
	}
	return p.Hint, true
}
