package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/hollow/pkg/domain"
)

// StartDialog opens one of the current scene's dialogs at its first node.
func (e *Engine) StartDialog(ctx context.Context, s domain.GameState, dialogID string) domain.GameState {
	if s.Mode() != domain.ModeExploring {
		return e.refuse("startDialog", s)
	}
	scene, ok := e.content.Scene(s.CurrentSceneID)
	if !ok || !offered(scene.Dialogs, dialogID) {
		e.logger.Warn("startDialog skipped", "scene", s.CurrentSceneID, "dialog", dialogID)
		return s
	}
	next := s.Clone()
	e.openDialog(ctx, &next, dialogID)
	return next
}

// openDialog enters the dialog sub-state, replacing any open dialog or puzzle.
func (e *Engine) openDialog(ctx context.Context, s *domain.GameState, dialogID string) {
	dlg, ok := e.content.Dialog(dialogID)
	if !ok {
		e.logger.Warn("dialog not opened", "error", fmt.Errorf("dialog %q: %w", dialogID, domain.ErrUnknownDialog))
		return
	}
	if len(dlg.Nodes) == 0 {
		e.logger.Warn("dialog has no nodes", "dialog", dialogID)
		return
	}
	if s.ActiveDialog != nil {
		e.closeDialog(ctx, s)
	}
	s.ActivePuzzle = nil
	s.ActiveDialog = &domain.DialogCursor{DialogID: dlg.ID, NodeIndex: 0}
	e.emitDialogStart(ctx, s, dlg.ID)
}

func (e *Engine) closeDialog(ctx context.Context, s *domain.GameState) {
	if s.ActiveDialog == nil {
		return
	}
	id := s.ActiveDialog.DialogID
	s.ActiveDialog = nil
	e.emitDialogEnd(ctx, s, id)
}

// CurrentNode returns the node under the dialog cursor.
func (e *Engine) CurrentNode(s domain.GameState) (*domain.DialogNode, bool) {
	if s.ActiveDialog == nil {
		return nil, false
	}
	dlg, ok := e.content.Dialog(s.ActiveDialog.DialogID)
	if !ok {
		return nil, false
	}
	i := s.ActiveDialog.NodeIndex
	if i < 0 || i >= len(dlg.Nodes) {
		return nil, false
	}
	return &dlg.Nodes[i], true
}

// EligibleResponses lists the indexes of the current node's responses whose requirement holds.
func (e *Engine) EligibleResponses(s domain.GameState) []int {
	node, ok := e.CurrentNode(s)
	if !ok {
		return nil
	}
	out := []int{}
	for i := range node.Responses {
		if Evaluate(node.Responses[i].Requirement, &s) {
			out = append(out, i)
		}
	}
	return out
}

// Advance moves the dialog cursor. With a response index on a node that has responses, the
// response must be eligible or the call is a no-op; its effects apply and the cursor jumps to
// its Next node, or the dialog ends when Next is unset. Otherwise the cursor moves to the
// following node, ending the dialog past the last one.
func (e *Engine) Advance(ctx context.Context, s domain.GameState, response *int) domain.GameState {
	if s.GameOver || s.ActiveDialog == nil {
		return e.refuse("advanceDialog", s)
	}
	cursor := *s.ActiveDialog
	dlg, ok := e.content.Dialog(cursor.DialogID)
	if !ok {
		e.logger.Warn("closing dangling dialog", "error", fmt.Errorf("dialog %q: %w", cursor.DialogID, domain.ErrUnknownDialog))
		next := s.Clone()
		e.closeDialog(ctx, &next)
		return next
	}
	if cursor.NodeIndex < 0 || cursor.NodeIndex >= len(dlg.Nodes) {
		next := s.Clone()
		e.closeDialog(ctx, &next)
		return next
	}
	node := &dlg.Nodes[cursor.NodeIndex]

	if len(node.Responses) > 0 && response != nil {
		i := *response
		if i < 0 || i >= len(node.Responses) {
			e.logger.Debug("response out of range", "dialog", dlg.ID, "node", cursor.NodeIndex, "response", i)
			return s
		}
		r := &node.Responses[i]
		if !Evaluate(r.Requirement, &s) {
			e.logger.Debug("response not eligible", "dialog", dlg.ID, "node", cursor.NodeIndex, "response", i)
			return s
		}

		next := s.Clone()
		e.apply(ctx, &next, r.Effects, 0)
		if next.ActiveDialog == nil || *next.ActiveDialog != cursor {
			// the effects already moved the player into another sub-state
			return next
		}
		if r.Next == nil {
			e.closeDialog(ctx, &next)
			return next
		}
		e.seek(ctx, &next, dlg, *r.Next)
		return next
	}

	next := s.Clone()
	if node.End {
		e.closeDialog(ctx, &next)
		return next
	}
	e.seek(ctx, &next, dlg, cursor.NodeIndex+1)
	return next
}

func (e *Engine) seek(ctx context.Context, s *domain.GameState, dlg *domain.Dialog, index int) {
	if index < 0 || index >= len(dlg.Nodes) {
		e.closeDialog(ctx, s)
		return
	}
	s.ActiveDialog.NodeIndex = index
}
