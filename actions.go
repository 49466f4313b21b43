package hollow

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/hollow/pkg/domain"
)

// ActionType names an action on the wire.
type ActionType string

const (
	ActionTryExit              ActionType = "tryExit"
	ActionInteract             ActionType = "interact"
	ActionStartDialog          ActionType = "startDialog"
	ActionAdvanceDialog        ActionType = "advanceDialog"
	ActionUseItem              ActionType = "useItem"
	ActionStartPuzzle          ActionType = "startPuzzle"
	ActionSubmitPuzzleSolution ActionType = "submitPuzzleSolution"
	ActionCancelPuzzle         ActionType = "cancelPuzzle"
	ActionDismissNotification  ActionType = "dismissNotification"
	ActionAdvanceTime          ActionType = "advanceTime"
	ActionRestart              ActionType = "restart"
)

// Action is a player intent or a clock tick routed through Dispatch.
// The set is closed: only the types in this package implement it.
type Action interface {
	Type() ActionType
	sealed()
}

// TryExit leaves the current scene through an exit.
type TryExit struct {
	ExitID string `json:"exit_id"`
}

// Interact uses an element of the current scene.
type Interact struct {
	ElementID string `json:"element_id"`
}

// StartDialog opens one of the current scene's dialogs.
type StartDialog struct {
	DialogID string `json:"dialog_id"`
}

// AdvanceDialog moves the open dialog forward. A nil Response continues to the next node.
type AdvanceDialog struct {
	Response *int `json:"response,omitempty"`
}

// UseItem uses an inventory item.
type UseItem struct {
	ItemID string `json:"item_id"`
}

// StartPuzzle opens one of the current scene's puzzles.
type StartPuzzle struct {
	PuzzleID string `json:"puzzle_id"`
}

// SubmitPuzzleSolution attempts the open puzzle. An empty PuzzleID targets the open puzzle.
type SubmitPuzzleSolution struct {
	PuzzleID string          `json:"puzzle_id,omitempty"`
	Solution domain.Solution `json:"solution"`
}

// CancelPuzzle closes the open puzzle without solving it.
type CancelPuzzle struct{}

// DismissNotification removes a notification from the queue.
type DismissNotification struct {
	ID string `json:"id"`
}

// AdvanceTime moves the game clock forward.
type AdvanceTime struct {
	ElapsedMs int64 `json:"elapsed_ms"`
}

// Restart discards the playthrough and starts over from the initial state.
type Restart struct{}

func (TryExit) Type() ActionType              { return ActionTryExit }
func (Interact) Type() ActionType             { return ActionInteract }
func (StartDialog) Type() ActionType          { return ActionStartDialog }
func (AdvanceDialog) Type() ActionType        { return ActionAdvanceDialog }
func (UseItem) Type() ActionType              { return ActionUseItem }
func (StartPuzzle) Type() ActionType          { return ActionStartPuzzle }
func (SubmitPuzzleSolution) Type() ActionType { return ActionSubmitPuzzleSolution }
func (CancelPuzzle) Type() ActionType         { return ActionCancelPuzzle }
func (DismissNotification) Type() ActionType  { return ActionDismissNotification }
func (AdvanceTime) Type() ActionType          { return ActionAdvanceTime }
func (Restart) Type() ActionType              { return ActionRestart }

func (TryExit) sealed()              {}
func (Interact) sealed()             {}
func (StartDialog) sealed()          {}
func (AdvanceDialog) sealed()        {}
func (UseItem) sealed()              {}
func (StartPuzzle) sealed()          {}
func (SubmitPuzzleSolution) sealed() {}
func (CancelPuzzle) sealed()         {}
func (DismissNotification) sealed()  {}
func (AdvanceTime) sealed()          {}
func (Restart) sealed()              {}

// DecodeAction parses a JSON action of the form {"type": "tryExit", "exit_id": "north"}.
func DecodeAction(data []byte) (Action, error) {
	var head struct {
		Type ActionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("invalid action: %w", err)
	}

	switch head.Type {
	case ActionTryExit:
		return decode[TryExit](data)
	case ActionInteract:
		return decode[Interact](data)
	case ActionStartDialog:
		return decode[StartDialog](data)
	case ActionAdvanceDialog:
		return decode[AdvanceDialog](data)
	case ActionUseItem:
		return decode[UseItem](data)
	case ActionStartPuzzle:
		return decode[StartPuzzle](data)
	case ActionSubmitPuzzleSolution:
		return decode[SubmitPuzzleSolution](data)
	case ActionCancelPuzzle:
		return CancelPuzzle{}, nil
	case ActionDismissNotification:
		return decode[DismissNotification](data)
	case ActionAdvanceTime:
		return decode[AdvanceTime](data)
	case ActionRestart:
		return Restart{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, head.Type)
	}
}

func decode[T Action](data []byte) (Action, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid %s action: %w", v.Type(), err)
	}
	return v, nil
}
