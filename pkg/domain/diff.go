package domain

import (
	"reflect"
)

// StateDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	RunID string `json:"run_id,omitempty"`

	CurrentSceneID *string `json:"current_scene_id,omitempty"`
	Mode           *Mode   `json:"mode,omitempty"`

	// Flags contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Flags map[string]any `json:"flags,omitempty"`

	// Player is present when any stat changed.
	Player *Stats `json:"player,omitempty"`

	// Inventory is the full inventory when it changed; order is significant.
	Inventory []ItemStack `json:"inventory,omitempty"`

	// VisitedAppended holds scenes visited for the first time.
	VisitedAppended []string `json:"visited_appended,omitempty"`

	ActiveDialog  *DialogCursor  `json:"active_dialog,omitempty"`
	ActivePuzzle  *PuzzleSession `json:"active_puzzle,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`

	GameOver *bool `json:"game_over,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *GameState) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{RunID: newState.RunID}

	if oldState == nil || oldState.CurrentSceneID != newState.CurrentSceneID {
		diff.CurrentSceneID = &newState.CurrentSceneID
	}
	if mode := newState.Mode(); oldState == nil || oldState.Mode() != mode {
		diff.Mode = &mode
	}
	if oldState == nil || oldState.Player != newState.Player {
		p := newState.Player
		diff.Player = &p
	}
	if oldState == nil || !reflect.DeepEqual(oldState.Inventory, newState.Inventory) {
		diff.Inventory = append([]ItemStack{}, newState.Inventory...)
	}
	if oldState == nil || !reflect.DeepEqual(oldState.ActiveDialog, newState.ActiveDialog) {
		diff.ActiveDialog = newState.ActiveDialog
	}
	if oldState == nil || !reflect.DeepEqual(oldState.ActivePuzzle, newState.ActivePuzzle) {
		diff.ActivePuzzle = newState.ActivePuzzle
	}
	if oldState == nil || !reflect.DeepEqual(oldState.Notifications, newState.Notifications) {
		diff.Notifications = append([]Notification{}, newState.Notifications...)
	}
	if oldState == nil {
		if newState.GameOver {
			diff.GameOver = &newState.GameOver
		}
	} else if oldState.GameOver != newState.GameOver {
		diff.GameOver = &newState.GameOver
	}

	diff.Flags = diffFlags(oldState, newState)
	diff.VisitedAppended = diffVisited(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffFlags(old *GameState, new *GameState) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Flags {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	for k, newVal := range new.Flags {
		oldVal, exists := old.Flags[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}
	for k := range old.Flags {
		if _, exists := new.Flags[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffVisited relies on VisitedScenes being append-only.
func diffVisited(old *GameState, new *GameState) []string {
	if len(new.VisitedScenes) == 0 {
		return nil
	}
	if old == nil {
		return append([]string{}, new.VisitedScenes...)
	}
	if len(new.VisitedScenes) > len(old.VisitedScenes) {
		return append([]string{}, new.VisitedScenes[len(old.VisitedScenes):]...)
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrentSceneID == nil &&
		d.Mode == nil &&
		d.Player == nil &&
		d.Inventory == nil &&
		d.ActiveDialog == nil &&
		d.ActivePuzzle == nil &&
		d.Notifications == nil &&
		d.GameOver == nil &&
		len(d.Flags) == 0 &&
		d.VisitedAppended == nil
}
