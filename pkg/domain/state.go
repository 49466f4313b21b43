package domain

import "slices"

// Mode is the navigator sub-state derived from a GameState.
type Mode string

const (
	ModeExploring Mode = "exploring"
	ModeInDialog  Mode = "in_dialog"
	ModeInPuzzle  Mode = "in_puzzle"
	ModeGameOver  Mode = "game_over"
)

// Game over reasons.
const (
	ReasonDeath      = "death"
	ReasonInsanity   = "insanity"
	ReasonCorruption = "corruption"
)

// MaxCorruption is the fixed ceiling of the corruption stat; reaching it ends the game.
const MaxCorruption = 100

// Stats is the player's stat block. A current value never leaves [0, max].
// Sanity is only tracked when MaxSanity > 0.
type Stats struct {
	Health     int `json:"health" yaml:"health" mapstructure:"health"`
	MaxHealth  int `json:"max_health" yaml:"max_health" mapstructure:"max_health"`
	Mana       int `json:"mana" yaml:"mana" mapstructure:"mana"`
	MaxMana    int `json:"max_mana" yaml:"max_mana" mapstructure:"max_mana"`
	Sanity     int `json:"sanity,omitempty" yaml:"sanity,omitempty" mapstructure:"sanity"`
	MaxSanity  int `json:"max_sanity,omitempty" yaml:"max_sanity,omitempty" mapstructure:"max_sanity"`
	Corruption int `json:"corruption,omitempty" yaml:"corruption,omitempty" mapstructure:"corruption"`
}

// TracksSanity reports whether the sanity stat is in play.
func (s Stats) TracksSanity() bool {
	return s.MaxSanity > 0
}

// ItemStack is one inventory entry. Stacks are unique by ID.
type ItemStack struct {
	ID         string `json:"id"`
	Quantity   int    `json:"quantity"`
	Consumable bool   `json:"consumable,omitempty"`
}

// DialogCursor points at the current node of the active dialog.
type DialogCursor struct {
	DialogID  string `json:"dialog_id"`
	NodeIndex int    `json:"node_index"`
}

// PuzzleSession tracks the open puzzle and the wrong attempts made so far.
type PuzzleSession struct {
	PuzzleID string `json:"puzzle_id"`
	Attempts int    `json:"attempts"`
}

// GameState is the complete snapshot of a playthrough.
// It is a value type: the engine clones it before every mutation.
type GameState struct {
	RunID          string         `json:"run_id,omitempty"`
	CurrentSceneID string         `json:"current_scene_id"`
	VisitedScenes  []string       `json:"visited_scenes"`
	VisitCounts    map[string]int `json:"visit_counts"`
	Inventory      []ItemStack    `json:"inventory"`
	Flags          map[string]any `json:"flags"`
	Player         Stats          `json:"player"`

	ActiveDialog *DialogCursor  `json:"active_dialog,omitempty"`
	ActivePuzzle *PuzzleSession `json:"active_puzzle,omitempty"`

	Notifications      []Notification `json:"notifications"`
	NextNotificationID int            `json:"next_notification_id"`

	// FiredTriggers holds the keys of once-only triggers and elements that already fired.
	FiredTriggers []string `json:"fired_triggers"`

	// ClockMs is the game clock, advanced only through advanceTime.
	ClockMs int64 `json:"clock_ms"`
	// HazardMs accumulates time spent in the current scene toward its next hazard tick.
	HazardMs int64 `json:"hazard_ms"`

	GameOver       bool   `json:"game_over"`
	GameOverReason string `json:"game_over_reason,omitempty"`
}

// NewGameState creates an empty state positioned in the start scene.
// Visit bookkeeping for the start scene is done by the navigator when it enters it.
func NewGameState(startSceneID string, player Stats) GameState {
	return GameState{
		CurrentSceneID: startSceneID,
		VisitedScenes:  []string{},
		VisitCounts:    make(map[string]int),
		Inventory:      []ItemStack{},
		Flags:          make(map[string]any),
		Player:         player,
		Notifications:  []Notification{},
		FiredTriggers:  []string{},
	}
}

// Mode derives the state-machine position from the snapshot.
func (s GameState) Mode() Mode {
	switch {
	case s.GameOver:
		return ModeGameOver
	case s.ActivePuzzle != nil:
		return ModeInPuzzle
	case s.ActiveDialog != nil:
		return ModeInDialog
	default:
		return ModeExploring
	}
}

// HasVisited reports whether the scene was entered at least once.
func (s GameState) HasVisited(sceneID string) bool {
	return slices.Contains(s.VisitedScenes, sceneID)
}

// MarkVisited records an entry into sceneID.
func (s *GameState) MarkVisited(sceneID string) {
	if !s.HasVisited(sceneID) {
		s.VisitedScenes = append(s.VisitedScenes, sceneID)
	}
	if s.VisitCounts == nil {
		s.VisitCounts = make(map[string]int)
	}
	s.VisitCounts[sceneID]++
}

// Flag returns the value of a flag. Unset flags read as false.
func (s GameState) Flag(key string) any {
	v, ok := s.Flags[key]
	if !ok {
		return false
	}
	return v
}

// FlagSet reports whether a flag holds a truthy value.
func (s GameState) FlagSet(key string) bool {
	return Truthy(s.Flags[key])
}

// FindItem returns the index of the stack with the given id, or -1.
func (s GameState) FindItem(itemID string) int {
	return slices.IndexFunc(s.Inventory, func(it ItemStack) bool { return it.ID == itemID })
}

// HasItem reports whether the player holds at least one of itemID.
func (s GameState) HasItem(itemID string) bool {
	i := s.FindItem(itemID)
	return i >= 0 && s.Inventory[i].Quantity > 0
}

// HasFired reports whether a once-only trigger key already fired.
func (s GameState) HasFired(key string) bool {
	return slices.Contains(s.FiredTriggers, key)
}

// MarkFired records a once-only trigger key.
func (s *GameState) MarkFired(key string) {
	if !s.HasFired(key) {
		s.FiredTriggers = append(s.FiredTriggers, key)
	}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (s GameState) Clone() GameState {
	next := s
	next.VisitedScenes = slices.Clone(s.VisitedScenes)
	if next.VisitedScenes == nil {
		next.VisitedScenes = []string{}
	}
	next.VisitCounts = make(map[string]int, len(s.VisitCounts))
	for k, v := range s.VisitCounts {
		next.VisitCounts[k] = v
	}
	next.Inventory = slices.Clone(s.Inventory)
	if next.Inventory == nil {
		next.Inventory = []ItemStack{}
	}
	next.Flags = make(map[string]any, len(s.Flags))
	for k, v := range s.Flags {
		next.Flags[k] = v
	}
	if s.ActiveDialog != nil {
		d := *s.ActiveDialog
		next.ActiveDialog = &d
	}
	if s.ActivePuzzle != nil {
		p := *s.ActivePuzzle
		next.ActivePuzzle = &p
	}
	next.Notifications = slices.Clone(s.Notifications)
	if next.Notifications == nil {
		next.Notifications = []Notification{}
	}
	next.FiredTriggers = slices.Clone(s.FiredTriggers)
	if next.FiredTriggers == nil {
		next.FiredTriggers = []string{}
	}
	return next
}
