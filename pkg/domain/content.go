package domain

// GameInfo is the content header: title and the canonical initial snapshot.
type GameInfo struct {
	Title                string         `json:"title" yaml:"title" mapstructure:"title"`
	StartScene           string         `json:"start_scene" yaml:"start_scene" mapstructure:"start_scene"`
	Player               Stats          `json:"player" yaml:"player" mapstructure:"player"`
	Inventory            []ItemStack    `json:"inventory,omitempty" yaml:"inventory,omitempty" mapstructure:"inventory"`
	Flags                map[string]any `json:"flags,omitempty" yaml:"flags,omitempty" mapstructure:"flags"`
	NotificationCapacity int            `json:"notification_capacity,omitempty" yaml:"notification_capacity,omitempty" mapstructure:"notification_capacity"`
}

// Exit links a scene to another one.
type Exit struct {
	ID            string       `json:"id" yaml:"id" mapstructure:"id"`
	Label         string       `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Target        string       `json:"target" yaml:"target" mapstructure:"target"`
	Requirement   *Requirement `json:"requirement,omitempty" yaml:"requirement,omitempty" mapstructure:"requirement"`
	LockedMessage string       `json:"locked_message,omitempty" yaml:"locked_message,omitempty" mapstructure:"locked_message"`
}

// Trigger binds a scene event to an effect list.
type Trigger struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Requirement *Requirement `json:"requirement,omitempty" yaml:"requirement,omitempty" mapstructure:"requirement"`
	Effects     []Effect     `json:"effects" yaml:"effects" mapstructure:"effects"`
	Once        bool         `json:"once,omitempty" yaml:"once,omitempty" mapstructure:"once"`
}

// Element is an interactive object inside a scene.
type Element struct {
	ID             string       `json:"id" yaml:"id" mapstructure:"id"`
	Label          string       `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Requirement    *Requirement `json:"requirement,omitempty" yaml:"requirement,omitempty" mapstructure:"requirement"`
	Effects        []Effect     `json:"effects" yaml:"effects" mapstructure:"effects"`
	FailureMessage string       `json:"failure_message,omitempty" yaml:"failure_message,omitempty" mapstructure:"failure_message"`
	Once           bool         `json:"once,omitempty" yaml:"once,omitempty" mapstructure:"once"`
}

// Hazard changes a stat by Amount every IntervalMs of game time spent exploring a scene.
// Negative amounts drain.
type Hazard struct {
	Stat       string `json:"stat" yaml:"stat" mapstructure:"stat"`
	Amount     int    `json:"amount" yaml:"amount" mapstructure:"amount"`
	IntervalMs int64  `json:"interval_ms" yaml:"interval_ms" mapstructure:"interval_ms"`
}

// Scene is a navigable location.
type Scene struct {
	ID            string    `json:"id" yaml:"id" mapstructure:"id"`
	Name          string    `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description   string    `json:"description" yaml:"description" mapstructure:"description"`
	Exits         []Exit    `json:"exits,omitempty" yaml:"exits,omitempty" mapstructure:"exits"`
	EntryTriggers []Trigger `json:"entry_triggers,omitempty" yaml:"entry_triggers,omitempty" mapstructure:"entry_triggers"`
	ExitTriggers  []Trigger `json:"exit_triggers,omitempty" yaml:"exit_triggers,omitempty" mapstructure:"exit_triggers"`
	Elements      []Element `json:"elements,omitempty" yaml:"elements,omitempty" mapstructure:"elements"`
	Dialogs       []string  `json:"dialogs,omitempty" yaml:"dialogs,omitempty" mapstructure:"dialogs"`
	Puzzles       []string  `json:"puzzles,omitempty" yaml:"puzzles,omitempty" mapstructure:"puzzles"`
	Items         []string  `json:"items,omitempty" yaml:"items,omitempty" mapstructure:"items"`
	Hazard        *Hazard   `json:"hazard,omitempty" yaml:"hazard,omitempty" mapstructure:"hazard"`
}

// FindExit returns the exit with the given id.
func (s *Scene) FindExit(id string) (*Exit, bool) {
	for i := range s.Exits {
		if s.Exits[i].ID == id {
			return &s.Exits[i], true
		}
	}
	return nil, false
}

// FindElement returns the element with the given id.
func (s *Scene) FindElement(id string) (*Element, bool) {
	for i := range s.Elements {
		if s.Elements[i].ID == id {
			return &s.Elements[i], true
		}
	}
	return nil, false
}

// Response is a player-selectable dialog option.
// A nil Next ends the dialog once the response is taken.
type Response struct {
	Text        string       `json:"text" yaml:"text" mapstructure:"text"`
	Requirement *Requirement `json:"requirement,omitempty" yaml:"requirement,omitempty" mapstructure:"requirement"`
	Effects     []Effect     `json:"effects,omitempty" yaml:"effects,omitempty" mapstructure:"effects"`
	Next        *int         `json:"next,omitempty" yaml:"next,omitempty" mapstructure:"next"`
}

// DialogNode is one line of a dialog.
type DialogNode struct {
	Speaker   string     `json:"speaker,omitempty" yaml:"speaker,omitempty" mapstructure:"speaker"`
	Text      string     `json:"text" yaml:"text" mapstructure:"text"`
	Responses []Response `json:"responses,omitempty" yaml:"responses,omitempty" mapstructure:"responses"`
	// End closes the dialog when the player advances past this node.
	End bool `json:"end,omitempty" yaml:"end,omitempty" mapstructure:"end"`
}

// Dialog is an ordered, branching sequence of nodes.
type Dialog struct {
	ID    string       `json:"id" yaml:"id" mapstructure:"id"`
	Nodes []DialogNode `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
}

// PuzzleType selects the verification rule.
type PuzzleType string

const (
	PuzzleSequence    PuzzleType = "sequence"
	PuzzleRune        PuzzleType = "rune"
	PuzzleCode        PuzzleType = "code"
	PuzzleRiddle      PuzzleType = "riddle"
	PuzzlePattern     PuzzleType = "pattern"
	PuzzleCombination PuzzleType = "combination"
	PuzzleSacrifice   PuzzleType = "sacrifice"
)

// Puzzle is a challenge with a type-specific solution.
type Puzzle struct {
	ID          string     `json:"id" yaml:"id" mapstructure:"id"`
	Type        PuzzleType `json:"type" yaml:"type" mapstructure:"type"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// sequence, rune, combination
	Sequence []string `json:"sequence,omitempty" yaml:"sequence,omitempty" mapstructure:"sequence"`
	// combination: number of slots on the lock
	Slots int `json:"slots,omitempty" yaml:"slots,omitempty" mapstructure:"slots"`
	// pattern: indices of the drawn path
	Pattern []int `json:"pattern,omitempty" yaml:"pattern,omitempty" mapstructure:"pattern"`
	// code, riddle
	Answer     string   `json:"answer,omitempty" yaml:"answer,omitempty" mapstructure:"answer"`
	Alternates []string `json:"alternates,omitempty" yaml:"alternates,omitempty" mapstructure:"alternates"`
	// sacrifice: item id -> value
	Offerings     map[string]int `json:"offerings,omitempty" yaml:"offerings,omitempty" mapstructure:"offerings"`
	TargetValue   int            `json:"target_value,omitempty" yaml:"target_value,omitempty" mapstructure:"target_value"`
	MaxSelections int            `json:"max_selections,omitempty" yaml:"max_selections,omitempty" mapstructure:"max_selections"`

	MaxAttempts    int      `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" mapstructure:"max_attempts"`
	Rewards        []Effect `json:"rewards,omitempty" yaml:"rewards,omitempty" mapstructure:"rewards"`
	FailureEffects []Effect `json:"failure_effects,omitempty" yaml:"failure_effects,omitempty" mapstructure:"failure_effects"`
	Hint           string   `json:"hint,omitempty" yaml:"hint,omitempty" mapstructure:"hint"`
}

// Solution is a player submission. Only the field matching the puzzle type is read.
type Solution struct {
	Symbols   []string `json:"symbols,omitempty"`
	Indices   []int    `json:"indices,omitempty"`
	Text      string   `json:"text,omitempty"`
	Selection []string `json:"selection,omitempty"`
}

// AttemptResult reports the outcome of a puzzle submission.
// AttemptsRemaining is nil for puzzles with unlimited attempts.
type AttemptResult struct {
	Correct           bool `json:"correct"`
	AttemptsRemaining *int `json:"attempts_remaining"`
}

// Item is an inventory object definition.
type Item struct {
	ID          string   `json:"id" yaml:"id" mapstructure:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Consumable  bool     `json:"consumable,omitempty" yaml:"consumable,omitempty" mapstructure:"consumable"`
	Effects     []Effect `json:"effects,omitempty" yaml:"effects,omitempty" mapstructure:"effects"`
}

// Content is the immutable repository of static definitions, keyed by id.
type Content struct {
	Game    GameInfo           `json:"game" yaml:"game" mapstructure:"game"`
	Scenes  map[string]*Scene  `json:"scenes" yaml:"scenes" mapstructure:"scenes"`
	Dialogs map[string]*Dialog `json:"dialogs" yaml:"dialogs" mapstructure:"dialogs"`
	Puzzles map[string]*Puzzle `json:"puzzles" yaml:"puzzles" mapstructure:"puzzles"`
	Items   map[string]*Item   `json:"items" yaml:"items" mapstructure:"items"`
}

// NewContent returns an empty repository with initialized maps.
func NewContent() *Content {
	return &Content{
		Scenes:  make(map[string]*Scene),
		Dialogs: make(map[string]*Dialog),
		Puzzles: make(map[string]*Puzzle),
		Items:   make(map[string]*Item),
	}
}

// Scene looks up a scene by id.
func (c *Content) Scene(id string) (*Scene, bool) {
	s, ok := c.Scenes[id]
	return s, ok && s != nil
}

// Dialog looks up a dialog by id.
func (c *Content) Dialog(id string) (*Dialog, bool) {
	d, ok := c.Dialogs[id]
	return d, ok && d != nil
}

// Puzzle looks up a puzzle by id.
func (c *Content) Puzzle(id string) (*Puzzle, bool) {
	p, ok := c.Puzzles[id]
	return p, ok && p != nil
}

// Item looks up an item by id.
func (c *Content) Item(id string) (*Item, bool) {
	it, ok := c.Items[id]
	return it, ok && it != nil
}
