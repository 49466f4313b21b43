package domain

// EffectKind tags the variant carried by an Effect.
type EffectKind string

const (
	EffectSetFlag     EffectKind = "setFlag"
	EffectAddItem     EffectKind = "addItem"
	EffectRemoveItem  EffectKind = "removeItem"
	EffectModifyStat  EffectKind = "modifyStat"
	EffectStartDialog EffectKind = "startDialog"
	EffectStartPuzzle EffectKind = "startPuzzle"
	EffectChangeScene EffectKind = "changeScene"
	EffectAdvanceTime EffectKind = "advanceTime"
	EffectNotify      EffectKind = "notify"
)

// EffectKinds lists every known kind in declaration order.
var EffectKinds = []EffectKind{
	EffectSetFlag, EffectAddItem, EffectRemoveItem, EffectModifyStat,
	EffectStartDialog, EffectStartPuzzle, EffectChangeScene, EffectAdvanceTime, EffectNotify,
}

// Effect is an atomic state mutation instruction.
// Only the fields relevant to Kind are read.
type Effect struct {
	Kind EffectKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// setFlag
	Flag  string `json:"flag,omitempty" yaml:"flag,omitempty" mapstructure:"flag"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`

	// addItem / removeItem
	Item     string `json:"item,omitempty" yaml:"item,omitempty" mapstructure:"item"`
	Quantity int    `json:"quantity,omitempty" yaml:"quantity,omitempty" mapstructure:"quantity"`

	// modifyStat
	Stat     string `json:"stat,omitempty" yaml:"stat,omitempty" mapstructure:"stat"`
	Amount   int    `json:"amount,omitempty" yaml:"amount,omitempty" mapstructure:"amount"`
	Absolute bool   `json:"absolute,omitempty" yaml:"absolute,omitempty" mapstructure:"absolute"`

	// startDialog / startPuzzle / changeScene
	Target string `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`

	// advanceTime, and the lifetime of a notify message (0 = until dismissed)
	DurationMs int64 `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty" mapstructure:"duration_ms"`

	// notify
	Message string            `json:"message,omitempty" yaml:"message,omitempty" mapstructure:"message"`
	Level   NotificationLevel `json:"level,omitempty" yaml:"level,omitempty" mapstructure:"level"`
}

// SetFlag builds a setFlag effect.
func SetFlag(key string, value any) Effect {
	return Effect{Kind: EffectSetFlag, Flag: key, Value: value}
}

// AddItem builds an addItem effect.
func AddItem(itemID string, quantity int) Effect {
	return Effect{Kind: EffectAddItem, Item: itemID, Quantity: quantity}
}

// RemoveItem builds a removeItem effect.
func RemoveItem(itemID string) Effect {
	return Effect{Kind: EffectRemoveItem, Item: itemID}
}

// ModifyStat builds a relative stat change.
func ModifyStat(stat string, delta int) Effect {
	return Effect{Kind: EffectModifyStat, Stat: stat, Amount: delta}
}

// SetStat builds an absolute stat change.
func SetStat(stat string, value int) Effect {
	return Effect{Kind: EffectModifyStat, Stat: stat, Amount: value, Absolute: true}
}

// StartDialog builds a startDialog effect.
func StartDialog(dialogID string) Effect {
	return Effect{Kind: EffectStartDialog, Target: dialogID}
}

// StartPuzzle builds a startPuzzle effect.
func StartPuzzle(puzzleID string) Effect {
	return Effect{Kind: EffectStartPuzzle, Target: puzzleID}
}

// ChangeScene builds a changeScene effect.
func ChangeScene(sceneID string) Effect {
	return Effect{Kind: EffectChangeScene, Target: sceneID}
}

// AdvanceTime builds an advanceTime effect.
func AdvanceTime(ms int64) Effect {
	return Effect{Kind: EffectAdvanceTime, DurationMs: ms}
}

// Notify builds a notify effect.
func Notify(level NotificationLevel, message string, durationMs int64) Effect {
	return Effect{Kind: EffectNotify, Level: level, Message: message, DurationMs: durationMs}
}
