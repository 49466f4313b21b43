package domain

// StatThreshold bounds a stat. Nil bounds are not checked.
type StatThreshold struct {
	Stat string `json:"stat" yaml:"stat" mapstructure:"stat"`
	Min  *int   `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max  *int   `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`
}

// Requirement is a conjunctive predicate over the game state.
// Every listed clause must hold; an empty clause is vacuously satisfied.
type Requirement struct {
	// Items lists item ids the player must hold.
	Items []string `json:"items,omitempty" yaml:"items,omitempty" mapstructure:"items"`
	// Flags maps flag keys to the value they must hold. Expecting false matches unset flags.
	Flags map[string]any `json:"flags,omitempty" yaml:"flags,omitempty" mapstructure:"flags"`
	// Stats lists stat thresholds.
	Stats []StatThreshold `json:"stats,omitempty" yaml:"stats,omitempty" mapstructure:"stats"`
	// Visits maps scene ids to the exact number of times they must have been entered.
	Visits map[string]int `json:"visits,omitempty" yaml:"visits,omitempty" mapstructure:"visits"`
}

// IsEmpty reports whether the requirement has no clauses.
func (r *Requirement) IsEmpty() bool {
	return r == nil || (len(r.Items) == 0 && len(r.Flags) == 0 && len(r.Stats) == 0 && len(r.Visits) == 0)
}
