package domain

// Stat names addressable by effects and requirements.
const (
	StatHealth     = "health"
	StatMaxHealth  = "max_health"
	StatMana       = "mana"
	StatMaxMana    = "max_mana"
	StatSanity     = "sanity"
	StatMaxSanity  = "max_sanity"
	StatCorruption = "corruption"
)

// Get reads a stat by name.
func (s Stats) Get(name string) (int, bool) {
	switch name {
	case StatHealth:
		return s.Health, true
	case StatMaxHealth:
		return s.MaxHealth, true
	case StatMana:
		return s.Mana, true
	case StatMaxMana:
		return s.MaxMana, true
	case StatSanity:
		return s.Sanity, true
	case StatMaxSanity:
		return s.MaxSanity, true
	case StatCorruption:
		return s.Corruption, true
	default:
		return 0, false
	}
}

// With returns a copy with the named stat set to value and every current value clamped.
// Unknown names leave the stats unchanged and report false.
func (s Stats) With(name string, value int) (Stats, bool) {
	switch name {
	case StatHealth:
		s.Health = value
	case StatMaxHealth:
		s.MaxHealth = max(value, 0)
	case StatMana:
		s.Mana = value
	case StatMaxMana:
		s.MaxMana = max(value, 0)
	case StatSanity:
		s.Sanity = value
	case StatMaxSanity:
		s.MaxSanity = max(value, 0)
	case StatCorruption:
		s.Corruption = value
	default:
		return s, false
	}
	return s.Clamped(), true
}

// Clamped forces every current value into [0, max] (corruption into [0, MaxCorruption]).
func (s Stats) Clamped() Stats {
	s.Health = clamp(s.Health, 0, s.MaxHealth)
	s.Mana = clamp(s.Mana, 0, s.MaxMana)
	s.Sanity = clamp(s.Sanity, 0, s.MaxSanity)
	s.Corruption = clamp(s.Corruption, 0, MaxCorruption)
	return s
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
