package runtime

import "github.com/aretw0/hollow/pkg/domain"

// Evaluate reports whether s satisfies every clause of req.
// A nil or empty requirement always holds. Unset flags read as false.
func Evaluate(req *domain.Requirement, s *domain.GameState) bool {
	if req.IsEmpty() {
		return true
	}
	if s == nil {
		return false
	}

	for _, id := range req.Items {
		if !s.HasItem(id) {
			return false
		}
	}

	for key, want := range req.Flags {
		if !domain.ValuesEqual(s.Flag(key), want) {
			return false
		}
	}

	for _, th := range req.Stats {
		v, ok := s.Player.Get(th.Stat)
		if !ok {
			return false
		}
		if th.Min != nil && v < *th.Min {
			return false
		}
		if th.Max != nil && v > *th.Max {
			return false
		}
	}

	for sceneID, n := range req.Visits {
		if s.VisitCounts[sceneID] != n {
			return false
		}
	}

	return true
}
