package dsl

import "github.com/aretw0/hollow/pkg/domain"

// NeedItems requires the player to hold every listed item.
func NeedItems(ids ...string) *domain.Requirement {
	return &domain.Requirement{Items: ids}
}

// NeedFlag requires a flag to hold value. false also matches an unset flag.
func NeedFlag(key string, value any) *domain.Requirement {
	return &domain.Requirement{Flags: map[string]any{key: value}}
}

// NeedStatMin requires stat >= n.
func NeedStatMin(stat string, n int) *domain.Requirement {
	return &domain.Requirement{Stats: []domain.StatThreshold{{Stat: stat, Min: &n}}}
}

// NeedStatMax requires stat <= n.
func NeedStatMax(stat string, n int) *domain.Requirement {
	return &domain.Requirement{Stats: []domain.StatThreshold{{Stat: stat, Max: &n}}}
}

// NeedVisits requires the scene to have been entered exactly n times.
func NeedVisits(sceneID string, n int) *domain.Requirement {
	return &domain.Requirement{Visits: map[string]int{sceneID: n}}
}

// All merges requirements into one conjunction. Later flag and visit clauses win on key clashes.
func All(reqs ...*domain.Requirement) *domain.Requirement {
	out := &domain.Requirement{}
	for _, r := range reqs {
		if r == nil {
			continue
		}
		out.Items = append(out.Items, r.Items...)
		out.Stats = append(out.Stats, r.Stats...)
		for k, v := range r.Flags {
			if out.Flags == nil {
				out.Flags = make(map[string]any)
			}
			out.Flags[k] = v
		}
		for k, v := range r.Visits {
			if out.Visits == nil {
				out.Visits = make(map[string]int)
			}
			out.Visits[k] = v
		}
	}
	return out
}
