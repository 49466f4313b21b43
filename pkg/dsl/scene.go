package dsl

import "github.com/aretw0/hollow/pkg/domain"

// SceneBuilder provides a fluent API for configuring a scene.
type SceneBuilder struct {
	scene   domain.Scene
	builder *Builder
}

// Name sets the display name.
func (s *SceneBuilder) Name(name string) *SceneBuilder {
	s.scene.Name = name
	return s
}

// Describe sets the scene text.
func (s *SceneBuilder) Describe(text string) *SceneBuilder {
	s.scene.Description = text
	return s
}

// Exit adds an always-open exit.
func (s *SceneBuilder) Exit(id, target string) *SceneBuilder {
	s.scene.Exits = append(s.scene.Exits, domain.Exit{ID: id, Target: target})
	return s
}

// LockedExit adds an exit gated by req. message is shown while it stays locked.
func (s *SceneBuilder) LockedExit(id, target string, req *domain.Requirement, message string) *SceneBuilder {
	s.scene.Exits = append(s.scene.Exits, domain.Exit{ID: id, Target: target, Requirement: req, LockedMessage: message})
	return s
}

// OnEnter adds an entry trigger that fires on every visit.
func (s *SceneBuilder) OnEnter(effects ...domain.Effect) *SceneBuilder {
	return s.Entry(domain.Trigger{Effects: effects})
}

// OnFirstEnter adds an entry trigger that fires only on the first qualifying visit.
func (s *SceneBuilder) OnFirstEnter(effects ...domain.Effect) *SceneBuilder {
	return s.Entry(domain.Trigger{Effects: effects, Once: true})
}

// Entry adds a fully specified entry trigger.
func (s *SceneBuilder) Entry(t domain.Trigger) *SceneBuilder {
	s.scene.EntryTriggers = append(s.scene.EntryTriggers, t)
	return s
}

// OnLeave adds an exit trigger.
func (s *SceneBuilder) OnLeave(t domain.Trigger) *SceneBuilder {
	s.scene.ExitTriggers = append(s.scene.ExitTriggers, t)
	return s
}

// Element adds an interactive element.
func (s *SceneBuilder) Element(el domain.Element) *SceneBuilder {
	s.scene.Elements = append(s.scene.Elements, el)
	return s
}

// Dialogs lists the dialogs the player may open here.
func (s *SceneBuilder) Dialogs(ids ...string) *SceneBuilder {
	s.scene.Dialogs = append(s.scene.Dialogs, ids...)
	return s
}

// Puzzles lists the puzzles the player may open here.
func (s *SceneBuilder) Puzzles(ids ...string) *SceneBuilder {
	s.scene.Puzzles = append(s.scene.Puzzles, ids...)
	return s
}

// Items lists the items found here.
func (s *SceneBuilder) Items(ids ...string) *SceneBuilder {
	s.scene.Items = append(s.scene.Items, ids...)
	return s
}

// Hazard makes the scene change stat by amount every intervalMs while exploring.
func (s *SceneBuilder) Hazard(stat string, amount int, intervalMs int64) *SceneBuilder {
	s.scene.Hazard = &domain.Hazard{Stat: stat, Amount: amount, IntervalMs: intervalMs}
	return s
}

// Build returns the underlying domain.Scene.
func (s *SceneBuilder) Build() domain.Scene {
	return s.scene
}
