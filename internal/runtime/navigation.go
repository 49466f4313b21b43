package runtime

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/hollow/pkg/domain"
)

const (
	defaultLockedMessage  = "The way is locked."
	defaultFailureMessage = "Nothing happens."
)

// TryExit moves the player through an exit of the current scene.
// A failed requirement leaves the player in place and queues the exit's locked message.
func (e *Engine) TryExit(ctx context.Context, s domain.GameState, exitID string) domain.GameState {
	if s.Mode() != domain.ModeExploring {
		return e.refuse("tryExit", s)
	}
	scene, ok := e.content.Scene(s.CurrentSceneID)
	if !ok {
		e.logger.Warn("tryExit from unknown scene", "error", fmt.Errorf("scene %q: %w", s.CurrentSceneID, domain.ErrUnknownScene))
		return s
	}
	exit, ok := scene.FindExit(exitID)
	if !ok {
		e.logger.Warn("tryExit skipped", "scene", scene.ID, "error", fmt.Errorf("exit %q: %w", exitID, domain.ErrUnknownExit))
		return s
	}

	next := s.Clone()
	if !Evaluate(exit.Requirement, &s) {
		msg := exit.LockedMessage
		if msg == "" {
			msg = defaultLockedMessage
		}
		e.notify(&next, domain.LevelWarning, msg)
		return next
	}

	e.moveTo(ctx, &next, exit.Target, 0)
	return next
}

// Interact activates an element of the current scene.
func (e *Engine) Interact(ctx context.Context, s domain.GameState, elementID string) domain.GameState {
	if s.Mode() != domain.ModeExploring {
		return e.refuse("interact", s)
	}
	scene, ok := e.content.Scene(s.CurrentSceneID)
	if !ok {
		e.logger.Warn("interact in unknown scene", "error", fmt.Errorf("scene %q: %w", s.CurrentSceneID, domain.ErrUnknownScene))
		return s
	}
	el, ok := scene.FindElement(elementID)
	if !ok {
		e.logger.Warn("interact skipped", "scene", scene.ID, "error", fmt.Errorf("element %q: %w", elementID, domain.ErrUnknownElement))
		return s
	}

	key := elementKey(scene.ID, el.ID)
	if el.Once && s.HasFired(key) {
		return s
	}

	next := s.Clone()
	if !Evaluate(el.Requirement, &s) {
		msg := el.FailureMessage
		if msg == "" {
			msg = defaultFailureMessage
		}
		e.notify(&next, domain.LevelInfo, msg)
		return next
	}
	if el.Once {
		next.MarkFired(key)
	}
	e.apply(ctx, &next, el.Effects, 0)
	return next
}

// moveTo fires the exit triggers of the current scene and enters target.
// An exit trigger that already moved the player wins over target.
func (e *Engine) moveTo(ctx context.Context, s *domain.GameState, target string, depth int) {
	if _, ok := e.content.Scene(target); !ok {
		e.logger.Warn("scene change skipped", "error", fmt.Errorf("scene %q: %w", target, domain.ErrUnknownScene))
		return
	}
	if depth > maxSceneHops {
		e.logger.Warn("scene change chain too deep", "target", target, "depth", depth)
		return
	}

	from := s.CurrentSceneID
	if cur, ok := e.content.Scene(from); ok {
		e.fireTriggers(ctx, s, cur, cur.ExitTriggers, "exit", depth)
		if s.CurrentSceneID != from {
			return
		}
		e.emitSceneLeave(ctx, s, from)
	}
	e.enterScene(ctx, s, target, depth)
}

// enterScene records the visit and fires qualifying entry triggers.
func (e *Engine) enterScene(ctx context.Context, s *domain.GameState, sceneID string, depth int) {
	scene, ok := e.content.Scene(sceneID)
	if !ok {
		e.logger.Warn("enter skipped", "error", fmt.Errorf("scene %q: %w", sceneID, domain.ErrUnknownScene))
		return
	}
	s.CurrentSceneID = scene.ID
	s.HazardMs = 0
	s.MarkVisited(scene.ID)
	e.logger.Debug("scene entered", "scene", scene.ID, "visits", s.VisitCounts[scene.ID])
	e.emitSceneEnter(ctx, s, scene.ID)

	e.fireTriggers(ctx, s, scene, scene.EntryTriggers, "entry", depth)
}

// fireTriggers evaluates triggers in order against the evolving state.
// It stops once a trigger moves the player out of scene.
func (e *Engine) fireTriggers(ctx context.Context, s *domain.GameState, scene *domain.Scene, triggers []domain.Trigger, phase string, depth int) {
	for i := range triggers {
		t := &triggers[i]
		key := triggerKey(scene.ID, phase, t.ID, i)
		if t.Once && s.HasFired(key) {
			continue
		}
		if !Evaluate(t.Requirement, s) {
			continue
		}
		if t.Once {
			s.MarkFired(key)
		}
		e.apply(ctx, s, t.Effects, depth)
		if s.CurrentSceneID != scene.ID {
			return
		}
	}
}

func triggerKey(sceneID, phase, triggerID string, index int) string {
	if triggerID == "" {
		triggerID = strconv.Itoa(index)
	}
	return "scene:" + sceneID + ":" + phase + ":" + triggerID
}

func elementKey(sceneID, elementID string) string {
	return "scene:" + sceneID + ":element:" + elementID
}

// offered reports whether a scene lists id among its references. An empty list offers nothing.
func offered(refs []string, id string) bool {
	return slices.Contains(refs, id)
}

// ElementSpent reports whether a once-only element of a scene was already used.
func ElementSpent(s domain.GameState, sceneID string, el domain.Element) bool {
	return el.Once && s.HasFired(elementKey(sceneID, el.ID))
}
