// Package validator checks story content for broken references before it is played.
package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/hollow/pkg/domain"
)

// Severity ranks a problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one finding, located by a slash-separated path such as "scene/gate/exit/north".
type Problem struct {
	Severity Severity
	Path     string
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Severity, p.Path, p.Message)
}

// Report collects the problems found in a content repository.
type Report struct {
	Problems []Problem
}

// Errors returns the problems of error severity.
func (r Report) Errors() []Problem {
	return r.filter(SeverityError)
}

// Warnings returns the problems of warning severity.
func (r Report) Warnings() []Problem {
	return r.filter(SeverityWarning)
}

func (r Report) filter(sev Severity) []Problem {
	var out []Problem
	for _, p := range r.Problems {
		if p.Severity == sev {
			out = append(out, p)
		}
	}
	return out
}

// Err summarizes the errors, or returns nil when there are none. Warnings never fail.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, p := range errs {
		lines[i] = p.Path + ": " + p.Message
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

type checker struct {
	c      *domain.Content
	report Report
}

func (k *checker) errorf(path, format string, args ...any) {
	k.report.Problems = append(k.report.Problems, Problem{SeverityError, path, fmt.Sprintf(format, args...)})
}

func (k *checker) warnf(path, format string, args ...any) {
	k.report.Problems = append(k.report.Problems, Problem{SeverityWarning, path, fmt.Sprintf(format, args...)})
}

// Validate checks every reference in c and reports scenes unreachable from the start scene.
// Problems are ordered by entity kind and id.
func Validate(c *domain.Content) Report {
	k := &checker{c: c}
	if c == nil {
		k.errorf("content", "no content")
		return k.report
	}

	if c.Game.StartScene == "" {
		k.errorf("game", "start scene is not set")
	} else if _, ok := c.Scene(c.Game.StartScene); !ok {
		k.errorf("game", "start scene %q is not defined", c.Game.StartScene)
	}
	if c.Game.Player.MaxHealth <= 0 {
		k.warnf("game/player", "max_health is %d; the first damage ends the game", c.Game.Player.MaxHealth)
	}
	for i, stack := range c.Game.Inventory {
		if _, ok := c.Item(stack.ID); !ok {
			k.errorf(fmt.Sprintf("game/inventory/%d", i), "unknown item %q", stack.ID)
		}
	}

	for _, id := range sortedKeys(c.Scenes) {
		k.scene(c.Scenes[id])
	}
	for _, id := range sortedKeys(c.Dialogs) {
		k.dialog(c.Dialogs[id])
	}
	for _, id := range sortedKeys(c.Puzzles) {
		k.puzzle(c.Puzzles[id])
	}
	for _, id := range sortedKeys(c.Items) {
		it := c.Items[id]
		k.effects("item/"+id, it.Effects)
	}

	k.reachability()
	return k.report
}

func (k *checker) scene(s *domain.Scene) {
	base := "scene/" + s.ID
	seen := make(map[string]bool)
	for _, ex := range s.Exits {
		path := base + "/exit/" + ex.ID
		if seen[ex.ID] {
			k.errorf(path, "duplicate exit id")
		}
		seen[ex.ID] = true
		if _, ok := k.c.Scene(ex.Target); !ok {
			k.errorf(path, "target scene %q is not defined", ex.Target)
		}
		k.requirement(path, ex.Requirement)
	}
	for i, tr := range s.EntryTriggers {
		path := fmt.Sprintf("%s/entry_trigger/%d", base, i)
		k.requirement(path, tr.Requirement)
		k.effects(path, tr.Effects)
	}
	for i, tr := range s.ExitTriggers {
		path := fmt.Sprintf("%s/exit_trigger/%d", base, i)
		k.requirement(path, tr.Requirement)
		k.effects(path, tr.Effects)
	}
	clear(seen)
	for _, el := range s.Elements {
		path := base + "/element/" + el.ID
		if seen[el.ID] {
			k.errorf(path, "duplicate element id")
		}
		seen[el.ID] = true
		k.requirement(path, el.Requirement)
		k.effects(path, el.Effects)
	}
	for _, id := range s.Dialogs {
		if _, ok := k.c.Dialog(id); !ok {
			k.errorf(base+"/dialogs", "unknown dialog %q", id)
		}
	}
	for _, id := range s.Puzzles {
		if _, ok := k.c.Puzzle(id); !ok {
			k.errorf(base+"/puzzles", "unknown puzzle %q", id)
		}
	}
	for _, id := range s.Items {
		if _, ok := k.c.Item(id); !ok {
			k.errorf(base+"/items", "unknown item %q", id)
		}
	}
	if h := s.Hazard; h != nil {
		if _, ok := (domain.Stats{}).Get(h.Stat); !ok {
			k.errorf(base+"/hazard", "unknown stat %q", h.Stat)
		}
		if h.IntervalMs <= 0 {
			k.errorf(base+"/hazard", "interval_ms must be positive")
		}
	}
}

func (k *checker) dialog(d *domain.Dialog) {
	base := "dialog/" + d.ID
	if len(d.Nodes) == 0 {
		k.errorf(base, "dialog has no nodes")
		return
	}
	for i, n := range d.Nodes {
		for j, r := range n.Responses {
			path := fmt.Sprintf("%s/node/%d/response/%d", base, i, j)
			if r.Next != nil && (*r.Next < 0 || *r.Next >= len(d.Nodes)) {
				k.errorf(path, "next node %d is out of range (0-%d)", *r.Next, len(d.Nodes)-1)
			}
			k.requirement(path, r.Requirement)
			k.effects(path, r.Effects)
		}
	}
}

func (k *checker) puzzle(p *domain.Puzzle) {
	base := "puzzle/" + p.ID
	switch p.Type {
	case domain.PuzzleSequence, domain.PuzzleRune:
		if len(p.Sequence) == 0 {
			k.errorf(base, "%s puzzle needs a sequence", p.Type)
		}
	case domain.PuzzleCombination:
		if len(p.Sequence) == 0 {
			k.errorf(base, "combination puzzle needs a sequence")
		}
		if p.Slots > 0 && p.Slots != len(p.Sequence) {
			k.errorf(base, "combination has %d slots but a solution of %d", p.Slots, len(p.Sequence))
		}
	case domain.PuzzleCode, domain.PuzzleRiddle:
		if strings.TrimSpace(p.Answer) == "" {
			k.errorf(base, "%s puzzle needs an answer", p.Type)
		}
	case domain.PuzzlePattern:
		if len(p.Pattern) == 0 {
			k.errorf(base, "pattern puzzle needs a pattern")
		}
	case domain.PuzzleSacrifice:
		if len(p.Offerings) == 0 || p.TargetValue <= 0 {
			k.errorf(base, "sacrifice puzzle needs offerings and a positive target value")
		}
	default:
		k.errorf(base, "unknown puzzle type %q", p.Type)
	}
	if p.MaxAttempts < 0 {
		k.errorf(base, "max_attempts must not be negative")
	}
	k.effects(base+"/rewards", p.Rewards)
	k.effects(base+"/failure_effects", p.FailureEffects)
}

func (k *checker) requirement(path string, r *domain.Requirement) {
	if r.IsEmpty() {
		return
	}
	for _, id := range r.Items {
		if _, ok := k.c.Item(id); !ok {
			k.errorf(path+"/requirement", "unknown item %q", id)
		}
	}
	for _, st := range r.Stats {
		if _, ok := (domain.Stats{}).Get(st.Stat); !ok {
			k.errorf(path+"/requirement", "unknown stat %q", st.Stat)
		}
	}
	for id := range r.Visits {
		if _, ok := k.c.Scene(id); !ok {
			k.errorf(path+"/requirement", "visit count of unknown scene %q", id)
		}
	}
}

func (k *checker) effects(path string, effects []domain.Effect) {
	for i, e := range effects {
		p := fmt.Sprintf("%s/effect/%d", path, i)
		switch e.Kind {
		case domain.EffectSetFlag:
			if e.Flag == "" {
				k.errorf(p, "setFlag without a flag key")
			}
		case domain.EffectAddItem, domain.EffectRemoveItem:
			if _, ok := k.c.Item(e.Item); !ok {
				k.errorf(p, "unknown item %q", e.Item)
			}
		case domain.EffectModifyStat:
			if _, ok := (domain.Stats{}).Get(e.Stat); !ok {
				k.errorf(p, "unknown stat %q", e.Stat)
			}
		case domain.EffectStartDialog:
			if _, ok := k.c.Dialog(e.Target); !ok {
				k.errorf(p, "unknown dialog %q", e.Target)
			}
		case domain.EffectStartPuzzle:
			if _, ok := k.c.Puzzle(e.Target); !ok {
				k.errorf(p, "unknown puzzle %q", e.Target)
			}
		case domain.EffectChangeScene:
			if _, ok := k.c.Scene(e.Target); !ok {
				k.errorf(p, "unknown scene %q", e.Target)
			}
		case domain.EffectAdvanceTime:
			if e.DurationMs <= 0 {
				k.warnf(p, "advanceTime of %dms does nothing", e.DurationMs)
			}
		case domain.EffectNotify:
			if e.Message == "" {
				k.warnf(p, "notify without a message")
			}
		default:
			k.errorf(p, "unknown effect kind %q", e.Kind)
		}
	}
}

// reachability walks exits and changeScene effects breadth-first from the start scene.
func (k *checker) reachability() {
	start, ok := k.c.Scene(k.c.Game.StartScene)
	if !ok {
		return
	}
	visited := map[string]bool{start.ID: true}
	queue := []*domain.Scene{start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, target := range k.neighbours(s) {
			if visited[target] {
				continue
			}
			next, ok := k.c.Scene(target)
			if !ok {
				continue
			}
			visited[target] = true
			queue = append(queue, next)
		}
	}
	for _, id := range sortedKeys(k.c.Scenes) {
		if !visited[id] {
			k.warnf("scene/"+id, "unreachable from start scene %q", start.ID)
		}
	}
}

func (k *checker) neighbours(s *domain.Scene) []string {
	edges := Edges(k.c, s)
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.To
	}
	return out
}

// EdgeKind tells how an edge moves the player.
type EdgeKind string

const (
	EdgeExit   EdgeKind = "exit"
	EdgeLocked EdgeKind = "locked"
	// EdgeJump is a changeScene effect.
	EdgeJump EdgeKind = "jump"
)

// Edge is a way out of a scene. Via names the exit, or the trigger, element, dialog or puzzle
// whose effects change the scene.
type Edge struct {
	From string
	To   string
	Via  string
	Kind EdgeKind
}

// Edges lists every way out of s, exits first in declaration order.
func Edges(c *domain.Content, s *domain.Scene) []Edge {
	var out []Edge
	jumps := func(via string, effects []domain.Effect) {
		for _, e := range effects {
			if e.Kind == domain.EffectChangeScene {
				out = append(out, Edge{From: s.ID, To: e.Target, Via: via, Kind: EdgeJump})
			}
		}
	}
	for _, ex := range s.Exits {
		kind := EdgeExit
		if ex.Requirement != nil {
			kind = EdgeLocked
		}
		out = append(out, Edge{From: s.ID, To: ex.Target, Via: ex.ID, Kind: kind})
	}
	for _, tr := range slices.Concat(s.EntryTriggers, s.ExitTriggers) {
		jumps("trigger", tr.Effects)
	}
	for _, el := range s.Elements {
		jumps(el.ID, el.Effects)
	}
	for _, id := range s.Dialogs {
		if d, ok := c.Dialog(id); ok {
			for _, n := range d.Nodes {
				for _, r := range n.Responses {
					jumps(id, r.Effects)
				}
			}
		}
	}
	for _, id := range s.Puzzles {
		if p, ok := c.Puzzle(id); ok {
			jumps(id, p.Rewards)
			jumps(id, p.FailureEffects)
		}
	}
	return out
}

func sortedKeys[T any](m map[string]*T) []string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v != nil {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
