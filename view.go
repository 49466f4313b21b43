package hollow

import (
	"slices"

	"github.com/aretw0/hollow/internal/runtime"
	"github.com/aretw0/hollow/pkg/domain"
)

// ExitView is an exit as the player sees it.
type ExitView struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Target string `json:"target"`
	Open   bool   `json:"open"`
}

// ElementView is an interactive element the player can still use.
type ElementView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DialogView is the current node of the open dialog.
type DialogView struct {
	DialogID  string   `json:"dialog_id"`
	NodeIndex int      `json:"node_index"`
	Speaker   string   `json:"speaker,omitempty"`
	Text      string   `json:"text"`
	Responses []Choice `json:"responses,omitempty"`
}

// Choice is a dialog response the player may select.
type Choice struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// PuzzleView describes the open puzzle.
type PuzzleView struct {
	PuzzleID          string            `json:"puzzle_id"`
	Type              domain.PuzzleType `json:"type"`
	Description       string            `json:"description,omitempty"`
	Attempts          int               `json:"attempts"`
	AttemptsRemaining *int              `json:"attempts_remaining,omitempty"`
	Slots             int               `json:"slots,omitempty"`
	Options           []string          `json:"options,omitempty"`
	MaxSelections     int               `json:"max_selections,omitempty"`
	HasHint           bool              `json:"has_hint"`
}

// View is a render-ready projection of a snapshot: what a UI needs to draw the screen.
type View struct {
	Mode        domain.Mode      `json:"mode"`
	SceneID     string           `json:"scene_id"`
	SceneName   string           `json:"scene_name,omitempty"`
	Description string           `json:"description"`
	Exits       []ExitView       `json:"exits"`
	Elements    []ElementView    `json:"elements"`
	Dialogs     []string         `json:"dialogs,omitempty"`
	Puzzles     []string         `json:"puzzles,omitempty"`
	Dialog      *DialogView      `json:"dialog,omitempty"`
	Puzzle      *PuzzleView      `json:"puzzle,omitempty"`
	State       domain.GameState `json:"state"`
}

// View projects the current snapshot.
func (e *Engine) View() View {
	return e.ViewOf(e.State())
}

// ViewOf projects s against the loaded content.
func (e *Engine) ViewOf(s domain.GameState) View {
	v := View{
		Mode:     s.Mode(),
		SceneID:  s.CurrentSceneID,
		Exits:    []ExitView{},
		Elements: []ElementView{},
		State:    s,
	}
	c := e.rt.Content()
	scene, ok := c.Scene(s.CurrentSceneID)
	if !ok {
		return v
	}
	v.SceneName = scene.Name
	v.Description = scene.Description
	v.Dialogs = scene.Dialogs
	for _, id := range scene.Puzzles {
		if !s.FlagSet(domain.PuzzleSolvedFlag(id)) {
			v.Puzzles = append(v.Puzzles, id)
		}
	}
	for _, ex := range scene.Exits {
		label := ex.Label
		if label == "" {
			label = ex.ID
		}
		v.Exits = append(v.Exits, ExitView{ID: ex.ID, Label: label, Target: ex.Target, Open: runtime.Evaluate(ex.Requirement, &s)})
	}
	for _, el := range scene.Elements {
		if runtime.ElementSpent(s, scene.ID, el) {
			continue
		}
		label := el.Label
		if label == "" {
			label = el.ID
		}
		v.Elements = append(v.Elements, ElementView{ID: el.ID, Label: label})
	}

	if node, ok := e.rt.CurrentNode(s); ok {
		dv := &DialogView{
			DialogID:  s.ActiveDialog.DialogID,
			NodeIndex: s.ActiveDialog.NodeIndex,
			Speaker:   node.Speaker,
			Text:      node.Text,
		}
		for _, i := range e.rt.EligibleResponses(s) {
			dv.Responses = append(dv.Responses, Choice{Index: i, Text: node.Responses[i].Text})
		}
		v.Dialog = dv
	}

	if s.ActivePuzzle != nil {
		if p, ok := c.Puzzle(s.ActivePuzzle.PuzzleID); ok {
			pv := &PuzzleView{
				PuzzleID:      p.ID,
				Type:          p.Type,
				Description:   p.Description,
				Attempts:      s.ActivePuzzle.Attempts,
				Slots:         p.Slots,
				MaxSelections: p.MaxSelections,
				HasHint:       p.Hint != "",
			}
			if p.MaxAttempts > 0 {
				n := max(p.MaxAttempts-s.ActivePuzzle.Attempts, 0)
				pv.AttemptsRemaining = &n
			}
			if p.Type == domain.PuzzleSacrifice {
				for id := range p.Offerings {
					pv.Options = append(pv.Options, id)
				}
				slices.Sort(pv.Options)
			}
			v.Puzzle = pv
		}
	}
	return v
}

// Hint returns the hint of a puzzle; an empty id means the open puzzle.
func (e *Engine) Hint(puzzleID string) (string, bool) {
	return e.rt.Hint(e.State(), puzzleID)
}
