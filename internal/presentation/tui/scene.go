package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/pkg/domain"
)

var levelMarks = map[domain.NotificationLevel]string{
	domain.LevelInfo:    "·",
	domain.LevelWarning: "!",
	domain.LevelDanger:  "‼",
}

// Markdown lays a view out as a markdown page. c supplies item names.
func Markdown(v hollow.View, c *domain.Content) string {
	var b strings.Builder

	title := v.SceneName
	if title == "" {
		title = v.SceneID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if d := strings.TrimSpace(v.Description); d != "" {
		fmt.Fprintf(&b, "%s\n\n", d)
	}

	writeStats(&b, v.State.Player)
	writeNotifications(&b, v.State.Notifications)

	switch v.Mode {
	case domain.ModeGameOver:
		fmt.Fprintf(&b, "## The End\n\nYour story ends here (%s). Type `restart` to begin again.\n", v.State.GameOverReason)
		return b.String()
	case domain.ModeInDialog:
		writeDialog(&b, v.Dialog)
		return b.String()
	case domain.ModeInPuzzle:
		writePuzzle(&b, v.Puzzle)
		return b.String()
	}

	if len(v.Exits) > 0 {
		b.WriteString("## Exits\n\n")
		for _, ex := range v.Exits {
			lock := ""
			if !ex.Open {
				lock = " (locked)"
			}
			fmt.Fprintf(&b, "- `%s` %s%s\n", ex.ID, ex.Label, lock)
		}
		b.WriteString("\n")
	}
	if len(v.Elements) > 0 {
		b.WriteString("## Around you\n\n")
		for _, el := range v.Elements {
			fmt.Fprintf(&b, "- `%s` %s\n", el.ID, el.Label)
		}
		b.WriteString("\n")
	}
	if len(v.Dialogs) > 0 {
		fmt.Fprintf(&b, "**Talk:** %s\n\n", codeList(v.Dialogs))
	}
	if len(v.Puzzles) > 0 {
		fmt.Fprintf(&b, "**Puzzles:** %s\n\n", codeList(v.Puzzles))
	}
	writeInventory(&b, v.State.Inventory, c)
	return b.String()
}

func writeStats(b *strings.Builder, p domain.Stats) {
	fmt.Fprintf(b, "*Health %d/%d · Mana %d/%d", p.Health, p.MaxHealth, p.Mana, p.MaxMana)
	if p.TracksSanity() {
		fmt.Fprintf(b, " · Sanity %d/%d", p.Sanity, p.MaxSanity)
	}
	if p.Corruption > 0 {
		fmt.Fprintf(b, " · Corruption %d/%d", p.Corruption, domain.MaxCorruption)
	}
	b.WriteString("*\n\n")
}

func writeNotifications(b *strings.Builder, ns []domain.Notification) {
	for _, n := range ns {
		mark := levelMarks[n.Level]
		if mark == "" {
			mark = "·"
		}
		fmt.Fprintf(b, "> %s %s `%s`\n", mark, n.Message, n.ID)
	}
	if len(ns) > 0 {
		b.WriteString("\n")
	}
}

func writeDialog(b *strings.Builder, d *hollow.DialogView) {
	if d == nil {
		return
	}
	if d.Speaker != "" {
		fmt.Fprintf(b, "**%s:** %s\n\n", d.Speaker, d.Text)
	} else {
		fmt.Fprintf(b, "%s\n\n", d.Text)
	}
	if len(d.Responses) == 0 {
		b.WriteString("*(press enter to continue)*\n")
		return
	}
	for _, r := range d.Responses {
		fmt.Fprintf(b, "%d. %s\n", r.Index+1, r.Text)
	}
}

func writePuzzle(b *strings.Builder, p *hollow.PuzzleView) {
	if p == nil {
		return
	}
	fmt.Fprintf(b, "## Puzzle: %s\n\n", p.PuzzleID)
	if p.Description != "" {
		fmt.Fprintf(b, "%s\n\n", p.Description)
	}
	if p.AttemptsRemaining != nil {
		fmt.Fprintf(b, "Attempts left: %d\n\n", *p.AttemptsRemaining)
	}
	if len(p.Options) > 0 {
		fmt.Fprintf(b, "Offerings: %s\n\n", codeList(p.Options))
	}
	fmt.Fprintf(b, "Answer with `%s`", answerUsage(p.Type))
	if p.HasHint {
		b.WriteString(", ask for a `hint`")
	}
	b.WriteString(" or `cancel`.\n")
}

func answerUsage(t domain.PuzzleType) string {
	switch t {
	case domain.PuzzleSequence, domain.PuzzleRune, domain.PuzzleCombination:
		return "symbols <a> <b> ..."
	case domain.PuzzlePattern:
		return "pattern <i> <j> ..."
	case domain.PuzzleSacrifice:
		return "offer <item> ..."
	default:
		return "answer <text>"
	}
}

func writeInventory(b *strings.Builder, inv []domain.ItemStack, c *domain.Content) {
	if len(inv) == 0 {
		return
	}
	b.WriteString("## Inventory\n\n")
	for _, st := range inv {
		name := st.ID
		if c != nil {
			if it, ok := c.Item(st.ID); ok && it.Name != "" {
				name = it.Name
			}
		}
		if st.Quantity > 1 {
			fmt.Fprintf(b, "- `%s` %s ×%d\n", st.ID, name, st.Quantity)
		} else {
			fmt.Fprintf(b, "- `%s` %s\n", st.ID, name)
		}
	}
	b.WriteString("\n")
}

func codeList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + id + "`"
	}
	return strings.Join(quoted, ", ")
}
