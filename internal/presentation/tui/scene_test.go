package tui_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/internal/presentation/tui"
	"github.com/aretw0/hollow/internal/testutils"
	"github.com/aretw0/hollow/pkg/adapters/memory"
)

func newEngine(t *testing.T) *hollow.Engine {
	t.Helper()
	eng, err := hollow.New(context.Background(), hollow.WithLoader(memory.NewLoader(testutils.Crypt(t))))
	require.NoError(t, err)
	return eng
}

func TestMarkdown_Exploring(t *testing.T) {
	eng := newEngine(t)
	md := tui.Markdown(eng.View(), eng.Content())

	assert.Contains(t, md, "# gate")
	assert.Contains(t, md, "Rusted bars and a dry well.")
	assert.Contains(t, md, "*Health 10/10 · Mana 5/5 · Sanity 10/10*")
	assert.Contains(t, md, "- `north` north (locked)")
	assert.Contains(t, md, "- `east` east\n")
	assert.Contains(t, md, "**Talk:** `crow`")
	assert.Contains(t, md, "- `lantern` Lantern")
}

func TestMarkdown_Dialog(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	_, err := eng.StartDialog(ctx, "crow")
	require.NoError(t, err)

	md := tui.Markdown(eng.View(), eng.Content())
	assert.Contains(t, md, "**Crow:** Caw.")
	assert.Contains(t, md, "1. Listen")
	assert.Contains(t, md, "3. Walk away")
	assert.NotContains(t, md, "Offer bread")
	assert.NotContains(t, md, "## Exits")
}

func TestMarkdown_Puzzle(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	_, err := eng.StartPuzzle(ctx, "runes")
	require.NoError(t, err)

	md := tui.Markdown(eng.View(), eng.Content())
	assert.Contains(t, md, "## Puzzle: runes")
	assert.Contains(t, md, "Attempts left: 3")
	assert.Contains(t, md, "`symbols <a> <b> ...`, ask for a `hint`")
}

func TestMarkdown_GameOver(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	_, err := eng.TryExit(ctx, "east")
	require.NoError(t, err)
	_, err = eng.AdvanceTime(ctx, 60_000)
	require.NoError(t, err)

	md := tui.Markdown(eng.View(), eng.Content())
	assert.Contains(t, md, "## The End")
	assert.Contains(t, md, "(death)")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "Eden's Hollow 1.2.3")
}

func TestRenderers(t *testing.T) {
	out, err := tui.Plain("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)

	render, err := tui.NewRenderer(60)
	require.NoError(t, err)
	out, err = render("# Title\n\nSome *text*.")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
