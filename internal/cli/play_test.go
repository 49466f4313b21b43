package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hollow/internal/cli"
)

func play(t *testing.T, app *cli.App, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := cli.Play(context.Background(), app, cli.PlayOptions{
		In:  strings.NewReader(strings.Join(script, "\n") + "\n"),
		Out: &out,
	})
	require.NoError(t, err)
	return out.String()
}

func TestPlay_Session(t *testing.T) {
	app := build(t, baseConfig(), cli.BuildOptions{})

	out := play(t, app,
		"signpost",
		"dance",
		"go gate",
		"save",
		"hint",
		"help",
		"quit",
		"go gate",
	)

	assert.Contains(t, out, "# The Threshold")
	assert.Contains(t, out, "EDEN'S HOLLOW. Pop. 0.")
	assert.Contains(t, out, `>>> unknown command: "dance" (try help)`)
	assert.Contains(t, out, "# Village Square")
	assert.Contains(t, out, ">>> Game saved.")
	assert.Contains(t, out, ">>> No hint here.")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, ">>> Farewell.")
	assert.Equal(t, "square", app.Engine.State().CurrentSceneID, "input after quit is ignored")
}

func TestPlay_EndOfInput(t *testing.T) {
	app := build(t, baseConfig(), cli.BuildOptions{})
	out := play(t, app, "load", "go gate", "save", "go back", "load")
	assert.Contains(t, out, ">>> No usable save; starting over.")
	assert.Contains(t, out, ">>> Save restored.")
	assert.Equal(t, "square", app.Engine.State().CurrentSceneID)
}

func TestPlay_Canceled(t *testing.T) {
	app := build(t, baseConfig(), cli.BuildOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	block, release := blockingReader()
	t.Cleanup(release)
	err := cli.Play(ctx, app, cli.PlayOptions{In: block, Out: &out})
	assert.ErrorIs(t, err, context.Canceled)
}

type blocking struct{ ch chan struct{} }

func (b blocking) Read([]byte) (int, error) {
	<-b.ch
	return 0, nil
}

func blockingReader() (blocking, func()) {
	b := blocking{ch: make(chan struct{})}
	return b, func() { close(b.ch) }
}
