package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with a file backend rooted in dir.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOLLOW_TICK_INTERVAL", "0")
	t.Setenv("HOLLOW_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--backend", "file", "--save-dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hollow version ")
}

func TestValidate_EmbeddedStory(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestValidate_MissingContent(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "--content", filepath.Join(t.TempDir(), "nope"), "validate")
	assert.Error(t, err)
}

func TestInvalidBackend(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "--backend", "tape", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown save backend")
}

func TestPlayMapAndSaves(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "signpost\ngo gate\nquit\n", "play", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "# The Threshold")
	assert.Contains(t, out, "# Village Square")

	out, err = run(t, dir, "", "map", "--progress")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "class square current;")
	assert.Contains(t, out, "class threshold visited;")

	out, err = run(t, dir, "", "save", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "- edens-hollow/save")

	out, err = run(t, dir, "", "save", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, `"current_scene_id": "square"`)

	// Resume picks up in the square.
	out, err = run(t, dir, "look\n", "play", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "# Village Square")

	out, err = run(t, dir, "", "save", "rm")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "edens-hollow/save"`)

	out, err = run(t, dir, "", "save", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved games found.")

	_, err = run(t, dir, "", "save", "inspect")
	assert.ErrorContains(t, err, "no save under")
}

func TestMap_WithoutProgress(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "map")
	require.NoError(t, err)
	assert.Contains(t, out, `threshold(("The Threshold"))`)
	assert.NotContains(t, out, "classDef")
}
