package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/hollow/pkg/adapters/memory"
	"github.com/aretw0/hollow/pkg/domain"
	contract "github.com/aretw0/hollow/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapelJSON = `{
	"game": {"title": "Chapel", "start_scene": "nave", "player": {"health": 10, "max_health": 10}},
	"scenes": {
		"nave":  {"description": "Cold pews.", "exits": [{"id": "door", "target": "crypt"}]},
		"crypt": {"description": "Bones."}
	},
	"dialogs": {"priest": {"nodes": [{"speaker": "Priest", "text": "Leave."}]}},
	"puzzles": {"altar": {"type": "riddle", "answer": "fire"}},
	"items": {"candle": {"name": "Candle", "consumable": true}}
}`

func TestInMemoryLoader_Contract(t *testing.T) {
	loader, err := memory.NewFromJSON([]byte(chapelJSON))
	require.NoError(t, err)

	contract.ContentLoaderContractTest(t, loader, "nave", "crypt")
}

func TestNewFromJSON_FillsIDsFromKeys(t *testing.T) {
	loader, err := memory.NewFromJSON([]byte(chapelJSON))
	require.NoError(t, err)

	c, err := loader.Load(context.Background())
	require.NoError(t, err)

	p, ok := c.Puzzle("altar")
	require.True(t, ok)
	assert.Equal(t, "altar", p.ID)
	assert.Equal(t, domain.PuzzleRiddle, p.Type)

	it, ok := c.Item("candle")
	require.True(t, ok)
	assert.True(t, it.Consumable)
}

func TestNewFromJSON_Invalid(t *testing.T) {
	_, err := memory.NewFromJSON([]byte(`{"scenes": [`))
	assert.Error(t, err)

	_, err = memory.NewFromJSON([]byte(`{"scenes": {"nave": null}}`))
	assert.Error(t, err)
}

func TestLoader_Empty(t *testing.T) {
	_, err := memory.NewLoader(nil).Load(context.Background())
	assert.Error(t, err)
}
