package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hollow/internal/presentation/graph"
	"github.com/aretw0/hollow/internal/runtime"
	"github.com/aretw0/hollow/internal/testutils"
	"github.com/aretw0/hollow/pkg/domain"
	"github.com/aretw0/hollow/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(testutils.Crypt(t), nil)

	for _, want := range []string{
		"graph TD\n",
		`gate(("gate"))`,
		`yard{{"yard"}}`,
		`chapel["chapel"]`,
		`gate -. "north 🔒" .-> chapel`,
		`gate -- "east" --> yard`,
		`chapel -- "south" --> gate`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Jumps(t *testing.T) {
	b := dsl.New("Jumps")
	b.Start("hall").Player(domain.Stats{Health: 1, MaxHealth: 1})
	b.Scene("hall").Name(`The "Hall"`).Element(domain.Element{ID: "mirror", Effects: []domain.Effect{domain.ChangeScene("other-side")}})
	b.Scene("other-side")
	c, err := b.Content()
	require.NoError(t, err)

	out := graph.GenerateMermaid(c, nil)
	assert.Contains(t, out, `hall(("The 'Hall'"))`)
	assert.Contains(t, out, `hall == "mirror" ==> other_side`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	c := testutils.Crypt(t)
	rt := runtime.NewEngine(c)
	s, err := rt.NewGame(context.Background(), "run")
	require.NoError(t, err)
	s = rt.TryExit(context.Background(), s, "east")

	out := graph.GenerateMermaid(c, graph.OverlayOf(s))
	assert.Contains(t, out, "class gate visited;")
	assert.Contains(t, out, "class yard current;")
	assert.NotContains(t, out, "class yard visited;")
}
