package tests

import (
	"context"
	"testing"

	"github.com/aretw0/hollow/pkg/ports"
)

// ContentLoaderContractTest is a reusable test suite that verifies if an adapter complies with
// ports.ContentLoader. wantScenes lists scene ids the loaded content must define.
func ContentLoaderContractTest(t *testing.T, loader ports.ContentLoader, wantScenes ...string) {
	t.Helper()

	content, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error loading content: %v", err)
	}

	t.Run("StartScene", func(t *testing.T) {
		if content.Game.StartScene == "" {
			t.Fatal("content declares no start scene")
		}
		if _, ok := content.Scene(content.Game.StartScene); !ok {
			t.Errorf("start scene %q is not defined", content.Game.StartScene)
		}
	})

	t.Run("Scenes", func(t *testing.T) {
		for _, id := range wantScenes {
			s, ok := content.Scene(id)
			if !ok {
				t.Errorf("scene %s missing", id)
				continue
			}
			if s.ID != id {
				t.Errorf("scene keyed %s carries id %s", id, s.ID)
			}
		}
	})

	t.Run("Keys Match IDs", func(t *testing.T) {
		for k, d := range content.Dialogs {
			if d.ID != k {
				t.Errorf("dialog keyed %s carries id %s", k, d.ID)
			}
		}
		for k, p := range content.Puzzles {
			if p.ID != k {
				t.Errorf("puzzle keyed %s carries id %s", k, p.ID)
			}
		}
		for k, it := range content.Items {
			if it.ID != k {
				t.Errorf("item keyed %s carries id %s", k, it.ID)
			}
		}
	})
}
