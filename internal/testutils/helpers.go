package testutils

import (
	"testing"

	"github.com/aretw0/hollow/pkg/domain"
	"github.com/aretw0/hollow/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// Runes is the solution of the "runes" puzzle in Crypt.
var Runes = []string{"ᚱ", "ᚦ", "ᚲ", "ᚨ"}

// Crypt builds a small story exercising every rule of the engine.
//
//	gate --north (needs key)--> chapel --south--> gate
//	gate --east--> yard (health hazard) --west--> gate
//
// The gate holds a once-only "stone" element that yields the key, a "well" that needs rope,
// the "crow" dialog and the runes, sacrifice and riddle puzzles.
// It fails the test immediately on error.
func Crypt(t *testing.T) *domain.Content {
	t.Helper()

	b := dsl.New("Crypt")
	b.Start("gate").
		Player(domain.Stats{Health: 10, MaxHealth: 10, Mana: 5, MaxMana: 5, Sanity: 10, MaxSanity: 10}).
		Give("lantern", 1).
		Notifications(3)

	b.Scene("gate").
		Describe("Rusted bars and a dry well.").
		LockedExit("north", "chapel", dsl.NeedItems("key"), "The chapel door is locked.").
		Exit("east", "yard").
		Element(domain.Element{ID: "stone", Effects: []domain.Effect{domain.AddItem("key", 1)}, Once: true}).
		Element(domain.Element{
			ID:             "well",
			Requirement:    dsl.NeedItems("rope"),
			Effects:        []domain.Effect{domain.SetFlag("well_climbed", true)},
			FailureMessage: "Too deep to climb.",
		}).
		Dialogs("crow").
		Puzzles("runes", "offering", "riddle")

	b.Scene("chapel").
		Describe("Candles that never burn down.").
		OnFirstEnter(domain.ModifyStat(domain.StatMana, -1)).
		OnEnter(domain.ModifyStat(domain.StatSanity, -1)).
		Exit("south", "gate")

	b.Scene("yard").
		Describe("Weeds choke the graves.").
		Hazard(domain.StatHealth, -1, 1000).
		Exit("west", "gate")

	b.Dialog("crow").
		Say("Crow", "Caw.").
		Choice("Listen", 1).
		ChoiceIf(dsl.NeedItems("bread"), "Offer bread", 2, domain.SetFlag("crow_fed", true)).
		Leave("Walk away").
		Say("Crow", "The key is under the stone.").
		Say("Crow", "Caw caw.").
		End()

	b.Puzzle(domain.Puzzle{
		ID:          "runes",
		Type:        domain.PuzzleRune,
		Sequence:    Runes,
		MaxAttempts: 3,
		Rewards:     []domain.Effect{domain.SetFlag("runes_glow", true)},
		FailureEffects: []domain.Effect{
			domain.ModifyStat(domain.StatSanity, -2),
		},
		Hint: "Read them as the crow flies.",
	})
	b.Puzzle(domain.Puzzle{
		ID:            "offering",
		Type:          domain.PuzzleSacrifice,
		Offerings:     map[string]int{"ritual_dagger": 3, "childhood_memory": 5, "lovers_locket": 7},
		TargetValue:   15,
		MaxSelections: 3,
	})
	b.Puzzle(domain.Puzzle{
		ID:         "riddle",
		Type:       domain.PuzzleRiddle,
		Answer:     "fire",
		Alternates: []string{"a fire", "the fire", "flame", "flames"},
	})

	b.Item(domain.Item{ID: "lantern", Name: "Lantern"})
	b.Item(domain.Item{ID: "key", Name: "Iron key"})
	b.Item(domain.Item{ID: "rope", Name: "Rope"})
	b.Item(domain.Item{ID: "bread", Name: "Stale bread", Consumable: true})
	b.Item(domain.Item{
		ID:         "potion",
		Name:       "Red vial",
		Consumable: true,
		Effects:    []domain.Effect{domain.ModifyStat(domain.StatHealth, 3)},
	})

	c, err := b.Content()
	require.NoError(t, err, "Failed to build test content")
	return c
}
