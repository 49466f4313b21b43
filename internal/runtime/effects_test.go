package runtime_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/hollow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statNames = []string{
	domain.StatHealth, domain.StatMaxHealth, domain.StatMana, domain.StatMaxMana,
	domain.StatSanity, domain.StatMaxSanity, domain.StatCorruption,
}

func assertStatsInBounds(t *testing.T, p domain.Stats) {
	t.Helper()
	assert.GreaterOrEqual(t, p.Health, 0)
	assert.LessOrEqual(t, p.Health, p.MaxHealth)
	assert.GreaterOrEqual(t, p.Mana, 0)
	assert.LessOrEqual(t, p.Mana, p.MaxMana)
	assert.GreaterOrEqual(t, p.Sanity, 0)
	assert.LessOrEqual(t, p.Sanity, p.MaxSanity)
	assert.GreaterOrEqual(t, p.Corruption, 0)
	assert.LessOrEqual(t, p.Corruption, domain.MaxCorruption)
	assert.GreaterOrEqual(t, p.MaxHealth, 0)
	assert.GreaterOrEqual(t, p.MaxMana, 0)
	assert.GreaterOrEqual(t, p.MaxSanity, 0)
}

func TestApply_StatsStayClamped(t *testing.T) {
	engine, start := newGame(t)
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 50; run++ {
		s := start
		for step := 0; step < 40; step++ {
			stat := statNames[rng.IntN(len(statNames))]
			amount := rng.IntN(61) - 30
			eff := domain.ModifyStat(stat, amount)
			if rng.IntN(3) == 0 {
				eff = domain.SetStat(stat, amount*4)
			}
			s = engine.Apply(ctx, s, []domain.Effect{eff})
			assertStatsInBounds(t, s.Player)
		}
	}
}

func TestApply_InventoryStaysUnique(t *testing.T) {
	engine, start := newGame(t)
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(3, 5))
	ids := []string{"lantern", "key", "rope", "bread", "potion"}

	s := start
	for step := 0; step < 500; step++ {
		id := ids[rng.IntN(len(ids))]
		var eff domain.Effect
		if rng.IntN(3) == 0 {
			eff = domain.RemoveItem(id)
		} else {
			eff = domain.AddItem(id, rng.IntN(4))
		}
		s = engine.Apply(ctx, s, []domain.Effect{eff})

		seen := make(map[string]bool)
		for _, it := range s.Inventory {
			require.False(t, seen[it.ID], "duplicate stack %s", it.ID)
			seen[it.ID] = true
			require.Greater(t, it.Quantity, 0, "empty stack %s", it.ID)
		}
	}
}

func TestApply_Items(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.Apply(ctx, s, []domain.Effect{
		domain.AddItem("bread", 2),
		domain.AddItem("key", 0),
		domain.AddItem("bread", 1),
		domain.AddItem("unobtainium", 1),
	})
	assert.Equal(t, []domain.ItemStack{
		{ID: "lantern", Quantity: 1},
		{ID: "bread", Quantity: 3, Consumable: true},
		{ID: "key", Quantity: 1},
	}, s.Inventory)

	s = engine.Apply(ctx, s, []domain.Effect{domain.RemoveItem("bread"), domain.RemoveItem("ghost")})
	assert.False(t, s.HasItem("bread"), "removal is total regardless of quantity")
	assert.Len(t, s.Inventory, 2)
}

func TestApply_Flags(t *testing.T) {
	engine, s := newGame(t)

	next := engine.Apply(context.Background(), s, []domain.Effect{
		domain.SetFlag("lit", nil),
		domain.SetFlag("count", 5),
		domain.SetFlag("name", "Eve"),
		domain.SetFlag("", true),
	})

	assert.Equal(t, true, next.Flags["lit"])
	assert.Equal(t, 5.0, next.Flags["count"])
	assert.Equal(t, "Eve", next.Flags["name"])
	assert.Len(t, next.Flags, 3)
	assert.Empty(t, s.Flags, "input snapshot must not change")
}

func TestApply_SequentialFold(t *testing.T) {
	engine, s := newGame(t)

	next := engine.Apply(context.Background(), s, []domain.Effect{
		domain.SetStat(domain.StatHealth, 4),
		domain.ModifyStat(domain.StatHealth, 3),
		domain.SetStat(domain.StatMaxHealth, 5),
		domain.ModifyStat(domain.StatHealth, 100),
		domain.ModifyStat("luck", 3),
	})
	assert.Equal(t, 5, next.Player.Health)
	assert.Equal(t, 5, next.Player.MaxHealth)
}

func TestApply_GameOver(t *testing.T) {
	tests := []struct {
		name    string
		effects []domain.Effect
		reason  string
	}{
		{"Health", []domain.Effect{domain.ModifyStat(domain.StatHealth, -10)}, domain.ReasonDeath},
		{"Absolute Health", []domain.Effect{domain.SetStat(domain.StatHealth, 0)}, domain.ReasonDeath},
		{"Max Health Collapse", []domain.Effect{domain.SetStat(domain.StatMaxHealth, 0)}, domain.ReasonDeath},
		{"Sanity", []domain.Effect{domain.ModifyStat(domain.StatSanity, -15)}, domain.ReasonInsanity},
		{"Corruption", []domain.Effect{domain.ModifyStat(domain.StatCorruption, 60), domain.ModifyStat(domain.StatCorruption, 60)}, domain.ReasonCorruption},
		{"First Reason Wins", []domain.Effect{domain.ModifyStat(domain.StatSanity, -10), domain.ModifyStat(domain.StatHealth, -10)}, domain.ReasonInsanity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, s := newGame(t)
			next := engine.Apply(context.Background(), s, tt.effects)
			assert.True(t, next.GameOver)
			assert.Equal(t, tt.reason, next.GameOverReason)
			assert.Equal(t, domain.ModeGameOver, next.Mode())
		})
	}
}

func TestApply_EffectsAfterGameOverStillApply(t *testing.T) {
	engine, s := newGame(t)

	next := engine.Apply(context.Background(), s, []domain.Effect{
		domain.ModifyStat(domain.StatHealth, -10),
		domain.SetFlag("epitaph", "here lies"),
		domain.AddItem("key", 1),
	})
	assert.True(t, next.GameOver)
	assert.Equal(t, "here lies", next.Flags["epitaph"])
	assert.True(t, next.HasItem("key"))
}

func TestApply_UntrackedSanity(t *testing.T) {
	engine, _ := newGame(t)
	s := domain.NewGameState("gate", domain.Stats{Health: 5, MaxHealth: 5})

	next := engine.Apply(context.Background(), s, []domain.Effect{domain.ModifyStat(domain.StatSanity, -5)})
	assert.False(t, next.GameOver)
	assert.Equal(t, 0, next.Player.Sanity)
}

func TestApply_CorruptionBelowCeiling(t *testing.T) {
	engine, s := newGame(t)

	next := engine.Apply(context.Background(), s, []domain.Effect{domain.ModifyStat(domain.StatCorruption, 99)})
	assert.False(t, next.GameOver)
	assert.Equal(t, 99, next.Player.Corruption)
}
