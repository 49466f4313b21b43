package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/hollow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseItem_Consumable(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.Apply(ctx, s, []domain.Effect{domain.AddItem("potion", 2), domain.ModifyStat(domain.StatHealth, -5)})

	s = engine.UseItem(ctx, s, "potion")
	assert.Equal(t, 8, s.Player.Health)
	assert.Equal(t, 1, s.Inventory[s.FindItem("potion")].Quantity)

	s = engine.UseItem(ctx, s, "potion")
	assert.Equal(t, 10, s.Player.Health)
	assert.Equal(t, -1, s.FindItem("potion"), "an exhausted consumable is removed")
}

func TestUseItem_NonConsumable(t *testing.T) {
	engine, s := newGame(t)

	next := engine.UseItem(context.Background(), s, "lantern")
	assert.Equal(t, s.Inventory, next.Inventory)
}

func TestUseItem_NotHeld(t *testing.T) {
	engine, s := newGame(t)

	next := engine.UseItem(context.Background(), s, "potion")
	assert.Equal(t, s.Inventory, next.Inventory)
	require.Len(t, next.Notifications, 1)

	assert.Equal(t, s, engine.UseItem(context.Background(), s, "unobtainium"))
}

func TestUseItem_DuringDialog(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.Apply(ctx, s, []domain.Effect{domain.AddItem("potion", 1), domain.ModifyStat(domain.StatHealth, -5)})
	s = engine.StartDialog(ctx, s, "crow")
	s = engine.UseItem(ctx, s, "potion")

	assert.Equal(t, 8, s.Player.Health)
	assert.NotNil(t, s.ActiveDialog)
}

func TestDismissNotification(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.Apply(ctx, s, []domain.Effect{domain.Notify(domain.LevelWarning, "boo", 0)})
	id := s.Notifications[0].ID

	next := engine.DismissNotification(s, id)
	assert.Empty(t, next.Notifications)
	assert.Equal(t, next, engine.DismissNotification(next, id))
}
