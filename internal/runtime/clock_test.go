package runtime_test

import (
	"context"
	"math"
	"testing"

	"github.com/aretw0/hollow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceTime_Hazard(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.TryExit(ctx, s, "east")
	require.Equal(t, "yard", s.CurrentSceneID)

	s = engine.AdvanceTime(ctx, s, 2500)
	assert.Equal(t, 8, s.Player.Health)
	assert.Equal(t, int64(500), s.HazardMs)
	assert.Equal(t, int64(2500), s.ClockMs)

	s = engine.AdvanceTime(ctx, s, 500)
	assert.Equal(t, 7, s.Player.Health)
	assert.Equal(t, int64(0), s.HazardMs)

	s = engine.AdvanceTime(ctx, s, 600)
	s = engine.TryExit(ctx, s, "west")
	assert.Equal(t, int64(0), s.HazardMs, "leaving resets the hazard timer")
	s = engine.AdvanceTime(ctx, s, 10_000)
	assert.Equal(t, 7, s.Player.Health, "no hazard at the gate")
}

func TestAdvanceTime_HazardKills(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.TryExit(ctx, s, "east")
	s = engine.AdvanceTime(ctx, s, 60_000)
	assert.True(t, s.GameOver)
	assert.Equal(t, domain.ReasonDeath, s.GameOverReason)
	assert.Equal(t, 0, s.Player.Health)
}

func TestAdvanceTime_NotificationExpiry(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.Apply(ctx, s, []domain.Effect{
		domain.Notify(domain.LevelInfo, "brief", 1000),
		domain.Notify(domain.LevelInfo, "sticky", 0),
	})
	require.Len(t, s.Notifications, 2)

	s = engine.AdvanceTime(ctx, s, 999)
	assert.Len(t, s.Notifications, 2)

	s = engine.AdvanceTime(ctx, s, 1)
	require.Len(t, s.Notifications, 1)
	assert.Equal(t, "sticky", s.Notifications[0].Message)
}

func TestAdvanceTime_Effect(t *testing.T) {
	engine, s := newGame(t)

	next := engine.Apply(context.Background(), s, []domain.Effect{domain.AdvanceTime(1500)})
	assert.Equal(t, int64(1500), next.ClockMs)
}

func TestAdvanceTime_NonPositive(t *testing.T) {
	engine, s := newGame(t)
	assert.Equal(t, s, engine.AdvanceTime(context.Background(), s, 0))
	assert.Equal(t, s, engine.AdvanceTime(context.Background(), s, -5))
}

func TestNotificationCapacity(t *testing.T) {
	engine, s := newGame(t)

	s = engine.Apply(context.Background(), s, []domain.Effect{
		domain.Notify(domain.LevelInfo, "1", 0),
		domain.Notify(domain.LevelInfo, "2", 0),
		domain.Notify(domain.LevelInfo, "3", 0),
		domain.Notify(domain.LevelInfo, "4", 0),
		domain.Notify(domain.LevelInfo, "5", 0),
	})

	require.Len(t, s.Notifications, 3)
	assert.Equal(t, "3", s.Notifications[0].Message)
	assert.Equal(t, "n5", s.Notifications[2].ID)
}

func TestAdvanceTime_ClockSaturates(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.AdvanceTime(ctx, s, math.MaxInt64-10)
	s = engine.Apply(ctx, s, []domain.Effect{domain.Notify(domain.LevelInfo, "late", 5000)})
	require.Len(t, s.Notifications, 1)
	assert.Equal(t, int64(math.MaxInt64), s.Notifications[0].ExpiresAtMs)

	s = engine.AdvanceTime(ctx, s, 100)
	assert.Equal(t, int64(math.MaxInt64), s.ClockMs)
	assert.Empty(t, s.Notifications, "timed notification expires once the clock saturates")

	s = engine.AdvanceTime(ctx, s, math.MaxInt64)
	assert.Equal(t, int64(math.MaxInt64), s.ClockMs)
}

func TestAdvanceTime_HugeElapsedInHazard(t *testing.T) {
	engine, s := newGame(t)
	ctx := context.Background()

	s = engine.TryExit(ctx, s, "east")
	s = engine.AdvanceTime(ctx, s, 700)
	s = engine.AdvanceTime(ctx, s, math.MaxInt64-1000)
	assert.True(t, s.GameOver)
	assert.Equal(t, domain.ReasonDeath, s.GameOverReason)
	assert.Equal(t, 0, s.Player.Health)
	assert.GreaterOrEqual(t, s.HazardMs, int64(0))
	assert.Less(t, s.HazardMs, int64(1000))
}
