package runtime

import (
	"context"

	"github.com/aretw0/hollow/pkg/domain"
)

// AdvanceTime moves the game clock forward by elapsedMs: timed notifications expire and the
// current scene's hazard ticks while the player is exploring.
func (e *Engine) AdvanceTime(ctx context.Context, s domain.GameState, elapsedMs int64) domain.GameState {
	if s.GameOver || elapsedMs <= 0 {
		return s
	}
	next := s.Clone()
	e.advanceClock(ctx, &next, elapsedMs, 0)
	return next
}

// maxHazardTicks bounds one drain so the stat delta cannot overflow.
const maxHazardTicks = 1 << 20

func (e *Engine) advanceClock(ctx context.Context, s *domain.GameState, elapsedMs int64, depth int) {
	if elapsedMs <= 0 {
		return
	}
	s.ClockMs = domain.AddMs(s.ClockMs, elapsedMs)
	s.ExpireNotifications()

	if s.Mode() != domain.ModeExploring {
		return
	}
	scene, ok := e.content.Scene(s.CurrentSceneID)
	if !ok || scene.Hazard == nil || scene.Hazard.IntervalMs <= 0 || scene.Hazard.Amount == 0 {
		return
	}
	h := scene.Hazard
	rem := s.HazardMs + elapsedMs%h.IntervalMs
	ticks := elapsedMs/h.IntervalMs + rem/h.IntervalMs
	s.HazardMs = rem % h.IntervalMs
	if ticks == 0 {
		return
	}
	ticks = min(ticks, maxHazardTicks)
	e.logger.Debug("hazard tick", "scene", scene.ID, "stat", h.Stat, "ticks", ticks)
	e.applyOne(ctx, s, domain.ModifyStat(h.Stat, h.Amount*int(ticks)), depth)
}
