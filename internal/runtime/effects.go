package runtime

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/hollow/pkg/domain"
)

// apply folds effects over s in place. depth counts the scene changes already chained in
// this dispatch.
func (e *Engine) apply(ctx context.Context, s *domain.GameState, effects []domain.Effect, depth int) {
	for _, eff := range effects {
		e.applyOne(ctx, s, eff, depth)
	}
}

func (e *Engine) applyOne(ctx context.Context, s *domain.GameState, eff domain.Effect, depth int) {
	switch eff.Kind {
	case domain.EffectSetFlag:
		if eff.Flag == "" {
			e.logger.Warn("setFlag without a key", "scene", s.CurrentSceneID)
			return
		}
		v := eff.Value
		if v == nil {
			v = true
		}
		s.Flags[eff.Flag] = domain.NormalizeValue(v)

	case domain.EffectAddItem:
		if _, ok := e.content.Item(eff.Item); !ok {
			e.logger.Warn("addItem skipped", "item", eff.Item, "error", fmt.Errorf("item %q: %w", eff.Item, domain.ErrUnknownItem))
			return
		}
		e.addItem(s, eff.Item, eff.Quantity)

	case domain.EffectRemoveItem:
		s.Inventory = slices.DeleteFunc(s.Inventory, func(it domain.ItemStack) bool { return it.ID == eff.Item })

	case domain.EffectModifyStat:
		e.modifyStat(ctx, s, eff.Stat, eff.Amount, eff.Absolute)

	case domain.EffectStartDialog:
		e.openDialog(ctx, s, eff.Target)

	case domain.EffectStartPuzzle:
		e.openPuzzle(ctx, s, eff.Target)

	case domain.EffectChangeScene:
		e.moveTo(ctx, s, eff.Target, depth+1)

	case domain.EffectAdvanceTime:
		e.advanceClock(ctx, s, eff.DurationMs, depth)

	case domain.EffectNotify:
		s.PushNotification(eff.Level, eff.Message, eff.DurationMs, e.capacity)

	default:
		e.logger.Warn("unknown effect kind", "kind", eff.Kind)
	}
}

// addItem increments an existing stack or appends a new one. Quantities below one count as one.
func (e *Engine) addItem(s *domain.GameState, itemID string, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	if i := s.FindItem(itemID); i >= 0 {
		s.Inventory[i].Quantity += quantity
		return
	}
	stack := domain.ItemStack{ID: itemID, Quantity: quantity}
	if def, ok := e.content.Item(itemID); ok {
		stack.Consumable = def.Consumable
	}
	s.Inventory = append(s.Inventory, stack)
}

func (e *Engine) modifyStat(ctx context.Context, s *domain.GameState, stat string, amount int, absolute bool) {
	cur, ok := s.Player.Get(stat)
	if !ok {
		e.logger.Warn("modifyStat on unknown stat", "stat", stat)
		return
	}
	target := cur + amount
	if absolute {
		target = amount
	}
	s.Player, _ = s.Player.With(stat, target)
	e.checkGameOver(ctx, s, stat)
}

// checkGameOver ends the run when the stat just modified crossed a terminal threshold.
// The first reason recorded wins.
func (e *Engine) checkGameOver(ctx context.Context, s *domain.GameState, stat string) {
	if s.GameOver {
		return
	}
	var reason string
	switch stat {
	case domain.StatHealth, domain.StatMaxHealth:
		if s.Player.Health <= 0 {
			reason = domain.ReasonDeath
		}
	case domain.StatSanity, domain.StatMaxSanity:
		if s.Player.TracksSanity() && s.Player.Sanity <= 0 {
			reason = domain.ReasonInsanity
		}
	case domain.StatCorruption:
		if s.Player.Corruption >= domain.MaxCorruption {
			reason = domain.ReasonCorruption
		}
	}
	if reason == "" {
		return
	}
	s.GameOver = true
	s.GameOverReason = reason
	e.logger.Info("game over", "reason", reason, "scene", s.CurrentSceneID, "run_id", s.RunID)
	e.emitGameOver(ctx, s)
}
