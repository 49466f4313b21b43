package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/hollow/pkg/domain"
)

const defaultMissingItemMessage = "You are not carrying that."

// UseItem applies an inventory item's effects. A consumable stack loses one unit first and is
// removed when it runs out. Items can be used in any mode except game over.
func (e *Engine) UseItem(ctx context.Context, s domain.GameState, itemID string) domain.GameState {
	if s.GameOver {
		return e.refuse("useItem", s)
	}
	def, ok := e.content.Item(itemID)
	if !ok {
		e.logger.Warn("useItem skipped", "error", fmt.Errorf("item %q: %w", itemID, domain.ErrUnknownItem))
		return s
	}

	next := s.Clone()
	i := next.FindItem(itemID)
	if i < 0 || next.Inventory[i].Quantity <= 0 {
		e.notify(&next, domain.LevelInfo, defaultMissingItemMessage)
		return next
	}
	if def.Consumable || next.Inventory[i].Consumable {
		next.Inventory[i].Quantity--
		if next.Inventory[i].Quantity <= 0 {
			next.Inventory = append(next.Inventory[:i:i], next.Inventory[i+1:]...)
		}
	}
	e.apply(ctx, &next, def.Effects, 0)
	return next
}

// DismissNotification removes one notification from the queue.
func (e *Engine) DismissNotification(s domain.GameState, id string) domain.GameState {
	if s.GameOver {
		return e.refuse("dismissNotification", s)
	}
	next := s.Clone()
	if !next.DismissNotification(id) {
		return s
	}
	return next
}
