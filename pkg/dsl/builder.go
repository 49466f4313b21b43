package dsl

import (
	"fmt"

	"github.com/aretw0/hollow/pkg/adapters/memory"
	"github.com/aretw0/hollow/pkg/domain"
)

// Builder manages the content construction.
type Builder struct {
	game    domain.GameInfo
	scenes  map[string]*SceneBuilder
	dialogs map[string]*DialogBuilder
	puzzles map[string]domain.Puzzle
	items   map[string]domain.Item
}

// New creates a new content builder.
func New(title string) *Builder {
	return &Builder{
		game:    domain.GameInfo{Title: title},
		scenes:  make(map[string]*SceneBuilder),
		dialogs: make(map[string]*DialogBuilder),
		puzzles: make(map[string]domain.Puzzle),
		items:   make(map[string]domain.Item),
	}
}

// Start sets the scene a new game begins in.
func (b *Builder) Start(sceneID string) *Builder {
	b.game.StartScene = sceneID
	return b
}

// Player sets the initial stat block.
func (b *Builder) Player(stats domain.Stats) *Builder {
	b.game.Player = stats
	return b
}

// Give adds a stack to the starting inventory.
func (b *Builder) Give(itemID string, quantity int) *Builder {
	b.game.Inventory = append(b.game.Inventory, domain.ItemStack{ID: itemID, Quantity: quantity})
	return b
}

// Flag sets an initial world flag.
func (b *Builder) Flag(key string, value any) *Builder {
	if b.game.Flags == nil {
		b.game.Flags = make(map[string]any)
	}
	b.game.Flags[key] = value
	return b
}

// Notifications bounds the notification queue.
func (b *Builder) Notifications(capacity int) *Builder {
	b.game.NotificationCapacity = capacity
	return b
}

// Scene creates a new scene in the content.
// If the scene already exists, it returns the existing builder.
func (b *Builder) Scene(id string) *SceneBuilder {
	if sb, ok := b.scenes[id]; ok {
		return sb
	}
	sb := &SceneBuilder{scene: domain.Scene{ID: id}, builder: b}
	b.scenes[id] = sb
	return sb
}

// Dialog creates a new dialog, or returns the existing builder.
func (b *Builder) Dialog(id string) *DialogBuilder {
	if db, ok := b.dialogs[id]; ok {
		return db
	}
	db := &DialogBuilder{dialog: domain.Dialog{ID: id}, builder: b}
	b.dialogs[id] = db
	return db
}

// Puzzle registers a puzzle definition. The id is taken from p.ID.
func (b *Builder) Puzzle(p domain.Puzzle) *Builder {
	b.puzzles[p.ID] = p
	return b
}

// Item registers an item definition. The id is taken from it.ID.
func (b *Builder) Item(it domain.Item) *Builder {
	b.items[it.ID] = it
	return b
}

// Content compiles the definitions into a fresh repository.
func (b *Builder) Content() (*domain.Content, error) {
	if b.game.StartScene == "" {
		return nil, fmt.Errorf("no start scene")
	}
	if _, ok := b.scenes[b.game.StartScene]; !ok {
		return nil, fmt.Errorf("start scene %q: %w", b.game.StartScene, domain.ErrUnknownScene)
	}

	c := domain.NewContent()
	c.Game = b.game
	for id, sb := range b.scenes {
		s := sb.scene
		c.Scenes[id] = &s
	}
	for id, db := range b.dialogs {
		d := db.dialog
		c.Dialogs[id] = &d
	}
	for id, p := range b.puzzles {
		c.Puzzles[id] = &p
	}
	for id, it := range b.items {
		c.Items[id] = &it
	}
	return c, nil
}

// Build compiles the content into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	c, err := b.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to build content: %w", err)
	}
	return memory.NewLoader(c), nil
}
