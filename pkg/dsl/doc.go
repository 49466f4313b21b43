/*
Package dsl provides a Go DSL for programmatically constructing Eden's Hollow content.

It allows developers to define scenes, dialogs, puzzles and items with a fluent builder
instead of YAML files. This is mostly useful for unit tests and small embedded stories.

Example usage:

	b := dsl.New("The Gate")
	b.Start("gate").Player(domain.Stats{Health: 10, MaxHealth: 10})

	b.Scene("gate").
		Describe("Rusted iron bars.").
		LockedExit("in", "yard", dsl.NeedItems("key"), "The gate is locked.").
		OnFirstEnter(domain.Notify(domain.LevelInfo, "Crows scatter.", 3000))

	b.Scene("yard").Describe("Weeds.")
	b.Item(domain.Item{ID: "key", Name: "Iron key"})

	loader, err := b.Build()
*/
package dsl
