/*
Package hollow is the rules engine of Eden's Hollow, a gothic point-and-click adventure.

Content (scenes, dialogs, puzzles, items) is declarative data loaded once through a
ports.ContentLoader. A playthrough is a single domain.GameState snapshot that changes only
when an Action is dispatched to the Engine. Every effect the content can express (flags,
inventory, stats, dialogs, puzzles, scene changes, time, notifications) is resolved by the
engine, so the same content plays identically in a terminal, over HTTP or in tests.

# Usage

	eng, err := hollow.New(ctx,
		hollow.WithLoader(story.Loader()),
		hollow.WithGateway(persistence.NewGateway(file.New(".hollow/saves"))),
		hollow.WithAutosave(true),
	)
	if err != nil {
		log.Fatal(err)
	}

	state, err := eng.Interact(ctx, "signpost")
	view := eng.View()

Dispatches are serialized. Snapshots returned by State, View and Subscribe are deep copies,
so callers may keep them around and read them from any goroutine.

# Game over

When a terminal stat threshold is crossed the run ends. From then on every action except
Restart leaves the state untouched and returns no error. Subscribers still receive the
unchanged snapshot.
*/
package hollow
