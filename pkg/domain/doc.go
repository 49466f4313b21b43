/*
Package domain contains the core model of the Eden's Hollow rules engine.

It defines the immutable content entities (Scenes, Dialogs, Puzzles, Items) and the
single mutable entity, the GameState snapshot. The package is kept pure and free of
I/O and persistence concerns; the runtime and the adapters build on top of it.

# Key Entities

  - Content: the static repository of scenes, dialogs, puzzles and items, keyed by id.
  - GameState: the value-typed snapshot of a playthrough (scene, inventory, flags, stats).
  - Requirement: a conjunctive predicate gating exits, elements, triggers and responses.
  - Effect: a tagged, atomic mutation instruction applied in list order.
  - Notification: a transient message with an optional expiry on the game clock.
*/
package domain
