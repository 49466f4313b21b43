package domain

import "errors"

// ErrSlotNotFound is returned when a save slot key does not exist in the store.
var ErrSlotNotFound = errors.New("save slot not found")

// Content-reference errors. The runtime logs them and treats the action as a no-op.
var (
	ErrUnknownScene   = errors.New("unknown scene")
	ErrUnknownDialog  = errors.New("unknown dialog")
	ErrUnknownPuzzle  = errors.New("unknown puzzle")
	ErrUnknownItem    = errors.New("unknown item")
	ErrUnknownExit    = errors.New("unknown exit")
	ErrUnknownElement = errors.New("unknown element")
)

// ErrCorruptSave is returned when a stored blob cannot be decoded into a GameState.
var ErrCorruptSave = errors.New("corrupt save data")
