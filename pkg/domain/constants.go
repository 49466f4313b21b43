package domain

// Flag key prefixes written by the puzzle solver.
const (
	// FlagPuzzleSolvedPrefix + puzzle id is set to true when a puzzle is solved.
	FlagPuzzleSolvedPrefix = "puzzle_solved_"
	// FlagPuzzleFailedPrefix + puzzle id is set to true when a puzzle runs out of attempts.
	FlagPuzzleFailedPrefix = "puzzle_failed_"
)

// SaveSlotKey is the well-known storage key of the single local save slot.
const SaveSlotKey = "edens-hollow/save"

// PuzzleSolvedFlag returns the flag key marking puzzleID as solved.
func PuzzleSolvedFlag(puzzleID string) string {
	return FlagPuzzleSolvedPrefix + puzzleID
}

// PuzzleFailedFlag returns the flag key marking puzzleID as failed.
func PuzzleFailedFlag(puzzleID string) string {
	return FlagPuzzleFailedPrefix + puzzleID
}
