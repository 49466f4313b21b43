package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/internal/cli"
	"github.com/aretw0/hollow/pkg/domain"
)

func exploring() hollow.View {
	s := domain.NewGameState("gate", domain.Stats{Health: 1, MaxHealth: 1})
	s.Notifications = []domain.Notification{{ID: "n1", Message: "Cold."}}
	return hollow.View{
		Mode:     domain.ModeExploring,
		SceneID:  "gate",
		Exits:    []hollow.ExitView{{ID: "north", Target: "chapel"}},
		Elements: []hollow.ElementView{{ID: "stone"}},
		Dialogs:  []string{"crow"},
		Puzzles:  []string{"runes", "riddle"},
		State:    s,
	}
}

func TestParseCommand(t *testing.T) {
	two := 1
	tests := []struct {
		name string
		line string
		mode domain.Mode
		want cli.Command
	}{
		{"Empty Looks", "", domain.ModeExploring, cli.Command{Meta: cli.MetaLook}},
		{"Empty Continues Dialog", "  ", domain.ModeInDialog, cli.Command{Action: hollow.AdvanceDialog{}}},
		{"Quit", "QUIT", domain.ModeExploring, cli.Command{Meta: cli.MetaQuit}},
		{"Go", "go north", domain.ModeExploring, cli.Command{Action: hollow.TryExit{ExitID: "north"}}},
		{"Bare Exit", "north", domain.ModeExploring, cli.Command{Action: hollow.TryExit{ExitID: "north"}}},
		{"Bare Element", "stone", domain.ModeExploring, cli.Command{Action: hollow.Interact{ElementID: "stone"}}},
		{"Use Element", "use stone", domain.ModeExploring, cli.Command{Action: hollow.Interact{ElementID: "stone"}}},
		{"Use Item", "use potion", domain.ModeExploring, cli.Command{Action: hollow.UseItem{ItemID: "potion"}}},
		{"Talk Only Dialog", "talk", domain.ModeExploring, cli.Command{Action: hollow.StartDialog{DialogID: "crow"}}},
		{"Solve", "solve runes", domain.ModeExploring, cli.Command{Action: hollow.StartPuzzle{PuzzleID: "runes"}}},
		{"Response", "2", domain.ModeInDialog, cli.Command{Action: hollow.AdvanceDialog{Response: &two}}},
		{"Answer", "answer the fire", domain.ModeInPuzzle, cli.Command{Action: hollow.SubmitPuzzleSolution{Solution: domain.Solution{Text: "the fire"}}}},
		{"Symbols", "symbols ᚱ ᚦ", domain.ModeInPuzzle, cli.Command{Action: hollow.SubmitPuzzleSolution{Solution: domain.Solution{Symbols: []string{"ᚱ", "ᚦ"}}}}},
		{"Pattern", "pattern 0 4 8", domain.ModeInPuzzle, cli.Command{Action: hollow.SubmitPuzzleSolution{Solution: domain.Solution{Indices: []int{0, 4, 8}}}}},
		{"Offer", "offer ritual_dagger lovers_locket", domain.ModeInPuzzle, cli.Command{Action: hollow.SubmitPuzzleSolution{Solution: domain.Solution{Selection: []string{"ritual_dagger", "lovers_locket"}}}}},
		{"Dismiss Oldest", "dismiss", domain.ModeExploring, cli.Command{Action: hollow.DismissNotification{ID: "n1"}}},
		{"Wait", "wait 2.5", domain.ModeExploring, cli.Command{Action: hollow.AdvanceTime{ElapsedMs: 2500}}},
		{"Restart", "restart", domain.ModeGameOver, cli.Command{Action: hollow.Restart{}}},
		{"Hint", "hint", domain.ModeInPuzzle, cli.Command{Meta: cli.MetaHint}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := exploring()
			v.Mode = tt.mode
			got, err := cli.ParseCommand(tt.line, v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	v := exploring()

	_, err := cli.ParseCommand("dance", v)
	assert.ErrorIs(t, err, cli.ErrUnknownCommand)

	for _, line := range []string{"go", "use", "solve", "pattern 1 x", "wait -1"} {
		_, err := cli.ParseCommand(line, v)
		assert.Error(t, err, line)
	}

	// A number outside a dialog is not a response.
	_, err = cli.ParseCommand("1", v)
	assert.ErrorIs(t, err, cli.ErrUnknownCommand)
}
