package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/pkg/domain"
)

// ErrUnknownCommand is returned for input the parser cannot map to an action.
var ErrUnknownCommand = errors.New("unknown command")

// Meta is a command handled by the shell instead of the engine.
type Meta int

const (
	MetaNone Meta = iota
	MetaLook
	MetaHelp
	MetaQuit
	MetaSave
	MetaLoad
	MetaHint
)

// Command is a parsed input line: either an engine action or a meta command.
type Command struct {
	Action hollow.Action
	Meta   Meta
}

const helpText = `Commands:
  look                     describe the scene again
  go <exit> | <exit>       leave through an exit
  use <thing>              use a scene element or an inventory item
  talk [dialog]            start a conversation
  solve [puzzle]           work on a puzzle
  <n> | enter              pick a dialog response or continue
  answer <text>            riddles and codes
  symbols <a> <b> ...      sequences, runes and combinations
  pattern <i> <j> ...      patterns
  offer <item> ...         sacrifices
  hint | cancel            while solving
  dismiss [id]             clear a notification
  wait <seconds>           let time pass
  save | load | restart
  help | quit`

// ParseCommand maps one line of input to a command, using the view to resolve bare names.
func ParseCommand(line string, v hollow.View) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		if v.Mode == domain.ModeInDialog {
			return action(hollow.AdvanceDialog{}), nil
		}
		return Command{Meta: MetaLook}, nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.Join(args, " ")

	switch verb {
	case "look", "l":
		return Command{Meta: MetaLook}, nil
	case "help", "?":
		return Command{Meta: MetaHelp}, nil
	case "quit", "q", "exit":
		return Command{Meta: MetaQuit}, nil
	case "save":
		return Command{Meta: MetaSave}, nil
	case "load":
		return Command{Meta: MetaLoad}, nil
	case "hint":
		return Command{Meta: MetaHint}, nil
	case "restart":
		return action(hollow.Restart{}), nil
	case "cancel":
		return action(hollow.CancelPuzzle{}), nil
	case "next", "continue":
		return action(hollow.AdvanceDialog{}), nil

	case "go", "g":
		if rest == "" {
			return Command{}, fmt.Errorf("go where?")
		}
		return action(hollow.TryExit{ExitID: rest}), nil
	case "use", "u":
		if rest == "" {
			return Command{}, fmt.Errorf("use what?")
		}
		if hasElement(v, rest) {
			return action(hollow.Interact{ElementID: rest}), nil
		}
		return action(hollow.UseItem{ItemID: rest}), nil
	case "talk", "t":
		id, err := pick(rest, v.Dialogs, "talk to whom?")
		if err != nil {
			return Command{}, err
		}
		return action(hollow.StartDialog{DialogID: id}), nil
	case "solve":
		id, err := pick(rest, v.Puzzles, "solve what?")
		if err != nil {
			return Command{}, err
		}
		return action(hollow.StartPuzzle{PuzzleID: id}), nil

	case "answer", "a":
		return submit(domain.Solution{Text: rest}), nil
	case "symbols":
		return submit(domain.Solution{Symbols: args}), nil
	case "offer":
		return submit(domain.Solution{Selection: args}), nil
	case "pattern":
		indices := make([]int, 0, len(args))
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return Command{}, fmt.Errorf("pattern expects numbers, got %q", a)
			}
			indices = append(indices, n)
		}
		return submit(domain.Solution{Indices: indices}), nil

	case "dismiss":
		id := rest
		if id == "" {
			if len(v.State.Notifications) == 0 {
				return Command{}, fmt.Errorf("nothing to dismiss")
			}
			id = v.State.Notifications[0].ID
		}
		return action(hollow.DismissNotification{ID: id}), nil
	case "wait":
		secs := 1.0
		if rest != "" {
			n, err := strconv.ParseFloat(rest, 64)
			if err != nil || n <= 0 {
				return Command{}, fmt.Errorf("wait expects a positive number of seconds")
			}
			secs = n
		}
		return action(hollow.AdvanceTime{ElapsedMs: int64(secs * 1000)}), nil
	}

	if v.Mode == domain.ModeInDialog && len(fields) == 1 {
		if n, err := strconv.Atoi(verb); err == nil {
			i := n - 1
			return action(hollow.AdvanceDialog{Response: &i}), nil
		}
	}
	if len(fields) == 1 {
		for _, ex := range v.Exits {
			if ex.ID == fields[0] {
				return action(hollow.TryExit{ExitID: ex.ID}), nil
			}
		}
		if hasElement(v, fields[0]) {
			return action(hollow.Interact{ElementID: fields[0]}), nil
		}
	}
	return Command{}, fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, line)
}

func action(a hollow.Action) Command {
	return Command{Action: a}
}

// submit targets the open puzzle.
func submit(sol domain.Solution) Command {
	return action(hollow.SubmitPuzzleSolution{Solution: sol})
}

func hasElement(v hollow.View, id string) bool {
	return slices.ContainsFunc(v.Elements, func(el hollow.ElementView) bool { return el.ID == id })
}

// pick returns arg, or the only candidate when arg is empty.
func pick(arg string, candidates []string, question string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return "", errors.New(question)
}
