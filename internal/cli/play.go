package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/internal/presentation/tui"
	"github.com/aretw0/hollow/pkg/domain"
)

// PlayOptions configure an interactive session.
type PlayOptions struct {
	In     io.Reader
	Out    io.Writer
	Render tui.Renderer
	// TickInterval drives the game clock in real time. Zero stops time between commands.
	TickInterval time.Duration
}

// Play runs the read-eval-render loop until the player quits, input ends or ctx is cancelled.
func Play(ctx context.Context, app *App, opts PlayOptions) error {
	if opts.Render == nil {
		opts.Render = tui.Plain
	}
	eng := app.Engine
	s := &shell{eng: eng, app: app, out: opts.Out, render: opts.Render}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Clock ticks happen between commands; surface what they change.
	ticks := make(chan domain.GameState, 1)
	unsubscribe := eng.Subscribe(func(st domain.GameState) {
		select {
		case ticks <- st:
		default:
		}
	})
	defer unsubscribe()

	if opts.TickInterval > 0 {
		go func() {
			if err := eng.RunClock(ctx, opts.TickInterval); err != nil && !errors.Is(err, context.Canceled) {
				app.Logger.Error("clock stopped", "error", err)
			}
		}()
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(opts.In)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.look()
	s.seen = eng.State()
	for {
		s.prompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(s.out)
			return err
		case st := <-ticks:
			s.catchUp(st)
		case line := <-lines:
			if quit := s.handle(ctx, line); quit {
				return nil
			}
			s.drain(ticks)
			s.seen = eng.State()
		}
	}
}

type shell struct {
	eng    *hollow.Engine
	app    *App
	out    io.Writer
	render tui.Renderer
	seen   domain.GameState
}

func (s *shell) prompt() {
	fmt.Fprint(s.out, "> ")
}

func (s *shell) say(format string, args ...any) {
	fmt.Fprintf(s.out, ">>> %s\n", fmt.Sprintf(format, args...))
}

func (s *shell) look() {
	out, err := s.render(tui.Markdown(s.eng.View(), s.eng.Content()))
	if err != nil {
		s.say("render failed: %v", err)
		return
	}
	fmt.Fprintln(s.out, out)
}

// handle runs one line and reports whether the player quit.
func (s *shell) handle(ctx context.Context, line string) bool {
	cmd, err := ParseCommand(line, s.eng.View())
	if err != nil {
		s.say("%v", err)
		return false
	}

	switch cmd.Meta {
	case MetaQuit:
		s.say("Farewell.")
		return true
	case MetaHelp:
		fmt.Fprintln(s.out, helpText)
		return false
	case MetaLook:
		s.look()
		return false
	case MetaHint:
		if hint, ok := s.eng.Hint(""); ok {
			s.say("%s", hint)
		} else {
			s.say("No hint here.")
		}
		return false
	case MetaSave:
		if err := s.eng.Save(ctx); err != nil {
			s.say("save failed: %v", err)
		} else {
			s.say("Game saved.")
		}
		return false
	case MetaLoad:
		restored, err := s.eng.Reload(ctx)
		switch {
		case err != nil:
			s.say("load failed: %v", err)
		case restored:
			s.say("Save restored.")
		default:
			s.say("No usable save; starting over.")
		}
		s.look()
		return false
	}

	out, err := s.eng.Dispatch(ctx, cmd.Action)
	if err != nil {
		s.say("%v", err)
		return false
	}
	if res := out.Attempt; res != nil {
		switch {
		case res.Correct:
			s.say("Correct.")
		case res.AttemptsRemaining != nil:
			s.say("Wrong. %d attempts left.", *res.AttemptsRemaining)
		default:
			s.say("Wrong.")
		}
	}
	s.look()
	return false
}

// catchUp reports changes made by the clock since the last render.
func (s *shell) catchUp(st domain.GameState) {
	if st.GameOver && !s.seen.GameOver {
		fmt.Fprintln(s.out)
		s.look()
		s.seen = st
		return
	}
	for _, n := range st.Notifications {
		if !hasNotification(s.seen.Notifications, n.ID) {
			fmt.Fprintln(s.out)
			s.say("%s", n.Message)
		}
	}
	if st.Player != s.seen.Player {
		p := st.Player
		fmt.Fprintln(s.out)
		s.say("Health %d/%d", p.Health, p.MaxHealth)
	}
	s.seen = st
}

func (s *shell) drain(ticks <-chan domain.GameState) {
	select {
	case <-ticks:
	default:
	}
}

func hasNotification(ns []domain.Notification, id string) bool {
	for _, n := range ns {
		if n.ID == id {
			return true
		}
	}
	return false
}
