package hollow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/aretw0/hollow/internal/logging"
	"github.com/aretw0/hollow/internal/runtime"
	"github.com/aretw0/hollow/pkg/domain"
	"github.com/aretw0/hollow/pkg/persistence"
	"github.com/aretw0/hollow/pkg/ports"
)

var (
	// ErrNoLoader is returned by New when no content source was configured.
	ErrNoLoader = errors.New("no content loader configured")
	// ErrUnknownAction is returned for actions this engine does not know.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNoActivePuzzle is returned when a solution is submitted with no puzzle open.
	ErrNoActivePuzzle = runtime.ErrNoActivePuzzle
	// ErrPuzzleMismatch is returned when a solution names a puzzle other than the open one.
	ErrPuzzleMismatch = runtime.ErrPuzzleMismatch
)

// Engine is the single entry point for a playthrough. It owns the GameState: callers read
// snapshots and change it only by dispatching actions. Dispatches are serialized.
type Engine struct {
	rt      *runtime.Engine
	loader  ports.ContentLoader
	gateway *persistence.Gateway

	autosave    bool
	resume      bool
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
	newRunID    func() string

	mu      sync.Mutex
	current atomic.Pointer[domain.GameState]

	subMu   sync.Mutex
	subs    map[int]func(domain.GameState)
	nextSub int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader sets the content source.
func WithLoader(l ports.ContentLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithGateway enables saving. The saved game is resumed on New unless WithResume(false).
func WithGateway(gw *persistence.Gateway) Option {
	return func(e *Engine) {
		e.gateway = gw
	}
}

// WithAutosave saves after every dispatch. It requires WithGateway.
func WithAutosave(enabled bool) Option {
	return func(e *Engine) {
		e.autosave = enabled
	}
}

// WithResume controls whether New restores the saved game (default true).
func WithResume(enabled bool) Option {
	return func(e *Engine) {
		e.resume = enabled
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithNotificationCapacity overrides the notification queue bound declared by the content.
func WithNotificationCapacity(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithNotificationCapacity(n))
	}
}

// WithRunIDGenerator replaces the uuid generator used to label playthroughs.
func WithRunIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newRunID = gen
	}
}

// New loads the content and positions the engine on the saved game, or on a fresh one
// when there is no usable save.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{
		resume:   true,
		newRunID: uuid.NewString,
		subs:     make(map[int]func(domain.GameState)),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.loader == nil {
		return nil, ErrNoLoader
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	content, err := eng.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	if content.Game.Title != "" {
		eng.logger = eng.logger.With("game", content.Game.Title)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	runtimeOpts = append(runtimeOpts, eng.runtimeOpts...)
	eng.rt = runtime.NewEngine(content, runtimeOpts...)

	var state *domain.GameState
	if eng.resume {
		state = eng.restore(ctx)
	}
	if state == nil {
		fresh, err := eng.rt.NewGame(ctx, eng.newRunID())
		if err != nil {
			return nil, err
		}
		state = &fresh
	}
	eng.current.Store(state)
	return eng, nil
}

// restore returns the saved state when it fits the loaded content.
func (e *Engine) restore(ctx context.Context) *domain.GameState {
	if e.gateway == nil {
		return nil
	}
	saved := e.gateway.Load(ctx)
	if saved == nil {
		return nil
	}
	if _, ok := e.rt.Content().Scene(saved.CurrentSceneID); !ok {
		e.logger.Warn("saved game discarded", "error", fmt.Errorf("scene %q: %w", saved.CurrentSceneID, domain.ErrUnknownScene))
		return nil
	}
	e.logger.Info("saved game restored", "run_id", saved.RunID, "scene", saved.CurrentSceneID)
	return saved
}

// Content returns the loaded content repository. It must not be modified.
func (e *Engine) Content() *domain.Content {
	return e.rt.Content()
}

// State returns a deep copy of the current snapshot.
func (e *Engine) State() domain.GameState {
	return e.current.Load().Clone()
}

// Subscribe registers fn to receive a snapshot after every dispatch.
// Listeners run synchronously on the dispatching goroutine and must not dispatch.
func (e *Engine) Subscribe(fn func(domain.GameState)) (unsubscribe func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			e.subMu.Lock()
			delete(e.subs, id)
			e.subMu.Unlock()
		})
	}
}

// Outcome is the result of a dispatch.
type Outcome struct {
	State domain.GameState
	// Previous is the snapshot the action was applied to.
	Previous domain.GameState
	// Attempt is set for SubmitPuzzleSolution.
	Attempt *domain.AttemptResult
}

// Dispatch applies one action to the current state and notifies subscribers.
// Once the game is over every action but Restart is a no-op; subscribers still
// receive the unchanged snapshot.
func (e *Engine) Dispatch(ctx context.Context, a Action) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := *e.current.Load()
	if s.GameOver {
		if _, ok := a.(Restart); !ok {
			e.logger.Debug("action ignored after game over", "action", a.Type())
			e.publish(s)
			return Outcome{State: s.Clone(), Previous: s.Clone()}, nil
		}
	}

	var (
		next    domain.GameState
		attempt *domain.AttemptResult
	)
	switch act := a.(type) {
	case TryExit:
		next = e.rt.TryExit(ctx, s, act.ExitID)
	case Interact:
		next = e.rt.Interact(ctx, s, act.ElementID)
	case StartDialog:
		next = e.rt.StartDialog(ctx, s, act.DialogID)
	case AdvanceDialog:
		next = e.rt.Advance(ctx, s, act.Response)
	case UseItem:
		next = e.rt.UseItem(ctx, s, act.ItemID)
	case StartPuzzle:
		next = e.rt.StartPuzzle(ctx, s, act.PuzzleID)
	case SubmitPuzzleSolution:
		var res domain.AttemptResult
		var err error
		next, res, err = e.rt.Attempt(ctx, s, act.PuzzleID, act.Solution)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownPuzzle) {
				e.logger.Warn("puzzle closed", "error", err)
				break
			}
			return Outcome{State: s.Clone(), Previous: s.Clone()}, err
		}
		attempt = &res
	case CancelPuzzle:
		next = e.rt.CancelPuzzle(ctx, s)
	case DismissNotification:
		next = e.rt.DismissNotification(s, act.ID)
	case AdvanceTime:
		next = e.rt.AdvanceTime(ctx, s, act.ElapsedMs)
	case Restart:
		fresh, err := e.rt.NewGame(ctx, e.newRunID())
		if err != nil {
			return Outcome{State: s.Clone(), Previous: s.Clone()}, err
		}
		e.logger.Info("game restarted", "run_id", fresh.RunID)
		next = fresh
	default:
		return Outcome{State: s.Clone(), Previous: s.Clone()}, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}

	e.current.Store(&next)
	if e.autosave {
		e.save(ctx, next)
	}
	e.publish(next)
	return Outcome{State: next.Clone(), Previous: s.Clone(), Attempt: attempt}, nil
}

func (e *Engine) publish(s domain.GameState) {
	e.subMu.Lock()
	listeners := make([]func(domain.GameState), 0, len(e.subs))
	for _, fn := range e.subs {
		listeners = append(listeners, fn)
	}
	e.subMu.Unlock()

	for _, fn := range listeners {
		fn(s.Clone())
	}
}

func (e *Engine) save(ctx context.Context, s domain.GameState) {
	if e.gateway == nil {
		return
	}
	if err := e.gateway.Save(ctx, s); err != nil {
		e.logger.Warn("autosave failed", "error", err)
	}
}

// Save writes the current state through the gateway.
func (e *Engine) Save(ctx context.Context) error {
	if e.gateway == nil {
		return errors.New("no save gateway configured")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gateway.Save(ctx, *e.current.Load())
}

// Reload replaces the current state with the saved game. When the slot is empty or
// unreadable the canonical initial state is used instead; the result reports which.
func (e *Engine) Reload(ctx context.Context) (restored bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.restore(ctx)
	restored = state != nil
	if !restored {
		fresh, err := e.rt.NewGame(ctx, e.newRunID())
		if err != nil {
			return false, err
		}
		state = &fresh
	}
	e.current.Store(state)
	e.publish(*state)
	return restored, nil
}
