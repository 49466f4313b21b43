package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/hollow/internal/logging"
	"github.com/aretw0/hollow/pkg/domain"
	"github.com/aretw0/hollow/pkg/ports"
)

// FormatVersion is the envelope version written by Save.
const FormatVersion = 1

// ErrUnsupportedVersion is returned when a save was written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported save format version")

// Envelope wraps a saved GameState with format metadata.
type Envelope struct {
	Version int              `json:"version"`
	SavedAt time.Time        `json:"saved_at"`
	State   domain.GameState `json:"state"`
}

// Gateway saves and restores the single save slot of a playthrough.
type Gateway struct {
	store   ports.SaveStore
	key     string
	logger  *slog.Logger
	locker  ports.DistributedLocker
	lockTTL time.Duration
	now     func() time.Time

	mu sync.Mutex
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithKey overrides the slot key (default domain.SaveSlotKey).
func WithKey(key string) Option {
	return func(g *Gateway) {
		if key != "" {
			g.key = key
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithLocker serializes writers of the slot across processes.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(g *Gateway) {
		g.locker = locker
		if ttl > 0 {
			g.lockTTL = ttl
		}
	}
}

// WithClock sets the clock used to stamp envelopes.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGateway creates a gateway over store.
func NewGateway(store ports.SaveStore, opts ...Option) *Gateway {
	g := &Gateway{
		store:   store,
		key:     domain.SaveSlotKey,
		logger:  logging.NewNop(),
		lockTTL: 30 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Key returns the slot key.
func (g *Gateway) Key() string {
	return g.key
}

// Store returns the underlying save store.
func (g *Gateway) Store() ports.SaveStore {
	return g.store
}

// Save writes the full state under the slot key.
func (g *Gateway) Save(ctx context.Context, state domain.GameState) error {
	data, err := Encode(state, g.now())
	if err != nil {
		return err
	}
	return g.withLock(ctx, func(ctx context.Context) error {
		if err := g.store.Put(ctx, g.key, data); err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}
		return nil
	})
}

// Load restores the saved state. It returns nil when the slot is empty or its contents
// cannot be read; the caller starts a new game in that case.
func (g *Gateway) Load(ctx context.Context) *domain.GameState {
	env, err := g.Inspect(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			g.logger.Debug("no saved game", "key", g.key)
		} else {
			g.logger.Warn("saved game discarded", "key", g.key, "err", err)
		}
		return nil
	}
	return &env.State
}

// Inspect returns the decoded envelope with its metadata.
func (g *Gateway) Inspect(ctx context.Context) (*Envelope, error) {
	var data []byte
	err := g.withLock(ctx, func(ctx context.Context) error {
		var err error
		data, err = g.store.Get(ctx, g.key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Clear deletes the slot.
func (g *Gateway) Clear(ctx context.Context) error {
	return g.withLock(ctx, func(ctx context.Context) error {
		return g.store.Delete(ctx, g.key)
	})
}

func (g *Gateway) withLock(ctx context.Context, fn func(context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.locker != nil {
		unlock, err := g.locker.Lock(ctx, g.key, g.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire save lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				g.logger.Warn("failed to release save lock (will expire via TTL)", "key", g.key, "err", err)
			}
		}()
	}
	return fn(ctx)
}

// Encode serializes state into a versioned envelope.
func Encode(state domain.GameState, savedAt time.Time) ([]byte, error) {
	data, err := json.Marshal(Envelope{Version: FormatVersion, SavedAt: savedAt.UTC(), State: state})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save: %w", err)
	}
	return data, nil
}

// Decode parses a save blob. Blobs without an envelope are read as a bare GameState
// (version 0).
func Decode(data []byte) (*Envelope, error) {
	var probe struct {
		Version int             `json:"version"`
		State   json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptSave, err)
	}
	if probe.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, probe.Version)
	}

	var env Envelope
	if probe.Version == 0 && len(probe.State) == 0 {
		if err := json.Unmarshal(data, &env.State); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCorruptSave, err)
		}
	} else if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptSave, err)
	}

	if env.State.CurrentSceneID == "" {
		return nil, fmt.Errorf("%w: missing current scene", domain.ErrCorruptSave)
	}
	env.State = env.State.Clone()
	return &env, nil
}
