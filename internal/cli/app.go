package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/internal/config"
	"github.com/aretw0/hollow/internal/logging"
	"github.com/aretw0/hollow/internal/story"
	"github.com/aretw0/hollow/internal/validator"
	"github.com/aretw0/hollow/pkg/adapters/content"
	"github.com/aretw0/hollow/pkg/adapters/file"
	"github.com/aretw0/hollow/pkg/adapters/memory"
	"github.com/aretw0/hollow/pkg/adapters/redis"
	"github.com/aretw0/hollow/pkg/adapters/sqlite"
	"github.com/aretw0/hollow/pkg/domain"
	"github.com/aretw0/hollow/pkg/observability"
	"github.com/aretw0/hollow/pkg/persistence"
	"github.com/aretw0/hollow/pkg/persistence/middleware"
	"github.com/aretw0/hollow/pkg/ports"
)

// ErrInvalidContent is returned when the story fails validation.
var ErrInvalidContent = errors.New("invalid content")

// App is a fully wired engine with its save slot and metrics.
type App struct {
	Engine  *hollow.Engine
	Gateway *persistence.Gateway
	Metrics *observability.Metrics
	Logger  *slog.Logger
	close   func() error
}

// Close releases the save backend.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// BuildOptions tune Build per command.
type BuildOptions struct {
	Logger *slog.Logger
	// Debug logs every lifecycle event.
	Debug bool
	// Fresh ignores the saved game.
	Fresh bool
	// Registry receives the engine metrics. Nil disables metrics.
	Registry prometheus.Registerer
}

// ContentLoader returns the configured story source: a content directory or the embedded story.
func ContentLoader(cfg config.Config, logger *slog.Logger) ports.ContentLoader {
	if cfg.ContentDir != "" {
		return content.NewDir(cfg.ContentDir, content.WithLogger(logger))
	}
	return story.Loader(content.WithLogger(logger))
}

// OpenStore opens the save backend selected by cfg, wrapped with encryption when a key is set.
// The returned close function is never nil.
func OpenStore(cfg config.Config) (ports.SaveStore, ports.DistributedLocker, func() error, error) {
	var (
		store  ports.SaveStore
		locker ports.DistributedLocker
		closer = func() error { return nil }
	)
	switch cfg.SaveBackend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile:
		store = file.New(cfg.SaveDir)
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		store, closer = s, s.Close
	case config.BackendRedis:
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithPrefix(cfg.RedisPrefix), redis.WithTTL(cfg.RedisTTL))
		store, closer = s, s.Close
		if cfg.RedisLock {
			locker = redis.NewLocker(s.Client(), cfg.RedisPrefix+"lock:")
		}
	default:
		return nil, nil, nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}

	if cfg.EncryptionKey == "" {
		return store, locker, closer, nil
	}
	enc, err := encryption(cfg)
	if err != nil {
		_ = closer()
		return nil, nil, nil, err
	}
	return middleware.Chain(store, enc), locker, closer, nil
}

func encryption(cfg config.Config) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	ec := middleware.EncryptionConfig{ActiveKey: active, AllowPlaintext: cfg.AllowPlaintext}
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(ec)
}

// OpenGateway opens the save slot named by cfg.SaveKey.
func OpenGateway(cfg config.Config, logger *slog.Logger) (*persistence.Gateway, func() error, error) {
	store, locker, closer, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts := []persistence.Option{persistence.WithKey(cfg.SaveKey), persistence.WithLogger(logger)}
	if locker != nil {
		opts = append(opts, persistence.WithLocker(locker, 0))
	}
	return persistence.NewGateway(store, opts...), closer, nil
}

// Build loads and validates the story and wires the engine to its save slot.
func Build(ctx context.Context, cfg config.Config, opts BuildOptions) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	gw, closer, err := OpenGateway(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open saves: %w", err)
	}
	app := &App{Gateway: gw, Logger: logger, close: closer}

	var hooks domain.LifecycleHooks
	if opts.Debug {
		hooks = observability.LogHooks(logger)
	}
	if opts.Registry != nil {
		m, err := observability.NewMetrics(opts.Registry)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.Metrics = m
		hooks = hooks.Merge(m.Hooks())
	}

	engineOpts := []hollow.Option{
		hollow.WithLoader(ContentLoader(cfg, logger)),
		hollow.WithGateway(gw),
		hollow.WithAutosave(cfg.Autosave),
		hollow.WithResume(!opts.Fresh),
		hollow.WithLogger(logger),
		hollow.WithLifecycleHooks(hooks),
	}
	if cfg.NotificationCapacity > 0 {
		engineOpts = append(engineOpts, hollow.WithNotificationCapacity(cfg.NotificationCapacity))
	}
	eng, err := hollow.New(ctx, engineOpts...)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	report := validator.Validate(eng.Content())
	for _, p := range report.Warnings() {
		logger.Warn("content warning", "path", p.Path, "problem", p.Message)
	}
	if err := report.Err(); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}

	app.Engine = eng
	return app, nil
}
