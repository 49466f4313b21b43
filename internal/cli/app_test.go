package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hollow/internal/cli"
	"github.com/aretw0/hollow/internal/config"
	"github.com/aretw0/hollow/pkg/adapters/file"
	"github.com/aretw0/hollow/pkg/domain"
)

func baseConfig() config.Config {
	return config.Config{
		SaveBackend: config.BackendMemory,
		SaveKey:     domain.SaveSlotKey,
		Autosave:    true,
		RedisPrefix: "hollow:save:",
	}
}

func build(t *testing.T, cfg config.Config, opts cli.BuildOptions) *cli.App {
	t.Helper()
	app, err := cli.Build(context.Background(), cfg, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestBuild_EmbeddedStory(t *testing.T) {
	app := build(t, baseConfig(), cli.BuildOptions{})
	assert.Equal(t, "threshold", app.Engine.State().CurrentSceneID)
	assert.Nil(t, app.Metrics)
}

func TestBuild_Backends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  func(c *config.Config)
	}{
		{"File", func(c *config.Config) {
			c.SaveBackend = config.BackendFile
			c.SaveDir = filepath.Join(dir, "saves")
		}},
		{"SQLite", func(c *config.Config) {
			c.SaveBackend = config.BackendSQLite
			c.SQLitePath = filepath.Join(dir, "saves.db")
		}},
		{"Redis With Lock", func(c *config.Config) {
			c.SaveBackend = config.BackendRedis
			c.RedisAddr = mr.Addr()
			c.RedisLock = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.cfg(&cfg)

			first, err := cli.Build(ctx, cfg, cli.BuildOptions{})
			require.NoError(t, err)
			_, err = first.Engine.Interact(ctx, "signpost")
			require.NoError(t, err)
			_, err = first.Engine.TryExit(ctx, "gate")
			require.NoError(t, err)
			require.NoError(t, first.Close())

			second := build(t, cfg, cli.BuildOptions{})
			s := second.Engine.State()
			assert.Equal(t, "square", s.CurrentSceneID)
			assert.True(t, s.FlagSet("read_signpost"))

			fresh := build(t, cfg, cli.BuildOptions{Fresh: true})
			assert.Equal(t, "threshold", fresh.Engine.State().CurrentSceneID)
		})
	}
}

func TestBuild_EncryptedSaves(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig()
	cfg.SaveBackend = config.BackendFile
	cfg.SaveDir = t.TempDir()
	cfg.EncryptionKey = strings.Repeat("ab", 32)

	app := build(t, cfg, cli.BuildOptions{})
	_, err := app.Engine.TryExit(ctx, "gate")
	require.NoError(t, err)

	raw, err := file.New(cfg.SaveDir).Get(ctx, cfg.SaveKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "hollow-aes256gcm:"))
	assert.NotContains(t, string(raw), "square")

	again := build(t, cfg, cli.BuildOptions{})
	assert.Equal(t, "square", again.Engine.State().CurrentSceneID)

	cfg.EncryptionKey = "short"
	_, err = cli.Build(ctx, cfg, cli.BuildOptions{})
	assert.Error(t, err)
}

func TestBuild_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := build(t, baseConfig(), cli.BuildOptions{Registry: reg, Debug: true})
	require.NotNil(t, app.Metrics)

	_, err := app.Engine.TryExit(context.Background(), "gate")
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "hollow_scene_entries_total")
}

func TestBuild_InvalidContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.yaml"), []byte(`
game:
  title: Broken
  start_scene: hall
  player: {health: 1, max_health: 1}
scenes:
  hall:
    description: An empty hall.
    exits:
      - id: door
        target: nowhere
`), 0o644))

	cfg := baseConfig()
	cfg.ContentDir = dir
	_, err := cli.Build(context.Background(), cfg, cli.BuildOptions{})
	assert.ErrorIs(t, err, cli.ErrInvalidContent)
}

func TestBuild_UnknownBackend(t *testing.T) {
	cfg := baseConfig()
	cfg.SaveBackend = "tape"
	_, err := cli.Build(context.Background(), cfg, cli.BuildOptions{})
	assert.Error(t, err)
}
