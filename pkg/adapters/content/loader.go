// Package content loads story content from YAML files.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/aretw0/hollow/internal/logging"
	"github.com/aretw0/hollow/pkg/domain"
)

var (
	// ErrDuplicateID is returned when two files define the same scene, dialog, puzzle or item.
	ErrDuplicateID = errors.New("duplicate content id")
	// ErrNoContent is returned when no YAML file was found.
	ErrNoContent = errors.New("no content files found")
)

// Loader reads every *.yaml and *.yml file under a file system root and merges them into
// one Content repository.
type Loader struct {
	fsys   fs.FS
	root   string
	logger *slog.Logger
}

// Option configures the Loader.
type Option func(*Loader)

// WithRoot restricts loading to a sub-directory of the file system.
func WithRoot(root string) Option {
	return func(l *Loader) {
		if root != "" {
			l.root = path.Clean(root)
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loader over fsys (for example an embed.FS).
func New(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{fsys: fsys, root: ".", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDir creates a loader over a directory on disk.
func NewDir(dir string, opts ...Option) *Loader {
	return New(os.DirFS(dir), opts...)
}

// Load implements ports.ContentLoader.
// Files are merged in lexical path order; only one file may declare a non-empty game header.
func (l *Loader) Load(ctx context.Context) (*domain.Content, error) {
	merged := domain.NewContent()
	origin := make(map[string]string)
	headerFrom := ""
	files := 0

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		c, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		files++
		l.logger.Debug("content file loaded", "path", p,
			"scenes", len(c.Scenes), "dialogs", len(c.Dialogs), "puzzles", len(c.Puzzles), "items", len(c.Items))

		if c.Game.StartScene != "" || c.Game.Title != "" {
			if headerFrom != "" {
				return fmt.Errorf("game header defined in both %q and %q: %w", headerFrom, p, ErrDuplicateID)
			}
			headerFrom = p
			merged.Game = c.Game
		}
		if err := mergeInto(merged.Scenes, c.Scenes, "scene", p, origin); err != nil {
			return err
		}
		if err := mergeInto(merged.Dialogs, c.Dialogs, "dialog", p, origin); err != nil {
			return err
		}
		if err := mergeInto(merged.Puzzles, c.Puzzles, "puzzle", p, origin); err != nil {
			return err
		}
		return mergeInto(merged.Items, c.Items, "item", p, origin)
	})
	if err != nil {
		return nil, err
	}
	if files == 0 {
		return nil, fmt.Errorf("%s: %w", l.root, ErrNoContent)
	}
	return merged, nil
}

func mergeInto[T any](dst, src map[string]*T, kind, file string, origin map[string]string) error {
	for id, v := range src {
		key := kind + ":" + id
		if prev, ok := origin[key]; ok {
			return fmt.Errorf("%s %q defined in both %q and %q: %w", kind, id, prev, file, ErrDuplicateID)
		}
		origin[key] = file
		dst[id] = v
	}
	return nil
}

func isYAML(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}
