// Package story embeds the Eden's Hollow content shipped with the binary.
package story

import (
	"context"
	"embed"
	"io/fs"

	"github.com/aretw0/hollow/pkg/adapters/content"
	"github.com/aretw0/hollow/pkg/domain"
)

//go:embed content/*.yaml
var files embed.FS

// FS returns the story files rooted at the content directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "content")
	if err != nil {
		panic(err) // the embedded directory always exists
	}
	return sub
}

// Loader returns a content loader over the embedded story.
func Loader(opts ...content.Option) *content.Loader {
	return content.New(FS(), opts...)
}

// Load decodes the embedded story.
func Load(ctx context.Context) (*domain.Content, error) {
	return Loader().Load(ctx)
}
