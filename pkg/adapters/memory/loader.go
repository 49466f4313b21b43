package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/hollow/pkg/domain"
)

// Loader implements ports.ContentLoader over an in-memory Content value.
type Loader struct {
	content *domain.Content
}

// NewLoader wraps an already built content repository.
func NewLoader(content *domain.Content) *Loader {
	return &Loader{content: content}
}

// NewFromJSON decodes a JSON content document.
// Map keys win over the ids inside entries, so both always agree.
func NewFromJSON(raw []byte) (*Loader, error) {
	content := domain.NewContent()
	if err := json.Unmarshal(raw, content); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	for id, s := range content.Scenes {
		if s == nil {
			return nil, fmt.Errorf("scene %s is empty", id)
		}
		s.ID = id
	}
	for id, d := range content.Dialogs {
		if d == nil {
			return nil, fmt.Errorf("dialog %s is empty", id)
		}
		d.ID = id
	}
	for id, p := range content.Puzzles {
		if p == nil {
			return nil, fmt.Errorf("puzzle %s is empty", id)
		}
		p.ID = id
	}
	for id, it := range content.Items {
		if it == nil {
			return nil, fmt.Errorf("item %s is empty", id)
		}
		it.ID = id
	}
	return &Loader{content: content}, nil
}

// Load returns the wrapped content.
func (l *Loader) Load(ctx context.Context) (*domain.Content, error) {
	if l.content == nil {
		return nil, fmt.Errorf("memory loader has no content")
	}
	return l.content, nil
}
