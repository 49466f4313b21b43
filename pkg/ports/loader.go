package ports

import (
	"context"

	"github.com/aretw0/hollow/pkg/domain"
)

// ContentLoader supplies the static content repository.
// The returned Content is shared and must be treated as read-only.
type ContentLoader interface {
	Load(ctx context.Context) (*domain.Content, error)
}
