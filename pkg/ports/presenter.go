package ports

import (
	"context"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// Presenter receives a snapshot after each tick or state change.
// Implementations must not block the event loop for long.
type Presenter interface {
	Present(ctx context.Context, snap domain.Snapshot) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(ctx context.Context, snap domain.Snapshot) error

// Present calls f.
func (f PresenterFunc) Present(ctx context.Context, snap domain.Snapshot) error {
	return f(ctx, snap)
}

// CatalogLoader supplies the configuration documents read at session init.
// On partial failure it returns the catalog with defaults filled in alongside the error.
type CatalogLoader interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
