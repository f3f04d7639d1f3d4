package memory

import (
	"context"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// Loader implements ports.CatalogLoader with a fixed catalog.
type Loader struct {
	catalog domain.Catalog
}

// NewLoader creates a loader that always returns catalog.
func NewLoader(catalog domain.Catalog) *Loader {
	return &Loader{catalog: catalog}
}

// NewFromPersonas builds a default catalog holding the given personas, with
// builtin fields filled in. This mostly improves DX for tests.
func NewFromPersonas(personas ...domain.Persona) *Loader {
	cat := domain.DefaultCatalog()
	for _, p := range personas {
		cat.Personas = append(cat.Personas, p.WithDefaults())
	}
	return &Loader{catalog: cat}
}

// Load returns the catalog.
func (l *Loader) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.DefaultCatalog(), err
	}
	return l.catalog, nil
}
