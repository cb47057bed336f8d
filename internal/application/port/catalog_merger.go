package port

import (
	"context"

	"protocol-catalog/internal/domain/entity"
)

// CatalogMerger defines the interface for building the combined protocol catalog.
type CatalogMerger interface {
	// Merge reads every protocol descriptor, hashes its icon and writes the catalog.
	// A failed write is logged, not returned; read, parse and hash errors abort the merge.
	Merge(ctx context.Context) (*entity.Catalog, error)
}
