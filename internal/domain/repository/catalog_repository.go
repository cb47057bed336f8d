package repository

import (
	"context"

	"protocol-catalog/internal/domain/entity"
)

// CatalogRepository defines the interface for persisting the combined catalog.
type CatalogRepository interface {
	// Location describes where the catalog is written, for logging.
	Location() string

	// SaveCatalog replaces any previously written catalog.
	SaveCatalog(ctx context.Context, catalog *entity.Catalog) error
}
