package repository

import (
	"context"
	"time"

	"protocol-catalog/internal/domain/entity"
)

// LinkCacheRepository defines the interface for memoising link probe results.
type LinkCacheRepository interface {
	// GetLinkStatus retrieves a cached probe result, returning found status.
	GetLinkStatus(ctx context.Context, url entity.LinkURL) (entity.LinkStatus, bool, error)

	// SetLinkStatus stores a probe result with a specified TTL.
	SetLinkStatus(ctx context.Context, status entity.LinkStatus, ttl time.Duration) error
}
