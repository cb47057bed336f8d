package service

import (
	"context"

	"protocol-catalog/internal/domain/entity"
)

// LinkChecker defines the interface for probing integration URLs.
type LinkChecker interface {
	CheckLink(ctx context.Context, url entity.LinkURL) (entity.LinkStatus, error)
}
