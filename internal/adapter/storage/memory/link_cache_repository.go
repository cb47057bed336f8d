package memory

import (
	"context"
	"fmt"
	"time"

	"protocol-catalog/internal/config"
	"protocol-catalog/internal/domain/entity"
	domainRepo "protocol-catalog/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.LinkCacheRepository = (*LinkCacheRepository)(nil)

// Cache keys
const (
	linkStatusKeyPrefix = "link_status_"
)

// LinkCacheRepository implements domainRepo.LinkCacheRepository using the go-cache in-memory library.
type LinkCacheRepository struct {
	cache      *cache.Cache
	logger     *zap.Logger
	defaultTTL time.Duration
}

// NewLinkCacheRepository creates a new in-memory link status cache.
func NewLinkCacheRepository(cfg config.ValidatorConfig, logger *zap.Logger) *LinkCacheRepository {
	defaultExpiration := cfg.GetLinkCacheTTL()
	cleanupInterval := cfg.GetLinkCacheCleanup()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Debug(
		"Initialized go-cache for link statuses",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &LinkCacheRepository{
		cache:      c,
		logger:     logger.Named("LinkCacheStorage"),
		defaultTTL: defaultExpiration,
	}
}

// GetLinkStatus retrieves a cached probe result, returning found status.
func (r *LinkCacheRepository) GetLinkStatus(_ context.Context, url entity.LinkURL) (entity.LinkStatus, bool, error) {
	key := linkStatusKey(url)
	if x, found := r.cache.Get(key); found {
		if status, ok := x.(entity.LinkStatus); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", key))
			return status, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", key), zap.Any("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", key))
	return entity.LinkStatus{}, false, nil
}

// SetLinkStatus caches a probe result; a non-positive ttl uses the configured default.
func (r *LinkCacheRepository) SetLinkStatus(_ context.Context, status entity.LinkStatus, ttl time.Duration) error {
	key := linkStatusKey(status.URL)
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	r.cache.Set(key, status, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func linkStatusKey(url entity.LinkURL) string {
	return linkStatusKeyPrefix + url.String()
}
