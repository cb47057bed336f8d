package application

import (
	"context"
	"errors"
	"fmt"

	"protocol-catalog/internal/application/port"
	"protocol-catalog/internal/domain"
	"protocol-catalog/internal/domain/entity"
	domainRepo "protocol-catalog/internal/domain/repository"
	domainService "protocol-catalog/internal/domain/service"
	"protocol-catalog/internal/pkg/apperrors"
	"protocol-catalog/internal/pkg/jsonobj"

	"go.uber.org/zap"
)

// Compile-time check
var _ port.CatalogMerger = (*catalogMerger)(nil)

// catalogMerger implements port.CatalogMerger. It performs no validation:
// descriptor members are copied into the catalog as written.
type catalogMerger struct {
	protocolRepo domainRepo.ProtocolRepository
	catalogRepo  domainRepo.CatalogRepository
	hasher       domainService.ContentHasher
	logger       *zap.Logger
}

// NewCatalogMerger creates a new catalog merger.
func NewCatalogMerger(
	protocolRepo domainRepo.ProtocolRepository,
	catalogRepo domainRepo.CatalogRepository,
	hasher domainService.ContentHasher,
	logger *zap.Logger,
) port.CatalogMerger {
	return &catalogMerger{
		protocolRepo: protocolRepo,
		catalogRepo:  catalogRepo,
		hasher:       hasher,
		logger:       logger.Named("CatalogMerger"),
	}
}

// Merge builds one catalog entry per protocol directory, in listing order, and writes the result.
func (m *catalogMerger) Merge(ctx context.Context) (*entity.Catalog, error) {
	ids, err := m.protocolRepo.ListProtocolIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list protocols: %w", err)
	}

	m.logger.Info("Merging protocol descriptors",
		zap.String("root", m.protocolRepo.Root()),
		zap.Int("count", len(ids)),
		zap.String("hash", m.hasher.Algorithm()),
	)

	catalog := &entity.Catalog{Protocols: make([]entity.CatalogEntry, 0, len(ids))}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("merge interrupted before protocol %s: %w", id, err)
		}

		entry, err := m.buildEntry(ctx, id)
		if err != nil {
			return nil, err
		}
		catalog.Protocols = append(catalog.Protocols, entry)
	}

	if err := m.catalogRepo.SaveCatalog(ctx, catalog); err != nil {
		m.logger.Error("Error writing catalog",
			zap.String("path", m.catalogRepo.Location()),
			zap.Error(fmt.Errorf("%w: %w", domain.ErrCatalogWrite, err)),
		)
		return catalog, nil
	}

	m.logger.Info("Catalog written",
		zap.String("path", m.catalogRepo.Location()),
		zap.Int("protocols", len(catalog.Protocols)),
	)
	return catalog, nil
}

// buildEntry lays out id, then the descriptor members, then the icon hash.
// A descriptor member named id or hash keeps its slot; hash is always overwritten.
func (m *catalogMerger) buildEntry(ctx context.Context, protocolID string) (entity.CatalogEntry, error) {
	data, err := m.protocolRepo.ReadDescriptor(ctx, protocolID)
	if err != nil {
		return entity.CatalogEntry{}, fmt.Errorf("protocol %s: %w", protocolID, err)
	}

	descriptor, err := jsonobj.Decode(data)
	if err != nil {
		if errors.Is(err, jsonobj.ErrNotObject) {
			return entity.CatalogEntry{}, fmt.Errorf("%w: protocol %s: config is not an object",
				domain.ErrMalformedDescriptor, protocolID,
			)
		}
		return entity.CatalogEntry{}, fmt.Errorf("%w: protocol %s: invalid JSON: %v",
			domain.ErrMalformedDescriptor, protocolID, err,
		)
	}

	fields := jsonobj.New()
	if err = fields.Set(entity.FieldID, protocolID); err != nil {
		return entity.CatalogEntry{}, err
	}
	fields.Merge(descriptor)

	icon, ok := fields.GetString(entity.FieldIcon)
	if !ok {
		return entity.CatalogEntry{}, fmt.Errorf("%w: protocol %s: field '%s' is not a string",
			domain.ErrMalformedDescriptor, protocolID, entity.FieldIcon,
		)
	}

	digest, err := m.hashIcon(ctx, protocolID, icon)
	if err != nil {
		return entity.CatalogEntry{}, err
	}
	if err = fields.Set(entity.FieldHash, digest); err != nil {
		return entity.CatalogEntry{}, err
	}

	m.logger.Debug("Merged protocol",
		zap.String("protocol", protocolID),
		zap.String("icon", icon),
		zap.String("hash", digest),
	)
	return entity.CatalogEntry{ID: protocolID, Fields: fields}, nil
}

// hashIcon streams the icon through the hasher; the handle is closed on every path.
func (m *catalogMerger) hashIcon(ctx context.Context, protocolID, icon string) (digest string, err error) {
	rc, err := m.protocolRepo.OpenIcon(ctx, protocolID, icon)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: protocol %s: %s: %v", domain.ErrIconNotFound, protocolID, icon, err)
		}
		return "", fmt.Errorf("protocol %s: %w", protocolID, err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: protocol %s: closing icon: %v", apperrors.ErrInternal, protocolID, closeErr)
		}
	}()

	digest, err = m.hasher.Hash(ctx, rc)
	if err != nil {
		return "", fmt.Errorf("protocol %s: hashing icon %s: %w", protocolID, icon, err)
	}
	return digest, nil
}
