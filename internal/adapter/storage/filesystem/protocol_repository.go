package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"protocol-catalog/internal/config"
	"protocol-catalog/internal/domain/entity"
	domainRepo "protocol-catalog/internal/domain/repository"
	"protocol-catalog/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.ProtocolRepository = (*ProtocolRepository)(nil)

// ProtocolRepository implements ProtocolRepository on top of a local directory tree
// laid out as <root>/<protocolId>/config.json plus icon files.
type ProtocolRepository struct {
	root   string
	logger *zap.Logger
}

// NewProtocolRepository creates a repository rooted at cfg.Root.
func NewProtocolRepository(cfg config.ProtocolsConfig, logger *zap.Logger) *ProtocolRepository {
	return &ProtocolRepository{
		root:   cfg.Root,
		logger: logger.Named("ProtocolStorage"),
	}
}

// Root returns the protocols root directory.
func (r *ProtocolRepository) Root() string {
	return r.root
}

// ListProtocolIDs lists the directories of the root that contain a config.json.
// os.ReadDir sorts by file name, so the result is in lexical order.
func (r *ProtocolRepository) ListProtocolIDs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: protocols root %s", apperrors.ErrNotFound, r.root)
		}
		return nil, fmt.Errorf("%w: failed to list protocols root %s: %v", apperrors.ErrInternal, r.root, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ok, err := r.isFile(r.descriptorPath(entry.Name()))
		if err != nil {
			return nil, err
		}
		if !ok {
			r.logger.Debug("Skipping directory without descriptor", zap.String("dir", entry.Name()))
			continue
		}
		ids = append(ids, entry.Name())
	}

	r.logger.Debug("Listed protocol directories",
		zap.String("root", r.root),
		zap.Int("entries", len(entries)),
		zap.Int("protocols", len(ids)),
	)
	return ids, nil
}

// DescriptorExists reports whether the protocol has a config.json.
func (r *ProtocolRepository) DescriptorExists(_ context.Context, protocolID string) (bool, error) {
	if err := checkProtocolID(protocolID); err != nil {
		return false, err
	}
	return r.isFile(r.descriptorPath(protocolID))
}

// ReadDescriptor returns the raw bytes of <root>/<id>/config.json.
func (r *ProtocolRepository) ReadDescriptor(_ context.Context, protocolID string) ([]byte, error) {
	if err := checkProtocolID(protocolID); err != nil {
		return nil, err
	}

	path := r.descriptorPath(protocolID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", apperrors.ErrInternal, path, err)
	}
	return data, nil
}

// IconExists reports whether the icon file exists in the protocol directory.
func (r *ProtocolRepository) IconExists(_ context.Context, protocolID, icon string) (bool, error) {
	if err := checkProtocolID(protocolID); err != nil {
		return false, err
	}
	return r.isFile(r.iconPath(protocolID, icon))
}

// OpenIcon opens the icon file for reading.
func (r *ProtocolRepository) OpenIcon(_ context.Context, protocolID, icon string) (io.ReadCloser, error) {
	if err := checkProtocolID(protocolID); err != nil {
		return nil, err
	}

	path := r.iconPath(protocolID, icon)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to open %s: %v", apperrors.ErrInternal, path, err)
	}
	return f, nil
}

func (r *ProtocolRepository) descriptorPath(protocolID string) string {
	return filepath.Join(r.root, protocolID, entity.DescriptorFileName)
}

func (r *ProtocolRepository) iconPath(protocolID, icon string) string {
	return filepath.Join(r.root, protocolID, icon)
}

// isFile reports whether path exists and is not a directory. Symlinks are followed.
func (r *ProtocolRepository) isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to stat %s: %v", apperrors.ErrInternal, path, err)
	}
	return !info.IsDir(), nil
}

// checkProtocolID rejects ids that are not a single directory name.
func checkProtocolID(protocolID string) error {
	if protocolID == "" || protocolID == "." || protocolID == ".." ||
		filepath.Base(protocolID) != protocolID || filepath.IsAbs(protocolID) {
		return fmt.Errorf("%w: protocol id %q is not a directory name", apperrors.ErrInvalidInput, protocolID)
	}
	return nil
}
