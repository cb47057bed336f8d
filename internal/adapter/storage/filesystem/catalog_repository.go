package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"protocol-catalog/internal/domain/entity"
	domainRepo "protocol-catalog/internal/domain/repository"
	"protocol-catalog/internal/pkg/apperrors"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Compile-time check
var _ domainRepo.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository writes the combined catalog to a single file. The format
// follows the file extension: .yaml/.yml gives YAML, anything else JSON.
type CatalogRepository struct {
	path   string
	logger *zap.Logger
}

// NewCatalogRepository creates a catalog writer for path.
func NewCatalogRepository(path string, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		path:   path,
		logger: logger.Named("CatalogStorage"),
	}
}

// Location returns the output file path.
func (r *CatalogRepository) Location() string {
	return r.path
}

// SaveCatalog encodes the catalog and overwrites the output file.
func (r *CatalogRepository) SaveCatalog(_ context.Context, catalog *entity.Catalog) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		data, err = EncodeCatalogYAML(catalog)
	default:
		data, err = EncodeCatalogJSON(catalog)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to encode catalog: %v", apperrors.ErrInternal, err)
	}

	if err = os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", apperrors.ErrInternal, r.path, err)
	}

	r.logger.Debug("Catalog written", zap.String("path", r.path), zap.Int("bytes", len(data)))
	return nil
}

// EncodeCatalogJSON renders the catalog with two-space indentation and without
// HTML escaping. No trailing newline is written.
func EncodeCatalogJSON(catalog *entity.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalogDocument(catalog)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeCatalogYAML renders the catalog as YAML, keeping member order.
func EncodeCatalogYAML(catalog *entity.Catalog) ([]byte, error) {
	jsonData, err := EncodeCatalogJSON(catalog)
	if err != nil {
		return nil, err
	}

	// Decoding JSON through yaml.Node keeps mapping order; JSON is a YAML subset.
	var node yaml.Node
	if err = yaml.Unmarshal(jsonData, &node); err != nil {
		return nil, err
	}
	restyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err = enc.Encode(&node); err != nil {
		return nil, err
	}
	if err = enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// catalogDocument guarantees "protocols" is an array even for an empty catalog.
func catalogDocument(catalog *entity.Catalog) *entity.Catalog {
	if catalog.Protocols != nil {
		return catalog
	}
	return &entity.Catalog{Protocols: []entity.CatalogEntry{}}
}

// restyle drops the JSON presentation: flow collections become block style and
// double-quoted scalars are left for the encoder to quote only when needed.
func restyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle
	for _, c := range n.Content {
		restyle(c)
	}
}
