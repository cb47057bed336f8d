package hash

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	gohash "hash"
	"io"

	"protocol-catalog/internal/config"
	domainService "protocol-catalog/internal/domain/service"
	"protocol-catalog/internal/pkg/apperrors"
)

// Compile-time check
var _ domainService.ContentHasher = (*Hasher)(nil)

// Hasher streams icon bytes through a digest. The digest only fingerprints
// content for change detection.
type Hasher struct {
	algorithm string
	newHash   func() gohash.Hash
}

// NewHasher returns a hasher for one of the algorithms config accepts.
func NewHasher(algorithm string) (*Hasher, error) {
	switch algorithm {
	case config.HashMD5:
		return &Hasher{algorithm: algorithm, newHash: md5.New}, nil
	case config.HashSHA256:
		return &Hasher{algorithm: algorithm, newHash: sha256.New}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported hash algorithm %q", apperrors.ErrInvalidInput, algorithm)
	}
}

// Algorithm returns the digest name.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Hash reads r to EOF and returns the lowercase hex digest.
func (h *Hasher) Hash(ctx context.Context, r io.Reader) (string, error) {
	digest := h.newHash()
	if _, err := io.Copy(digest, contextReader{ctx: ctx, r: r}); err != nil {
		return "", fmt.Errorf("%w: %s digest: %v", apperrors.ErrInternal, h.algorithm, err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
