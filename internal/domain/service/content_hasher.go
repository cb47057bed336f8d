package service

import (
	"context"
	"io"
)

// ContentHasher defines the interface for fingerprinting icon bytes.
type ContentHasher interface {
	// Algorithm names the digest, e.g. "md5".
	Algorithm() string

	// Hash consumes r to EOF and returns the hex encoded digest.
	Hash(ctx context.Context, r io.Reader) (string, error)
}
