package repository

import (
	"context"
	"io"
)

// ProtocolRepository defines read access to the protocols directory tree.
type ProtocolRepository interface {
	// Root returns the protocols root the repository reads from.
	Root() string

	// ListProtocolIDs returns the ids of every protocol directory holding a descriptor, in listing order.
	ListProtocolIDs(ctx context.Context) ([]string, error)

	// DescriptorExists reports whether <root>/<id>/config.json exists.
	DescriptorExists(ctx context.Context, protocolID string) (bool, error)

	// ReadDescriptor returns the raw descriptor bytes of a protocol.
	ReadDescriptor(ctx context.Context, protocolID string) ([]byte, error)

	// IconExists reports whether the named icon exists in the protocol directory.
	IconExists(ctx context.Context, protocolID, icon string) (bool, error)

	// OpenIcon opens the named icon for streaming. The caller must close it.
	OpenIcon(ctx context.Context, protocolID, icon string) (io.ReadCloser, error)
}
