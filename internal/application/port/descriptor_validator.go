package port

import "context"

// DescriptorValidator defines the interface for gate-keeping changed protocol descriptors.
type DescriptorValidator interface {
	// Validate checks the descriptors of the given protocol ids. An empty list is a no-op.
	Validate(ctx context.Context, protocolIDs []string) error

	// ValidateProtocol checks a single protocol descriptor.
	ValidateProtocol(ctx context.Context, protocolID string) error
}
