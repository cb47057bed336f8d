package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDescriptorNotFound means the protocol directory has no config.json.
	ErrDescriptorNotFound = errors.New("config.json not found")

	// ErrIconNotFound means the icon referenced by a descriptor is not on disk.
	ErrIconNotFound = errors.New("icon path not found")

	// ErrMalformedDescriptor means the descriptor, or one of its sections, has the wrong JSON shape.
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrInvalidField means a single field failed its rule (empty, wrong type, wrong pattern).
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidIcon means the icon name is not a usable png file name.
	ErrInvalidIcon = errors.New("icon must be a valid png image")

	// ErrInvalidAddress means a metadata address is not a 0x-prefixed 40 hex character address.
	ErrInvalidAddress = errors.New("invalid ethereum address")

	// ErrUnreachableLink means an integration URL did not answer a link probe.
	ErrUnreachableLink = errors.New("integration url unreachable")

	// ErrCatalogWrite means the combined catalog could not be persisted.
	ErrCatalogWrite = errors.New("catalog write failed")
)

// ValidationError reports one rule violation of one protocol descriptor.
// Index is -1 unless the violation belongs to a metadata array element.
type ValidationError struct {
	ProtocolID  string
	MetadataKey string
	Field       string
	Index       int
	Detail      string
	Err         error
}

// Error renders the violation as "protocol <id>: <what failed>".
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "protocol %s: ", e.ProtocolID)

	switch {
	case e.MetadataKey != "" && e.Index >= 0 && e.Field != "":
		fmt.Fprintf(&b, "metadata %s invalid '%s' field at index %d", e.MetadataKey, e.Field, e.Index)
	case e.MetadataKey != "" && e.Index >= 0:
		fmt.Fprintf(&b, "metadata %s entry at index %d: %v", e.MetadataKey, e.Index, e.Err)
	case e.MetadataKey != "":
		fmt.Fprintf(&b, "metadata %s must be an array", e.MetadataKey)
	case errors.Is(e.Err, ErrInvalidField) && e.Field != "":
		fmt.Fprintf(&b, "invalid field '%s'", e.Field)
	default:
		b.WriteString(e.Err.Error())
	}

	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	return b.String()
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
