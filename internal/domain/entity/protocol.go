package entity

import (
	"protocol-catalog/internal/pkg/jsonobj"
)

// MetadataKey names one of the metadata lists of a descriptor.
type MetadataKey string

// Known metadata lists, in the order they are validated.
const (
	MetadataPT MetadataKey = "pt"
	MetadataYT MetadataKey = "yt"
	MetadataLP MetadataKey = "lp"
)

// MetadataKeys lists every metadata key a descriptor may carry.
var MetadataKeys = []MetadataKey{MetadataPT, MetadataYT, MetadataLP}

// Descriptor file and catalog member names.
const (
	DescriptorFileName = "config.json"

	FieldID       = "id"
	FieldName     = "name"
	FieldIcon     = "icon"
	FieldMetadata = "metadata"
	FieldHash     = "hash"

	FieldChainID        = "chainId"
	FieldAddress        = "address"
	FieldDescription    = "description"
	FieldIntegrationURL = "integrationUrl"
)

// MetadataEntry is one on-chain integration point of a protocol.
type MetadataEntry struct {
	ChainID        float64 `json:"chainId"`
	Address        Address `json:"address"`
	Description    string  `json:"description"`
	IntegrationURL string  `json:"integrationUrl"`
}

// CatalogEntry is a descriptor as it appears in the combined catalog: the
// implicit id first, the descriptor members in file order, the icon hash last.
type CatalogEntry struct {
	ID     string
	Fields *jsonobj.Object
}

// Icon returns the icon file name declared by the descriptor.
func (e CatalogEntry) Icon() (string, bool) {
	return e.Fields.GetString(FieldIcon)
}

// Hash returns the computed icon hash, if set.
func (e CatalogEntry) Hash() (string, bool) {
	return e.Fields.GetString(FieldHash)
}

// MarshalJSON encodes the entry as its ordered member set.
func (e CatalogEntry) MarshalJSON() ([]byte, error) {
	return e.Fields.MarshalJSON()
}

// Catalog is the combined document written by the merger.
type Catalog struct {
	Protocols []CatalogEntry `json:"protocols"`
}
