package domain

import (
	"encoding/json"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// ComponentMetadata is the descriptive document uploaded next to a component binary.
// Required fields are always written as manifest annotations. Optional fields are
// written only when present in the source document.
type ComponentMetadata struct {
	Name         string `json:"name"`
	Tag          string `json:"tag"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Architecture string `json:"architecture"`
	OS           string `json:"os"`

	// Version is accepted as an alias of Tag.
	Version string `json:"version,omitempty"`

	URL           *string `json:"url,omitempty"`
	Source        *string `json:"source,omitempty"`
	Revision      *string `json:"revision,omitempty"`
	Licenses      *string `json:"licenses,omitempty"`
	Vendor        *string `json:"vendor,omitempty"`
	Documentation *string `json:"documentation,omitempty"`
	ComponentType *string `json:"component_type,omitempty"`

	// Raw holds the document exactly as received, normalized to JSON.
	Raw json.RawMessage `json:"-"`
}

// Component is a publish or update request for a single (name, reference) pair.
type Component struct {
	Name      string
	Reference string
	Metadata  *ComponentMetadata
	Binary    []byte
}

// HasBinary reports whether the request carries a binary payload.
func (c *Component) HasBinary() bool {
	return c != nil && c.Binary != nil
}

// PublishResult describes a manifest accepted by the registry.
type PublishResult struct {
	Repository     string
	Reference      string
	ManifestDigest string
	Config         ocispec.Descriptor
	Layer          *ocispec.Descriptor
}

// FetchedComponent is a component resolved back from the registry.
// Binary and Config are nil when the corresponding blob is absent.
type FetchedComponent struct {
	Repository  string
	Reference   string
	Manifest    ocispec.Manifest
	Binary      []byte
	Config      json.RawMessage
	Annotations map[string]string
}
