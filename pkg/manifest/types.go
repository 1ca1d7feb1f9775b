// Package manifest builds and decodes the OCI image manifests that describe a
// component artifact.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// MediaType is the media type of every manifest this package produces.
const MediaType = ocispec.MediaTypeImageManifest

// EmptyConfig is the config blob used when the metadata document is not
// stored as the config.
var EmptyConfig = []byte("{}")

// ErrInvalidManifest is returned by Parse for documents that are not OCI image manifests.
var ErrInvalidManifest = errors.New("invalid image manifest")

// Build assembles a schema version 2 image manifest with the given config,
// at most one layer and the manifest-level annotations.
func Build(config ocispec.Descriptor, layer *ocispec.Descriptor, annotations map[string]string) ocispec.Manifest {
	layers := []ocispec.Descriptor{}
	if layer != nil {
		layers = append(layers, *layer)
	}

	return ocispec.Manifest{
		Versioned:   specs.Versioned{SchemaVersion: 2},
		MediaType:   MediaType,
		Config:      config,
		Layers:      layers,
		Annotations: annotations,
	}
}

// Marshal returns the wire form of m together with its digest.
func Marshal(m ocispec.Manifest) ([]byte, digest.Digest, error) {
	if m.Layers == nil {
		m.Layers = []ocispec.Descriptor{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, digest.FromBytes(data), nil
}

// Parse decodes an image manifest. Documents with a schema version other than 2
// or a foreign media type are rejected.
func Parse(data []byte) (ocispec.Manifest, error) {
	var m ocispec.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return ocispec.Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if m.SchemaVersion != 2 {
		return ocispec.Manifest{}, fmt.Errorf("%w: unsupported schema version %d", ErrInvalidManifest, m.SchemaVersion)
	}
	if m.MediaType != "" && m.MediaType != MediaType {
		return ocispec.Manifest{}, fmt.Errorf("%w: unexpected media type %s", ErrInvalidManifest, m.MediaType)
	}
	if err := m.Config.Digest.Validate(); err != nil {
		return ocispec.Manifest{}, fmt.Errorf("%w: config digest: %v", ErrInvalidManifest, err)
	}
	if m.Layers == nil {
		m.Layers = []ocispec.Descriptor{}
	}

	return m, nil
}

// FirstLayer returns the first layer of m when its media type matches mediaType.
func FirstLayer(m ocispec.Manifest, mediaType string) (ocispec.Descriptor, bool) {
	if len(m.Layers) == 0 || m.Layers[0].MediaType != mediaType {
		return ocispec.Descriptor{}, false
	}
	return m.Layers[0], true
}
