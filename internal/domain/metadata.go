package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

// ParseComponentMetadata decodes a metadata document. JSON and YAML are both
// accepted; the document is normalized to JSON and kept in Raw.
func ParseComponentMetadata(data []byte) (*ComponentMetadata, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrManifestParse)
	}

	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: document must be an object", ErrManifestParse)
	}

	var meta ComponentMetadata
	if err := json.Unmarshal(trimmed, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	if meta.Tag == "" {
		meta.Tag = meta.Version
	}
	meta.Raw = json.RawMessage(trimmed)

	return &meta, nil
}
