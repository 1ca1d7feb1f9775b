package manifest

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opencontainers/go-digest"
	"github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor(mediaType string, content string) ocispec.Descriptor {
	return ocispec.Descriptor{
		MediaType: mediaType,
		Digest:    digest.FromString(content),
		Size:      int64(len(content)),
	}
}

func TestBuild(t *testing.T) {
	config := testDescriptor("application/json", `{"name":"demo"}`)
	layer := testDescriptor("application/wasm", "\x01\x02\x03\x04")
	annotations := map[string]string{ocispec.AnnotationTitle: "demo"}

	got := Build(config, &layer, annotations)

	want := ocispec.Manifest{
		Versioned:   specs.Versioned{SchemaVersion: 2},
		MediaType:   ocispec.MediaTypeImageManifest,
		Config:      config,
		Layers:      []ocispec.Descriptor{layer},
		Annotations: annotations,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(4), got.Layers[0].Size)
}

func TestBuild_NoLayerSerializesEmptyArray(t *testing.T) {
	config := testDescriptor("application/json", "{}")

	m := Build(config, nil, nil)
	require.NotNil(t, m.Layers)
	assert.Empty(t, m.Layers)

	data, _, err := Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"layers":[]`)
	assert.NotContains(t, string(data), `"annotations"`)
}

func TestMarshal_DigestMatchesBytes(t *testing.T) {
	config := testDescriptor("application/json", "{}")
	m := Build(config, nil, map[string]string{ocispec.AnnotationVersion: "v1"})

	data, dgst, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, digest.FromBytes(data), dgst)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(2), decoded["schemaVersion"])
	assert.Equal(t, ocispec.MediaTypeImageManifest, decoded["mediaType"])
}

func TestParse(t *testing.T) {
	config := testDescriptor("application/json", `{"name":"demo"}`)
	layer := testDescriptor("application/wasm", "bin")
	built := Build(config, &layer, map[string]string{ocispec.AnnotationTitle: "demo"})

	data, _, err := Marshal(built)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	if diff := cmp.Diff(built, parsed); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MissingLayersBecomesEmpty(t *testing.T) {
	data := []byte(`{"schemaVersion":2,"config":{"mediaType":"application/json","digest":"sha256:44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a","size":2}}`)

	m, err := Parse(data)
	require.NoError(t, err)
	assert.NotNil(t, m.Layers)
	assert.Empty(t, m.Layers)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "<html>"},
		{"schema version 1", `{"schemaVersion":1,"config":{"digest":"sha256:44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a"}}`},
		{"index media type", `{"schemaVersion":2,"mediaType":"application/vnd.oci.image.index.v1+json","config":{"digest":"sha256:44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a"}}`},
		{"bad config digest", `{"schemaVersion":2,"config":{"digest":"sha256:nope"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestFirstLayer(t *testing.T) {
	layer := testDescriptor("application/wasm", "bin")
	config := testDescriptor("application/json", "{}")

	got, ok := FirstLayer(Build(config, &layer, nil), "application/wasm")
	assert.True(t, ok)
	assert.Equal(t, layer, got)

	_, ok = FirstLayer(Build(config, &layer, nil), "application/octet-stream")
	assert.False(t, ok)

	_, ok = FirstLayer(Build(config, nil, nil), "application/wasm")
	assert.False(t, ok)
}
