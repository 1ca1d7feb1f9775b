package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComponentMetadata_JSON(t *testing.T) {
	doc := []byte(`{
		"name": "demo",
		"tag": "v1",
		"description": "x",
		"author": "alice",
		"architecture": "wasm32",
		"os": "wasip1",
		"url": "https://example.com",
		"component_type": "filter",
		"extra": {"kept": true}
	}`)

	meta, err := ParseComponentMetadata(doc)
	require.NoError(t, err)

	assert.Equal(t, "demo", meta.Name)
	assert.Equal(t, "v1", meta.Tag)
	assert.Equal(t, "x", meta.Description)
	assert.Equal(t, "alice", meta.Author)
	assert.Equal(t, "wasm32", meta.Architecture)
	assert.Equal(t, "wasip1", meta.OS)
	require.NotNil(t, meta.URL)
	assert.Equal(t, "https://example.com", *meta.URL)
	require.NotNil(t, meta.ComponentType)
	assert.Equal(t, "filter", *meta.ComponentType)
	assert.Nil(t, meta.Source)
	assert.Nil(t, meta.Licenses)
	assert.JSONEq(t, string(doc), string(meta.Raw))
}

func TestParseComponentMetadata_YAML(t *testing.T) {
	doc := []byte("name: demo\ntag: v2\ndescription: yaml doc\nlicenses: MIT\n")

	meta, err := ParseComponentMetadata(doc)
	require.NoError(t, err)

	assert.Equal(t, "demo", meta.Name)
	assert.Equal(t, "v2", meta.Tag)
	require.NotNil(t, meta.Licenses)
	assert.Equal(t, "MIT", *meta.Licenses)
	assert.JSONEq(t, `{"name":"demo","tag":"v2","description":"yaml doc","licenses":"MIT"}`, string(meta.Raw))
}

func TestParseComponentMetadata_VersionAlias(t *testing.T) {
	meta, err := ParseComponentMetadata([]byte(`{"name":"demo","description":"x","version":"v1"}`))
	require.NoError(t, err)
	assert.Equal(t, "v1", meta.Tag)

	meta, err = ParseComponentMetadata([]byte(`{"name":"demo","tag":"v2","version":"v1"}`))
	require.NoError(t, err)
	assert.Equal(t, "v2", meta.Tag)
}

func TestParseComponentMetadata_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"array", `["a","b"]`},
		{"scalar", `"just a string"`},
		{"broken json", `{"name": "demo"`},
		{"wrong type", `{"name": 12, "tag": ["x"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ParseComponentMetadata([]byte(tt.doc))
			assert.Nil(t, meta)
			assert.ErrorIs(t, err, ErrManifestParse)
		})
	}
}
