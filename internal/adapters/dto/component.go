// Package dto holds the JSON bodies exchanged over the HTTP API.
package dto

import (
	"encoding/base64"
	"encoding/json"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/bnema/ocicomp/internal/domain"
)

// ComponentResponse is the body of a fetch. Binary is base64 encoded.
// Absent parts are omitted.
type ComponentResponse struct {
	Repository  string            `json:"repository"`
	Reference   string            `json:"reference"`
	Manifest    ocispec.Manifest  `json:"manifest"`
	Binary      *string           `json:"binary,omitempty"`
	Config      json.RawMessage   `json:"config,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// NewComponentResponse converts a fetched component.
func NewComponentResponse(c *domain.FetchedComponent) ComponentResponse {
	resp := ComponentResponse{
		Repository:  c.Repository,
		Reference:   c.Reference,
		Manifest:    c.Manifest,
		Config:      c.Config,
		Annotations: c.Annotations,
	}
	if c.Binary != nil {
		encoded := base64.StdEncoding.EncodeToString(c.Binary)
		resp.Binary = &encoded
	}
	return resp
}

// DecodeBinary returns the decoded binary, or nil when absent.
func (r ComponentResponse) DecodeBinary() ([]byte, error) {
	if r.Binary == nil {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(*r.Binary)
}

// PublishResponse is the body of a successful push or update.
type PublishResponse struct {
	Repository     string              `json:"repository"`
	Reference      string              `json:"reference"`
	ManifestDigest string              `json:"manifest_digest"`
	Config         ocispec.Descriptor  `json:"config"`
	Layer          *ocispec.Descriptor `json:"layer,omitempty"`
}

// NewPublishResponse converts a publish result.
func NewPublishResponse(r *domain.PublishResult) PublishResponse {
	return PublishResponse{
		Repository:     r.Repository,
		Reference:      r.Reference,
		ManifestDigest: r.ManifestDigest,
		Config:         r.Config,
		Layer:          r.Layer,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Registry string `json:"registry"`
	Error    string `json:"error,omitempty"`
}
