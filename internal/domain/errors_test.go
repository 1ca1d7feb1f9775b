package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RegistryError{
		Kind:   ErrTransport,
		Method: "PUT",
		URL:    "http://registry/v2/demo/blobs/uploads/1",
		Err:    cause,
	}

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUploadRejected)
	assert.Equal(t, "registry transport error: PUT http://registry/v2/demo/blobs/uploads/1: connection refused", err.Error())
}

func TestRegistryError_StatusInMessage(t *testing.T) {
	err := &RegistryError{Kind: ErrUploadRejected, Method: "PUT", URL: "http://r/x", StatusCode: 400}
	assert.Contains(t, err.Error(), "status 400")
	assert.ErrorIs(t, err, ErrUploadRejected)
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing input", fmt.Errorf("push: %w", ErrMissingInput), "MissingInput"},
		{"parse", ErrManifestParse, "ManifestParseError"},
		{"invalid upload", fmt.Errorf("multipart: %w", ErrInvalidUpload), "InvalidUpload"},
		{"not found wrapped in registry error", &RegistryError{Kind: ErrNotFound}, "NotFound"},
		{"integrity", fmt.Errorf("config: %w", ErrIntegrityViolation), "IntegrityViolation"},
		{"delete rejected", &RegistryError{Kind: ErrDeleteRejected}, "DeleteRejected"},
		{"unreachable", &RegistryError{Kind: ErrRegistryUnreachable}, "RegistryUnreachable"},
		{"unknown", errors.New("boom"), "Internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrMissingInput))
	assert.True(t, IsClientError(fmt.Errorf("x: %w", ErrInvalidName)))
	assert.True(t, IsClientError(ErrManifestParse))
	assert.True(t, IsClientError(ErrInvalidUpload))
	assert.False(t, IsClientError(&RegistryError{Kind: ErrRegistryRejected}))
	assert.False(t, IsClientError(ErrIntegrityViolation))
}
