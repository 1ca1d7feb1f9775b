package out

import (
	"context"
	"io"
	"net/url"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// RegistryClient defines the contract for talking to a remote OCI registry
// through its distribution HTTP API.
type RegistryClient interface {
	// InitiateUpload opens a blob upload session and returns its absolute location.
	InitiateUpload(ctx context.Context, repository string) (*url.URL, error)

	// UploadBlob completes a session with a single monolithic PUT.
	UploadBlob(ctx context.Context, location *url.URL, content io.Reader, size int64, dgst digest.Digest) error

	// FetchBlob downloads a blob. The caller verifies its digest.
	FetchBlob(ctx context.Context, repository string, dgst digest.Digest) ([]byte, error)

	// Manifest operations
	FetchManifest(ctx context.Context, repository, reference string) (ocispec.Manifest, error)
	PutManifest(ctx context.Context, repository, reference string, manifest ocispec.Manifest) (string, error)
	DeleteManifest(ctx context.Context, repository, reference string) error

	// Ping checks that the registry API answers.
	Ping(ctx context.Context) error
}
