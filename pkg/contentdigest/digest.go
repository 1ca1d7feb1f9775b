// Package contentdigest computes and verifies registry content digests.
package contentdigest

import (
	"fmt"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/bnema/ocicomp/internal/domain"
)

// Compute returns the canonical sha256 digest of b, formatted "sha256:<hex>".
func Compute(b []byte) string {
	return digest.FromBytes(b).String()
}

// Descriptor returns a descriptor that exactly matches b.
func Descriptor(mediaType string, b []byte) ocispec.Descriptor {
	return ocispec.Descriptor{
		MediaType: mediaType,
		Digest:    digest.FromBytes(b),
		Size:      int64(len(b)),
	}
}

// Verify recomputes the digest of b with the algorithm of expected and fails
// with domain.ErrIntegrityViolation when they differ.
func Verify(b []byte, expected string) error {
	want, err := digest.Parse(expected)
	if err != nil {
		return fmt.Errorf("%w: invalid declared digest %q: %v", domain.ErrIntegrityViolation, expected, err)
	}

	got := want.Algorithm().FromBytes(b)
	if got != want {
		return fmt.Errorf("%w: declared %s, computed %s", domain.ErrIntegrityViolation, want, got)
	}
	return nil
}

// VerifyDescriptor checks both the size and the digest of b against desc.
func VerifyDescriptor(b []byte, desc ocispec.Descriptor) error {
	if int64(len(b)) != desc.Size {
		return fmt.Errorf("%w: declared size %d, got %d bytes", domain.ErrIntegrityViolation, desc.Size, len(b))
	}
	return Verify(b, desc.Digest.String())
}
