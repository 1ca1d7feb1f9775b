// Package validation provides input validation for repository names, references
// and local paths.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
	"oras.land/oras-go/v2/registry"

	"github.com/bnema/ocicomp/internal/domain"
)

// MaxRepositoryNameLength is the maximum allowed length for repository names.
const MaxRepositoryNameLength = 256

// ValidateRepositoryName validates an OCI repository name such as "demo" or
// "myorg/demo". Errors wrap domain.ErrInvalidName.
func ValidateRepositoryName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: repository name cannot be empty", domain.ErrInvalidName)
	}

	if len(name) > MaxRepositoryNameLength {
		return fmt.Errorf("%w: repository name too long: %d chars (max %d)", domain.ErrInvalidName, len(name), MaxRepositoryNameLength)
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: repository name contains path traversal sequence", domain.ErrInvalidName)
	}

	ref := registry.Reference{Repository: name}
	if err := ref.ValidateRepository(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidName, err)
	}

	return nil
}

// ValidateReference validates a tag or a digest reference.
func ValidateReference(reference string) error {
	if reference == "" {
		return fmt.Errorf("%w: reference cannot be empty", domain.ErrInvalidName)
	}

	if strings.Contains(reference, "..") {
		return fmt.Errorf("%w: reference contains path traversal sequence", domain.ErrInvalidName)
	}

	ref := registry.Reference{Reference: reference}
	if err := ref.ValidateReference(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidName, err)
	}

	return nil
}

// ValidateDigest validates a content digest of the form algorithm:hex.
func ValidateDigest(d string) error {
	if d == "" {
		return fmt.Errorf("%w: digest cannot be empty", domain.ErrInvalidName)
	}

	if _, err := digest.Parse(d); err != nil {
		return fmt.Errorf("%w: invalid digest %q: %v", domain.ErrInvalidName, d, err)
	}

	return nil
}

// IsDigest reports whether s is a valid content digest.
func IsDigest(s string) bool {
	return ValidateDigest(s) == nil
}

// ValidatePathWithinRoot checks that fullPath stays inside rootDir after cleaning.
func ValidatePathWithinRoot(rootDir, fullPath string) error {
	cleanRoot := filepath.Clean(rootDir)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, cleanRoot+string(filepath.Separator)) && cleanPath != cleanRoot {
		return fmt.Errorf("path escapes root directory")
	}

	return nil
}
