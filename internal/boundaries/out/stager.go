package out

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
)

// Stager holds a binary for the duration of one publish operation.
type Stager interface {
	Stage(ctx context.Context, content io.Reader) (StagedBlob, error)
}

// StagedBlob is a staged binary. Release must be called exactly once when
// the operation finishes, whatever its outcome.
type StagedBlob interface {
	// Open returns a fresh reader over the staged bytes.
	Open() (io.ReadCloser, error)
	Size() int64
	Digest() digest.Digest
	Release() error
}
