// Package memory implements binary staging in process memory.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"

	"github.com/bnema/ocicomp/internal/boundaries/out"
)

var _ out.Stager = (*Stager)(nil)

// Stager buffers each binary in memory. MaxSize bounds a single binary;
// zero means unbounded.
type Stager struct {
	MaxSize int64
}

// NewStager returns a memory stager.
func NewStager(maxSize int64) *Stager {
	return &Stager{MaxSize: maxSize}
}

// Stage reads content fully into memory.
func (s *Stager) Stage(ctx context.Context, content io.Reader) (out.StagedBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := content
	if s.MaxSize > 0 {
		r = io.LimitReader(content, s.MaxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to stage binary: %w", err)
	}
	if s.MaxSize > 0 && int64(len(data)) > s.MaxSize {
		return nil, fmt.Errorf("binary exceeds %d bytes", s.MaxSize)
	}

	return &stagedBuffer{data: data, digest: digest.FromBytes(data)}, nil
}

type stagedBuffer struct {
	data   []byte
	digest digest.Digest
}

func (b *stagedBuffer) Open() (io.ReadCloser, error) {
	if b.data == nil {
		return nil, fmt.Errorf("staged binary already released")
	}
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func (b *stagedBuffer) Size() int64           { return int64(len(b.data)) }
func (b *stagedBuffer) Digest() digest.Digest { return b.digest }

func (b *stagedBuffer) Release() error {
	b.data = nil
	return nil
}
