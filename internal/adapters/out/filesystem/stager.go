// Package filesystem implements binary staging on a filesystem.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/zerowrap"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/afero"

	"github.com/bnema/ocicomp/internal/boundaries/out"
	"github.com/bnema/ocicomp/pkg/validation"
)

var _ out.Stager = (*Stager)(nil)

// Stager writes each binary to its own temporary file under rootDir,
// computing the digest while the bytes are written.
type Stager struct {
	fs      afero.Fs
	rootDir string
	log     zerowrap.Logger
}

// NewStager creates rootDir if needed and returns a stager writing into it.
func NewStager(fs afero.Fs, rootDir string, log zerowrap.Logger) (*Stager, error) {
	if rootDir == "" {
		rootDir = filepath.Join(os.TempDir(), "ocicomp")
	}
	if err := fs.MkdirAll(rootDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create staging directory %s: %w", rootDir, err)
	}

	log.Info().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "filesystem").
		Str(zerowrap.FieldPath, rootDir).
		Msg("file staging initialized")

	return &Stager{fs: fs, rootDir: rootDir, log: log}, nil
}

// Stage copies content to a new temporary file. On error nothing is left behind.
func (s *Stager) Stage(ctx context.Context, content io.Reader) (out.StagedBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := afero.TempFile(s.fs, s.rootDir, "blob-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	path := file.Name()

	if err := validation.ValidatePathWithinRoot(s.rootDir, path); err != nil {
		_ = file.Close()
		_ = s.fs.Remove(path)
		return nil, fmt.Errorf("staging file %s: %w", path, err)
	}

	digester := digest.Canonical.Digester()
	size, err := io.Copy(io.MultiWriter(file, digester.Hash()), &ctxReader{ctx: ctx, r: content})
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(path)
		return nil, fmt.Errorf("failed to stage binary: %w", err)
	}

	log := zerowrap.FromCtx(ctx)
	log.Debug().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "filesystem").
		Str(zerowrap.FieldPath, path).
		Int64(zerowrap.FieldSize, size).
		Msg("binary staged")

	return &stagedFile{
		fs:     s.fs,
		path:   path,
		size:   size,
		digest: digester.Digest(),
	}, nil
}

type stagedFile struct {
	fs     afero.Fs
	path   string
	size   int64
	digest digest.Digest

	once       sync.Once
	releaseErr error
}

func (f *stagedFile) Open() (io.ReadCloser, error) {
	return f.fs.Open(f.path)
}

func (f *stagedFile) Size() int64           { return f.size }
func (f *stagedFile) Digest() digest.Digest { return f.digest }

// Release removes the file. Later calls return the first result.
func (f *stagedFile) Release() error {
	f.once.Do(func() {
		if err := f.fs.Remove(f.path); err != nil && !os.IsNotExist(err) {
			f.releaseErr = fmt.Errorf("failed to remove staging file: %w", err)
		}
	})
	return f.releaseErr
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
