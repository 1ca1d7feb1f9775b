package component

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ocicomp/internal/boundaries/out/mocks"
	"github.com/bnema/ocicomp/internal/domain"
	"github.com/bnema/ocicomp/pkg/manifest"
)

func testContext() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testMetadata() *domain.ComponentMetadata {
	return &domain.ComponentMetadata{
		Name:        "demo",
		Tag:         "v1",
		Description: "x",
		Raw:         []byte(`{"name":"demo","tag":"v1","description":"x"}`),
	}
}

type recordedOp struct {
	operation string
	err       error
}

type fakeRecorder struct {
	mu    sync.Mutex
	ops   []recordedOp
	bytes int64
}

func (r *fakeRecorder) RecordOperation(_ context.Context, operation string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, recordedOp{operation: operation, err: err})
}

func (r *fakeRecorder) RecordPushBytes(_ context.Context, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bytes += n
}

func stagedBlob(t *testing.T, payload string) *mocks.MockStagedBlob {
	blob := mocks.NewMockStagedBlob(t)
	blob.EXPECT().Digest().Return(digest.FromString(payload)).Maybe()
	blob.EXPECT().Size().Return(int64(len(payload))).Maybe()
	blob.EXPECT().Open().Return(io.NopCloser(strings.NewReader(payload)), nil).Maybe()
	return blob
}

func TestService_Push_MissingInput(t *testing.T) {
	tests := []struct {
		name      string
		component *domain.Component
	}{
		{name: "nil component", component: nil},
		{name: "binary only", component: &domain.Component{Name: "demo", Reference: "v1", Binary: []byte{1}}},
		{name: "metadata only", component: &domain.Component{Metadata: testMetadata()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockRegistryClient(t)
			stager := mocks.NewMockStager(t)
			recorder := &fakeRecorder{}
			svc := NewService(registry, stager, Config{}, WithRecorder(recorder))

			_, err := svc.Push(testContext(), tt.component)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMissingInput)
			require.Len(t, recorder.ops, 1)
			assert.Equal(t, "push", recorder.ops[0].operation)
			assert.ErrorIs(t, recorder.ops[0].err, domain.ErrMissingInput)
		})
	}
}

func TestService_Push_InvalidName(t *testing.T) {
	tests := []struct {
		name      string
		component *domain.Component
		cfg       Config
	}{
		{
			name:      "uppercase repository",
			component: &domain.Component{Name: "Demo", Reference: "v1", Metadata: testMetadata(), Binary: []byte{1}},
		},
		{
			name:      "digest reference",
			component: &domain.Component{Name: "demo", Reference: digest.FromString("x").String(), Metadata: testMetadata(), Binary: []byte{1}},
		},
		{
			name:      "traversal",
			component: &domain.Component{Name: "../etc", Reference: "v1", Metadata: testMetadata(), Binary: []byte{1}},
		},
		{
			name:      "strict semver",
			component: &domain.Component{Name: "demo", Reference: "latest", Metadata: testMetadata(), Binary: []byte{1}},
			cfg:       Config{StrictSemver: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(mocks.NewMockRegistryClient(t), mocks.NewMockStager(t), tt.cfg)

			_, err := svc.Push(testContext(), tt.component)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidName)
			assert.True(t, domain.IsClientError(err))
		})
	}
}

func TestService_Push_LayerUploadFailureSkipsManifest(t *testing.T) {
	registry := mocks.NewMockRegistryClient(t)
	stager := mocks.NewMockStager(t)
	blob := stagedBlob(t, "test")

	uploadErr := &domain.RegistryError{Kind: domain.ErrUploadRejected, Method: "PUT", StatusCode: 400}
	location, _ := url.Parse("http://registry.local/v2/demo/blobs/uploads/1")

	stager.EXPECT().Stage(mock.Anything, mock.Anything).Return(blob, nil)
	blob.EXPECT().Release().Return(nil).Once()
	registry.EXPECT().InitiateUpload(mock.Anything, "demo").Return(location, nil).Once()
	registry.EXPECT().
		UploadBlob(mock.Anything, location, mock.Anything, int64(4), digest.FromString("test")).
		Return(uploadErr).Once()

	svc := NewService(registry, stager, Config{})
	_, err := svc.Push(testContext(), &domain.Component{Metadata: testMetadata(), Binary: []byte("test")})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUploadRejected)
	registry.AssertNotCalled(t, "PutManifest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Push_ConfigUploadFailureSkipsManifest(t *testing.T) {
	registry := mocks.NewMockRegistryClient(t)
	stager := mocks.NewMockStager(t)
	blob := stagedBlob(t, "test")
	location, _ := url.Parse("http://registry.local/v2/demo/blobs/uploads/1")

	stager.EXPECT().Stage(mock.Anything, mock.Anything).Return(blob, nil)
	blob.EXPECT().Release().Return(nil).Once()
	registry.EXPECT().InitiateUpload(mock.Anything, "demo").Return(location, nil).Once()
	registry.EXPECT().UploadBlob(mock.Anything, location, mock.Anything, int64(4), mock.Anything).Return(nil).Once()
	registry.EXPECT().InitiateUpload(mock.Anything, "demo").
		Return(nil, &domain.RegistryError{Kind: domain.ErrRegistryUnreachable}).Once()

	svc := NewService(registry, stager, Config{})
	_, err := svc.Push(testContext(), &domain.Component{Metadata: testMetadata(), Binary: []byte("test")})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistryUnreachable)
}

func TestService_Push_StagingFailure(t *testing.T) {
	stager := mocks.NewMockStager(t)
	stager.EXPECT().Stage(mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	svc := NewService(mocks.NewMockRegistryClient(t), stager, Config{})
	_, err := svc.Push(testContext(), &domain.Component{Metadata: testMetadata(), Binary: []byte("test")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "Internal", domain.ErrorKind(err))
}

func TestService_Push_ReleaseErrorDoesNotFail(t *testing.T) {
	registry := mocks.NewMockRegistryClient(t)
	stager := mocks.NewMockStager(t)
	blob := stagedBlob(t, "test")
	location, _ := url.Parse("http://registry.local/v2/demo/blobs/uploads/1")

	stager.EXPECT().Stage(mock.Anything, mock.Anything).Return(blob, nil)
	blob.EXPECT().Release().Return(errors.New("busy")).Once()
	registry.EXPECT().InitiateUpload(mock.Anything, "demo").Return(location, nil).Times(2)
	registry.EXPECT().UploadBlob(mock.Anything, location, mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
	registry.EXPECT().PutManifest(mock.Anything, "demo", "v1", mock.Anything).Return("sha256:abc", nil).Once()

	recorder := &fakeRecorder{}
	svc := NewService(registry, stager, Config{}, WithRecorder(recorder), WithClock(func() time.Time { return fixedNow }))
	result, err := svc.Push(testContext(), &domain.Component{Metadata: testMetadata(), Binary: []byte("test")})

	require.NoError(t, err)
	assert.Equal(t, "sha256:abc", result.ManifestDigest)
	assert.Equal(t, int64(4), recorder.bytes)
	require.Len(t, recorder.ops, 1)
	assert.NoError(t, recorder.ops[0].err)
}

func TestService_Update_WithoutBinary_NotFound(t *testing.T) {
	registry := mocks.NewMockRegistryClient(t)
	registry.EXPECT().FetchManifest(mock.Anything, "demo", "v1").
		Return(ocispec.Manifest{}, &domain.RegistryError{Kind: domain.ErrNotFound, StatusCode: 404})

	svc := NewService(registry, mocks.NewMockStager(t), Config{})
	_, err := svc.Update(testContext(), &domain.Component{Name: "demo", Reference: "v1", Metadata: testMetadata()})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Update_WithoutBinary_NoLayer(t *testing.T) {
	registry := mocks.NewMockRegistryClient(t)
	config := ocispec.Descriptor{MediaType: DefaultConfigMediaType, Digest: digest.FromString("{}"), Size: 2}
	registry.EXPECT().FetchManifest(mock.Anything, "demo", "v1").Return(manifest.Build(config, nil, nil), nil)

	svc := NewService(registry, mocks.NewMockStager(t), Config{})
	_, err := svc.Update(testContext(), &domain.Component{Name: "demo", Reference: "v1", Metadata: testMetadata()})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestService_Update_MissingMetadata(t *testing.T) {
	svc := NewService(mocks.NewMockRegistryClient(t), mocks.NewMockStager(t), Config{})

	_, err := svc.Update(testContext(), &domain.Component{Name: "demo", Reference: "v1", Binary: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "deleted", err: nil},
		{name: "not found", err: &domain.RegistryError{Kind: domain.ErrNotFound, StatusCode: 404}, wantErr: domain.ErrNotFound},
		{name: "rejected", err: &domain.RegistryError{Kind: domain.ErrDeleteRejected, StatusCode: 405}, wantErr: domain.ErrDeleteRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockRegistryClient(t)
			registry.EXPECT().DeleteManifest(mock.Anything, "demo", "v1").Return(tt.err)

			svc := NewService(registry, mocks.NewMockStager(t), Config{})
			err := svc.Delete(testContext(), "demo", "v1")

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Fetch_InvalidName(t *testing.T) {
	svc := NewService(mocks.NewMockRegistryClient(t), mocks.NewMockStager(t), Config{})

	_, err := svc.Fetch(testContext(), "demo", "")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestService_OperationTimeout(t *testing.T) {
	registry := mocks.NewMockRegistryClient(t)
	registry.EXPECT().DeleteManifest(mock.Anything, "demo", "v1").
		RunAndReturn(func(ctx context.Context, _, _ string) error {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
			return nil
		})

	svc := NewService(registry, mocks.NewMockStager(t), Config{OperationTimeout: time.Minute})
	require.NoError(t, svc.Delete(testContext(), "demo", "v1"))
}

func TestService_Health(t *testing.T) {
	registry := mocks.NewMockRegistryClient(t)
	registry.EXPECT().Ping(mock.Anything).Return(nil).Once()
	registry.EXPECT().Ping(mock.Anything).Return(&domain.RegistryError{Kind: domain.ErrRegistryUnreachable}).Once()

	svc := NewService(registry, mocks.NewMockStager(t), Config{})

	assert.NoError(t, svc.Health(testContext()))
	assert.ErrorIs(t, svc.Health(testContext()), domain.ErrRegistryUnreachable)
}

func TestIsSemver(t *testing.T) {
	assert.True(t, isSemver("v1"))
	assert.True(t, isSemver("1.2.3"))
	assert.True(t, isSemver("v1.2.3-rc.1"))
	assert.False(t, isSemver("latest"))
	assert.False(t, isSemver("v1.2.3.4"))
}
