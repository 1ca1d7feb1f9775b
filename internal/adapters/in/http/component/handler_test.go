package component

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/zerowrap"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ocicomp/internal/adapters/dto"
	"github.com/bnema/ocicomp/internal/boundaries/in/mocks"
	"github.com/bnema/ocicomp/internal/domain"
)

type part struct {
	filename string
	content  []byte
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for i, p := range parts {
		fw, err := w.CreateFormFile(fmt.Sprintf("file%d", i), p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newTestHandler(t *testing.T, cfg Config) (*mocks.MockComponentService, http.Handler) {
	svc := mocks.NewMockComponentService(t)
	h := NewHandler(svc, cfg, zerowrap.Default())
	return svc, NewRouter(h)
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var testMetadata = []byte(`{"name":"demo","tag":"v1","description":"x"}`)

func TestHandler_Push(t *testing.T) {
	svc, router := newTestHandler(t, Config{})

	layer := ocispec.Descriptor{MediaType: "application/wasm", Digest: digest.FromBytes([]byte{1, 2, 3, 4}), Size: 4}
	svc.EXPECT().Push(mock.Anything, mock.MatchedBy(func(c *domain.Component) bool {
		return c.Metadata != nil &&
			c.Metadata.Name == "demo" &&
			c.Metadata.Tag == "v1" &&
			bytes.Equal(c.Binary, []byte{1, 2, 3, 4})
	})).Return(&domain.PublishResult{
		Repository:     "demo",
		Reference:      "v1",
		ManifestDigest: "sha256:abc",
		Layer:          &layer,
	}, nil)

	body, contentType := multipartBody(t,
		part{filename: "component.json", content: testMetadata},
		part{filename: "demo.wasm", content: []byte{1, 2, 3, 4}},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/components", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp dto.PublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sha256:abc", resp.ManifestDigest)
	require.NotNil(t, resp.Layer)
	assert.Equal(t, int64(4), resp.Layer.Size)
}

func TestHandler_Push_YAMLMetadataAndCustomExtension(t *testing.T) {
	svc, router := newTestHandler(t, Config{BinaryExtension: "so"})

	svc.EXPECT().Push(mock.Anything, mock.MatchedBy(func(c *domain.Component) bool {
		return c.Metadata.Name == "demo" && string(c.Binary) == "elf"
	})).Return(&domain.PublishResult{Repository: "demo", Reference: "v1"}, nil)

	body, contentType := multipartBody(t,
		part{filename: "meta.yaml", content: []byte("name: demo\ntag: v1\n")},
		part{filename: "plugin.SO", content: []byte("elf")},
		part{filename: "README.md", content: []byte("ignored")},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/components", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHandler_Push_MissingBinaryReachesService(t *testing.T) {
	svc, router := newTestHandler(t, Config{})

	svc.EXPECT().Push(mock.Anything, mock.MatchedBy(func(c *domain.Component) bool {
		return c.Binary == nil
	})).Return(nil, fmt.Errorf("%w: binary payload is required", domain.ErrMissingInput))

	body, contentType := multipartBody(t, part{filename: "component.json", content: testMetadata})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/components", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeError(t, rec)
	assert.Equal(t, "MissingInput", errBody.Kind)
	assert.False(t, errBody.Upstream)
}

func TestHandler_Push_MalformedMetadata(t *testing.T) {
	_, router := newTestHandler(t, Config{})

	body, contentType := multipartBody(t,
		part{filename: "component.json", content: []byte(`{"name":`)},
		part{filename: "demo.wasm", content: []byte{1}},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/components", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ManifestParseError", decodeError(t, rec).Kind)
}

func TestHandler_Push_NotMultipart(t *testing.T) {
	_, router := newTestHandler(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/components", bytes.NewReader(testMetadata))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidUpload", decodeError(t, rec).Kind)
}

func TestHandler_Push_DuplicateParts(t *testing.T) {
	tests := []struct {
		name  string
		parts []part
	}{
		{
			name: "two binaries",
			parts: []part{
				{filename: "component.json", content: testMetadata},
				{filename: "a.wasm", content: []byte{1}},
				{filename: "b.wasm", content: []byte{2}},
			},
		},
		{
			name: "two metadata documents",
			parts: []part{
				{filename: "a.json", content: testMetadata},
				{filename: "b.yaml", content: []byte("name: demo\ntag: v1\n")},
				{filename: "c.wasm", content: []byte{1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestHandler(t, Config{})

			body, contentType := multipartBody(t, tt.parts...)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/components", body)
			req.Header.Set("Content-Type", contentType)

			rec := serve(router, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			errBody := decodeError(t, rec)
			assert.Equal(t, "InvalidUpload", errBody.Kind)
			assert.False(t, errBody.Upstream)
		})
	}
}

func TestHandler_Push_TooLarge(t *testing.T) {
	_, router := newTestHandler(t, Config{MaxUploadSize: 1024})

	body, contentType := multipartBody(t,
		part{filename: "component.json", content: testMetadata},
		part{filename: "demo.wasm", content: bytes.Repeat([]byte{0xff}, 4096)},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/components", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "PayloadTooLarge", decodeError(t, rec).Kind)
}

func TestHandler_Fetch(t *testing.T) {
	svc, router := newTestHandler(t, Config{})

	svc.EXPECT().Fetch(mock.Anything, "team/demo", "v1").Return(&domain.FetchedComponent{
		Repository: "team/demo",
		Reference:  "v1",
		Binary:     []byte{1, 2, 3, 4},
		Config:     json.RawMessage(`{"name":"demo"}`),
	}, nil)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/team%2Fdemo/components/v1", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.ComponentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	binary, err := resp.DecodeBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, binary)
	assert.JSONEq(t, `{"name":"demo"}`, string(resp.Config))
}

func TestHandler_Update_MetadataOnly(t *testing.T) {
	svc, router := newTestHandler(t, Config{})

	svc.EXPECT().Update(mock.Anything, mock.MatchedBy(func(c *domain.Component) bool {
		return c.Name == "demo" && c.Reference == "v1" && c.Binary == nil && c.Metadata != nil
	})).Return(&domain.PublishResult{Repository: "demo", Reference: "v1"}, nil)

	body, contentType := multipartBody(t, part{filename: "component.json", content: testMetadata})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/demo/components/v1", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandler_Delete(t *testing.T) {
	svc, router := newTestHandler(t, Config{})

	svc.EXPECT().Delete(mock.Anything, "demo", "v1").Return(nil).Once()
	svc.EXPECT().Delete(mock.Anything, "demo", "v1").
		Return(&domain.RegistryError{Kind: domain.ErrNotFound, Method: "DELETE", StatusCode: 404}).Once()

	rec := serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/demo/components/v1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodDelete, "/api/v1/demo/components/v1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", decodeError(t, rec).Kind)
}

func TestHandler_Health(t *testing.T) {
	svc, router := newTestHandler(t, Config{})

	svc.EXPECT().Health(mock.Anything).Return(nil).Once()
	svc.EXPECT().Health(mock.Anything).Return(&domain.RegistryError{Kind: domain.ErrRegistryUnreachable}).Once()

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unreachable")
}

func TestHandler_UnknownRoute(t *testing.T) {
	_, router := newTestHandler(t, Config{})

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/v2/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		upstream bool
	}{
		{name: "missing input", err: domain.ErrMissingInput, status: http.StatusBadRequest},
		{name: "parse", err: domain.ErrManifestParse, status: http.StatusBadRequest},
		{name: "invalid name", err: domain.ErrInvalidName, status: http.StatusBadRequest},
		{name: "invalid upload", err: domain.ErrInvalidUpload, status: http.StatusBadRequest},
		{name: "not found", err: &domain.RegistryError{Kind: domain.ErrNotFound}, status: http.StatusNotFound},
		{name: "integrity", err: fmt.Errorf("config: %w", domain.ErrIntegrityViolation), status: http.StatusBadGateway, upstream: true},
		{name: "upload rejected", err: &domain.RegistryError{Kind: domain.ErrUploadRejected}, status: http.StatusBadGateway, upstream: true},
		{name: "delete rejected", err: &domain.RegistryError{Kind: domain.ErrDeleteRejected}, status: http.StatusBadGateway, upstream: true},
		{name: "rejected", err: &domain.RegistryError{Kind: domain.ErrRegistryRejected}, status: http.StatusBadGateway, upstream: true},
		{name: "unreachable", err: &domain.RegistryError{Kind: domain.ErrRegistryUnreachable}, status: http.StatusServiceUnavailable, upstream: true},
		{name: "transport", err: &domain.RegistryError{Kind: domain.ErrTransport}, status: http.StatusServiceUnavailable, upstream: true},
		{
			name:     "deadline inside unreachable",
			err:      &domain.RegistryError{Kind: domain.ErrRegistryUnreachable, Err: context.DeadlineExceeded},
			status:   http.StatusGatewayTimeout,
			upstream: true,
		},
		{name: "internal", err: fmt.Errorf("boom"), status: http.StatusInternalServerError},
		{name: "rejected name inside registry error", err: &domain.RegistryError{Kind: domain.ErrInvalidName}, status: http.StatusBadRequest},
		{name: "canceled", err: context.Canceled, status: http.StatusRequestTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.upstream, errorBody(tt.err, status).Upstream)
		})
	}
}

func TestErrorBody_HidesInternalDetail(t *testing.T) {
	body := errorBody(fmt.Errorf("open /secret/path: permission denied"), http.StatusInternalServerError)
	assert.Equal(t, "internal server error", body.Error)
	assert.Equal(t, "Internal", body.Kind)
}
