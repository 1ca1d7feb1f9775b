// Package registrytest provides an in-memory OCI distribution registry for tests.
//
// It implements the subset of the distribution API used by ocicomp: monolithic
// blob uploads, blob and manifest reads, manifest writes and deletes, and the
// /v2/ ping. Every request is recorded so tests can assert on the exact wire
// sequence.
package registrytest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/registry/remote/errcode"
)

// Route identifies one endpoint of the fake registry.
type Route string

const (
	RoutePing           Route = "ping"
	RouteInitiateUpload Route = "initiate-upload"
	RouteUploadBlob     Route = "upload-blob"
	RouteGetBlob        Route = "get-blob"
	RouteGetManifest    Route = "get-manifest"
	RoutePutManifest    Route = "put-manifest"
	RouteDeleteManifest Route = "delete-manifest"
)

// Request is a recorded request.
type Request struct {
	Route         Route
	Method        string
	Path          string
	Query         url.Values
	ContentType   string
	ContentLength int64
	Body          []byte
}

// Registry is an in-memory registry served over httptest.
type Registry struct {
	server *httptest.Server

	username string
	password string

	absoluteLocation bool
	sessionState     bool

	mu        sync.Mutex
	blobs     map[string][]byte
	manifests map[string][]byte
	uploads   map[string]string
	requests  []Request
	failures  map[Route]int
}

// Option configures a Registry.
type Option func(*Registry)

// WithCredentials requires basic auth with the given credentials.
func WithCredentials(username, password string) Option {
	return func(r *Registry) {
		r.username = username
		r.password = password
	}
}

// WithAbsoluteLocation makes upload sessions return absolute Location URLs.
// Relative locations are returned by default.
func WithAbsoluteLocation() Option {
	return func(r *Registry) {
		r.absoluteLocation = true
	}
}

// WithSessionState appends a _state query parameter to upload locations and
// requires it on the completing PUT.
func WithSessionState() Option {
	return func(r *Registry) {
		r.sessionState = true
	}
}

// New starts a registry that is closed when the test ends.
func New(t testing.TB, opts ...Option) *Registry {
	t.Helper()

	r := &Registry{
		blobs:     make(map[string][]byte),
		manifests: make(map[string][]byte),
		uploads:   make(map[string]string),
		failures:  make(map[Route]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.server = httptest.NewServer(http.HandlerFunc(r.serveHTTP))
	t.Cleanup(r.server.Close)

	return r
}

// URL returns the registry base URL.
func (r *Registry) URL() string {
	return r.server.URL
}

// Close stops the server before the end of the test.
func (r *Registry) Close() {
	r.server.Close()
}

// Requests returns a copy of every request received so far.
func (r *Registry) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

// RequestsFor returns the recorded requests matching route.
func (r *Registry) RequestsFor(route Route) []Request {
	var out []Request
	for _, req := range r.Requests() {
		if req.Route == route {
			out = append(out, req)
		}
	}
	return out
}

// ResetRequests clears the request log.
func (r *Registry) ResetRequests() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = nil
}

// Fail makes every request to route answer with status until Recover is called.
func (r *Registry) Fail(route Route, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[route] = status
}

// Recover clears a failure set by Fail.
func (r *Registry) Recover(route Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.failures, route)
}

// Blob returns a stored blob.
func (r *Registry) Blob(repository string, dgst digest.Digest) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blobs[blobKey(repository, dgst)]
	return b, ok
}

// SetBlob stores content under dgst without checking that they match, which
// lets tests simulate corrupted storage.
func (r *Registry) SetBlob(repository string, dgst digest.Digest, content []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[blobKey(repository, dgst)] = content
}

// Manifest returns the raw manifest stored for reference.
func (r *Registry) Manifest(repository, reference string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.manifests[manifestKey(repository, reference)]
	return m, ok
}

// SetManifest stores a raw manifest under reference and under its digest.
func (r *Registry) SetManifest(repository, reference string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifests[manifestKey(repository, reference)] = data
	r.manifests[manifestKey(repository, digest.FromBytes(data).String())] = data
}

func blobKey(repository string, dgst digest.Digest) string {
	return repository + "@" + dgst.String()
}

func manifestKey(repository, reference string) string {
	return repository + ":" + reference
}

func (r *Registry) serveHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)

	route, name, rest := classify(req)

	r.mu.Lock()
	r.requests = append(r.requests, Request{
		Route:         route,
		Method:        req.Method,
		Path:          req.URL.Path,
		Query:         req.URL.Query(),
		ContentType:   req.Header.Get("Content-Type"),
		ContentLength: req.ContentLength,
		Body:          body,
	})
	status, failing := r.failures[route]
	r.mu.Unlock()

	if r.username != "" {
		user, pass, ok := req.BasicAuth()
		if !ok || user != r.username || pass != r.password {
			w.Header().Set("WWW-Authenticate", `Basic realm="registrytest"`)
			writeError(w, http.StatusUnauthorized, errcode.ErrorCodeUnauthorized, "authentication required")
			return
		}
	}

	if failing {
		writeError(w, status, "UNAVAILABLE", "injected failure")
		return
	}

	switch route {
	case RoutePing:
		w.WriteHeader(http.StatusOK)
	case RouteInitiateUpload:
		r.initiateUpload(w, name)
	case RouteUploadBlob:
		r.completeUpload(w, req, name, rest, body)
	case RouteGetBlob:
		r.getBlob(w, req, name, rest)
	case RouteGetManifest:
		r.getManifest(w, req, name, rest)
	case RoutePutManifest:
		r.putManifest(w, req, name, rest, body)
	case RouteDeleteManifest:
		r.deleteManifest(w, name, rest)
	default:
		writeError(w, http.StatusNotFound, "UNSUPPORTED", "unsupported route")
	}
}

func classify(req *http.Request) (Route, string, string) {
	p := strings.TrimPrefix(req.URL.Path, "/v2/")
	if req.URL.Path == "/v2/" || req.URL.Path == "/v2" {
		return RoutePing, "", ""
	}

	if i := strings.LastIndex(p, "/blobs/uploads/"); i > 0 {
		name, id := p[:i], p[i+len("/blobs/uploads/"):]
		if id == "" && req.Method == http.MethodPost {
			return RouteInitiateUpload, name, ""
		}
		if req.Method == http.MethodPut {
			return RouteUploadBlob, name, id
		}
	}
	if i := strings.LastIndex(p, "/blobs/"); i > 0 && (req.Method == http.MethodGet || req.Method == http.MethodHead) {
		return RouteGetBlob, p[:i], p[i+len("/blobs/"):]
	}
	if i := strings.LastIndex(p, "/manifests/"); i > 0 {
		name, ref := p[:i], p[i+len("/manifests/"):]
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			return RouteGetManifest, name, ref
		case http.MethodPut:
			return RoutePutManifest, name, ref
		case http.MethodDelete:
			return RouteDeleteManifest, name, ref
		}
	}
	return "", "", ""
}

func (r *Registry) initiateUpload(w http.ResponseWriter, name string) {
	id := uuid.NewString()

	r.mu.Lock()
	r.uploads[id] = name
	r.mu.Unlock()

	location := "/v2/" + name + "/blobs/uploads/" + id
	if r.sessionState {
		location += "?_state=" + id
	}
	if r.absoluteLocation {
		location = r.server.URL + location
	}

	w.Header().Set("Location", location)
	w.Header().Set("Docker-Upload-UUID", id)
	w.Header().Set("Range", "0-0")
	w.WriteHeader(http.StatusAccepted)
}

func (r *Registry) completeUpload(w http.ResponseWriter, req *http.Request, name, id string, body []byte) {
	r.mu.Lock()
	owner, ok := r.uploads[id]
	r.mu.Unlock()
	if !ok || owner != name {
		writeError(w, http.StatusNotFound, errcode.ErrorCodeBlobUploadUnknown, "blob upload unknown to registry")
		return
	}

	if r.sessionState && req.URL.Query().Get("_state") != id {
		writeError(w, http.StatusBadRequest, errcode.ErrorCodeBlobUploadInvalid, "session state missing")
		return
	}

	want, err := digest.Parse(req.URL.Query().Get("digest"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errcode.ErrorCodeDigestInvalid, "provided digest did not match uploaded content")
		return
	}
	if want.Algorithm().FromBytes(body) != want {
		writeError(w, http.StatusBadRequest, errcode.ErrorCodeDigestInvalid, "provided digest did not match uploaded content")
		return
	}
	if req.ContentLength >= 0 && req.ContentLength != int64(len(body)) {
		writeError(w, http.StatusBadRequest, errcode.ErrorCodeSizeInvalid, "provided length did not match content length")
		return
	}

	r.mu.Lock()
	delete(r.uploads, id)
	r.blobs[blobKey(name, want)] = body
	r.mu.Unlock()

	w.Header().Set("Location", "/v2/"+name+"/blobs/"+want.String())
	w.Header().Set("Docker-Content-Digest", want.String())
	w.WriteHeader(http.StatusCreated)
}

func (r *Registry) getBlob(w http.ResponseWriter, req *http.Request, name, ref string) {
	dgst, err := digest.Parse(ref)
	if err != nil {
		writeError(w, http.StatusBadRequest, errcode.ErrorCodeDigestInvalid, "invalid digest")
		return
	}

	b, ok := r.Blob(name, dgst)
	if !ok {
		writeError(w, http.StatusNotFound, errcode.ErrorCodeBlobUnknown, "blob unknown to registry")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Docker-Content-Digest", dgst.String())
	w.WriteHeader(http.StatusOK)
	if req.Method != http.MethodHead {
		_, _ = w.Write(b)
	}
}

func (r *Registry) getManifest(w http.ResponseWriter, req *http.Request, name, ref string) {
	data, ok := r.Manifest(name, ref)
	if !ok {
		writeError(w, http.StatusNotFound, errcode.ErrorCodeManifestUnknown, "manifest unknown")
		return
	}

	w.Header().Set("Content-Type", ocispec.MediaTypeImageManifest)
	w.Header().Set("Docker-Content-Digest", digest.FromBytes(data).String())
	w.WriteHeader(http.StatusOK)
	if req.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

func (r *Registry) putManifest(w http.ResponseWriter, req *http.Request, name, ref string, body []byte) {
	if req.Header.Get("Content-Type") != ocispec.MediaTypeImageManifest {
		writeError(w, http.StatusBadRequest, errcode.ErrorCodeManifestInvalid, "unsupported manifest media type")
		return
	}

	var m ocispec.Manifest
	if err := json.Unmarshal(body, &m); err != nil || m.SchemaVersion != 2 {
		writeError(w, http.StatusBadRequest, errcode.ErrorCodeManifestInvalid, "manifest invalid")
		return
	}

	refs := append([]ocispec.Descriptor{m.Config}, m.Layers...)
	for _, d := range refs {
		if _, ok := r.Blob(name, d.Digest); !ok {
			writeError(w, http.StatusBadRequest, errcode.ErrorCodeManifestBlobUnknown, "blob unknown to registry: "+d.Digest.String())
			return
		}
	}

	r.SetManifest(name, ref, body)

	dgst := digest.FromBytes(body)
	w.Header().Set("Location", "/v2/"+name+"/manifests/"+dgst.String())
	w.Header().Set("Docker-Content-Digest", dgst.String())
	w.WriteHeader(http.StatusCreated)
}

func (r *Registry) deleteManifest(w http.ResponseWriter, name, ref string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := manifestKey(name, ref)
	if _, ok := r.manifests[key]; !ok {
		writeError(w, http.StatusNotFound, errcode.ErrorCodeManifestUnknown, "manifest unknown")
		return
	}
	delete(r.manifests, key)

	w.WriteHeader(http.StatusAccepted)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Errors errcode.Errors `json:"errors"`
	}{
		Errors: errcode.Errors{{Code: code, Message: message}},
	})
}
