// Package registry implements the OCI distribution API client used to move
// component blobs and manifests in and out of a remote registry.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"oras.land/oras-go/v2/registry/remote/errcode"

	"github.com/bnema/ocicomp/internal/adapters/out/telemetry"
	"github.com/bnema/ocicomp/internal/domain"
	"github.com/bnema/ocicomp/pkg/manifest"
)

const (
	defaultUserAgent = "ocicomp"

	// maxErrorBytes bounds how much of an error body is decoded.
	maxErrorBytes = 32 * 1024

	// maxManifestBytes matches the 4MiB limit common registries apply to manifests.
	maxManifestBytes = 4 * 1024 * 1024
)

// Config holds the registry connection settings.
type Config struct {
	URL                   string
	Username              string
	Password              string
	UserAgent             string
	DialTimeout           time.Duration
	ResponseHeaderTimeout time.Duration
}

// Client talks to one registry. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	username   string
	password   string
	httpClient *http.Client
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithMetrics records one counter increment per registry request.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a registry client for cfg.URL.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid registry url %q: %w", cfg.URL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid registry url %q: scheme must be http or https", cfg.URL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid registry url %q: missing host", cfg.URL)
	}

	c := &Client{
		baseURL:  base,
		username: cfg.Username,
		password: cfg.Password,
		tracer:   otel.Tracer("ocicomp/registry"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(cfg)
	}

	return c, nil
}

// userAgentTransport sets the User-Agent header on every request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// NewHTTPClient builds the shared HTTP client. It has no overall timeout:
// callers bound each operation with their context.
func NewHTTPClient(cfg Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.DialTimeout > 0 {
		transport.DialContext = (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}
	if cfg.ResponseHeaderTimeout > 0 {
		transport.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &http.Client{
		Transport: &userAgentTransport{base: transport, userAgent: userAgent},
	}
}

// endpoint returns the absolute URL of a registry API path. A path on the
// base URL is kept as a prefix.
func (c *Client) endpoint(path string) *url.URL {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return &u
}

// resolveLocation turns an upload Location into an absolute URL. Absolute
// paths get the base URL prefix unless they already carry it; relative
// paths resolve against the request that opened the session.
func (c *Client) resolveLocation(request, location *url.URL) *url.URL {
	if location.IsAbs() {
		return location
	}
	if !strings.HasPrefix(location.Path, "/") {
		return request.ResolveReference(location)
	}

	prefix := c.baseURL.Path
	if prefix != "" && !strings.HasPrefix(location.Path, prefix+"/") {
		joined := *location
		joined.Path = prefix + location.Path
		joined.RawPath = ""
		location = &joined
	}
	return c.baseURL.ResolveReference(location)
}

// do sends one authenticated request. A negative size leaves the content
// length unset.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body io.Reader, size int64, header http.Header) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, "registry "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", u.Redacted()),
		))
	defer span.End()

	if body == nil || size == 0 {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if size >= 0 {
		req.ContentLength = size
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.metrics.RecordRegistryRequest(ctx, method, 0)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
	}
	c.metrics.RecordRegistryRequest(ctx, method, resp.StatusCode)

	return resp, nil
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBytes))
	_ = resp.Body.Close()
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// transportError wraps a failure that happened before any response arrived.
func transportError(kind error, method string, u *url.URL, err error) error {
	return &domain.RegistryError{Kind: kind, Method: method, URL: u.Redacted(), Err: err}
}

// responseError decodes the distribution error body of resp.
func responseError(kind error, resp *http.Response) error {
	regErr := &domain.RegistryError{
		Kind:       kind,
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.Redacted(),
		StatusCode: resp.StatusCode,
	}

	var body struct {
		Errors errcode.Errors `json:"errors"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBytes)).Decode(&body); err == nil && len(body.Errors) > 0 {
		regErr.Err = body.Errors
	}

	return regErr
}

// InitiateUpload opens an upload session and returns the absolute session URL.
func (c *Client) InitiateUpload(ctx context.Context, repository string) (*url.URL, error) {
	u := c.endpoint("/v2/" + repository + "/blobs/uploads/")

	resp, err := c.do(ctx, http.MethodPost, u, nil, 0, nil)
	if err != nil {
		return nil, transportError(domain.ErrRegistryUnreachable, http.MethodPost, u, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, responseError(domain.ErrRegistryRejected, resp)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return nil, &domain.RegistryError{
			Kind:       domain.ErrRegistryRejected,
			Method:     http.MethodPost,
			URL:        u.Redacted(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("upload session has no Location header"),
		}
	}

	parsed, err := url.Parse(location)
	if err != nil {
		return nil, &domain.RegistryError{
			Kind:       domain.ErrRegistryRejected,
			Method:     http.MethodPost,
			URL:        u.Redacted(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("invalid upload location %q: %w", location, err),
		}
	}

	log := zerowrap.FromCtx(ctx)
	log.Debug().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "registry").
		Str("repository", repository).
		Msg("upload session opened")

	return c.resolveLocation(u, parsed), nil
}

// UploadBlob completes the session at location with the whole blob in one PUT.
// Query parameters already present on location are kept.
func (c *Client) UploadBlob(ctx context.Context, location *url.URL, content io.Reader, size int64, dgst digest.Digest) error {
	u := *location
	q := u.Query()
	q.Set("digest", dgst.String())
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("Content-Type", "application/octet-stream")

	resp, err := c.do(ctx, http.MethodPut, &u, content, size, header)
	if err != nil {
		return transportError(domain.ErrTransport, http.MethodPut, &u, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		return responseError(domain.ErrUploadRejected, resp)
	}

	return nil
}

// FetchBlob downloads a blob. The content is returned as received.
func (c *Client) FetchBlob(ctx context.Context, repository string, dgst digest.Digest) ([]byte, error) {
	u := c.endpoint("/v2/" + repository + "/blobs/" + dgst.String())

	resp, err := c.do(ctx, http.MethodGet, u, nil, 0, nil)
	if err != nil {
		return nil, transportError(domain.ErrRegistryUnreachable, http.MethodGet, u, err)
	}
	defer closeBody(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, responseError(domain.ErrNotFound, resp)
	case !isSuccess(resp.StatusCode):
		return nil, responseError(domain.ErrRegistryUnreachable, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(domain.ErrRegistryUnreachable, http.MethodGet, u, err)
	}

	return data, nil
}

// FetchManifest retrieves and decodes an image manifest.
func (c *Client) FetchManifest(ctx context.Context, repository, reference string) (ocispec.Manifest, error) {
	u := c.endpoint("/v2/" + repository + "/manifests/" + reference)

	header := http.Header{}
	header.Set("Accept", manifest.MediaType)

	resp, err := c.do(ctx, http.MethodGet, u, nil, 0, header)
	if err != nil {
		return ocispec.Manifest{}, transportError(domain.ErrRegistryUnreachable, http.MethodGet, u, err)
	}
	defer closeBody(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ocispec.Manifest{}, responseError(domain.ErrNotFound, resp)
	case !isSuccess(resp.StatusCode):
		return ocispec.Manifest{}, responseError(domain.ErrRegistryRejected, resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes+1))
	if err != nil {
		return ocispec.Manifest{}, transportError(domain.ErrRegistryUnreachable, http.MethodGet, u, err)
	}
	if len(data) > maxManifestBytes {
		return ocispec.Manifest{}, &domain.RegistryError{
			Kind:       domain.ErrRegistryRejected,
			Method:     http.MethodGet,
			URL:        u.Redacted(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("manifest exceeds %d bytes", maxManifestBytes),
		}
	}

	m, err := manifest.Parse(data)
	if err != nil {
		return ocispec.Manifest{}, &domain.RegistryError{
			Kind:       domain.ErrRegistryRejected,
			Method:     http.MethodGet,
			URL:        u.Redacted(),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return m, nil
}

// PutManifest submits m under reference and returns the manifest digest
// reported by the registry, or the locally computed one when absent.
func (c *Client) PutManifest(ctx context.Context, repository, reference string, m ocispec.Manifest) (string, error) {
	u := c.endpoint("/v2/" + repository + "/manifests/" + reference)

	data, localDigest, err := manifest.Marshal(m)
	if err != nil {
		return "", err
	}

	header := http.Header{}
	header.Set("Content-Type", manifest.MediaType)

	resp, err := c.do(ctx, http.MethodPut, u, bytes.NewReader(data), int64(len(data)), header)
	if err != nil {
		return "", transportError(domain.ErrTransport, http.MethodPut, u, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		return "", responseError(domain.ErrRegistryRejected, resp)
	}

	if d := resp.Header.Get("Docker-Content-Digest"); d != "" {
		return d, nil
	}
	return localDigest.String(), nil
}

// DeleteManifest removes the manifest stored under reference.
func (c *Client) DeleteManifest(ctx context.Context, repository, reference string) error {
	u := c.endpoint("/v2/" + repository + "/manifests/" + reference)

	resp, err := c.do(ctx, http.MethodDelete, u, nil, 0, nil)
	if err != nil {
		return transportError(domain.ErrTransport, http.MethodDelete, u, err)
	}
	defer closeBody(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return responseError(domain.ErrNotFound, resp)
	case !isSuccess(resp.StatusCode):
		return responseError(domain.ErrDeleteRejected, resp)
	}

	return nil
}

// Ping checks the API version endpoint. An authentication challenge still
// proves the registry is up.
func (c *Client) Ping(ctx context.Context) error {
	u := c.endpoint("/v2/")

	resp, err := c.do(ctx, http.MethodGet, u, nil, 0, nil)
	if err != nil {
		return transportError(domain.ErrRegistryUnreachable, http.MethodGet, u, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnauthorized {
		return responseError(domain.ErrRegistryUnreachable, resp)
	}

	return nil
}
