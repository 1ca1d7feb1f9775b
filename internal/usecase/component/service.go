// Package component implements the component publish, fetch, update and
// delete workflows on top of an OCI registry.
package component

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"golang.org/x/mod/semver"

	"github.com/bnema/ocicomp/internal/boundaries/in"
	"github.com/bnema/ocicomp/internal/boundaries/out"
	"github.com/bnema/ocicomp/internal/domain"
	"github.com/bnema/ocicomp/pkg/contentdigest"
	"github.com/bnema/ocicomp/pkg/manifest"
	"github.com/bnema/ocicomp/pkg/validation"
)

// ConfigMode selects what is stored as the manifest config blob.
type ConfigMode string

const (
	// ConfigModeMetadata stores the metadata document itself.
	ConfigModeMetadata ConfigMode = "metadata"
	// ConfigModeEmpty stores the empty JSON object.
	ConfigModeEmpty ConfigMode = "empty"
)

const (
	DefaultLayerMediaType  = "application/wasm"
	DefaultConfigMediaType = "application/vnd.ocicomp.config.v1+json"
)

// Config is the immutable orchestrator configuration.
type Config struct {
	LayerMediaType   string
	ConfigMediaType  string
	ConfigMode       ConfigMode
	StrictSemver     bool
	OperationTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.LayerMediaType == "" {
		c.LayerMediaType = DefaultLayerMediaType
	}
	if c.ConfigMediaType == "" {
		c.ConfigMediaType = DefaultConfigMediaType
	}
	if c.ConfigMode == "" {
		c.ConfigMode = ConfigModeMetadata
	}
	return c
}

var _ in.ComponentService = (*Service)(nil)

// Service implements in.ComponentService.
type Service struct {
	registry out.RegistryClient
	stager   out.Stager
	recorder out.OperationRecorder
	cfg      Config
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock sets the clock used for the created annotation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRecorder records the outcome of every operation.
func WithRecorder(r out.OperationRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService creates the component service.
func NewService(registry out.RegistryClient, stager out.Stager, cfg Config, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		stager:   stager,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push publishes a new component. Repository and reference default to the
// metadata name and tag.
func (s *Service) Push(ctx context.Context, component *domain.Component) (result *domain.PublishResult, err error) {
	defer s.record(ctx, "push", time.Now(), &err)

	if component == nil || component.Metadata == nil {
		return nil, fmt.Errorf("%w: metadata document is required", domain.ErrMissingInput)
	}
	if !component.HasBinary() {
		return nil, fmt.Errorf("%w: binary payload is required", domain.ErrMissingInput)
	}

	repository, reference := target(component)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "PushComponent",
		"repository":          repository,
		"reference":           reference,
	})

	return s.publish(ctx, repository, reference, component.Metadata, component.Binary, nil)
}

// Update republishes a component. When no binary is supplied the layer of
// the current manifest is kept.
func (s *Service) Update(ctx context.Context, component *domain.Component) (result *domain.PublishResult, err error) {
	defer s.record(ctx, "update", time.Now(), &err)

	if component == nil || component.Metadata == nil {
		return nil, fmt.Errorf("%w: metadata document is required", domain.ErrMissingInput)
	}

	repository, reference := target(component)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "UpdateComponent",
		"repository":          repository,
		"reference":           reference,
	})
	log := zerowrap.FromCtx(ctx)

	if component.HasBinary() {
		return s.publish(ctx, repository, reference, component.Metadata, component.Binary, nil)
	}

	if err := s.validateTarget(repository, reference); err != nil {
		return nil, err
	}

	current, err := s.registry.FetchManifest(ctx, repository, reference)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch current manifest")
		return nil, fmt.Errorf("failed to fetch current manifest: %w", err)
	}
	if len(current.Layers) == 0 {
		return nil, fmt.Errorf("%w: no binary supplied and %s:%s has no layer to keep", domain.ErrMissingInput, repository, reference)
	}

	layer := current.Layers[0]
	log.Debug().Str("layer_digest", layer.Digest.String()).Msg("keeping current layer")

	return s.publish(ctx, repository, reference, component.Metadata, nil, &layer)
}

// publish is the workflow shared by Push and Update. Exactly one of binary
// and keepLayer is set.
func (s *Service) publish(
	ctx context.Context,
	repository, reference string,
	meta *domain.ComponentMetadata,
	binary []byte,
	keepLayer *ocispec.Descriptor,
) (*domain.PublishResult, error) {
	log := zerowrap.FromCtx(ctx)

	if err := s.validateTarget(repository, reference); err != nil {
		return nil, err
	}

	layer := keepLayer
	if binary != nil {
		desc, err := s.uploadBinary(ctx, repository, binary)
		if err != nil {
			return nil, err
		}
		layer = &desc
	}

	configBlob, err := s.configBlob(meta)
	if err != nil {
		return nil, err
	}
	config := contentdigest.Descriptor(s.configMediaType(), configBlob)
	if err := s.uploadBlob(ctx, repository, bytes.NewReader(configBlob), config); err != nil {
		log.Error().Err(err).Msg("failed to upload config blob")
		return nil, fmt.Errorf("failed to upload config blob: %w", err)
	}

	m := manifest.Build(config, layer, manifest.Annotations(meta, s.now()))

	manifestDigest, err := s.registry.PutManifest(ctx, repository, reference, m)
	if err != nil {
		log.Error().Err(err).Msg("failed to put manifest")
		return nil, fmt.Errorf("failed to put manifest: %w", err)
	}

	log.Info().
		Str("manifest_digest", manifestDigest).
		Bool("layer_kept", keepLayer != nil).
		Msg("component published")

	return &domain.PublishResult{
		Repository:     repository,
		Reference:      reference,
		ManifestDigest: manifestDigest,
		Config:         config,
		Layer:          layer,
	}, nil
}

// uploadBinary stages the binary and uploads it as the layer blob. The
// staged copy is released before returning.
func (s *Service) uploadBinary(ctx context.Context, repository string, binary []byte) (ocispec.Descriptor, error) {
	log := zerowrap.FromCtx(ctx)

	staged, err := s.stager.Stage(ctx, bytes.NewReader(binary))
	if err != nil {
		log.Error().Err(err).Msg("failed to stage binary")
		return ocispec.Descriptor{}, fmt.Errorf("failed to stage binary: %w", err)
	}
	defer func() {
		if err := staged.Release(); err != nil {
			log.Warn().Err(err).Msg("failed to release staged binary")
		}
	}()

	desc := ocispec.Descriptor{
		MediaType: s.cfg.LayerMediaType,
		Digest:    staged.Digest(),
		Size:      staged.Size(),
	}

	rc, err := staged.Open()
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("failed to open staged binary: %w", err)
	}
	defer rc.Close()

	if err := s.uploadBlob(ctx, repository, rc, desc); err != nil {
		log.Error().Err(err).Msg("failed to upload layer blob")
		return ocispec.Descriptor{}, fmt.Errorf("failed to upload layer blob: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordPushBytes(ctx, desc.Size)
	}

	return desc, nil
}

// uploadBlob runs one upload session for a single blob.
func (s *Service) uploadBlob(ctx context.Context, repository string, content io.Reader, desc ocispec.Descriptor) error {
	location, err := s.registry.InitiateUpload(ctx, repository)
	if err != nil {
		return err
	}
	return s.registry.UploadBlob(ctx, location, content, desc.Size, desc.Digest)
}

func (s *Service) configBlob(meta *domain.ComponentMetadata) ([]byte, error) {
	if s.cfg.ConfigMode == ConfigModeEmpty {
		return manifest.EmptyConfig, nil
	}
	if len(meta.Raw) > 0 {
		return meta.Raw, nil
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata document: %w", err)
	}
	return data, nil
}

func (s *Service) configMediaType() string {
	if s.cfg.ConfigMode == ConfigModeEmpty {
		return ocispec.MediaTypeImageConfig
	}
	return s.cfg.ConfigMediaType
}

// Fetch resolves a component. The binary is returned only when the first
// layer has the configured media type. Every returned blob is verified.
func (s *Service) Fetch(ctx context.Context, repository, reference string) (result *domain.FetchedComponent, err error) {
	defer s.record(ctx, "fetch", time.Now(), &err)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "FetchComponent",
		"repository":          repository,
		"reference":           reference,
	})
	log := zerowrap.FromCtx(ctx)

	if err := validateNames(repository, reference); err != nil {
		return nil, err
	}

	m, err := s.registry.FetchManifest(ctx, repository, reference)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch manifest")
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	result = &domain.FetchedComponent{
		Repository:  repository,
		Reference:   reference,
		Manifest:    m,
		Annotations: m.Annotations,
	}

	if layer, ok := manifest.FirstLayer(m, s.cfg.LayerMediaType); ok {
		binary, err := s.fetchVerified(ctx, repository, layer)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			log.Warn().Str("digest", layer.Digest.String()).Msg("layer blob missing, binary omitted")
		case err != nil:
			return nil, fmt.Errorf("failed to fetch layer blob: %w", err)
		default:
			result.Binary = binary
		}
	}

	config, err := s.fetchVerified(ctx, repository, m.Config)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		log.Warn().Str("digest", m.Config.Digest.String()).Msg("config blob missing, config omitted")
	case err != nil:
		return nil, fmt.Errorf("failed to fetch config blob: %w", err)
	case !json.Valid(config):
		log.Warn().Str("digest", m.Config.Digest.String()).Msg("config blob is not JSON, config omitted")
	default:
		result.Config = config
	}

	log.Info().
		Bool("has_binary", result.Binary != nil).
		Bool("has_config", result.Config != nil).
		Msg("component fetched")

	return result, nil
}

// fetchVerified downloads a blob and checks it against desc.
func (s *Service) fetchVerified(ctx context.Context, repository string, desc ocispec.Descriptor) ([]byte, error) {
	data, err := s.registry.FetchBlob(ctx, repository, desc.Digest)
	if err != nil {
		return nil, err
	}
	if err := contentdigest.VerifyDescriptor(data, desc); err != nil {
		log := zerowrap.FromCtx(ctx)
		log.Error().
			Err(err).
			Str("digest", desc.Digest.String()).
			Msg("blob failed verification")
		return nil, err
	}
	return data, nil
}

// Delete removes the manifest stored under reference.
func (s *Service) Delete(ctx context.Context, repository, reference string) (err error) {
	defer s.record(ctx, "delete", time.Now(), &err)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "DeleteComponent",
		"repository":          repository,
		"reference":           reference,
	})
	log := zerowrap.FromCtx(ctx)

	if err := validateNames(repository, reference); err != nil {
		return err
	}

	if err := s.registry.DeleteManifest(ctx, repository, reference); err != nil {
		log.Warn().Err(err).Msg("failed to delete manifest")
		return fmt.Errorf("failed to delete manifest: %w", err)
	}

	log.Info().Msg("component deleted")
	return nil
}

// Health reports whether the registry answers.
func (s *Service) Health(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.registry.Ping(ctx)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.OperationTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.OperationTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Service) record(ctx context.Context, operation string, start time.Time, err *error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordOperation(ctx, operation, time.Since(start), *err)
}

// validateTarget checks a publish destination. Digest references are
// refused because the manifest digest is only known after it is built.
func (s *Service) validateTarget(repository, reference string) error {
	if err := validateNames(repository, reference); err != nil {
		return err
	}
	if validation.IsDigest(reference) {
		return fmt.Errorf("%w: cannot publish to digest reference %q", domain.ErrInvalidName, reference)
	}
	if s.cfg.StrictSemver && !isSemver(reference) {
		return fmt.Errorf("%w: reference %q is not a semantic version", domain.ErrInvalidName, reference)
	}
	return nil
}

// isSemver accepts versions with or without the leading "v".
func isSemver(reference string) bool {
	if !strings.HasPrefix(reference, "v") {
		reference = "v" + reference
	}
	return semver.IsValid(reference)
}

func validateNames(repository, reference string) error {
	if err := validation.ValidateRepositoryName(repository); err != nil {
		return err
	}
	return validation.ValidateReference(reference)
}

// target returns the repository and reference of a publish request.
func target(c *domain.Component) (string, string) {
	repository, reference := c.Name, c.Reference
	if repository == "" {
		repository = c.Metadata.Name
	}
	if reference == "" {
		reference = c.Metadata.Tag
	}
	return repository, reference
}
