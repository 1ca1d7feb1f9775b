package app

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/spf13/afero"

	"github.com/bnema/ocicomp/internal/adapters/in/http/component"
	"github.com/bnema/ocicomp/internal/adapters/in/http/middleware"
	"github.com/bnema/ocicomp/internal/adapters/out/filesystem"
	"github.com/bnema/ocicomp/internal/adapters/out/memory"
	"github.com/bnema/ocicomp/internal/adapters/out/ratelimit"
	"github.com/bnema/ocicomp/internal/adapters/out/registry"
	"github.com/bnema/ocicomp/internal/adapters/out/telemetry"
	"github.com/bnema/ocicomp/internal/boundaries/in"
	"github.com/bnema/ocicomp/internal/boundaries/out"
	componentusecase "github.com/bnema/ocicomp/internal/usecase/component"
)

// rateLimitSweepInterval is how often idle rate limit buckets are dropped.
const rateLimitSweepInterval = time.Minute

// services holds the wired application graph.
type services struct {
	componentSvc in.ComponentService
	metrics      *telemetry.Metrics
	globalLimit  *ratelimit.MemoryStore
	perIPLimit   *ratelimit.MemoryStore
	trusted      []netip.Prefix
}

// createServices builds every adapter and the component service from cfg.
func createServices(cfg Config, log zerowrap.Logger) (*services, error) {
	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	registryClient, err := registry.NewClient(registry.Config{
		URL:                   cfg.Registry.URL,
		Username:              cfg.Registry.Username,
		Password:              cfg.Registry.Password,
		UserAgent:             cfg.Registry.UserAgent,
		DialTimeout:           cfg.Registry.DialTimeout,
		ResponseHeaderTimeout: cfg.Registry.ResponseHeaderTimeout,
	}, registry.WithMetrics(metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create registry client: %w", err)
	}

	stager, err := createStager(cfg, log)
	if err != nil {
		return nil, err
	}

	svc := &services{
		componentSvc: componentusecase.NewService(
			registryClient,
			stager,
			cfg.componentConfig(),
			componentusecase.WithRecorder(metrics),
		),
		metrics: metrics,
	}

	if cfg.API.RateLimit.Enabled {
		trusted, err := middleware.ParseTrustedProxies(cfg.API.RateLimit.TrustedProxies)
		if err != nil {
			return nil, fmt.Errorf("invalid api.rate_limit.trusted_proxies: %w", err)
		}
		svc.trusted = trusted
		if cfg.API.RateLimit.GlobalRPS > 0 {
			svc.globalLimit = ratelimit.NewMemoryStore(cfg.API.RateLimit.GlobalRPS, cfg.API.RateLimit.Burst, log)
		}
		if cfg.API.RateLimit.PerIPRPS > 0 {
			svc.perIPLimit = ratelimit.NewMemoryStore(cfg.API.RateLimit.PerIPRPS, cfg.API.RateLimit.Burst, log)
		}
	}

	log.Debug().
		Str(zerowrap.FieldLayer, "app").
		Str("registry", cfg.Registry.URL).
		Str("staging", cfg.Staging.Mode).
		Bool("rate_limit", cfg.API.RateLimit.Enabled).
		Msg("services created")

	return svc, nil
}

func createStager(cfg Config, log zerowrap.Logger) (out.Stager, error) {
	if cfg.Staging.Mode == StagingModeMemory {
		return memory.NewStager(cfg.uploadLimit()), nil
	}

	stager, err := filesystem.NewStager(afero.NewOsFs(), cfg.Staging.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return stager, nil
}

// startSweepers evicts idle rate limit buckets until ctx is done.
func (s *services) startSweepers(ctx context.Context) {
	for _, store := range []*ratelimit.MemoryStore{s.globalLimit, s.perIPLimit} {
		if store != nil {
			go store.Run(ctx, rateLimitSweepInterval)
		}
	}
}

// limiter converts a possibly nil store to the interface without the
// typed-nil trap.
func limiter(store *ratelimit.MemoryStore) out.RateLimiter {
	if store == nil {
		return nil
	}
	return store
}

// newHTTPHandler builds the API handler with its middleware chain.
func newHTTPHandler(cfg Config, svc *services, log zerowrap.Logger) http.Handler {
	h := component.NewHandler(svc.componentSvc, component.Config{
		BinaryExtension: cfg.Component.BinaryExtension,
		MaxUploadSize:   cfg.uploadLimit(),
	}, log)

	return middleware.Chain(
		middleware.PanicRecovery(log),
		middleware.RequestLogger(log, svc.trusted),
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter(svc.globalLimit), limiter(svc.perIPLimit), svc.trusted, log),
	)(component.NewRouter(h))
}
