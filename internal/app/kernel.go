package app

import (
	"context"
	"fmt"

	"github.com/bnema/zerowrap"

	"github.com/bnema/ocicomp/internal/boundaries/in"
)

// Kernel provides in-process service access for local CLI execution.
//
// It does not start HTTP servers or register signal handlers.
type Kernel struct {
	cfg          Config
	log          zerowrap.Logger
	componentSvc in.ComponentService
	cleanup      func()
}

// KernelOption adjusts the loaded configuration before services are built.
type KernelOption func(*Config)

// WithRegistryURL overrides registry.url.
func WithRegistryURL(url string) KernelOption {
	return func(c *Config) {
		if url != "" {
			c.Registry.URL = url
		}
	}
}

// WithCredentials overrides the registry credentials.
func WithCredentials(username, password string) KernelOption {
	return func(c *Config) {
		if username != "" {
			c.Registry.Username = username
		}
		if password != "" {
			c.Registry.Password = password
		}
	}
}

// WithLogLevel overrides logging.level.
func WithLogLevel(level string) KernelOption {
	return func(c *Config) {
		if level != "" {
			c.Logging.Level = level
		}
	}
}

// NewKernel initializes local services without starting server listeners.
func NewKernel(configPath string, opts ...KernelOption) (*Kernel, error) {
	_, cfg, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, cleanup, err := initLogger(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := createServices(cfg, log)
	if err != nil {
		cleanup()
		return nil, err
	}

	return &Kernel{
		cfg:          cfg,
		log:          log,
		componentSvc: svc.componentSvc,
		cleanup:      cleanup,
	}, nil
}

// Context returns ctx carrying the kernel logger.
func (k *Kernel) Context(ctx context.Context) context.Context {
	return zerowrap.WithCtx(ctx, k.log)
}

// Components returns the component service.
func (k *Kernel) Components() in.ComponentService {
	return k.componentSvc
}

// Config returns the loaded configuration.
func (k *Kernel) Config() Config {
	return k.cfg
}

// Close releases kernel resources.
func (k *Kernel) Close() error {
	if k.cleanup != nil {
		k.cleanup()
	}
	return nil
}
