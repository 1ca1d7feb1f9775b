package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bnema/zerowrap"

	"github.com/bnema/ocicomp/internal/adapters/out/telemetry"
)

// Run loads the configuration and serves the component API until ctx is
// cancelled or SIGINT/SIGTERM is received.
func Run(ctx context.Context, configPath, version string) error {
	v, cfg, err := initConfig(configPath)
	if err != nil {
		return err
	}

	log, cleanup, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := applyLogLevel(cfg.Logging.Level); err != nil {
		return log.WrapErr(err, "invalid logging.level")
	}
	watchLogLevel(v, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = zerowrap.WithCtx(ctx, log)

	shutdownTelemetry, err := telemetry.NewProvider(ctx, cfg.Telemetry, "ocicomp", version)
	if err != nil {
		return log.WrapErr(err, "failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown error")
		}
	}()

	svc, err := createServices(cfg, log)
	if err != nil {
		return log.WrapErr(err, "failed to create services")
	}
	svc.startSweepers(ctx)

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Server.Port))
	if err != nil {
		return log.WrapErr(err, "failed to listen")
	}

	return serve(ctx, listener, newHTTPHandler(cfg, svc, log), cfg, log)
}

// serve runs the HTTP server on listener and shuts it down gracefully once
// ctx is done.
func serve(ctx context.Context, listener net.Listener, handler http.Handler, cfg Config, log zerowrap.Logger) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return zerowrap.WithCtx(context.Background(), log) },
	}

	log.Info().
		Str(zerowrap.FieldLayer, "app").
		Str(zerowrap.FieldComponent, "server").
		Str("addr", listener.Addr().String()).
		Str("registry", cfg.Registry.URL).
		Msg("component API listening")

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().
			Str(zerowrap.FieldLayer, "app").
			Str(zerowrap.FieldComponent, "server").
			Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().
		Str(zerowrap.FieldLayer, "app").
		Str(zerowrap.FieldComponent, "server").
		Msg("shutdown complete")
	return nil
}
