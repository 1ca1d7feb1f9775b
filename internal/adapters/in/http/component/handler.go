// Package component implements the HTTP API for publishing and retrieving
// components.
package component

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/zerowrap"
	"github.com/labstack/echo/v4"

	"github.com/bnema/ocicomp/internal/adapters/dto"
	"github.com/bnema/ocicomp/internal/boundaries/in"
	"github.com/bnema/ocicomp/internal/domain"
)

const (
	DefaultBinaryExtension = ".wasm"
	DefaultMaxUploadSize   = 64 << 20

	// multipartMemory is kept in memory before parts spill to disk.
	multipartMemory = 8 << 20
)

// Config configures the handler.
type Config struct {
	BinaryExtension string
	MaxUploadSize   int64
}

// Handler serves the component API.
type Handler struct {
	svc in.ComponentService
	cfg Config
	log zerowrap.Logger
}

// NewHandler creates a component handler.
func NewHandler(svc in.ComponentService, cfg Config, log zerowrap.Logger) *Handler {
	if cfg.BinaryExtension == "" {
		cfg.BinaryExtension = DefaultBinaryExtension
	}
	if !strings.HasPrefix(cfg.BinaryExtension, ".") {
		cfg.BinaryExtension = "." + cfg.BinaryExtension
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// Register mounts the routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	api.POST("/components", h.Push)
	api.GET("/:repository/components/:reference", h.Fetch)
	api.PUT("/:repository/components/:reference", h.Update)
	api.DELETE("/:repository/components/:reference", h.Delete)
}

// NewRouter builds the echo instance serving the API.
func NewRouter(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = h.handleError

	h.Register(e)

	h.log.Debug().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "http").
		Int(zerowrap.FieldCount, len(e.Routes())).
		Msg("component routes registered")

	return e
}

// Push handles POST /api/v1/components.
func (h *Handler) Push(c echo.Context) error {
	ctx := h.withFields(c, "push")
	log := zerowrap.FromCtx(ctx)

	upload, err := h.readUpload(c)
	if err != nil {
		return err
	}

	result, err := h.svc.Push(ctx, &domain.Component{
		Metadata: upload.metadata,
		Binary:   upload.binary,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("repository", result.Repository).
		Str("reference", result.Reference).
		Msg("component pushed")

	return c.JSON(http.StatusCreated, dto.NewPublishResponse(result))
}

// Fetch handles GET /api/v1/:repository/components/:reference.
func (h *Handler) Fetch(c echo.Context) error {
	ctx := h.withFields(c, "fetch")

	repository, reference, err := pathTarget(c)
	if err != nil {
		return err
	}

	fetched, err := h.svc.Fetch(ctx, repository, reference)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewComponentResponse(fetched))
}

// Update handles PUT /api/v1/:repository/components/:reference. The binary
// part is optional.
func (h *Handler) Update(c echo.Context) error {
	ctx := h.withFields(c, "update")

	repository, reference, err := pathTarget(c)
	if err != nil {
		return err
	}

	upload, err := h.readUpload(c)
	if err != nil {
		return err
	}

	result, err := h.svc.Update(ctx, &domain.Component{
		Name:      repository,
		Reference: reference,
		Metadata:  upload.metadata,
		Binary:    upload.binary,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewPublishResponse(result))
}

// Delete handles DELETE /api/v1/:repository/components/:reference.
func (h *Handler) Delete(c echo.Context) error {
	ctx := h.withFields(c, "delete")

	repository, reference, err := pathTarget(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(ctx, repository, reference); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	ctx := h.withFields(c, "health")

	if err := h.svc.Health(ctx); err != nil {
		log := zerowrap.FromCtx(ctx)
		log.Warn().Err(err).Msg("registry health check failed")
		return c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "degraded",
			Registry: "unreachable",
			Error:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Registry: "reachable"})
}

func (h *Handler) withFields(c echo.Context, action string) context.Context {
	req := c.Request()
	ctx := zerowrap.CtxWithFields(req.Context(), map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "http",
		zerowrap.FieldHandler: "component",
		zerowrap.FieldAction:  action,
	})
	c.SetRequest(req.WithContext(ctx))
	return ctx
}

// pathTarget returns the unescaped repository and reference path parameters.
// Nested repositories are sent with an escaped slash.
func pathTarget(c echo.Context) (string, string, error) {
	repository, err := url.PathUnescape(c.Param("repository"))
	if err != nil {
		return "", "", fmt.Errorf("%w: repository: %v", domain.ErrInvalidName, err)
	}
	reference, err := url.PathUnescape(c.Param("reference"))
	if err != nil {
		return "", "", fmt.Errorf("%w: reference: %v", domain.ErrInvalidName, err)
	}
	return repository, reference, nil
}

type uploadParts struct {
	metadata *domain.ComponentMetadata
	binary   []byte
}

// readUpload decodes the multipart body. Missing parts are left nil; the
// service decides which ones are required.
func (h *Handler) readUpload(c echo.Context) (*uploadParts, error) {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.cfg.MaxUploadSize)

	if err := req.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: multipart body: %v", domain.ErrInvalidUpload, err)
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	files := make([]*multipart.FileHeader, 0)
	for _, headers := range req.MultipartForm.File {
		files = append(files, headers...)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })

	var metaFile, binaryFile *multipart.FileHeader
	for _, fh := range files {
		switch h.classify(fh.Filename) {
		case partMetadata:
			if metaFile != nil {
				return nil, fmt.Errorf("%w: more than one metadata file", domain.ErrInvalidUpload)
			}
			metaFile = fh
		case partBinary:
			if binaryFile != nil {
				return nil, fmt.Errorf("%w: more than one %s file", domain.ErrInvalidUpload, h.cfg.BinaryExtension)
			}
			binaryFile = fh
		}
	}

	u := &uploadParts{}

	if metaFile != nil {
		data, err := readPart(metaFile)
		if err != nil {
			return nil, err
		}
		meta, err := domain.ParseComponentMetadata(data)
		if err != nil {
			return nil, err
		}
		u.metadata = meta
	}

	if binaryFile != nil {
		data, err := readPart(binaryFile)
		if err != nil {
			return nil, err
		}
		u.binary = data
	}

	log := zerowrap.FromCtx(req.Context())
	log.Debug().
		Bool("has_metadata", u.metadata != nil).
		Int(zerowrap.FieldSize, len(u.binary)).
		Msg("multipart upload decoded")

	return u, nil
}

type partKind int

const (
	partIgnored partKind = iota
	partMetadata
	partBinary
)

func (h *Handler) classify(filename string) partKind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == strings.ToLower(h.cfg.BinaryExtension):
		return partBinary
	case ext == ".json" || ext == ".yaml" || ext == ".yml":
		return partMetadata
	default:
		return partIgnored
	}
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return data, nil
}
