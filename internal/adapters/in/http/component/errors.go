package component

import (
	"context"
	"errors"
	"net/http"

	"github.com/bnema/zerowrap"
	"github.com/labstack/echo/v4"

	"github.com/bnema/ocicomp/internal/adapters/dto"
	"github.com/bnema/ocicomp/internal/domain"
)

// statusFor maps an error to its HTTP status. Deadlines are checked first
// because they surface wrapped in registry transport errors.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	}

	switch {
	case domain.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrIntegrityViolation):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUploadRejected),
		errors.Is(err, domain.ErrDeleteRejected),
		errors.Is(err, domain.ErrRegistryRejected):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrRegistryUnreachable),
		errors.Is(err, domain.ErrTransport):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the JSON error for err.
func errorBody(err error, status int) dto.ErrorResponse {
	kind := domain.ErrorKind(err)
	switch status {
	case http.StatusGatewayTimeout:
		kind = "Timeout"
	case http.StatusRequestTimeout:
		kind = "Canceled"
	case http.StatusRequestEntityTooLarge:
		kind = "PayloadTooLarge"
	}

	upstream := upstreamFailure(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}

	return dto.ErrorResponse{Error: msg, Kind: kind, Upstream: upstream}
}

// upstreamFailure reports whether err came from the registry side of a
// request. Bad input and missing references never count.
func upstreamFailure(err error) bool {
	if domain.IsClientError(err) || errors.Is(err, domain.ErrNotFound) {
		return false
	}
	var regErr *domain.RegistryError
	return errors.As(err, &regErr) ||
		errors.Is(err, domain.ErrIntegrityViolation) ||
		errors.Is(err, context.DeadlineExceeded)
}

// handleError is the echo error handler for the API.
func (h *Handler) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var body dto.ErrorResponse

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		msg := http.StatusText(status)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		body = dto.ErrorResponse{Error: msg, Kind: http.StatusText(status)}
	} else {
		status = statusFor(err)
		body = errorBody(err, status)
	}

	log := zerowrap.FromCtx(c.Request().Context())
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Int(zerowrap.FieldStatus, status).
		Str("kind", body.Kind).
		Msg("request failed")

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
