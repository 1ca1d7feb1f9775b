package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Input errors
	ErrMissingInput  = errors.New("missing input")
	ErrManifestParse = errors.New("malformed metadata document")
	ErrInvalidName   = errors.New("invalid repository or reference")
	ErrInvalidUpload = errors.New("malformed or ambiguous upload")

	// Registry errors
	ErrRegistryUnreachable = errors.New("registry unreachable")
	ErrTransport           = errors.New("registry transport error")
	ErrRegistryRejected    = errors.New("registry rejected request")
	ErrUploadRejected      = errors.New("registry rejected blob upload")
	ErrDeleteRejected      = errors.New("registry rejected delete")
	ErrNotFound            = errors.New("not found")

	// Integrity errors
	ErrIntegrityViolation = errors.New("integrity violation")
)

// RegistryError carries the upstream detail of a failed registry interaction.
// It unwraps to both its Kind sentinel and the underlying cause.
type RegistryError struct {
	Kind       error
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *RegistryError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Kind, e.Method, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RegistryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

var kinds = []struct {
	err  error
	name string
}{
	{ErrMissingInput, "MissingInput"},
	{ErrManifestParse, "ManifestParseError"},
	{ErrInvalidName, "InvalidName"},
	{ErrInvalidUpload, "InvalidUpload"},
	{ErrIntegrityViolation, "IntegrityViolation"},
	{ErrNotFound, "NotFound"},
	{ErrUploadRejected, "UploadRejected"},
	{ErrDeleteRejected, "DeleteRejected"},
	{ErrRegistryRejected, "RegistryRejected"},
	{ErrTransport, "TransportError"},
	{ErrRegistryUnreachable, "RegistryUnreachable"},
}

// ErrorKind returns the stable name of the first domain error err matches,
// or "Internal" when it matches none.
func ErrorKind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Internal"
}

// IsClientError reports whether err was caused by bad caller input rather than
// by the registry or the network.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrManifestParse) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidUpload)
}
