package cli

import (
	"encoding/json"
	"fmt"
	"io"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/bnema/ocicomp/internal/adapters/in/cli/ui/components"
	"github.com/bnema/ocicomp/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/ocicomp/internal/domain"
	"github.com/bnema/ocicomp/pkg/bytesize"
)

const annotationValueWidth = 60

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

var cliWritef = func(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func cliRenderTitle(msg string) string {
	return styles.Theme.Title.Render(msg)
}

func cliRenderMuted(msg string) string {
	return styles.Theme.Muted.Render(msg)
}

func cliRenderMeta(label, value string) string {
	return styles.RenderField(label, value)
}

func cliRenderSuccess(msg string) string {
	return styles.RenderSuccess(msg)
}

func cliRenderWarning(msg string) string {
	return styles.RenderWarning(msg)
}

func cliRenderError(msg string) string {
	return styles.RenderError(msg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describe(d ocispec.Descriptor) string {
	return fmt.Sprintf("%s (%s, %s)", d.Digest, bytesize.Format(d.Size), d.MediaType)
}

func renderPublishResult(w io.Writer, action string, r *domain.PublishResult) error {
	lines := []string{
		cliRenderSuccess(fmt.Sprintf("%s %s:%s", action, r.Repository, r.Reference)),
		cliRenderMeta("manifest:", r.ManifestDigest),
		cliRenderMeta("config:  ", describe(r.Config)),
	}
	if r.Layer != nil {
		lines = append(lines, cliRenderMeta("layer:   ", describe(*r.Layer)))
	}
	for _, line := range lines {
		if err := cliWriteLine(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderFetched(w io.Writer, c *domain.FetchedComponent, binaryPath string) error {
	if err := cliWriteLine(w, cliRenderTitle(fmt.Sprintf("%s:%s", c.Repository, c.Reference))); err != nil {
		return err
	}
	if err := cliWriteLine(w, cliRenderMeta("config:", describe(c.Manifest.Config))); err != nil {
		return err
	}

	switch {
	case c.Binary == nil:
		if err := cliWriteLine(w, cliRenderWarning("no binary layer")); err != nil {
			return err
		}
	case binaryPath != "":
		if err := cliWriteLine(w, cliRenderSuccess(fmt.Sprintf("binary written to %s (%s)", binaryPath, bytesize.Format(int64(len(c.Binary)))))); err != nil {
			return err
		}
	default:
		if err := cliWriteLine(w, cliRenderMuted(fmt.Sprintf("binary: %s (use --output to save it)", bytesize.Format(int64(len(c.Binary)))))); err != nil {
			return err
		}
	}

	if c.Config == nil {
		if err := cliWriteLine(w, cliRenderWarning("no metadata document")); err != nil {
			return err
		}
	}

	if len(c.Annotations) == 0 {
		return nil
	}
	return cliWriteLine(w, components.KeyValueTable("ANNOTATION", "VALUE", c.Annotations, annotationValueWidth))
}
