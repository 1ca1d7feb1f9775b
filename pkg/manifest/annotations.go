package manifest

import (
	"time"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/bnema/ocicomp/internal/domain"
)

// Annotation keys not defined by image-spec.
const (
	AnnotationArchitecture  = "org.opencontainers.image.architecture"
	AnnotationAuthor        = "org.opencontainers.image.author"
	AnnotationOS            = "org.opencontainers.image.os"
	AnnotationComponentType = "io.ocicomp.component.type"
)

// Annotations derives the manifest annotations from a metadata document.
// Required keys are always present, optional keys only when set in meta.
// The created timestamp is taken from now and formatted in UTC.
func Annotations(meta *domain.ComponentMetadata, now time.Time) map[string]string {
	if meta == nil {
		meta = &domain.ComponentMetadata{}
	}

	annotations := map[string]string{
		ocispec.AnnotationTitle:       meta.Name,
		AnnotationArchitecture:        meta.Architecture,
		AnnotationOS:                  meta.OS,
		ocispec.AnnotationDescription: meta.Description,
		AnnotationAuthor:              meta.Author,
		ocispec.AnnotationVersion:     meta.Tag,
		ocispec.AnnotationCreated:     now.UTC().Format(time.RFC3339),
	}

	optional := map[string]*string{
		ocispec.AnnotationURL:           meta.URL,
		ocispec.AnnotationSource:        meta.Source,
		ocispec.AnnotationRevision:      meta.Revision,
		ocispec.AnnotationLicenses:      meta.Licenses,
		ocispec.AnnotationVendor:        meta.Vendor,
		ocispec.AnnotationDocumentation: meta.Documentation,
		AnnotationComponentType:         meta.ComponentType,
	}
	for key, value := range optional {
		if value != nil {
			annotations[key] = *value
		}
	}

	return annotations
}
