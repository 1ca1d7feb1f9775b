package in

import (
	"context"

	"github.com/bnema/ocicomp/internal/domain"
)

// ComponentService defines the contract for publishing and retrieving
// components stored as OCI artifacts.
type ComponentService interface {
	Push(ctx context.Context, component *domain.Component) (*domain.PublishResult, error)
	Fetch(ctx context.Context, repository, reference string) (*domain.FetchedComponent, error)
	Update(ctx context.Context, component *domain.Component) (*domain.PublishResult, error)
	Delete(ctx context.Context, repository, reference string) error

	// Health reports whether the backing registry is reachable.
	Health(ctx context.Context) error
}
