package ports

import (
	"context"
	"delivery-simulation-service/internal/domain"
)

// Port: a boundary for retrieving Package entities from a data source.
type PackageRepository interface {
	// Retrieve all packages available for delivery, ordered by id.
	ListPackages(ctx context.Context) ([]*domain.Package, error)
}
