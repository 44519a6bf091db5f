package ports

import (
	"context"
	"delivery-simulation-service/internal/domain"
)

// DistanceTable is a location name list and a distance matrix indexed the
// same way. Rows may be shorter than the name list.
type DistanceTable struct {
	Names  []string
	Matrix [][]float64
}

// Port: a boundary for retrieving locations and the distances between them.
type LocationRepository interface {
	// Retrieve the address-to-location mapping.
	ListSites(ctx context.Context) ([]domain.Site, error)
	// Retrieve the distance table.
	DistanceTable(ctx context.Context) (DistanceTable, error)
}
