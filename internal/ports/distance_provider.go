package ports

import "delivery-simulation-service/internal/domain"

// Contract for the distance graph consumed by the route planner.
type DistanceGraph interface {
	// Depot returns the home location every route ends at.
	Depot() string
	// Return the outgoing edges of a location in stored order.
	EdgesFrom(location string) ([]domain.Edge, error)
	// Return the direct distance between two locations.
	DistanceBetween(origin string, destination string) (float64, error)
}
