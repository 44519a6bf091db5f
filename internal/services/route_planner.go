package services

import (
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"errors"
	"fmt"
	"slices"
)

// Plan a delivery route using a greedy nearest-neighbor algorithm.
//
// From the start location the planner repeatedly travels to the closest
// destination not yet visited, then appends a forced return leg to the
// depot. The result always has len(distinct destinations)+1 steps and its
// TotalDistance is the sum of the step distances.
// It does not attempt global route optimization and never backtracks.
func PlanRoute(
	graph ports.DistanceGraph,
	truckID int,
	start string,
	destinations []string,
) (*domain.RoutePlan, error) {
	if start == "" {
		return nil, errors.New("plan route: start location must be non-empty")
	}

	remaining := make(map[string]struct{}, len(destinations))
	for _, d := range destinations {
		// Surface unknown names up front; otherwise they would only show up
		// as an unreachable destination.
		if _, err := graph.EdgesFrom(d); err != nil {
			return nil, fmt.Errorf("plan route: destination: %w", err)
		}
		remaining[d] = struct{}{}
	}

	current := start
	steps := make([]domain.RouteStep, 0, len(remaining)+1)
	totalDistance := 0.0

	for len(remaining) > 0 {
		// A destination equal to where the truck stands is served in place.
		if _, ok := remaining[current]; ok {
			steps = append(steps, domain.RouteStep{Location: current, Distance: 0})
			delete(remaining, current)
			continue
		}

		edges, err := graph.EdgesFrom(current)
		if err != nil {
			return nil, fmt.Errorf("plan route: edges from %q: %w", current, err)
		}

		next, ok := nearestNeighbor(edges, remaining)
		if !ok {
			left := make([]string, 0, len(remaining))
			for d := range remaining {
				left = append(left, d)
			}
			slices.Sort(left)
			return nil, fmt.Errorf("plan route: %w", &domain.UnreachableError{From: current, Remaining: left})
		}

		totalDistance += next.Weight
		steps = append(steps, domain.RouteStep{Location: next.To, Distance: next.Weight})

		delete(remaining, next.To)
		current = next.To
	}

	depot := graph.Depot()
	back := 0.0
	if current != depot {
		d, err := graph.DistanceBetween(current, depot)
		if err != nil {
			return nil, fmt.Errorf("plan route: return leg from %q to %q: %w", current, depot, err)
		}
		back = d
	}
	totalDistance += back
	steps = append(steps, domain.RouteStep{Location: depot, Distance: back})

	return &domain.RoutePlan{
		TruckID:       truckID,
		Start:         start,
		Steps:         steps,
		TotalDistance: totalDistance,
	}, nil
}

// Create a RoutePlan for the packages currently aboard a truck.
func PlanTruckRoute(graph ports.DistanceGraph, truck *domain.Truck) (*domain.RoutePlan, error) {
	if truck == nil {
		return nil, errors.New("plan truck route: truck must be non-nil")
	}

	if truck.CurrentLocation == "" {
		return nil, fmt.Errorf("plan truck route: truck %d current location must be non-empty", truck.TruckID)
	}

	// Delegate to PlanRoute over the truck's derived delivery nodes.
	plan, err := PlanRoute(graph, truck.TruckID, truck.CurrentLocation, truck.Destinations())
	if err != nil {
		return nil, fmt.Errorf("plan truck route: for truck %d: %w", truck.TruckID, err)
	}
	return plan, nil
}
