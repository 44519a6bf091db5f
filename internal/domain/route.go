package domain

import (
	"math"
	"time"
)

// Represents a single leg in a delivery route: travel to Location covering
// Distance from the previous step.
type RouteStep struct {
	Location string
	Distance float64
}

// Represents the planned delivery route for a single truck.
// A RoutePlan is the output of the routing algorithm and describes the
// ordered sequence of legs, the last of which always returns to the depot.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	TruckID       int
	Start         string
	Steps         []RouteStep
	TotalDistance float64
}

// Locations returns the visited location names in order.
func (p *RoutePlan) Locations() []string {
	out := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		out = append(out, s.Location)
	}
	return out
}

// LegDuration converts a distance into travel time at speed distance units
// per hour.
func LegDuration(distance, speed float64) time.Duration {
	if speed <= 0 || distance <= 0 {
		return 0
	}
	return time.Duration(math.Round(distance * float64(time.Hour) / speed))
}
