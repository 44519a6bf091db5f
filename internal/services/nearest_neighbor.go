package services

import "delivery-simulation-service/internal/domain"

// nearestNeighbor picks the cheapest edge whose target is still in remaining.
//
// Only a strictly smaller weight replaces the current choice, so ties keep
// the first qualifying edge in the graph's stored order. This is the whole
// tie-break: no sorting by name, no randomness.
func nearestNeighbor(edges []domain.Edge, remaining map[string]struct{}) (domain.Edge, bool) {
	var (
		best  domain.Edge
		found bool
	)
	for _, e := range edges {
		if _, ok := remaining[e.To]; !ok {
			continue
		}
		if !found || e.Weight < best.Weight {
			best = e
			found = true
		}
	}
	return best, found
}
