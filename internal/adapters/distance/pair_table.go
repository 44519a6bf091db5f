package distance

import (
	"context"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"fmt"
)

// Pair is one undirected distance between two named locations.
type Pair struct {
	From, To string
	Distance float64
}

// PairTable is an in-memory location source built from explicit pairs. Names
// keep first-seen order, which fixes the graph's stored edge order.
type PairTable struct {
	names []string
	index map[string]int
	m     map[[2]int]float64
	sites []domain.Site
}

func NewPairTable(pairs []Pair) *PairTable {
	t := &PairTable{index: make(map[string]int), m: make(map[[2]int]float64, len(pairs))}
	for _, p := range pairs {
		i, j := t.add(p.From), t.add(p.To)
		if i < j {
			i, j = j, i
		}
		t.m[[2]int{i, j}] = p.Distance
	}
	return t
}

func (t *PairTable) add(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	return len(t.names) - 1
}

// WithSites attaches address records; the table still serves distances only
// for names seen in pairs.
func (t *PairTable) WithSites(sites ...domain.Site) *PairTable {
	t.sites = append(t.sites, sites...)
	return t
}

func (t *PairTable) ListSites(ctx context.Context) ([]domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	out := make([]domain.Site, len(t.sites))
	copy(out, t.sites)
	return out, nil
}

// DistanceTable renders the pairs as a square matrix with only the lower
// triangle filled.
func (t *PairTable) DistanceTable(ctx context.Context) (ports.DistanceTable, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceTable{}, fmt.Errorf("distance table: %w", err)
	}
	matrix := make([][]float64, len(t.names))
	for i := range matrix {
		matrix[i] = make([]float64, len(t.names))
		for j := 0; j < i; j++ {
			matrix[i][j] = t.m[[2]int{i, j}]
		}
	}
	names := make([]string, len(t.names))
	copy(names, t.names)
	return ports.DistanceTable{Names: names, Matrix: matrix}, nil
}
