// Package graph holds the named locations and distance table the route
// planner walks.
package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/lookup"
)

// Graph is a symmetric, weighted location graph. It is immutable after New.
type Graph struct {
	depot     string
	names     []string
	matrix    [][]float64
	locations []*domain.Location
	index     *lookup.Table[string, int]
}

// New builds a graph from location names and a distance matrix indexed the
// same way. Rows and columns shorter than len(names) are zero-padded and the
// padding is logged at warn level. depot must be one of names.
func New(names []string, matrix [][]float64, depot string, log zerolog.Logger) (*Graph, error) {
	if len(names) == 0 {
		return nil, errors.New("build graph: no locations")
	}

	index := lookup.New[string, int](len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("build graph: empty location name at index %d", i)
		}
		if index.ContainsKey(n) {
			return nil, fmt.Errorf("build graph: duplicate location name %q", n)
		}
		index.Insert(n, i)
	}

	if !index.ContainsKey(depot) {
		return nil, fmt.Errorf("build graph: depot: %w", &domain.LocationNotFoundError{Name: depot})
	}

	normalized, rowsPadded, colsPadded, err := rectangularize(matrix, len(names))
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	if rowsPadded > 0 || colsPadded > 0 {
		log.Warn().
			Int("locations", len(names)).
			Int("rows_padded", rowsPadded).
			Int("cols_padded", colsPadded).
			Msg("distance matrix zero-padded to location count")
	}

	g := &Graph{
		depot:  depot,
		names:  make([]string, len(names)),
		matrix: normalized,
		index:  index,
	}
	for i, n := range names {
		g.names[i] = strings.TrimSpace(n)
	}
	g.buildEdges()

	log.Debug().
		Int("locations", len(g.names)).
		Str("depot", depot).
		Msg("distance graph built")

	return g, nil
}

// rectangularize copies matrix into an n x n table, zero-padding short rows
// and missing rows. It returns how many rows were added and how many rows
// needed column padding.
func rectangularize(matrix [][]float64, n int) ([][]float64, int, int, error) {
	out := make([][]float64, n)
	rowsPadded, colsPadded := 0, 0

	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		if i >= len(matrix) {
			rowsPadded++
			continue
		}
		row := matrix[i]
		if len(row) < n {
			colsPadded++
		}
		for j := 0; j < n && j < len(row); j++ {
			if row[j] < 0 {
				return nil, 0, 0, fmt.Errorf("negative distance %v at [%d][%d]", row[j], i, j)
			}
			out[i][j] = row[j]
		}
	}

	return out, rowsPadded, colsPadded, nil
}

// weight is the canonical symmetric distance between locations i and j.
// The lower triangle (row > column) is what distance tables are filled in
// by convention; the upper triangle is only consulted when that cell is 0.
func (g *Graph) weight(i, j int) float64 {
	if i == j {
		return 0
	}
	hi, lo := i, j
	if lo > hi {
		hi, lo = lo, hi
	}
	if w := g.matrix[hi][lo]; w > 0 {
		return w
	}
	return g.matrix[lo][hi]
}

// buildEdges gives every location an edge to every other location with a
// positive canonical weight, in both directions. Row i contributes edges to
// targets below i before any later row adds targets above i, so each edge
// list ends up ordered by target index. The planner's tie-break relies on it.
func (g *Graph) buildEdges() {
	g.locations = make([]*domain.Location, len(g.names))
	for i, n := range g.names {
		g.locations[i] = &domain.Location{Name: n}
	}

	for i := range g.names {
		for j := 0; j < i; j++ {
			w := g.weight(i, j)
			if w <= 0 {
				continue
			}
			from, to := g.locations[i], g.locations[j]
			from.Edges = append(from.Edges, domain.Edge{From: from.Name, To: to.Name, Weight: w})
			to.Edges = append(to.Edges, domain.Edge{From: to.Name, To: from.Name, Weight: w})
		}
	}
}

func (g *Graph) lookup(name string) (int, error) {
	i, ok := g.index.Lookup(name)
	if !ok {
		return 0, &domain.LocationNotFoundError{Name: name}
	}
	return i, nil
}

// Depot returns the distinguished home location.
func (g *Graph) Depot() string { return g.depot }

// Names returns the location names in index order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Contains reports whether name is a known location.
func (g *Graph) Contains(name string) bool { return g.index.ContainsKey(name) }

// EdgesFrom returns the outgoing edges of name in stored order.
func (g *Graph) EdgesFrom(name string) ([]domain.Edge, error) {
	i, err := g.lookup(name)
	if err != nil {
		return nil, err
	}
	return g.locations[i].Edges, nil
}

// DistanceBetween returns the direct distance between a and b. It is 0 for
// a == b and an *domain.UnreachableError when distinct locations share no edge.
func (g *Graph) DistanceBetween(a, b string) (float64, error) {
	i, err := g.lookup(a)
	if err != nil {
		return 0, err
	}
	j, err := g.lookup(b)
	if err != nil {
		return 0, err
	}
	if i == j {
		return 0, nil
	}
	w := g.weight(i, j)
	if w <= 0 {
		return 0, &domain.UnreachableError{From: a, Remaining: []string{b}}
	}
	return w, nil
}

// ReturnToDepot is the distance of the final leg from name back to the depot.
func (g *Graph) ReturnToDepot(name string) (float64, error) {
	d, err := g.DistanceBetween(name, g.depot)
	if err != nil {
		return 0, fmt.Errorf("return to depot from %q: %w", name, err)
	}
	return d, nil
}
