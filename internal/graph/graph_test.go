package graph

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-simulation-service/internal/domain"
)

// scenarioNames and scenarioMatrix describe HQ plus three stops, filled in
// lower-triangular form the way distance tables are published.
var scenarioNames = []string{"HQ", "A", "B", "C"}

var scenarioMatrix = [][]float64{
	{0},
	{3, 0},
	{7, 4, 0},
	{5, 2, 6, 0},
}

func TestNew_PadsShortRowsAndWarns(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	g, err := New(scenarioNames, scenarioMatrix, "HQ", log)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"cols_padded":3`)

	d, err := g.DistanceBetween("A", "C")
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestNew_MissingRowsArePadded(t *testing.T) {
	var buf bytes.Buffer
	g, err := New([]string{"HQ", "A", "B"}, [][]float64{{0}, {4}}, "HQ", zerolog.New(&buf))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"rows_padded":1`)

	_, err = g.DistanceBetween("B", "HQ")
	assert.True(t, errors.Is(err, domain.ErrRouteUnreachable))
}

func TestNew_Validation(t *testing.T) {
	log := zerolog.Nop()

	_, err := New(nil, nil, "HQ", log)
	assert.Error(t, err)

	_, err = New([]string{"HQ", "HQ"}, nil, "HQ", log)
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]string{"A", "B"}, nil, "HQ", log)
	assert.True(t, errors.Is(err, domain.ErrLocationNotFound))

	_, err = New([]string{"HQ", "A"}, [][]float64{{0, -1}, {-1, 0}}, "HQ", log)
	assert.ErrorContains(t, err, "negative distance")
}

func TestDistanceBetween_Symmetric(t *testing.T) {
	// An asymmetric, fully filled matrix still answers symmetrically: the
	// lower triangle wins when both cells are set.
	matrix := [][]float64{
		{0, 9, 0, 1},
		{3, 0, 8, 0},
		{7, 4, 0, 0},
		{0, 2, 6, 0},
	}
	g, err := New(scenarioNames, matrix, "HQ", zerolog.Nop())
	require.NoError(t, err)

	for _, a := range scenarioNames {
		for _, b := range scenarioNames {
			ab, errAB := g.DistanceBetween(a, b)
			ba, errBA := g.DistanceBetween(b, a)
			require.Equal(t, errAB == nil, errBA == nil, "%s/%s", a, b)
			assert.Equal(t, ab, ba, "%s/%s", a, b)
		}
	}

	d, err := g.DistanceBetween("HQ", "A")
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	// Lower cell [3][0] is empty, so the upper cell [0][3] is used.
	d, err = g.DistanceBetween("C", "HQ")
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
}

func TestDistanceBetween_Errors(t *testing.T) {
	g, err := New(scenarioNames, scenarioMatrix, "HQ", zerolog.Nop())
	require.NoError(t, err)

	_, err = g.DistanceBetween("HQ", "Z")
	var nf *domain.LocationNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Z", nf.Name)

	d, err := g.DistanceBetween("B", "B")
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestEdgesFrom_OrderAndSymmetry(t *testing.T) {
	g, err := New(scenarioNames, scenarioMatrix, "HQ", zerolog.Nop())
	require.NoError(t, err)

	edges, err := g.EdgesFrom("A")
	require.NoError(t, err)

	targets := make([]string, 0, len(edges))
	for _, e := range edges {
		assert.Equal(t, "A", e.From)
		targets = append(targets, e.To)
		back, err := g.DistanceBetween(e.To, "A")
		require.NoError(t, err)
		assert.Equal(t, e.Weight, back)
	}
	assert.Equal(t, []string{"HQ", "B", "C"}, targets)

	_, err = g.EdgesFrom("nowhere")
	assert.True(t, errors.Is(err, domain.ErrLocationNotFound))
}

func TestReturnToDepot(t *testing.T) {
	g, err := New(scenarioNames, scenarioMatrix, "HQ", zerolog.Nop())
	require.NoError(t, err)

	d, err := g.ReturnToDepot("B")
	require.NoError(t, err)
	assert.Equal(t, 7.0, d)

	d, err = g.ReturnToDepot("HQ")
	require.NoError(t, err)
	assert.Zero(t, d)
}
