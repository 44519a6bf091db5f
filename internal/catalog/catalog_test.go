package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-simulation-service/internal/domain"
)

func fixture(t *testing.T) *Catalog {
	t.Helper()

	sites := []domain.Site{
		{ID: 0, Name: "Western Governors University", Address: "4001 South 700 East"},
		{ID: 1, Name: "Council Hall", Address: "300 State St"},
		{ID: 2, Name: "Third District Juvenile Court", Address: "410 S State St"},
	}
	pkgs := []*domain.Package{
		{PackageID: 9, Address: domain.Address{Street: "300  State St", City: "Salt Lake City", Zip: "84103"}, Deadline: "EOD", Weight: 2},
		{PackageID: 2, Address: domain.Address{Street: "410 S State St", City: "Salt Lake City", Zip: "84111"}, Deadline: "EOD", Weight: 44},
		{PackageID: 5, Address: domain.Address{Street: "1 Unknown Way", City: "West Valley City", Zip: "84119"}, Deadline: "10:30 AM", Weight: 5},
	}

	c, err := New(pkgs, sites)
	require.NoError(t, err)
	return c
}

func TestNew_ResolvesDestinations(t *testing.T) {
	c := fixture(t)

	p, err := c.Get(9)
	require.NoError(t, err)
	assert.Equal(t, "Council Hall", p.Destination)
	assert.Equal(t, domain.StatusAtHub, p.Status)

	p, err = c.Get(5)
	require.NoError(t, err)
	assert.Equal(t, "1 Unknown Way", p.Destination, "unmatched address falls back to itself")
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]*domain.Package{{PackageID: 1}, {PackageID: 1}}, nil)
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]*domain.Package{{PackageID: 0}}, nil)
	assert.ErrorContains(t, err, "invalid package id")
}

func TestNew_CopiesInput(t *testing.T) {
	in := &domain.Package{PackageID: 1, Destination: "A"}
	c, err := New([]*domain.Package{in}, nil)
	require.NoError(t, err)

	p, err := c.Get(1)
	require.NoError(t, err)
	p.Destination = "B"
	assert.Equal(t, "A", in.Destination)
}

func TestGet_Missing(t *testing.T) {
	_, err := fixture(t).Get(77)
	assert.True(t, errors.Is(err, domain.ErrPackageNotFound))
}

func TestQueries(t *testing.T) {
	c := fixture(t)

	ids := func(pkgs []*domain.Package) []int {
		out := make([]int, 0, len(pkgs))
		for _, p := range pkgs {
			out = append(out, p.PackageID)
		}
		return out
	}

	assert.Equal(t, []int{2, 5, 9}, ids(c.All()))
	assert.Equal(t, []int{2, 9}, ids(c.ByDeadline("EOD")))
	assert.Equal(t, []int{2, 9}, ids(c.ByCity("salt lake city")))
	assert.Equal(t, []int{9}, ids(c.ByAddress("300 State St")))
	assert.Equal(t, []int{2}, ids(c.ByZip("84111")))
	assert.Equal(t, []int{5}, ids(c.ByWeight(5)))
	assert.Equal(t, []int{2, 5, 9}, ids(c.ByStatus(domain.StatusAtHub)))
	assert.Empty(t, c.ByTruck(3))
}

func TestUpdate(t *testing.T) {
	c := fixture(t)

	p, err := c.Get(9)
	require.NoError(t, err)
	corrected := p.Clone()
	corrected.Destination = "Third District Juvenile Court"
	require.NoError(t, c.Update(corrected))

	got, err := c.Get(9)
	require.NoError(t, err)
	assert.Equal(t, "Third District Juvenile Court", got.Destination)

	err = c.Update(&domain.Package{PackageID: 100})
	assert.True(t, errors.Is(err, domain.ErrPackageNotFound))
}
