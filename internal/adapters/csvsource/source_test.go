package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-simulation-service/internal/domain"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, AddressesFile, `id,name,address,zip
0,Hub,4001 South 700 East,84107
1,Council Hall,300 State St,84103
2,Court,410 S State St,84111
`)
	writeFixture(t, dir, DistancesFile, `,Hub,Council Hall,Court
Hub,0,,
Council Hall,7.2,0,
Court,3.8, 4.1
`)
	writeFixture(t, dir, PackagesFile, `id,address,city,state,zip,deadline,weight,notes
1,300 State St,Salt Lake City,UT,84103,10:30 AM,21,
9,300 State St,Salt Lake City,UT,84103,EOD,2,Wrong address listed
`)
	return dir
}

func TestSource_ListPackages(t *testing.T) {
	pkgs, err := New(fixtureDir(t)).ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	assert.Equal(t, 9, pkgs[1].PackageID)
	assert.Equal(t, domain.Address{Street: "300 State St", City: "Salt Lake City", State: "UT", Zip: "84103"}, pkgs[1].Address)
	assert.Equal(t, "EOD", pkgs[1].Deadline)
	assert.Equal(t, 2.0, pkgs[1].Weight)
	assert.Equal(t, "Wrong address listed", pkgs[1].Notes)
	assert.Equal(t, domain.StatusAtHub, pkgs[1].Status)
	assert.Empty(t, pkgs[0].Notes)
}

func TestSource_ListSites(t *testing.T) {
	sites, err := New(fixtureDir(t)).ListSites(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Site{
		{ID: 0, Name: "Hub", Address: "4001 South 700 East", Zip: "84107"},
		{ID: 1, Name: "Council Hall", Address: "300 State St", Zip: "84103"},
		{ID: 2, Name: "Court", Address: "410 S State St", Zip: "84111"},
	}, sites)
}

func TestSource_DistanceTable(t *testing.T) {
	table, err := New(fixtureDir(t)).DistanceTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Hub", "Council Hall", "Court"}, table.Names)
	assert.Equal(t, [][]float64{
		{0, 0, 0},
		{7.2, 0, 0},
		{3.8, 4.1},
	}, table.Matrix, "short rows stay short; the graph pads them")
}

func TestSource_Errors(t *testing.T) {
	dir := fixtureDir(t)
	writeFixture(t, dir, PackagesFile, "id,address,city,state,zip,deadline,weight,notes\nx,1 Main,City,UT,1,EOD,1,\n")

	_, err := New(dir).ListPackages(context.Background())
	assert.ErrorContains(t, err, "line 2")

	writeFixture(t, dir, DistancesFile, ",Hub\nHub,far\n")
	_, err = New(dir).DistanceTable(context.Background())
	assert.ErrorContains(t, err, "line 2 column 2")

	_, err = New(t.TempDir()).ListSites(context.Background())
	assert.Error(t, err)
}
