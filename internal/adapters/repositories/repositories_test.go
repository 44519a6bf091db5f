package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"delivery-simulation-service/internal/adapters/distance"
	"delivery-simulation-service/internal/domain"
)

type stubPackages []*domain.Package

func (s stubPackages) ListPackages(ctx context.Context) ([]*domain.Package, error) {
	return s, nil
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db, SQLite))
	return db
}

func seeded(t *testing.T) *sql.DB {
	t.Helper()
	db := openMemory(t)

	pkgs := stubPackages{
		{PackageID: 2, Address: domain.Address{Street: "410 S State St", City: "Salt Lake City", State: "UT", Zip: "84111"}, Deadline: "EOD", Weight: 44},
		{PackageID: 1, Address: domain.Address{Street: "300 State St", City: "Salt Lake City", State: "UT", Zip: "84103"}, Deadline: "10:30 AM", Weight: 21, Notes: "Can only be on truck 2"},
	}
	locs := distance.NewPairTable([]distance.Pair{
		{From: "Hub", To: "Council Hall", Distance: 7.2},
		{From: "Hub", To: "Court", Distance: 3.8},
		{From: "Council Hall", To: "Court", Distance: 4.1},
	}).WithSites(
		domain.Site{ID: 0, Name: "Hub", Address: "4001 South 700 East", Zip: "84107"},
		domain.Site{ID: 1, Name: "Council Hall", Address: "300 State St", Zip: "84103"},
		domain.Site{ID: 2, Name: "Court", Address: "410 S State St", Zip: "84111"},
	)

	require.NoError(t, Seed(context.Background(), db, SQLite, pkgs, locs))
	// Seeding twice overwrites rather than failing.
	require.NoError(t, Seed(context.Background(), db, SQLite, pkgs, locs))
	return db
}

func TestSQLPackageRepository_ListPackages(t *testing.T) {
	repo := NewSQLPackageRepository(seeded(t), zerolog.Nop())

	pkgs, err := repo.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	assert.Equal(t, 1, pkgs[0].PackageID)
	assert.Equal(t, "300 State St", pkgs[0].Address.Street)
	assert.Equal(t, "Can only be on truck 2", pkgs[0].Notes)
	assert.Equal(t, 21.0, pkgs[0].Weight)
	assert.Equal(t, domain.StatusAtHub, pkgs[0].Status)
	assert.Equal(t, 2, pkgs[1].PackageID)
}

func TestSQLLocationRepository(t *testing.T) {
	repo := NewSQLLocationRepository(seeded(t), zerolog.Nop())
	ctx := context.Background()

	sites, err := repo.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, domain.Site{ID: 2, Name: "Court", Address: "410 S State St", Zip: "84111"}, sites[2])

	table, err := repo.DistanceTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hub", "Council Hall", "Court"}, table.Names)
	assert.Equal(t, [][]float64{
		{0, 0, 0},
		{7.2, 0, 0},
		{3.8, 4.1, 0},
	}, table.Matrix)
}

func TestSeed_RejectsBadPackages(t *testing.T) {
	db := openMemory(t)
	locs := distance.NewPairTable(nil)

	err := Seed(context.Background(), db, SQLite, stubPackages{{PackageID: 0, Address: domain.Address{Street: "x"}}}, locs)
	assert.ErrorContains(t, err, "invalid packageID")

	err = Seed(context.Background(), db, SQLite, stubPackages{{PackageID: 3}}, locs)
	assert.ErrorContains(t, err, "address cannot be empty")
}

func TestDialect_Rebind(t *testing.T) {
	q := "INSERT INTO t (a, b) VALUES (?, ?)"
	assert.Equal(t, q, SQLite.rebind(q))
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", Postgres.rebind(q))
}
