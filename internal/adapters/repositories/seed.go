package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// Populate the store from any package and location source, typically the
// CSV files. Existing rows with the same keys are overwritten.
func Seed(
	ctx context.Context,
	db *sql.DB,
	dialect Dialect,
	pkgs ports.PackageRepository,
	locs ports.LocationRepository,
) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	packages, err := pkgs.ListPackages(ctx)
	if err != nil {
		return fmt.Errorf("seed: list packages: %w", err)
	}
	sites, err := locs.ListSites(ctx)
	if err != nil {
		return fmt.Errorf("seed: list sites: %w", err)
	}
	table, err := locs.DistanceTable(ctx)
	if err != nil {
		return fmt.Errorf("seed: distance table: %w", err)
	}

	for i, p := range packages {
		if p.PackageID <= 0 {
			return fmt.Errorf("seed packages: invalid packageID at index %d: %d", i+1, p.PackageID)
		}
		if strings.TrimSpace(p.Address.Street) == "" {
			return fmt.Errorf("seed packages: package_id=%d: address cannot be empty", p.PackageID)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seedPackages(ctx, tx, dialect, packages); err != nil {
		return err
	}
	ids, err := seedLocations(ctx, tx, dialect, sites)
	if err != nil {
		return err
	}
	if err := seedDistances(ctx, tx, dialect, table, ids); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func seedPackages(ctx context.Context, tx *sql.Tx, dialect Dialect, packages []*domain.Package) error {
	query := dialect.rebind(`
	INSERT INTO packages (
		package_id,
		address,
		city,
		state,
		zip,
		deadline,
		weight,
		notes
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (package_id) DO UPDATE
	SET address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zip = EXCLUDED.zip,
		deadline = EXCLUDED.deadline,
		weight = EXCLUDED.weight,
		notes = EXCLUDED.notes;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed packages: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range packages {
		a := p.Address
		if _, err := stmt.ExecContext(ctx, p.PackageID, a.Street, a.City, a.State, a.Zip, p.Deadline, p.Weight, p.Notes); err != nil {
			return fmt.Errorf("seed packages: insert package_id=%d: %w", p.PackageID, err)
		}
	}
	return nil
}

// seedLocations stores sites and returns their ids keyed by name.
func seedLocations(ctx context.Context, tx *sql.Tx, dialect Dialect, sites []domain.Site) (map[string]int, error) {
	query := dialect.rebind(`
	INSERT INTO locations (location_id, name, address, zip)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (location_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		zip = EXCLUDED.zip;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	ids := make(map[string]int, len(sites))
	for _, s := range sites {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("seed locations: location_id=%d: name cannot be empty", s.ID)
		}
		if _, err := stmt.ExecContext(ctx, s.ID, s.Name, s.Address, s.Zip); err != nil {
			return nil, fmt.Errorf("seed locations: insert location_id=%d: %w", s.ID, err)
		}
		ids[s.Name] = s.ID
	}
	return ids, nil
}

// seedDistances stores every positive matrix cell by location id.
func seedDistances(ctx context.Context, tx *sql.Tx, dialect Dialect, table ports.DistanceTable, ids map[string]int) error {
	query := dialect.rebind(`
	INSERT INTO distances (from_id, to_id, miles)
	VALUES (?, ?, ?)
	ON CONFLICT (from_id, to_id) DO UPDATE
	SET miles = EXCLUDED.miles;
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed distances: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Matrix {
		if i >= len(table.Names) {
			break
		}
		from, ok := ids[table.Names[i]]
		if !ok {
			return fmt.Errorf("seed distances: row %d: no location named %q", i, table.Names[i])
		}
		for j, miles := range row {
			if miles <= 0 || j >= len(table.Names) {
				continue
			}
			to, ok := ids[table.Names[j]]
			if !ok {
				return fmt.Errorf("seed distances: column %d: no location named %q", j, table.Names[j])
			}
			if _, err := stmt.ExecContext(ctx, from, to, miles); err != nil {
				return fmt.Errorf("seed distances: insert %d->%d: %w", from, to, err)
			}
		}
	}
	return nil
}
