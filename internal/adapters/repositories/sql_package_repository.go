package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// SQL-backed implementation of the PackageRepository port.
type SQLPackageRepository struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewSQLPackageRepository(db *sql.DB, log zerolog.Logger) *SQLPackageRepository {
	return &SQLPackageRepository{DB: db, Log: log}
}

// Return all packages stored in the database.
func (s *SQLPackageRepository) ListPackages(ctx context.Context) (_ []*domain.Package, err error) {
	defer obs.Time(ctx, s.Log, "packages.ListPackages")(&err)

	if s.DB == nil {
		return nil, errors.New("sql package repository: DB is nil")
	}

	query := `
	SELECT
		package_id,
		address,
		city,
		state,
		zip,
		deadline,
		weight,
		notes
	FROM packages
	ORDER BY package_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0, 64)
	for rows.Next() {
		p := &domain.Package{Status: domain.StatusAtHub}
		err := rows.Scan(
			&p.PackageID,
			&p.Address.Street,
			&p.Address.City,
			&p.Address.State,
			&p.Address.Zip,
			&p.Deadline,
			&p.Weight,
			&p.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("list packages: scan row: %w", err)
		}
		packages = append(packages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages: row iteration: %w", err)
	}

	return packages, nil
}
