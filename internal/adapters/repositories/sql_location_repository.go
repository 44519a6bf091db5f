package repositories

import (
	"context"
	"database/sql"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/platform/obs"
	"delivery-simulation-service/internal/ports"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// SQL-backed implementation of the LocationRepository port.
type SQLLocationRepository struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewSQLLocationRepository(db *sql.DB, log zerolog.Logger) *SQLLocationRepository {
	return &SQLLocationRepository{DB: db, Log: log}
}

// Return all locations ordered by id.
func (s *SQLLocationRepository) ListSites(ctx context.Context) (_ []domain.Site, err error) {
	defer obs.Time(ctx, s.Log, "locations.ListSites")(&err)

	if s.DB == nil {
		return nil, errors.New("sql location repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT location_id, name, address, zip
	FROM locations
	ORDER BY location_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list sites: query locations table: %w", err)
	}
	defer rows.Close()

	sites := make([]domain.Site, 0, 32)
	for rows.Next() {
		var site domain.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.Address, &site.Zip); err != nil {
			return nil, fmt.Errorf("list sites: scan row: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: row iteration: %w", err)
	}

	return sites, nil
}

// Rebuild the distance matrix, indexed like ListSites.
func (s *SQLLocationRepository) DistanceTable(ctx context.Context) (_ ports.DistanceTable, err error) {
	defer obs.Time(ctx, s.Log, "locations.DistanceTable")(&err)

	sites, err := s.ListSites(ctx)
	if err != nil {
		return ports.DistanceTable{}, fmt.Errorf("distance table: %w", err)
	}

	index := make(map[int]int, len(sites))
	names := make([]string, len(sites))
	matrix := make([][]float64, len(sites))
	for i, site := range sites {
		index[site.ID] = i
		names[i] = site.Name
		matrix[i] = make([]float64, len(sites))
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT from_id, to_id, miles
	FROM distances;
	`)
	if err != nil {
		return ports.DistanceTable{}, fmt.Errorf("distance table: query distances table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var from, to int
		var miles float64
		if err := rows.Scan(&from, &to, &miles); err != nil {
			return ports.DistanceTable{}, fmt.Errorf("distance table: scan rows: %w", err)
		}
		i, ok := index[from]
		if !ok {
			return ports.DistanceTable{}, fmt.Errorf("distance table: unknown location_id %d", from)
		}
		j, ok := index[to]
		if !ok {
			return ports.DistanceTable{}, fmt.Errorf("distance table: unknown location_id %d", to)
		}
		matrix[i][j] = miles
	}
	if err := rows.Err(); err != nil {
		return ports.DistanceTable{}, fmt.Errorf("distance table: row iteration: %w", err)
	}

	return ports.DistanceTable{Names: names, Matrix: matrix}, nil
}
