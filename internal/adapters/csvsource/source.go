// Package csvsource reads the day's packages, location addresses and the
// distance table from CSV files in one directory.
package csvsource

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
)

const (
	PackagesFile  = "packages.csv"
	AddressesFile = "addresses.csv"
	DistancesFile = "distances.csv"
)

// Source serves packages and locations from CSV files. Every call re-reads
// the files.
type Source struct {
	dataDir string
}

func New(dataDir string) *Source {
	return &Source{dataDir: dataDir}
}

// readAll opens name in the data directory and returns its rows after the
// header. Rows may have differing lengths.
func (s *Source) readAll(ctx context.Context, name string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	file, err := os.Open(filepath.Join(s.dataDir, name))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrapf(err, "read %s header", name)
	}

	var rows [][]string
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, errors.WithStack(readErr)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// ListPackages loads packages.csv.
// Expected CSV format: id,address,city,state,zip,deadline,weight,notes
func (s *Source) ListPackages(ctx context.Context) ([]*domain.Package, error) {
	rows, err := s.readAll(ctx, PackagesFile)
	if err != nil {
		return nil, err
	}

	pkgs := make([]*domain.Package, 0, len(rows))
	for i, record := range rows {
		lineNum := i + 2
		if isBlank(record) {
			continue
		}
		if len(record) < 7 {
			return nil, errors.Errorf("invalid %s format at line %d: expected at least 7 columns, got %d", PackagesFile, lineNum, len(record))
		}

		pkg, parseErr := parsePackage(record, lineNum)
		if parseErr != nil {
			return nil, parseErr
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func parsePackage(record []string, lineNum int) (*domain.Package, error) {
	id, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid package id at line %d", lineNum)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid weight at line %d", lineNum)
	}

	pkg := &domain.Package{
		PackageID: id,
		Address: domain.Address{
			Street: strings.TrimSpace(record[1]),
			City:   strings.TrimSpace(record[2]),
			State:  strings.TrimSpace(record[3]),
			Zip:    strings.TrimSpace(record[4]),
		},
		Deadline: strings.TrimSpace(record[5]),
		Weight:   weight,
		Status:   domain.StatusAtHub,
	}
	if len(record) > 7 {
		pkg.Notes = strings.TrimSpace(record[7])
	}
	return pkg, nil
}

// ListSites loads addresses.csv.
// Expected CSV format: id,name,address[,zip]
func (s *Source) ListSites(ctx context.Context) ([]domain.Site, error) {
	rows, err := s.readAll(ctx, AddressesFile)
	if err != nil {
		return nil, err
	}

	sites := make([]domain.Site, 0, len(rows))
	for i, record := range rows {
		lineNum := i + 2
		if isBlank(record) {
			continue
		}
		if len(record) < 3 {
			return nil, errors.Errorf("invalid %s format at line %d: expected at least 3 columns, got %d", AddressesFile, lineNum, len(record))
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid location id at line %d", lineNum)
		}
		site := domain.Site{
			ID:      id,
			Name:    strings.TrimSpace(record[1]),
			Address: strings.TrimSpace(record[2]),
		}
		if len(record) > 3 {
			site.Zip = strings.TrimSpace(record[3])
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// DistanceTable pairs the location names of addresses.csv with the matrix in
// distances.csv.
// Expected CSV format: a header row, then one row per location whose first
// column is a label. Blank cells are 0.
func (s *Source) DistanceTable(ctx context.Context) (ports.DistanceTable, error) {
	sites, err := s.ListSites(ctx)
	if err != nil {
		return ports.DistanceTable{}, err
	}
	names := make([]string, 0, len(sites))
	for _, site := range sites {
		names = append(names, site.Name)
	}

	rows, err := s.readAll(ctx, DistancesFile)
	if err != nil {
		return ports.DistanceTable{}, err
	}

	matrix := make([][]float64, 0, len(rows))
	for i, record := range rows {
		lineNum := i + 2
		if isBlank(record) {
			continue
		}

		row := make([]float64, 0, len(record))
		// Skip the first column row label
		for j, cell := range record[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				row = append(row, 0)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return ports.DistanceTable{}, errors.Wrapf(err, "invalid distance at line %d column %d", lineNum, j+2)
			}
			row = append(row, v)
		}
		matrix = append(matrix, row)
	}

	return ports.DistanceTable{Names: names, Matrix: matrix}, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
