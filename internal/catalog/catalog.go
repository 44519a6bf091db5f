// Package catalog owns the day's package records and answers lookups by id
// and by attribute.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/lookup"
)

type Catalog struct {
	packages *lookup.Table[int, *domain.Package]
	sites    *lookup.Table[string, string]
}

// New indexes sites by street address and resolves every package's
// destination location from its address. A package whose address matches no
// site keeps its raw street address as the destination. The records are
// copied; callers' packages are not mutated.
func New(pkgs []*domain.Package, sites []domain.Site) (*Catalog, error) {
	c := &Catalog{
		packages: lookup.New[int, *domain.Package](len(pkgs)),
		sites:    lookup.New[string, string](len(sites)),
	}

	for _, s := range sites {
		c.sites.Insert(normalizeAddress(s.Address), s.Name)
	}

	for _, p := range pkgs {
		if p.PackageID <= 0 {
			return nil, fmt.Errorf("catalog: invalid package id %d", p.PackageID)
		}
		if c.packages.ContainsKey(p.PackageID) {
			return nil, fmt.Errorf("catalog: duplicate package id %d", p.PackageID)
		}
		pkg := p.Clone()
		if pkg.Destination == "" {
			pkg.Destination = c.ResolveLocation(pkg.Address.Street)
		}
		if pkg.Status.IsZero() {
			pkg.Status = domain.StatusAtHub
		}
		c.packages.Insert(pkg.PackageID, pkg)
	}

	return c, nil
}

// normalizeAddress collapses whitespace so address keys compare consistently.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ResolveLocation maps a street address to a location name, falling back to
// the address itself.
func (c *Catalog) ResolveLocation(street string) string {
	if name, ok := c.sites.Lookup(normalizeAddress(street)); ok {
		return name
	}
	return street
}

// Get returns the live record for id or domain.ErrPackageNotFound.
func (c *Catalog) Get(id int) (*domain.Package, error) {
	p, ok := c.packages.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("get package %d: %w", id, domain.ErrPackageNotFound)
	}
	return p, nil
}

// Update replaces the record stored under pkg.PackageID.
func (c *Catalog) Update(pkg *domain.Package) error {
	if !c.packages.ContainsKey(pkg.PackageID) {
		return fmt.Errorf("update package %d: %w", pkg.PackageID, domain.ErrPackageNotFound)
	}
	c.packages.Insert(pkg.PackageID, pkg)
	return nil
}

func (c *Catalog) Len() int { return c.packages.Len() }

// All returns every package in ascending id order.
func (c *Catalog) All() []*domain.Package {
	return c.Filter(func(*domain.Package) bool { return true })
}

// Filter returns the packages matching pred in ascending id order.
func (c *Catalog) Filter(pred func(*domain.Package) bool) []*domain.Package {
	out := make([]*domain.Package, 0, c.packages.Len())
	for _, p := range c.packages.Values() {
		if pred(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Package) int { return a.PackageID - b.PackageID })
	return out
}

func (c *Catalog) ByTruck(truckID int) []*domain.Package {
	return c.Filter(func(p *domain.Package) bool { return p.TruckID == truckID })
}

func (c *Catalog) ByStatus(status domain.Status) []*domain.Package {
	return c.Filter(func(p *domain.Package) bool { return p.Status == status })
}

func (c *Catalog) ByDeadline(deadline string) []*domain.Package {
	return c.Filter(func(p *domain.Package) bool { return p.Deadline == deadline })
}

func (c *Catalog) ByAddress(street string) []*domain.Package {
	street = normalizeAddress(street)
	return c.Filter(func(p *domain.Package) bool { return normalizeAddress(p.Address.Street) == street })
}

func (c *Catalog) ByCity(city string) []*domain.Package {
	return c.Filter(func(p *domain.Package) bool { return strings.EqualFold(p.Address.City, city) })
}

func (c *Catalog) ByZip(zip string) []*domain.Package {
	return c.Filter(func(p *domain.Package) bool { return p.Address.Zip == zip })
}

func (c *Catalog) ByWeight(weight float64) []*domain.Package {
	return c.Filter(func(p *domain.Package) bool { return p.Weight == weight })
}
