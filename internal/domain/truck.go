package domain

import (
	"fmt"
	"slices"
)

const (
	DefaultTruckCapacity = 16
	// DefaultTruckSpeed is in distance units (miles) per hour.
	DefaultTruckSpeed = 18.0
)

// Delivery truck aggregate holding the packages currently aboard.
type Truck struct {
	TruckID         int
	Capacity        int
	Speed           float64
	StartLocation   string
	CurrentLocation string
	Packages        []*Package
}

func NewTruck(id int, capacity int, speed float64, hub string) *Truck {
	if capacity <= 0 {
		capacity = DefaultTruckCapacity
	}
	if speed <= 0 {
		speed = DefaultTruckSpeed
	}
	return &Truck{
		TruckID:         id,
		Capacity:        capacity,
		Speed:           speed,
		StartLocation:   hub,
		CurrentLocation: hub,
	}
}

// Load a single package onto the truck.
func (t *Truck) Load(pkg *Package) error {
	if len(t.Packages) >= t.Capacity {
		return fmt.Errorf("load truck: truck %d (capacity=%d): %w", t.TruckID, t.Capacity, ErrCapacityExceeded)
	}
	pkg.TruckID = t.TruckID
	pkg.Loaded = true
	pkg.Status = StatusAtHub
	t.Packages = append(t.Packages, pkg)
	return nil
}

// Load multiple packages onto the truck.
func (t *Truck) LoadMultiple(pkgs []*Package) error {
	for _, pkg := range pkgs {
		if err := t.Load(pkg); err != nil {
			return err
		}
	}

	return nil
}

// Remove takes a package off the truck. It reports whether it was aboard.
func (t *Truck) Remove(pkg *Package) bool {
	for i, p := range t.Packages {
		if p.PackageID == pkg.PackageID {
			t.Packages = slices.Delete(t.Packages, i, i+1)
			return true
		}
	}
	return false
}

// Replace swaps in pkg for the aboard package with the same id. It reports
// whether that package was aboard.
func (t *Truck) Replace(pkg *Package) bool {
	for i, p := range t.Packages {
		if p.PackageID == pkg.PackageID {
			t.Packages[i] = pkg
			return true
		}
	}
	return false
}

// Find returns the aboard package with the given id, or nil.
func (t *Truck) Find(packageID int) *Package {
	for _, p := range t.Packages {
		if p.PackageID == packageID {
			return p
		}
	}
	return nil
}

// PackagesAt returns the aboard packages destined for location.
func (t *Truck) PackagesAt(location string) []*Package {
	var out []*Package
	for _, p := range t.Packages {
		if p.Destination == location {
			out = append(out, p)
		}
	}
	return out
}

// PackageIDs lists aboard package ids in load order.
func (t *Truck) PackageIDs() []int {
	ids := make([]int, 0, len(t.Packages))
	for _, p := range t.Packages {
		ids = append(ids, p.PackageID)
	}
	return ids
}

// Destinations is the sorted set of distinct locations the aboard packages
// still need to reach.
func (t *Truck) Destinations() []string {
	seen := make(map[string]struct{}, len(t.Packages))
	out := make([]string, 0, len(t.Packages))
	for _, p := range t.Packages {
		if _, ok := seen[p.Destination]; ok {
			continue
		}
		seen[p.Destination] = struct{}{}
		out = append(out, p.Destination)
	}
	slices.Sort(out)
	return out
}

// AtDepot reports whether the truck is at its start location.
func (t *Truck) AtDepot() bool {
	return t.CurrentLocation == t.StartLocation
}

// Unload all packages from the truck.
func (t *Truck) Clear() {
	t.Packages = nil
}
