package domain

import "time"

// Address is the street address a package is labelled with.
type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Represents a single delivery unit handled by the system.
// A Package has a unique identifier and a single destination location.
// Status, delivery timestamp and truck assignment are populated during
// simulation after a route has been planned and applied.
type Package struct {
	PackageID   int
	Destination string
	Address     Address
	Deadline    string
	Weight      float64
	Notes       string
	Status      Status
	TruckID     int
	Loaded      bool
	LoadedAt    *time.Time
	DeliveredAt *time.Time
}

// Clone returns a copy that shares no pointers with p.
func (p *Package) Clone() *Package {
	c := *p
	if p.LoadedAt != nil {
		t := *p.LoadedAt
		c.LoadedAt = &t
	}
	if p.DeliveredAt != nil {
		t := *p.DeliveredAt
		c.DeliveredAt = &t
	}
	return &c
}
