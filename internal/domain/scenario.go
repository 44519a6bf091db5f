package domain

import (
	"fmt"
	"time"
)

// VehicleSchedule is one truck's fixed manifest and logical departure,
// expressed as an offset from midnight of the simulated day.
type VehicleSchedule struct {
	TruckID    int
	Departure  time.Duration
	PackageIDs []int
}

// AddressCorrection describes the one package whose listed address is known
// to be wrong, and what it becomes if the correction is accepted.
type AddressCorrection struct {
	PackageID int
	// Cutover is the time of day from which the correction may be offered.
	Cutover     time.Duration
	Destination string
	Address     Address
	// Weight replaces the package weight when positive.
	Weight float64
	// WrongAddressNote is the status shown when the correction is declined.
	WrongAddressNote string
}

// Scenario holds the per-run inputs that are not tabular data.
type Scenario struct {
	Depot         string
	Date          time.Time
	TruckCapacity int
	TruckSpeed    float64
	Vehicles      []VehicleSchedule
	Correction    *AddressCorrection
}

// At converts a time-of-day offset into an instant on the scenario date.
func (s Scenario) At(offset time.Duration) time.Time {
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Date.Location()).Add(offset)
}

// Validate checks the scenario is runnable.
func (s Scenario) Validate() error {
	if s.Depot == "" {
		return fmt.Errorf("scenario: depot must be non-empty")
	}
	if len(s.Vehicles) == 0 {
		return fmt.Errorf("scenario: at least one vehicle is required")
	}
	seen := make(map[int]struct{}, len(s.Vehicles))
	for _, v := range s.Vehicles {
		if v.TruckID <= 0 {
			return fmt.Errorf("scenario: invalid truck id %d", v.TruckID)
		}
		if _, ok := seen[v.TruckID]; ok {
			return fmt.Errorf("scenario: duplicate truck id %d", v.TruckID)
		}
		seen[v.TruckID] = struct{}{}
		if v.Departure < 0 || v.Departure >= 24*time.Hour {
			return fmt.Errorf("scenario: truck %d departure %s is outside the day", v.TruckID, v.Departure)
		}
	}
	if c := s.Correction; c != nil {
		if c.PackageID <= 0 {
			return fmt.Errorf("scenario: correction package id %d is invalid", c.PackageID)
		}
		if c.Destination == "" && c.Address.Street == "" {
			return fmt.Errorf("scenario: correction for package %d has no corrected address", c.PackageID)
		}
	}
	return nil
}
