package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrRouteUnreachable = errors.New("route unreachable")
	ErrKeyNotFound      = errors.New("key not found")
	ErrPackageNotFound  = errors.New("package not found")
	ErrCapacityExceeded = errors.New("truck capacity exceeded")
)

// LocationNotFoundError names a location absent from the distance graph.
type LocationNotFoundError struct {
	Name string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location %q not found", e.Name)
}

func (e *LocationNotFoundError) Is(target error) bool { return target == ErrLocationNotFound }

// UnreachableError reports that none of the remaining destinations can be
// reached by a direct edge from From.
type UnreachableError struct {
	From      string
	Remaining []string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("no edge from %q to any of [%s]", e.From, strings.Join(e.Remaining, ", "))
}

func (e *UnreachableError) Is(target error) bool { return target == ErrRouteUnreachable }

// VehicleAbortError is returned when one truck's simulation stops early.
// Location is where the truck was when it stopped and At the simulated time.
type VehicleAbortError struct {
	TruckID  int
	Location string
	At       time.Time
	Err      error
}

func (e *VehicleAbortError) Error() string {
	return fmt.Sprintf("truck %d aborted at %q (%s): %v",
		e.TruckID, e.Location, e.At.Format(time.TimeOnly), e.Err)
}

func (e *VehicleAbortError) Unwrap() error { return e.Err }
