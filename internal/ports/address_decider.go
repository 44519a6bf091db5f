package ports

import (
	"delivery-simulation-service/internal/domain"
	"time"
)

// AddressDecider decides whether a package with a known-bad address gets its
// address corrected. It is called synchronously from the simulation loop.
type AddressDecider interface {
	CorrectAddress(pkg domain.Package, at time.Time) (bool, error)
}
