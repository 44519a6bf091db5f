package services

import (
	"delivery-simulation-service/internal/catalog"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ledger"
	"delivery-simulation-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Accumulator is the state shared by every vehicle of one run. Each
// simulation call takes the previous value and returns the next one; callers
// must thread it through vehicles in schedule order.
type Accumulator struct {
	FleetDistance     float64
	CorrectionApplied bool
}

// VehicleResult is what one truck's simulation produced.
type VehicleResult struct {
	TruckID   int
	Departure time.Time
	// Plan is the route planned at departure; a correction may re-plan the
	// rest of the day without updating it.
	Plan      *domain.RoutePlan
	Events    []Event
	Distance  float64
	ReturnAt  time.Time
	Delivered []int
	// Err is a *domain.VehicleAbortError when the truck stopped early.
	Err error
}

// Elapsed is the time between departure and the last recorded arrival.
func (r *VehicleResult) Elapsed() time.Duration { return r.ReturnAt.Sub(r.Departure) }

// Revision is a package record as it was before an accepted address
// correction replaced it at At.
type Revision struct {
	At       time.Time
	Previous *domain.Package
}

// Simulator walks trucks along planned routes on a simulated clock and
// writes every status change into the ledger.
type Simulator struct {
	graph      ports.DistanceGraph
	catalog    *catalog.Catalog
	ledger     *ledger.Ledger
	correction *domain.AddressCorrection
	cutover    time.Time
	decider    ports.AddressDecider
	revisions  []Revision
	log        zerolog.Logger
}

// NewSimulator wires a simulator for one scenario. A nil decider means the
// address correction is never offered.
func NewSimulator(
	graph ports.DistanceGraph,
	cat *catalog.Catalog,
	led *ledger.Ledger,
	sc domain.Scenario,
	decider ports.AddressDecider,
	log zerolog.Logger,
) *Simulator {
	s := &Simulator{
		graph:   graph,
		catalog: cat,
		ledger:  led,
		decider: decider,
		log:     log,
	}
	if sc.Correction != nil && decider != nil {
		s.correction = sc.Correction
		s.cutover = sc.At(sc.Correction.Cutover)
	}
	return s
}

// Run plans the truck's route from its current location and simulates it.
// A planning failure aborts the truck at its departure time.
func (s *Simulator) Run(truck *domain.Truck, departAt time.Time, acc Accumulator) (*VehicleResult, Accumulator) {
	plan, err := PlanTruckRoute(s.graph, truck)
	if err != nil {
		res := &VehicleResult{TruckID: truck.TruckID, Departure: departAt, ReturnAt: departAt}
		s.depart(truck, departAt)
		s.abort(truck, res, departAt, err)
		return res, acc
	}
	return s.SimulateVehicle(truck, plan, departAt, acc)
}

// SimulateVehicle drives truck along plan starting at departAt. It never
// returns an error: an abort is reported in the result's Err after the
// packages still aboard were finalized as IN_TRANSIT.
func (s *Simulator) SimulateVehicle(
	truck *domain.Truck,
	plan *domain.RoutePlan,
	departAt time.Time,
	acc Accumulator,
) (*VehicleResult, Accumulator) {
	res := &VehicleResult{
		TruckID:   truck.TruckID,
		Departure: departAt,
		Plan:      plan,
		ReturnAt:  departAt,
	}
	s.depart(truck, departAt)

	clock := departAt
	queue := plan.Steps

	for len(queue) > 0 {
		step := queue[0]
		queue = queue[1:]

		clock = clock.Add(domain.LegDuration(step.Distance, truck.Speed))
		res.Distance += step.Distance
		acc.FleetDistance += step.Distance
		truck.CurrentLocation = step.Location

		replan := false
		if s.correctionDue(truck, clock, acc) {
			if err := s.applyCorrection(truck, clock); err != nil {
				s.abort(truck, res, clock, err)
				return res, acc
			}
			acc.CorrectionApplied = true
			replan = true
		}

		delivered := s.deliver(truck, step.Location, clock)
		for _, p := range delivered {
			res.Delivered = append(res.Delivered, p.PackageID)
		}
		s.markAboard(truck, clock)

		res.Events = append(res.Events, s.event(truck, step, delivered, clock, res.Distance, acc.FleetDistance))
		res.ReturnAt = clock

		if replan {
			next, err := PlanTruckRoute(s.graph, truck)
			if err != nil {
				s.abort(truck, res, clock, err)
				return res, acc
			}
			s.log.Info().
				Int("truck_id", truck.TruckID).
				Str("from", truck.CurrentLocation).
				Strs("route", next.Locations()).
				Msg("route re-planned after address decision")
			queue = next.Steps
		}
	}

	if !truck.AtDepot() {
		back, err := s.graph.DistanceBetween(truck.CurrentLocation, s.graph.Depot())
		if err != nil {
			s.abort(truck, res, clock, fmt.Errorf("return to depot: %w", err))
			return res, acc
		}
		clock = clock.Add(domain.LegDuration(back, truck.Speed))
		res.Distance += back
		acc.FleetDistance += back
		truck.CurrentLocation = s.graph.Depot()

		res.Events = append(res.Events, Event{
			At:            clock,
			TruckID:       truck.TruckID,
			Kind:          EventReturning,
			Location:      truck.CurrentLocation,
			Leg:           back,
			TruckDistance: res.Distance,
			FleetDistance: acc.FleetDistance,
			OnBoard:       truck.PackageIDs(),
		})
		res.ReturnAt = clock
	}

	s.log.Info().
		Int("truck_id", truck.TruckID).
		Float64("distance", res.Distance).
		Float64("fleet_distance", acc.FleetDistance).
		Int("delivered", len(res.Delivered)).
		Str("return_at", res.ReturnAt.Format(time.TimeOnly)).
		Msg("truck finished route")

	return res, acc
}

// Revisions lists the records replaced by accepted corrections so far.
func (s *Simulator) Revisions() []Revision {
	out := make([]Revision, len(s.revisions))
	copy(out, s.revisions)
	return out
}

// depart stamps every package aboard as AT_HUB at the departure time.
func (s *Simulator) depart(truck *domain.Truck, at time.Time) {
	for _, p := range truck.Packages {
		t := at
		p.LoadedAt = &t
		p.Status = domain.StatusAtHub
		s.ledger.Record(p.PackageID, at, domain.StatusAtHub)
	}
}

func (s *Simulator) correctionDue(truck *domain.Truck, clock time.Time, acc Accumulator) bool {
	if s.correction == nil || acc.CorrectionApplied {
		return false
	}
	if clock.Before(s.cutover) {
		return false
	}
	return truck.Find(s.correction.PackageID) != nil
}

// applyCorrection asks the decider about the flagged package and swaps the
// resulting record into both the truck and the catalog.
func (s *Simulator) applyCorrection(truck *domain.Truck, clock time.Time) error {
	c := s.correction
	current := truck.Find(c.PackageID)

	accept, err := s.decider.CorrectAddress(*current, clock)
	if err != nil {
		return fmt.Errorf("address decision for package %d: %w", c.PackageID, err)
	}

	updated := current.Clone()
	if accept {
		s.revisions = append(s.revisions, Revision{At: clock, Previous: current.Clone()})
		updated.Address = c.Address
		updated.Destination = c.Destination
		if updated.Destination == "" {
			updated.Destination = s.catalog.ResolveLocation(c.Address.Street)
		}
		if c.Weight > 0 {
			updated.Weight = c.Weight
		}
	} else {
		updated.Status = domain.NoteStatus(c.WrongAddressNote)
		s.ledger.Record(updated.PackageID, clock, updated.Status)
	}

	truck.Replace(updated)
	if err := s.catalog.Update(updated); err != nil {
		return fmt.Errorf("address decision for package %d: %w", c.PackageID, err)
	}

	s.log.Info().
		Int("truck_id", truck.TruckID).
		Int("package_id", c.PackageID).
		Bool("corrected", accept).
		Str("destination", updated.Destination).
		Str("at", clock.Format(time.TimeOnly)).
		Msg("address decision applied")
	return nil
}

// deliver unloads every package bound for location.
func (s *Simulator) deliver(truck *domain.Truck, location string, clock time.Time) []*domain.Package {
	delivered := truck.PackagesAt(location)
	for _, p := range delivered {
		t := clock
		p.Status = domain.StatusDelivered
		p.DeliveredAt = &t
		s.ledger.Record(p.PackageID, clock, domain.StatusDelivered)
		truck.Remove(p)
	}
	return delivered
}

// markAboard brings the status of every package still aboard in line with
// where the truck is. A note status is left alone until delivery.
func (s *Simulator) markAboard(truck *domain.Truck, clock time.Time) {
	status := domain.StatusInTransit
	if truck.CurrentLocation == s.graph.Depot() {
		status = domain.StatusAtHub
	}
	for _, p := range truck.Packages {
		if p.Status.IsNote() {
			continue
		}
		p.Status = status
		s.ledger.Record(p.PackageID, clock, status)
	}
}

func (s *Simulator) event(
	truck *domain.Truck,
	step domain.RouteStep,
	delivered []*domain.Package,
	clock time.Time,
	truckDistance, fleetDistance float64,
) Event {
	e := Event{
		At:            clock,
		TruckID:       truck.TruckID,
		Kind:          EventPassing,
		Location:      step.Location,
		Leg:           step.Distance,
		TruckDistance: truckDistance,
		FleetDistance: fleetDistance,
		OnBoard:       truck.PackageIDs(),
	}
	for _, p := range delivered {
		e.PackageIDs = append(e.PackageIDs, p.PackageID)
		e.Destinations = append(e.Destinations, p.Destination)
	}

	switch {
	case step.Location == s.graph.Depot():
		e.Kind = EventReturning
	case len(delivered) > 0:
		e.Kind = EventDelivering
	}
	return e
}

// abort finalizes every package still aboard as IN_TRANSIT at the failure
// time and records the failure on res.
func (s *Simulator) abort(truck *domain.Truck, res *VehicleResult, at time.Time, cause error) {
	for _, p := range truck.Packages {
		p.Status = domain.StatusInTransit
		s.ledger.Record(p.PackageID, at, domain.StatusInTransit)
	}

	location := truck.CurrentLocation
	var lnf *domain.LocationNotFoundError
	if errors.As(cause, &lnf) {
		location = lnf.Name
	}

	res.ReturnAt = at
	res.Err = &domain.VehicleAbortError{
		TruckID:  truck.TruckID,
		Location: location,
		At:       at,
		Err:      cause,
	}

	s.log.Error().
		Err(cause).
		Int("truck_id", truck.TruckID).
		Str("location", location).
		Str("at", at.Format(time.TimeOnly)).
		Ints("aboard", truck.PackageIDs()).
		Msg("truck simulation aborted")
}
