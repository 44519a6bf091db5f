package services

import (
	"context"
	"delivery-simulation-service/internal/catalog"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/graph"
	"delivery-simulation-service/internal/ledger"
	"delivery-simulation-service/internal/platform/obs"
	"delivery-simulation-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FleetResult is everything one run produced. Err joins the per-vehicle
// aborts; the other vehicles' results are complete regardless.
type FleetResult struct {
	RunID             uuid.UUID
	Scenario          domain.Scenario
	Vehicles          []*VehicleResult
	Catalog           *catalog.Catalog
	Ledger            *ledger.Ledger
	Revisions         []Revision
	TotalDistance     float64
	CorrectionApplied bool
	Err               error
}

// Aborted returns the vehicles that stopped early.
func (r *FleetResult) Aborted() []*VehicleResult {
	var out []*VehicleResult
	for _, v := range r.Vehicles {
		if v.Err != nil {
			out = append(out, v)
		}
	}
	return out
}

// PackageAsOf returns the package record in effect at t: the record a
// correction replaced when t precedes the correction, the final record
// otherwise.
func (r *FleetResult) PackageAsOf(id int, t time.Time) (*domain.Package, error) {
	pkg, err := r.Catalog.Get(id)
	if err != nil {
		return nil, err
	}
	for _, rev := range r.Revisions {
		if rev.Previous.PackageID == id && t.Before(rev.At) {
			return rev.Previous, nil
		}
	}
	return pkg, nil
}

// RunFleet simulates the scenario's trucks one after another in schedule
// order. The returned error is only for setup failures (bad inputs, graph
// construction, manifest loading); vehicle aborts are reported in
// FleetResult.Err.
func RunFleet(
	ctx context.Context,
	sc domain.Scenario,
	pkgRepo ports.PackageRepository,
	locRepo ports.LocationRepository,
	decider ports.AddressDecider,
	log zerolog.Logger,
) (res *FleetResult, err error) {
	defer obs.Time(ctx, log, "fleet.run")(&err)

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("run fleet: %w", err)
	}

	pkgs, err := pkgRepo.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("run fleet: list packages: %w", err)
	}
	sites, err := locRepo.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("run fleet: list sites: %w", err)
	}
	table, err := locRepo.DistanceTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("run fleet: distance table: %w", err)
	}

	g, err := graph.New(table.Names, table.Matrix, sc.Depot, log)
	if err != nil {
		return nil, fmt.Errorf("run fleet: %w", err)
	}
	cat, err := catalog.New(pkgs, sites)
	if err != nil {
		return nil, fmt.Errorf("run fleet: %w", err)
	}
	led := ledger.New(cat.Len())

	trucks := make([]*domain.Truck, 0, len(sc.Vehicles))
	for _, v := range sc.Vehicles {
		trucks = append(trucks, domain.NewTruck(v.TruckID, sc.TruckCapacity, sc.TruckSpeed, sc.Depot))
	}
	if err := LoadManifests(trucks, sc.Vehicles, cat, log); err != nil {
		return nil, fmt.Errorf("run fleet: %w", err)
	}

	res = &FleetResult{
		RunID:    uuid.New(),
		Scenario: sc,
		Catalog:  cat,
		Ledger:   led,
	}
	runLog := log.With().Str("run_id", res.RunID.String()).Logger()
	sim := NewSimulator(g, cat, led, sc, decider, runLog)

	var (
		acc    Accumulator
		aborts []error
	)
	for i, truck := range trucks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run fleet: %w", err)
		}

		var vr *VehicleResult
		vr, acc = sim.Run(truck, sc.At(sc.Vehicles[i].Departure), acc)
		res.Vehicles = append(res.Vehicles, vr)
		if vr.Err != nil {
			aborts = append(aborts, vr.Err)
		}
	}

	led.Compress()
	res.Revisions = sim.Revisions()

	res.TotalDistance = acc.FleetDistance
	res.CorrectionApplied = acc.CorrectionApplied
	res.Err = errors.Join(aborts...)

	runLog.Info().
		Int("vehicles", len(res.Vehicles)).
		Int("aborted", len(aborts)).
		Float64("total_distance", res.TotalDistance).
		Bool("correction_applied", res.CorrectionApplied).
		Msg("fleet run finished")

	return res, nil
}
