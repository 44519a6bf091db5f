package main

import (
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/services"
	"fmt"
	"io"
	"time"
)

// writeRun prints every truck's delivery log followed by the fleet totals.
func writeRun(w io.Writer, res *services.FleetResult) {
	for _, v := range res.Vehicles {
		fmt.Fprintf(w, "Truck %d departs at %s\n", v.TruckID, v.Departure.Format(time.TimeOnly))
		if log := services.FormatLog(v.Events); log != "" {
			fmt.Fprintln(w, log)
		}
		if v.Err != nil {
			fmt.Fprintf(w, "Truck %d stopped early: %v\n", v.TruckID, v.Err)
		}
		fmt.Fprintf(w, "Truck %d finished at %s after %s, %.2f miles\n\n",
			v.TruckID, v.ReturnAt.Format(time.TimeOnly), v.Elapsed(), v.Distance)
	}
	fmt.Fprintf(w, "Combined total distance of all trucks: %.2f miles\n", res.TotalDistance)
}

// writeStatusReport prints each package as it stood at end together with its
// status entries in [start, end]. only restricts the report to one package.
func writeStatusReport(w io.Writer, res *services.FleetResult, start, end time.Time, only int) error {
	fmt.Fprintf(w, "\nPackage statuses between %s and %s\n", start.Format(time.TimeOnly), end.Format(time.TimeOnly))

	pkgs := res.Catalog.All()
	if only > 0 {
		p, err := res.Catalog.Get(only)
		if err != nil {
			return err
		}
		pkgs = []*domain.Package{p}
	}

	for _, p := range pkgs {
		asOf, err := res.PackageAsOf(p.PackageID, end)
		if err != nil {
			return err
		}
		a := asOf.Address
		fmt.Fprintf(w, "Package %d: %s, %s, %s %s | deadline %s | %.0f kg | truck %d\n",
			asOf.PackageID, a.Street, a.City, a.State, a.Zip, asOf.Deadline, asOf.Weight, asOf.TruckID)
		for _, e := range res.Ledger.Window(p.PackageID, start, end) {
			fmt.Fprintf(w, "\t%s %s\n", e.At.Format(time.TimeOnly), e.Status)
		}
	}
	return nil
}
