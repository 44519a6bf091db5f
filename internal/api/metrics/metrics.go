// Package metrics defines the Prometheus metrics of the simulation service.
// They are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"delivery-simulation-service/internal/services"
)

const namespace = "delivery"

// SimulationsTotal counts fleet runs.
// Label:
//   - outcome: "ok", "partial" (some vehicle aborted) or "error" (setup failed)
var SimulationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_total",
		Help:      "Total number of fleet simulations run, by outcome.",
	},
	[]string{"outcome"},
)

// PackagesDeliveredTotal counts packages delivered across all runs.
var PackagesDeliveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "packages_delivered_total",
		Help:      "Total number of packages delivered by simulated trucks.",
	},
)

// VehicleAbortsTotal counts trucks whose simulation stopped early.
var VehicleAbortsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicle_aborts_total",
		Help:      "Total number of truck simulations aborted.",
	},
)

// FleetDistanceMiles is the combined distance of the latest run.
var FleetDistanceMiles = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "fleet_distance_miles",
		Help:      "Combined distance driven by all trucks in the latest simulation.",
	},
)

// SimulationDuration measures wall-clock time of a fleet run.
var SimulationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Wall-clock duration of fleet simulations.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ObserveRun records a finished fleet run.
func ObserveRun(res *services.FleetResult, err error) {
	if err != nil {
		SimulationsTotal.WithLabelValues("error").Inc()
		return
	}

	outcome := "ok"
	if res.Err != nil {
		outcome = "partial"
	}
	SimulationsTotal.WithLabelValues(outcome).Inc()

	for _, v := range res.Vehicles {
		PackagesDeliveredTotal.Add(float64(len(v.Delivered)))
		if v.Err != nil {
			VehicleAbortsTotal.Inc()
		}
	}
	FleetDistanceMiles.Set(res.TotalDistance)
}
