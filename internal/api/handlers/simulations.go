package handlers

import (
	"delivery-simulation-service/internal/adapters/decision"
	"delivery-simulation-service/internal/api/dto"
	"delivery-simulation-service/internal/api/metrics"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ports"
	"delivery-simulation-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type SimulationHandler struct {
	Packages  ports.PackageRepository
	Locations ports.LocationRepository
	Scenario  domain.Scenario
	Runs      *RunStore
}

// Run simulates the whole fleet for the configured scenario and stores the
// result as the latest run. The address decision comes from the request
// body because the server cannot prompt.
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulationRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	log := zerolog.Ctx(r.Context())

	start := time.Now()
	res, err := services.RunFleet(r.Context(), h.Scenario, h.Packages, h.Locations, decision.Fixed(req.CorrectAddress), *log)
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	metrics.ObserveRun(res, err)
	if err != nil {
		log.Error().Err(err).Msg("run fleet failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	h.Runs.Set(res)

	out := dto.SimulationResponse{
		RunID:             res.RunID.String(),
		TotalDistance:     res.TotalDistance,
		CorrectionApplied: res.CorrectionApplied,
		Vehicles:          make([]dto.VehicleResponse, 0, len(res.Vehicles)),
	}
	for _, v := range res.Vehicles {
		vr := dto.VehicleResponse{
			TruckID:        v.TruckID,
			DepartAt:       v.Departure,
			ReturnAt:       v.ReturnAt,
			Distance:       v.Distance,
			ElapsedMinutes: v.Elapsed().Minutes(),
			Route:          []string{},
			Delivered:      v.Delivered,
			Log:            services.FormatLog(v.Events),
		}
		if v.Plan != nil {
			vr.Route = v.Plan.Locations()
		}
		if vr.Delivered == nil {
			vr.Delivered = []int{}
		}
		if v.Err != nil {
			vr.Error = v.Err.Error()
			out.Errors = append(out.Errors, v.Err.Error())
		}
		out.Vehicles = append(out.Vehicles, vr)
	}

	writeJSON(w, r, http.StatusOK, out)
}
