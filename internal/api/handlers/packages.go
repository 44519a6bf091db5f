package handlers

import (
	"context"
	"delivery-simulation-service/internal/api/dto"
	"delivery-simulation-service/internal/catalog"
	"delivery-simulation-service/internal/config"
	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/ledger"
	"delivery-simulation-service/internal/ports"
	"delivery-simulation-service/internal/services"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// PackageHandler exposes read-only package and status endpoints over the
// latest run. Before any run they answer from the input store with every
// package at the hub.
type PackageHandler struct {
	Packages  ports.PackageRepository
	Locations ports.LocationRepository
	Scenario  domain.Scenario
	Runs      *RunStore
}

// view is what the read endpoints answer from.
type view struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	result  *services.FleetResult
}

func (v view) runID() string {
	if v.result == nil {
		return ""
	}
	return v.result.RunID.String()
}

func (v view) packageAsOf(id int, t time.Time) (*domain.Package, error) {
	if v.result != nil {
		return v.result.PackageAsOf(id, t)
	}
	return v.catalog.Get(id)
}

func (h *PackageHandler) view(ctx context.Context) (view, error) {
	if res := h.Runs.Latest(); res != nil {
		return view{catalog: res.Catalog, ledger: res.Ledger, result: res}, nil
	}

	pkgs, err := h.Packages.ListPackages(ctx)
	if err != nil {
		return view{}, fmt.Errorf("list packages: %w", err)
	}
	sites, err := h.Locations.ListSites(ctx)
	if err != nil {
		return view{}, fmt.Errorf("list sites: %w", err)
	}
	cat, err := catalog.New(pkgs, sites)
	if err != nil {
		return view{}, err
	}
	return view{catalog: cat, ledger: ledger.New(0)}, nil
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	v, err := h.view(r.Context())
	if err != nil {
		internalError(w, r, "list packages failed", err)
		return
	}

	pkgs := v.catalog.All()
	res := dto.ListPackagesResponse{
		RunID:    v.runID(),
		Packages: make([]dto.PackageResponse, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		res.Packages = append(res.Packages, toPackageResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}

	v, err := h.view(r.Context())
	if err != nil {
		internalError(w, r, "get package failed", err)
		return
	}

	p, err := v.catalog.Get(id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}

	res := dto.PackageDetailResponse{
		PackageResponse: toPackageResponse(p),
		History:         []dto.StatusEntryResponse{},
	}
	if hist, err := v.ledger.History(id); err == nil {
		res.History = toEntries(hist)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// History answers a status window query for one package.
func (h *PackageHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := packageID(w, r)
	if !ok {
		return
	}
	start, end, ok := h.window(w, r)
	if !ok {
		return
	}

	v, err := h.view(r.Context())
	if err != nil {
		internalError(w, r, "package history failed", err)
		return
	}

	p, err := v.packageAsOf(id, end)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PackageWindowResponse{
		Package: toPackageResponse(p),
		Entries: toEntries(v.ledger.Window(id, start, end)),
	})
}

// Statuses answers a status window query for every package, showing each
// package as it was at the end of the window.
func (h *PackageHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.window(w, r)
	if !ok {
		return
	}

	v, err := h.view(r.Context())
	if err != nil {
		internalError(w, r, "status window failed", err)
		return
	}

	pkgs := v.catalog.All()
	res := dto.StatusWindowResponse{
		RunID:    v.runID(),
		Start:    start.Format(time.TimeOnly),
		End:      end.Format(time.TimeOnly),
		Packages: make([]dto.PackageWindowResponse, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		asOf, err := v.packageAsOf(p.PackageID, end)
		if err != nil {
			asOf = p
		}
		res.Packages = append(res.Packages, dto.PackageWindowResponse{
			Package: toPackageResponse(asOf),
			Entries: toEntries(v.ledger.Window(p.PackageID, start, end)),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// window reads start and end clock times on the scenario date. They default
// to the whole day.
func (h *PackageHandler) window(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	start, end := time.Duration(0), 24*time.Hour-time.Second

	if s := r.URL.Query().Get("start"); s != "" {
		d, err := config.ParseClock(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start must be HH:MM or HH:MM:SS")
			return time.Time{}, time.Time{}, false
		}
		start = d
	}
	if s := r.URL.Query().Get("end"); s != "" {
		d, err := config.ParseClock(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "end must be HH:MM or HH:MM:SS")
			return time.Time{}, time.Time{}, false
		}
		end = d
	}
	if end < start {
		writeError(w, r, http.StatusBadRequest, "end must not be before start")
		return time.Time{}, time.Time{}, false
	}

	return h.Scenario.At(start), h.Scenario.At(end), true
}

func packageID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "package id must be a positive integer")
		return 0, false
	}
	return id, true
}

func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toPackageResponse(p *domain.Package) dto.PackageResponse {
	return dto.PackageResponse{
		PackageID:   p.PackageID,
		Destination: p.Destination,
		Address: dto.AddressResponse{
			Street: p.Address.Street,
			City:   p.Address.City,
			State:  p.Address.State,
			Zip:    p.Address.Zip,
		},
		Deadline:    p.Deadline,
		Weight:      p.Weight,
		Notes:       p.Notes,
		Status:      p.Status.String(),
		TruckID:     p.TruckID,
		LoadedAt:    p.LoadedAt,
		DeliveredAt: p.DeliveredAt,
	}
}

func toEntries(h []domain.StatusEntry) []dto.StatusEntryResponse {
	out := make([]dto.StatusEntryResponse, 0, len(h))
	for _, e := range h {
		out = append(out, dto.StatusEntryResponse{
			At:     e.At,
			Clock:  e.At.Format(time.TimeOnly),
			Status: e.Status.String(),
		})
	}
	return out
}
