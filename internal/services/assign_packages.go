package services

import (
	"delivery-simulation-service/internal/catalog"
	"delivery-simulation-service/internal/domain"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// LoadManifests loads each truck with its scheduled package ids, in listed
// order. trucks and schedules are index-aligned.
//
// A package already loaded on an earlier truck is skipped, and a truck that
// fills up stops taking packages; both are logged at warn level rather than
// failing the run. An id missing from the catalog is an error.
func LoadManifests(
	trucks []*domain.Truck,
	schedules []domain.VehicleSchedule,
	cat *catalog.Catalog,
	log zerolog.Logger,
) error {
	if len(trucks) != len(schedules) {
		return fmt.Errorf("load manifests: %d trucks for %d schedules", len(trucks), len(schedules))
	}

	for i, truck := range trucks {
		for _, id := range schedules[i].PackageIDs {
			pkg, err := cat.Get(id)
			if err != nil {
				return fmt.Errorf("load manifests: truck %d: %w", truck.TruckID, err)
			}

			if pkg.Loaded {
				log.Warn().
					Int("truck_id", truck.TruckID).
					Int("package_id", id).
					Int("loaded_on", pkg.TruckID).
					Msg("package already loaded, skipping")
				continue
			}

			if err := truck.Load(pkg); err != nil {
				if errors.Is(err, domain.ErrCapacityExceeded) {
					log.Warn().
						Int("truck_id", truck.TruckID).
						Int("package_id", id).
						Int("capacity", truck.Capacity).
						Msg("truck full, package left at hub")
					continue
				}
				return fmt.Errorf("load manifests: %w", err)
			}
		}

		log.Debug().
			Int("truck_id", truck.TruckID).
			Ints("packages", truck.PackageIDs()).
			Msg("manifest loaded")
	}

	return nil
}
