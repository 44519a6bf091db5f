package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"delivery-simulation-service/internal/domain"
)

// ScenarioFile is the YAML form of a simulation scenario. Clock times are
// "HH:MM" or "HH:MM:SS" on Date.
type ScenarioFile struct {
	Depot         string          `yaml:"depot"`
	Date          string          `yaml:"date"`
	TruckCapacity int             `yaml:"truck_capacity"`
	TruckSpeed    float64         `yaml:"truck_speed"`
	Vehicles      []VehicleFile   `yaml:"vehicles"`
	Correction    *CorrectionFile `yaml:"correction"`
}

type VehicleFile struct {
	TruckID   int    `yaml:"truck_id"`
	Departure string `yaml:"departure"`
	Packages  []int  `yaml:"packages"`
}

type CorrectionFile struct {
	PackageID        int     `yaml:"package_id"`
	Cutover          string  `yaml:"cutover"`
	Destination      string  `yaml:"destination"`
	Street           string  `yaml:"street"`
	City             string  `yaml:"city"`
	State            string  `yaml:"state"`
	Zip              string  `yaml:"zip"`
	Weight           float64 `yaml:"weight"`
	WrongAddressNote string  `yaml:"wrong_address_note"`
}

// DefaultScenarioFile is the three-truck day the bundled data set was built
// for.
func DefaultScenarioFile() *ScenarioFile {
	return &ScenarioFile{
		Depot:         "Western Governors University",
		Date:          "2021-07-01",
		TruckCapacity: domain.DefaultTruckCapacity,
		TruckSpeed:    domain.DefaultTruckSpeed,
		Vehicles: []VehicleFile{
			{TruckID: 1, Departure: "08:00", Packages: []int{15, 16, 13, 14, 20, 21, 29, 19, 17, 24, 30, 31, 1, 22}},
			{TruckID: 2, Departure: "09:15", Packages: []int{40, 37, 34, 7, 11, 23, 27, 36, 38, 18, 3, 26, 6, 25}},
			{TruckID: 3, Departure: "11:00", Packages: []int{9, 28, 32, 2, 5, 10, 12, 35, 39, 33, 8, 4}},
		},
		Correction: &CorrectionFile{
			PackageID:        9,
			Cutover:          "10:20",
			Destination:      "Third District Juvenile Court",
			Street:           "410 S State St",
			City:             "Salt Lake City",
			State:            "UT",
			Zip:              "84111",
			Weight:           5,
			WrongAddressNote: "Wrong address listed",
		},
	}
}

// DefaultScenario is DefaultScenarioFile converted.
func DefaultScenario() domain.Scenario {
	sc, err := DefaultScenarioFile().Scenario()
	if err != nil {
		panic(fmt.Sprintf("config: built-in scenario: %v", err))
	}
	return sc
}

// LoadScenario reads a YAML scenario file. If the file doesn't exist, the
// built-in scenario is used. Keys missing from the file keep their defaults.
func LoadScenario(path string) (domain.Scenario, error) {
	f := DefaultScenarioFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f.Scenario()
		}
		return domain.Scenario{}, fmt.Errorf("load scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return domain.Scenario{}, fmt.Errorf("load scenario %q: %w", path, err)
	}

	sc, err := f.Scenario()
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("load scenario %q: %w", path, err)
	}
	return sc, nil
}

// Scenario converts the file form and validates it.
func (f *ScenarioFile) Scenario() (domain.Scenario, error) {
	date, err := time.ParseInLocation(time.DateOnly, f.Date, time.UTC)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("scenario: date %q: %w", f.Date, err)
	}

	sc := domain.Scenario{
		Depot:         f.Depot,
		Date:          date,
		TruckCapacity: f.TruckCapacity,
		TruckSpeed:    f.TruckSpeed,
	}
	for _, v := range f.Vehicles {
		dep, err := ParseClock(v.Departure)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("scenario: truck %d departure: %w", v.TruckID, err)
		}
		sc.Vehicles = append(sc.Vehicles, domain.VehicleSchedule{
			TruckID:    v.TruckID,
			Departure:  dep,
			PackageIDs: v.Packages,
		})
	}

	if c := f.Correction; c != nil && c.PackageID > 0 {
		cutover, err := ParseClock(c.Cutover)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("scenario: correction cutover: %w", err)
		}
		sc.Correction = &domain.AddressCorrection{
			PackageID:   c.PackageID,
			Cutover:     cutover,
			Destination: c.Destination,
			Address: domain.Address{
				Street: c.Street,
				City:   c.City,
				State:  c.State,
				Zip:    c.Zip,
			},
			Weight:           c.Weight,
			WrongAddressNote: c.WrongAddressNote,
		}
	}

	if err := sc.Validate(); err != nil {
		return domain.Scenario{}, err
	}
	return sc, nil
}

// ParseClock turns "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	for _, layout := range []string{time.TimeOnly, "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q, want HH:MM or HH:MM:SS", s)
}
