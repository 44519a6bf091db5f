package dto

import "time"

type AddressResponse struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type PackageResponse struct {
	PackageID   int             `json:"package_id"`
	Destination string          `json:"destination"`
	Address     AddressResponse `json:"address"`
	Deadline    string          `json:"deadline"`
	Weight      float64         `json:"weight"`
	Notes       string          `json:"notes,omitempty"`
	Status      string          `json:"status"`
	TruckID     int             `json:"truck_id,omitempty"`
	LoadedAt    *time.Time      `json:"loaded_at"`
	DeliveredAt *time.Time      `json:"delivered_at"`
}

type ListPackagesResponse struct {
	RunID    string            `json:"run_id,omitempty"`
	Packages []PackageResponse `json:"packages"`
}

type StatusEntryResponse struct {
	At     time.Time `json:"at"`
	Clock  string    `json:"clock"`
	Status string    `json:"status"`
}

type PackageDetailResponse struct {
	PackageResponse
	History []StatusEntryResponse `json:"history"`
}

type PackageWindowResponse struct {
	Package PackageResponse       `json:"package"`
	Entries []StatusEntryResponse `json:"entries"`
}

type StatusWindowResponse struct {
	RunID    string                  `json:"run_id,omitempty"`
	Start    string                  `json:"start"`
	End      string                  `json:"end"`
	Packages []PackageWindowResponse `json:"packages"`
}
