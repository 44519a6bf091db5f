package dto

import "time"

type SimulationRequest struct {
	CorrectAddress bool `json:"correct_address"`
}

type VehicleResponse struct {
	TruckID        int       `json:"truck_id"`
	DepartAt       time.Time `json:"depart_at"`
	ReturnAt       time.Time `json:"return_at"`
	Distance       float64   `json:"distance"`
	ElapsedMinutes float64   `json:"elapsed_minutes"`
	Route          []string  `json:"route"`
	Delivered      []int     `json:"delivered"`
	Log            string    `json:"log"`
	Error          string    `json:"error,omitempty"`
}

type SimulationResponse struct {
	RunID             string            `json:"run_id"`
	TotalDistance     float64           `json:"total_distance"`
	CorrectionApplied bool              `json:"correction_applied"`
	Vehicles          []VehicleResponse `json:"vehicles"`
	Errors            []string          `json:"errors,omitempty"`
}
