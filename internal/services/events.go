package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type EventKind string

const (
	EventDelivering EventKind = "delivering"
	EventReturning  EventKind = "returning"
	// EventPassing is a step where nothing aboard was bound for the location.
	EventPassing EventKind = "passing"
)

// Event is one line of a truck's delivery log, taken after the step's
// deliveries were made.
type Event struct {
	At       time.Time
	TruckID  int
	Kind     EventKind
	Location string
	Leg      float64
	// PackageIDs and Destinations are index-aligned.
	PackageIDs    []int
	Destinations  []string
	TruckDistance float64
	FleetDistance float64
	OnBoard       []int
}

func (e Event) String() string {
	var b strings.Builder
	clock := e.At.Format(time.TimeOnly)

	switch e.Kind {
	case EventReturning:
		fmt.Fprintf(&b, "\t%s: Truck %d Returning to: '%s'\n", clock, e.TruckID, e.Location)
	case EventDelivering:
		fmt.Fprintf(&b, "\t%s: Truck %d Delivering packages %s to %s\n",
			clock, e.TruckID, formatIDs(e.PackageIDs), formatNames(e.Destinations))
		fmt.Fprintf(&b, "\tAll packages on board: %s\n", formatIDs(e.OnBoard))
	default:
		fmt.Fprintf(&b, "\t%s: Truck %d Passing through: '%s'\n", clock, e.TruckID, e.Location)
	}

	fmt.Fprintf(&b, "\tTotal distance traveled by Truck %d: %.2f miles\n", e.TruckID, e.TruckDistance)
	fmt.Fprintf(&b, "\tCombined total distance of all trucks: %.2f miles\n", e.FleetDistance)
	fmt.Fprintf(&b, "\tUpdated truck packages left: %s\n", formatIDs(e.OnBoard))
	return b.String()
}

// FormatLog renders events as one text block, entries separated by a blank
// line.
func FormatLog(events []Event) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "\n")
}

func formatIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatNames(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, "'"+n+"'")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
