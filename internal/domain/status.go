package domain

import "time"

// StatusKind tags the variant held by a Status.
type StatusKind string

const (
	KindAtHub     StatusKind = "AT_HUB"
	KindInTransit StatusKind = "IN_TRANSIT"
	KindDelivered StatusKind = "DELIVERED"
	// KindNote carries a free-text override, e.g. "Wrong address listed".
	KindNote StatusKind = "NOTE"
)

// Status is the delivery state of a package: one of the fixed lifecycle
// states, or a note that replaces the lifecycle state for display.
type Status struct {
	Kind StatusKind
	Note string
}

var (
	StatusAtHub     = Status{Kind: KindAtHub}
	StatusInTransit = Status{Kind: KindInTransit}
	StatusDelivered = Status{Kind: KindDelivered}
)

// NoteStatus builds a free-text override status.
func NoteStatus(note string) Status {
	return Status{Kind: KindNote, Note: note}
}

// IsNote reports whether s is a free-text override.
func (s Status) IsNote() bool { return s.Kind == KindNote }

// IsZero reports whether s was never assigned.
func (s Status) IsZero() bool { return s.Kind == "" }

func (s Status) String() string {
	if s.Kind == KindNote {
		return s.Note
	}
	return string(s.Kind)
}

// Rank orders lifecycle states. Notes and unknown kinds rank -1.
func (s Status) Rank() int {
	switch s.Kind {
	case KindAtHub:
		return 0
	case KindInTransit:
		return 1
	case KindDelivered:
		return 2
	default:
		return -1
	}
}

// StatusEntry records a package status change at a simulated instant.
type StatusEntry struct {
	At     time.Time
	Status Status
}
