// Package ledger keeps the time-ordered status history of every package.
//
// The simulator is the only writer. Readers query after all vehicles have
// finished; reads never modify a history.
package ledger

import (
	"fmt"
	"slices"
	"time"

	"delivery-simulation-service/internal/domain"
	"delivery-simulation-service/internal/lookup"
)

// Ledger maps a package id to its status history.
type Ledger struct {
	histories *lookup.Table[int, []domain.StatusEntry]
}

func New(capacity int) *Ledger {
	return &Ledger{histories: lookup.New[int, []domain.StatusEntry](capacity)}
}

// Append adds an entry without any duplicate suppression.
func (l *Ledger) Append(packageID int, entry domain.StatusEntry) {
	h, _ := l.histories.Lookup(packageID)
	l.histories.Insert(packageID, append(h, entry))
}

// Record appends status at time at unless it equals the package's latest
// status. It reports whether an entry was written.
func (l *Ledger) Record(packageID int, at time.Time, status domain.Status) bool {
	h, _ := l.histories.Lookup(packageID)
	if n := len(h); n > 0 && h[n-1].Status == status {
		return false
	}
	l.histories.Insert(packageID, append(h, domain.StatusEntry{At: at, Status: status}))
	return true
}

// Latest returns the most recent entry for a package.
func (l *Ledger) Latest(packageID int) (domain.StatusEntry, bool) {
	h, ok := l.histories.Lookup(packageID)
	if !ok || len(h) == 0 {
		return domain.StatusEntry{}, false
	}
	return h[len(h)-1], true
}

// Compress drops consecutive entries that repeat the previous status, keeping
// the first occurrence time of every change.
func (l *Ledger) Compress() {
	for _, id := range l.histories.Keys() {
		h, _ := l.histories.Lookup(id)
		l.histories.Insert(id, compress(h))
	}
}

func compress(h []domain.StatusEntry) []domain.StatusEntry {
	out := make([]domain.StatusEntry, 0, len(h))
	for _, e := range h {
		if n := len(out); n > 0 && out[n-1].Status == e.Status {
			continue
		}
		out = append(out, e)
	}
	return out
}

// IDs lists every package with a history in ascending id order.
func (l *Ledger) IDs() []int {
	ids := l.histories.Keys()
	slices.Sort(ids)
	return ids
}

// History returns a copy of a package's full history.
func (l *Ledger) History(packageID int) ([]domain.StatusEntry, error) {
	h, ok := l.histories.Lookup(packageID)
	if !ok {
		return nil, fmt.Errorf("history for package %d: %w", packageID, domain.ErrPackageNotFound)
	}
	return slices.Clone(h), nil
}

// Window returns the entries recorded in [start, end]. When none fall inside
// it returns the last entry at or before start, and when the package has no
// entry that early it returns a synthesized AT_HUB entry stamped start.
func (l *Ledger) Window(packageID int, start, end time.Time) []domain.StatusEntry {
	h, _ := l.histories.Lookup(packageID)

	var (
		inside []domain.StatusEntry
		before *domain.StatusEntry
	)
	for i := range h {
		e := h[i]
		switch {
		case e.At.Before(start):
			before = &h[i]
		case !e.At.After(end):
			inside = append(inside, e)
		}
	}

	if len(inside) > 0 {
		return inside
	}
	if before != nil {
		return []domain.StatusEntry{*before}
	}
	return []domain.StatusEntry{{At: start, Status: domain.StatusAtHub}}
}

// StatusAt returns the status in effect at t, AT_HUB when nothing was
// recorded by then.
func (l *Ledger) StatusAt(packageID int, t time.Time) domain.Status {
	h, _ := l.histories.Lookup(packageID)
	status := domain.StatusAtHub
	for _, e := range h {
		if e.At.After(t) {
			break
		}
		status = e.Status
	}
	return status
}

// PackageWindow pairs a package id with its window query result.
type PackageWindow struct {
	PackageID int
	Entries   []domain.StatusEntry
}

// Snapshot runs Window for every package with a history, in id order.
func (l *Ledger) Snapshot(start, end time.Time) []PackageWindow {
	ids := l.IDs()
	out := make([]PackageWindow, 0, len(ids))
	for _, id := range ids {
		out = append(out, PackageWindow{PackageID: id, Entries: l.Window(id, start, end)})
	}
	return out
}

// CheckMonotonic verifies a history never moves backwards through
// AT_HUB, IN_TRANSIT, DELIVERED and is time-ordered. Note statuses are exempt
// from the ordering check.
func CheckMonotonic(h []domain.StatusEntry) error {
	rank := -1
	for i, e := range h {
		if i > 0 && e.At.Before(h[i-1].At) {
			return fmt.Errorf("entry %d at %s precedes entry %d", i, e.At.Format(time.TimeOnly), i-1)
		}
		if e.Status.IsNote() {
			continue
		}
		r := e.Status.Rank()
		if r < rank {
			return fmt.Errorf("entry %d regresses to %s", i, e.Status)
		}
		rank = r
	}
	return nil
}
