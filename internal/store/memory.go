package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"orientinsight/internal/model"
)

// Memory is an in-memory reservation store with the same import semantics as
// the SQLite store. It backs the importer tests and ad-hoc dry runs.
type Memory struct {
	mu           sync.RWMutex
	reservations []*model.Reservation
	tourists     map[string][]*model.Tourist // reservation id -> roster
	failImports  bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tourists: make(map[string][]*model.Tourist)}
}

// AddReservation registers a reservation candidate.
func (m *Memory) AddReservation(r *model.Reservation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.reservations = append(m.reservations, r)
}

// FailImports makes every subsequent import call error, for failure-path
// tests.
func (m *Memory) FailImports(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failImports = fail
}

// ListReservationCandidates returns the candidates of one category in
// insertion order.
func (m *Memory) ListReservationCandidates(category model.TourCategory) ([]model.ReservationSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []model.ReservationSummary
	for _, r := range m.reservations {
		if r.Category != category {
			continue
		}
		result = append(result, model.ReservationSummary{
			ID:            r.ID,
			Number:        r.Number,
			DepartureDate: r.DepartureDate,
			EndDate:       r.EndDate,
		})
	}
	return result, nil
}

// ImportTouristsForSegment mirrors the SQLite merge: identity-skip within
// the (reservation, segment) scope, other segment untouched, order kept.
func (m *Memory) ImportTouristsForSegment(reservationID string, segment model.TripSegment, tourists []*model.Tourist) (created, skipped int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failImports {
		return 0, 0, fmt.Errorf("import failed for reservation %s", reservationID)
	}

	existing := make(map[string]bool)
	position := 0
	for _, t := range m.tourists[reservationID] {
		if t.Segment == segment {
			existing[t.Identity()] = true
			if t.Position > position {
				position = t.Position
			}
		}
	}

	for _, t := range tourists {
		if existing[t.Identity()] {
			skipped++
			continue
		}
		position++
		stored := *t
		stored.ID = uuid.NewString()
		stored.ReservationID = reservationID
		stored.Segment = segment
		stored.Position = position
		m.tourists[reservationID] = append(m.tourists[reservationID], &stored)
		existing[stored.Identity()] = true
		created++
	}

	m.recountLocked(reservationID)
	return created, skipped, nil
}

// Tourists returns one reservation segment's roster in position order.
func (m *Memory) Tourists(reservationID string, segment model.TripSegment) []*model.Tourist {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Tourist
	for _, t := range m.tourists[reservationID] {
		if t.Segment == segment {
			result = append(result, t)
		}
	}
	return result
}

func (m *Memory) recountLocked(reservationID string) {
	for _, r := range m.reservations {
		if r.ID != reservationID {
			continue
		}
		r.PaxPrimary, r.PaxExtension = 0, 0
		for _, t := range m.tourists[reservationID] {
			if t.Segment == model.SegmentExtension {
				r.PaxExtension++
			} else {
				r.PaxPrimary++
			}
		}
		r.PaxTotal = r.PaxPrimary + r.PaxExtension
		return
	}
}
