package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"orientinsight/internal/model"
)

// ErrReservationNotFound is returned for lookups of unknown reservations.
var ErrReservationNotFound = errors.New("reservation not found")

// CreateReservation inserts a new reservation. A missing id is generated.
func (s *Store) CreateReservation(r *model.Reservation) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO reservations (id, number, category, departure_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Number, string(r.Category), day(r.DepartureDate), day(r.EndDate),
		r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert reservation %s: %w", r.Number, err)
	}
	return nil
}

// GetReservation loads one reservation with its pax counters.
func (s *Store) GetReservation(id string) (*model.Reservation, error) {
	row := s.db.QueryRow(`
		SELECT id, number, category, departure_date, end_date,
		       pax_primary, pax_extension, pax_total, created_at
		FROM reservations WHERE id = ?
	`, id)

	r, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return r, err
}

// ListReservations returns all reservations ordered by departure date.
func (s *Store) ListReservations() ([]*model.Reservation, error) {
	rows, err := s.db.Query(`
		SELECT id, number, category, departure_date, end_date,
		       pax_primary, pax_extension, pax_total, created_at
		FROM reservations ORDER BY departure_date, number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var result []*model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ListReservationCandidates returns the matching candidates of one category,
// ordered by departure date then number so snapshots are deterministic.
func (s *Store) ListReservationCandidates(category model.TourCategory) ([]model.ReservationSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, number, departure_date, end_date
		FROM reservations WHERE category = ?
		ORDER BY departure_date, number
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates for category %s: %w", category, err)
	}
	defer rows.Close()

	var result []model.ReservationSummary
	for rows.Next() {
		var summary model.ReservationSummary
		var departure, end string
		if err := rows.Scan(&summary.ID, &summary.Number, &departure, &end); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if summary.DepartureDate, err = parseDayColumn(departure); err != nil {
			return nil, fmt.Errorf("bad departure date for %s: %w", summary.Number, err)
		}
		if summary.EndDate, err = parseDayColumn(end); err != nil {
			return nil, fmt.Errorf("bad end date for %s: %w", summary.Number, err)
		}
		result = append(result, summary)
	}
	return result, rows.Err()
}

// CountReservations returns the number of stored reservations.
func (s *Store) CountReservations() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reservations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var r model.Reservation
	var category, departure, end, createdAt string
	err := row.Scan(&r.ID, &r.Number, &category, &departure, &end,
		&r.PaxPrimary, &r.PaxExtension, &r.PaxTotal, &createdAt)
	if err != nil {
		return nil, err
	}
	r.Category = model.TourCategory(category)
	if r.DepartureDate, err = parseDayColumn(departure); err != nil {
		return nil, fmt.Errorf("bad departure date for %s: %w", r.Number, err)
	}
	if r.EndDate, err = parseDayColumn(end); err != nil {
		return nil, fmt.Errorf("bad end date for %s: %w", r.Number, err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}
	return &r, nil
}
