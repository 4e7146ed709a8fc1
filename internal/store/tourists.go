package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"orientinsight/internal/model"
)

// ImportTouristsForSegment merges a segment's tourist list into a
// reservation's roster. The dedup scope is exactly (reservation, segment):
// identities already present there are skipped, the other segment is never
// touched. Incoming row order is preserved via the position column, and the
// reservation's pax counters are recomputed before commit.
func (s *Store) ImportTouristsForSegment(reservationID string, segment model.TripSegment, tourists []*model.Tourist) (created, skipped int, err error) {
	if len(tourists) == 0 {
		return 0, 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, maxPos, err := existingIdentities(tx, reservationID, segment)
	if err != nil {
		return 0, 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tourists (
			id, reservation_id, segment, position,
			first_name, last_name, full_name, gender, date_of_birth,
			passport_number, passport_issue_date, passport_expiry_date,
			nationality, place_of_issue,
			room_preference, room_number, remarks,
			check_in_date, check_out_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	position := maxPos
	for _, t := range tourists {
		identity := t.Identity()
		if existing[identity] {
			skipped++
			continue
		}
		position++

		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := stmt.Exec(
			id, reservationID, string(segment), position,
			t.FirstName, t.LastName, t.FullName, string(t.Gender), dayPtr(t.DateOfBirth),
			t.PassportNumber, dayPtr(t.PassportIssueDate), dayPtr(t.PassportExpiryDate),
			t.Nationality, t.PlaceOfIssue,
			t.RoomPreference, t.RoomNumber, t.Remarks,
			day(t.CheckInDate), day(t.CheckOutDate),
		)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to insert tourist %s: %w", t.FullName, err)
		}
		existing[identity] = true
		created++
	}

	if err := recomputePaxCounters(tx, reservationID); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return created, skipped, nil
}

// existingIdentities loads the dedup set and the highest position of one
// reservation segment.
func existingIdentities(tx *sql.Tx, reservationID string, segment model.TripSegment) (map[string]bool, int, error) {
	rows, err := tx.Query(`
		SELECT passport_number, full_name, position
		FROM tourists WHERE reservation_id = ? AND segment = ?
	`, reservationID, string(segment))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load existing tourists: %w", err)
	}
	defer rows.Close()

	identities := make(map[string]bool)
	maxPos := 0
	for rows.Next() {
		var t model.Tourist
		var position int
		if err := rows.Scan(&t.PassportNumber, &t.FullName, &position); err != nil {
			return nil, 0, fmt.Errorf("failed to scan existing tourist: %w", err)
		}
		identities[t.Identity()] = true
		if position > maxPos {
			maxPos = position
		}
	}
	return identities, maxPos, rows.Err()
}

// recomputePaxCounters refreshes the reservation's aggregate passenger
// counts from the tourists table.
func recomputePaxCounters(tx *sql.Tx, reservationID string) error {
	_, err := tx.Exec(`
		UPDATE reservations SET
			pax_primary = (
				SELECT COUNT(*) FROM tourists
				WHERE reservation_id = ? AND segment = ?
			),
			pax_extension = (
				SELECT COUNT(*) FROM tourists
				WHERE reservation_id = ? AND segment = ?
			),
			pax_total = (
				SELECT COUNT(*) FROM tourists WHERE reservation_id = ?
			)
		WHERE id = ?
	`, reservationID, string(model.SegmentPrimary),
		reservationID, string(model.SegmentExtension),
		reservationID, reservationID)
	if err != nil {
		return fmt.Errorf("failed to recompute pax counters: %w", err)
	}
	return nil
}

// ListTourists returns a reservation's roster ordered by segment and source
// row order.
func (s *Store) ListTourists(reservationID string) ([]*model.Tourist, error) {
	rows, err := s.db.Query(`
		SELECT id, reservation_id, segment, position,
		       first_name, last_name, full_name, gender, date_of_birth,
		       passport_number, passport_issue_date, passport_expiry_date,
		       nationality, place_of_issue,
		       room_preference, room_number, remarks,
		       check_in_date, check_out_date
		FROM tourists WHERE reservation_id = ?
		ORDER BY segment DESC, position
	`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tourists: %w", err)
	}
	defer rows.Close()

	var result []*model.Tourist
	for rows.Next() {
		var t model.Tourist
		var segment, gender string
		var dob, issue, expiry, checkIn, checkOut sql.NullString
		err := rows.Scan(&t.ID, &t.ReservationID, &segment, &t.Position,
			&t.FirstName, &t.LastName, &t.FullName, &gender, &dob,
			&t.PassportNumber, &issue, &expiry,
			&t.Nationality, &t.PlaceOfIssue,
			&t.RoomPreference, &t.RoomNumber, &t.Remarks,
			&checkIn, &checkOut)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tourist: %w", err)
		}
		t.Segment = model.TripSegment(segment)
		t.Gender = model.Gender(gender)
		t.DateOfBirth = parseDayColumnPtr(dob)
		t.PassportIssueDate = parseDayColumnPtr(issue)
		t.PassportExpiryDate = parseDayColumnPtr(expiry)
		if d := parseDayColumnPtr(checkIn); d != nil {
			t.CheckInDate = *d
		}
		if d := parseDayColumnPtr(checkOut); d != nil {
			t.CheckOutDate = *d
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

// CountAllTourists returns the total roster size across reservations.
func (s *Store) CountAllTourists() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tourists`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tourists: %w", err)
	}
	return count, nil
}

// CountTourists returns the roster size of one reservation segment.
func (s *Store) CountTourists(reservationID string, segment model.TripSegment) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM tourists WHERE reservation_id = ? AND segment = ?
	`, reservationID, string(segment)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tourists: %w", err)
	}
	return count, nil
}
