package model

import (
	"strings"
	"time"
)

// Tourist is one normalized passenger row from a manifest. Parsed once,
// immutable afterwards; contributes to exactly one import call.
type Tourist struct {
	ID                 string      `json:"id"`
	ReservationID      string      `json:"reservationId"`
	Segment            TripSegment `json:"segment"`
	Position           int         `json:"position"` // source row order within the segment
	FirstName          string      `json:"firstName"`
	LastName           string      `json:"lastName"`
	FullName           string      `json:"fullName"`
	Gender             Gender      `json:"gender"`
	DateOfBirth        *time.Time  `json:"dateOfBirth,omitempty"`
	PassportNumber     string      `json:"passportNumber"`
	PassportIssueDate  *time.Time  `json:"passportIssueDate,omitempty"`
	PassportExpiryDate *time.Time  `json:"passportExpiryDate,omitempty"`
	Nationality        string      `json:"nationality"`
	PlaceOfIssue       string      `json:"placeOfIssue,omitempty"`
	RoomPreference     string      `json:"roomPreference"`
	RoomNumber         string      `json:"roomNumber,omitempty"`
	Remarks            string      `json:"remarks,omitempty"`
	CheckInDate        time.Time   `json:"checkInDate"`
	CheckOutDate       time.Time   `json:"checkOutDate"`
}

// Identity is the dedup key within one reservation segment: passport number
// when present, otherwise the full name. Case- and whitespace-insensitive.
func (t *Tourist) Identity() string {
	if p := strings.TrimSpace(t.PassportNumber); p != "" {
		return strings.ToUpper(p)
	}
	return strings.ToUpper(strings.Join(strings.Fields(t.FullName), " "))
}
