package model

import "time"

// TourCategory is one of the fixed tour-type classifications derived from
// the trip-description text of an uploaded manifest.
type TourCategory string

const (
	// CategoryA covers the plain Uzbekistan round trip, including its
	// Turkmenistan extension variant.
	CategoryA TourCategory = "A"
	// CategoryB is the comfort-tier Uzbekistan trip.
	CategoryB TourCategory = "B"
	// CategoryC is the three-country route (Kazakhstan, Kyrgyzstan,
	// Uzbekistan) without Turkmenistan/Tajikistan.
	CategoryC TourCategory = "C"
	// CategoryD is the full five-country Central Asia route.
	CategoryD TourCategory = "D"
)

// TripSegment separates the primary in-country portion of a trip from the
// extension-country portion. A manifest belongs to exactly one segment.
type TripSegment string

const (
	SegmentPrimary   TripSegment = "primary"
	SegmentExtension TripSegment = "extension"
)

// Gender as inferred from the honorific column.
type Gender string

const (
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderUnknown Gender = "U"
)

// Reservation is a booked tour group. The import pipeline never edits its
// own fields; it only appends tourist rows scoped to one segment. The pax
// counters are recomputed by the store after every import.
type Reservation struct {
	ID            string       `json:"id"`
	Number        string       `json:"number"`
	Category      TourCategory `json:"category"`
	DepartureDate time.Time    `json:"departureDate"`
	EndDate       time.Time    `json:"endDate"`
	PaxPrimary    int          `json:"paxPrimary"`
	PaxExtension  int          `json:"paxExtension"`
	PaxTotal      int          `json:"paxTotal"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ReservationSummary is the read-only candidate shape used for matching.
type ReservationSummary struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	DepartureDate time.Time `json:"departureDate"`
	EndDate       time.Time `json:"endDate"`
}
