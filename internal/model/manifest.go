package model

import "time"

// ManifestHeader holds the metadata extracted from the label rows above the
// tabular section of a manifest sheet.
type ManifestHeader struct {
	TripDescription string     `json:"tripDescription"`
	DateRangeText   string     `json:"dateRangeText"`
	DepartureDate   *time.Time `json:"departureDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
}

// ParsedManifest is one uploaded file after the pure pipeline stages:
// parsed, classified, date-resolved and matched to a reservation.
type ParsedManifest struct {
	SourceFile          string         `json:"sourceFile"`
	Header              ManifestHeader `json:"header"`
	Category            TourCategory   `json:"category"`
	Segment             TripSegment    `json:"segment"`
	ResolvedArrivalDate time.Time      `json:"resolvedArrivalDate"`
	ReservationID       string         `json:"reservationId"`
	ReservationNumber   string         `json:"reservationNumber"`
	Tourists            []*Tourist     `json:"tourists"`
}

// FailureReason classifies why a file (or a reservation bucket) dropped out
// of the pipeline. All reasons are business-level; none abort the batch.
type FailureReason string

const (
	FailureHeaderNotFound        FailureReason = "header_not_found"
	FailureEmptyManifest         FailureReason = "empty_manifest"
	FailureUnclassifiedCategory  FailureReason = "unclassified_category"
	FailureMissingDepartureDate  FailureReason = "missing_departure_date"
	FailureNoMatchingReservation FailureReason = "no_matching_reservation"
	FailureAmbiguousReservation  FailureReason = "ambiguous_reservation"
	FailureImportFailed          FailureReason = "import_failed"
)

// FileFailure attaches a failure reason to the file it originated from.
type FileFailure struct {
	File   string        `json:"file"`
	Reason FailureReason `json:"reason"`
	Detail string        `json:"detail,omitempty"`
}

// ReservationImportResult is the per-reservation outcome of one batch.
type ReservationImportResult struct {
	ReservationID     string `json:"reservationId"`
	ReservationNumber string `json:"reservationNumber"`
	Created           int    `json:"created"`
	Skipped           int    `json:"skipped"`
	Error             string `json:"error,omitempty"` // set when the store call failed
}

// ImportSummary is the consolidated result of one uploaded batch.
type ImportSummary struct {
	TotalFiles     int                       `json:"totalFiles"`
	ParsedFiles    int                       `json:"parsedFiles"`
	Created        int                       `json:"created"`
	Skipped        int                       `json:"skipped"`
	PerReservation []ReservationImportResult `json:"perReservation"`
	Failures       []FileFailure             `json:"failures"`
	Duration       time.Duration             `json:"duration"`
}
