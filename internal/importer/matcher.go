package importer

import (
	"time"

	"orientinsight/internal/model"
	"orientinsight/internal/parser"
)

// ReservationStore is the external collaborator the import pipeline writes
// through. Reads happen once per category (candidate snapshot); writes once
// per non-empty (reservation, segment) bucket.
type ReservationStore interface {
	// ListReservationCandidates returns the reservations of one category in
	// a deterministic order.
	ListReservationCandidates(category model.TourCategory) ([]model.ReservationSummary, error)
	// ImportTouristsForSegment merges a segment's tourist list into a
	// reservation. Tourists whose identity already exists in the same
	// segment are skipped; tourists of the other segment are untouched.
	ImportTouristsForSegment(reservationID string, segment model.TripSegment, tourists []*model.Tourist) (created, skipped int, err error)
}

// MatchReservation selects the single candidate satisfying the category's
// date predicate. Zero matches is NoMatchingReservation; more than one is
// AmbiguousReservation rather than a silent first-in-order pick, so that two
// groups departing the same day surface as an operator decision.
func MatchReservation(category model.TourCategory, header model.ManifestHeader, arrivalDate time.Time, candidates []model.ReservationSummary) (model.ReservationSummary, model.FailureReason) {
	kind := parser.MatchKindFor(category)

	var matches []model.ReservationSummary
	for _, cand := range candidates {
		if matchesCandidate(kind, cand, header, arrivalDate) {
			matches = append(matches, cand)
		}
	}

	switch len(matches) {
	case 0:
		return model.ReservationSummary{}, model.FailureNoMatchingReservation
	case 1:
		return matches[0], ""
	default:
		return model.ReservationSummary{}, model.FailureAmbiguousReservation
	}
}

func matchesCandidate(kind parser.MatchKind, cand model.ReservationSummary, header model.ManifestHeader, arrivalDate time.Time) bool {
	switch kind {
	case parser.MatchByDeparture:
		return header.DepartureDate != nil && parser.SameDay(cand.DepartureDate, *header.DepartureDate)
	case parser.MatchByEnd:
		return header.EndDate != nil && parser.SameDay(cand.EndDate, *header.EndDate)
	case parser.MatchByArrival:
		return parser.SameDay(cand.DepartureDate, arrivalDate)
	}
	return false
}
