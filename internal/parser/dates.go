package parser

import (
	"time"

	"orientinsight/internal/model"
)

// MatchKind selects which date predicate identifies a category's
// reservation.
type MatchKind int

const (
	// MatchByDeparture compares the candidate's departure date with the
	// sheet's departure date.
	MatchByDeparture MatchKind = iota
	// MatchByEnd compares the candidate's end date with the sheet's end date.
	MatchByEnd
	// MatchByArrival compares the candidate's departure date with the
	// resolved in-country arrival date.
	MatchByArrival
)

// categoryRule holds the per-category date behavior: the offset between the
// sheet's stated departure and the in-country arrival, and the predicate
// used for reservation matching. Kept as a table so both dispatches stay a
// single lookup.
type categoryRule struct {
	offsetDays int
	matchKind  MatchKind
}

var categoryRules = map[model.TourCategory]categoryRule{
	model.CategoryA: {offsetDays: 0, matchKind: MatchByDeparture},
	model.CategoryB: {offsetDays: 0, matchKind: MatchByDeparture},
	model.CategoryC: {offsetDays: 14, matchKind: MatchByEnd},
	model.CategoryD: {offsetDays: 4, matchKind: MatchByArrival},
}

// ResolveArrivalDate derives the in-country arrival date from the sheet's
// departure date. Pure; identical inputs always yield identical output.
func ResolveArrivalDate(departure time.Time, category model.TourCategory) time.Time {
	return departure.AddDate(0, 0, categoryRules[category].offsetDays)
}

// MatchKindFor returns the matching predicate of a category.
func MatchKindFor(category model.TourCategory) MatchKind {
	return categoryRules[category].matchKind
}
