package importer

import (
	"testing"

	"orientinsight/internal/model"
)

func tourist(name string, segment model.TripSegment) *model.Tourist {
	return &model.Tourist{FullName: name, Segment: segment}
}

func TestGroupBySegment_MergesFilesOfOneReservation(t *testing.T) {
	t.Parallel()

	manifests := []*model.ParsedManifest{
		{
			ReservationID:     "r1",
			ReservationNumber: "UZB-100",
			Segment:           model.SegmentPrimary,
			Tourists: []*model.Tourist{
				tourist("Max Mustermann", model.SegmentPrimary),
				tourist("Erika Mustermann", model.SegmentPrimary),
			},
		},
		{
			ReservationID:     "r1",
			ReservationNumber: "UZB-100",
			Segment:           model.SegmentExtension,
			Tourists: []*model.Tourist{
				tourist("Max Mustermann", model.SegmentExtension),
			},
		},
		{
			ReservationID:     "r2",
			ReservationNumber: "UZB-101",
			Segment:           model.SegmentPrimary,
			Tourists: []*model.Tourist{
				tourist("John Smith", model.SegmentPrimary),
			},
		},
	}

	groups := GroupBySegment(manifests)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	first := groups[0]
	if first.ReservationID != "r1" || first.ReservationNumber != "UZB-100" {
		t.Fatalf("group order: %s %s", first.ReservationID, first.ReservationNumber)
	}
	if len(first.Segments[model.SegmentPrimary]) != 2 || len(first.Segments[model.SegmentExtension]) != 1 {
		t.Fatalf("segment sizes: %d/%d",
			len(first.Segments[model.SegmentPrimary]), len(first.Segments[model.SegmentExtension]))
	}
	// row order within a segment follows file order
	if first.Segments[model.SegmentPrimary][0].FullName != "Max Mustermann" {
		t.Fatalf("order: %s", first.Segments[model.SegmentPrimary][0].FullName)
	}

	if groups[1].ReservationID != "r2" {
		t.Fatalf("second group: %s", groups[1].ReservationID)
	}
}

func TestGroupBySegment_Empty(t *testing.T) {
	t.Parallel()

	if groups := GroupBySegment(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
