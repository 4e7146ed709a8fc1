package exporter

import (
	"testing"
	"time"

	"orientinsight/internal/model"
)

func testDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExport_SheetPerSegment(t *testing.T) {
	t.Parallel()

	reservation := &model.Reservation{
		Number:        "UZB-100",
		Category:      model.CategoryA,
		DepartureDate: testDay(2026, 4, 17),
		EndDate:       testDay(2026, 4, 30),
	}
	dob := testDay(1960, 6, 1)
	tourists := []*model.Tourist{
		{
			Segment: model.SegmentPrimary, Position: 1,
			FirstName: "Max", LastName: "Mustermann",
			Gender: model.GenderMale, DateOfBirth: &dob,
			PassportNumber: "C01X00001", Nationality: "Deutsch",
			RoomPreference: "DBL", RoomNumber: "DBL-12",
		},
		{
			Segment: model.SegmentPrimary, Position: 2,
			FirstName: "Erika", LastName: "Mustermann",
			Gender:         model.GenderFemale,
			PassportNumber: "C01X00002",
			RoomPreference: "SNGL",
			Remarks:        "Vegetarier",
		},
		{
			Segment: model.SegmentExtension, Position: 1,
			FirstName: "Max", LastName: "Mustermann",
			Gender:         model.GenderMale,
			PassportNumber: "C01X00001",
		},
	}

	f, err := NewExporter().Export(reservation, tourists)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Hauptreise" || sheets[1] != "Verlängerung" {
		t.Fatalf("sheets: %v", sheets)
	}

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("cell %s!%s: %v", sheet, ref, err)
		}
		return v
	}

	if got := cell("Hauptreise", "A1"); got != "Reservierung: UZB-100" {
		t.Fatalf("label row: %q", got)
	}
	if got := cell("Hauptreise", "A2"); got != "Reisetermin: 17.04.2026 - 30.04.2026" {
		t.Fatalf("date row: %q", got)
	}
	if got := cell("Hauptreise", "B4"); got != "Name" {
		t.Fatalf("header row: %q", got)
	}

	// data rows start below the header, numbered from 1 per sheet
	if got := cell("Hauptreise", "B5"); got != "Mustermann, Max" {
		t.Fatalf("first name cell: %q", got)
	}
	if got := cell("Hauptreise", "C5"); got != "Herr" {
		t.Fatalf("honorific: %q", got)
	}
	if got := cell("Hauptreise", "D5"); got != "01.06.1960" {
		t.Fatalf("date of birth: %q", got)
	}
	if got := cell("Hauptreise", "J5"); got != "DBL-12" {
		t.Fatalf("room cell: %q", got)
	}
	if got := cell("Hauptreise", "J6"); got != "SNGL" {
		t.Fatalf("room preference fallback: %q", got)
	}
	if got := cell("Hauptreise", "K6"); got != "Vegetarier" {
		t.Fatalf("remarks: %q", got)
	}
	if got := cell("Verlängerung", "A5"); got != "1" {
		t.Fatalf("extension numbering: %q", got)
	}
}

func TestExport_EmptyRoster(t *testing.T) {
	t.Parallel()

	reservation := &model.Reservation{
		Number:        "UZB-100",
		DepartureDate: testDay(2026, 4, 17),
		EndDate:       testDay(2026, 4, 30),
	}

	f, err := NewExporter().Export(reservation, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Hauptreise" {
		t.Fatalf("sheets: %v", sheets)
	}
	if v, err := f.GetCellValue("Hauptreise", "A4"); err != nil || v != "Nr" {
		t.Fatalf("header: %q %v", v, err)
	}
}
