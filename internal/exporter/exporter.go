package exporter

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"orientinsight/internal/model"
)

// Exporter writes a reservation's stored roster back into a workbook, one
// sheet per occupied segment, in the column layout of the incoming
// manifests.
type Exporter struct{}

// NewExporter creates a roster exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

var rosterColumns = []string{
	"Nr", "Name", "Anrede", "Geburtsdatum", "Passnummer",
	"Ausgestellt am", "Gültig bis", "Nationalität", "Ausstellungsort",
	"Zimmer", "Bemerkungen",
}

var segmentSheets = map[model.TripSegment]string{
	model.SegmentPrimary:   "Hauptreise",
	model.SegmentExtension: "Verlängerung",
}

// Export builds the workbook. Tourists must already be ordered by segment
// and position; the export never reorders them.
func (e *Exporter) Export(reservation *model.Reservation, tourists []*model.Tourist) (*excelize.File, error) {
	f := excelize.NewFile()

	bySegment := make(map[model.TripSegment][]*model.Tourist)
	for _, t := range tourists {
		bySegment[t.Segment] = append(bySegment[t.Segment], t)
	}

	first := true
	for _, segment := range []model.TripSegment{model.SegmentPrimary, model.SegmentExtension} {
		roster := bySegment[segment]
		if len(roster) == 0 {
			continue
		}
		sheet := segmentSheets[segment]
		if first {
			// excelize starts with a default sheet; rename it.
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := e.fillSheet(f, sheet, reservation, roster); err != nil {
			return nil, err
		}
	}

	if first {
		// Empty roster still yields a labeled single-sheet workbook.
		sheet := segmentSheets[model.SegmentPrimary]
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		if err := e.fillSheet(f, sheet, reservation, nil); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) fillSheet(f *excelize.File, sheet string, reservation *model.Reservation, roster []*model.Tourist) error {
	setCell := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	// Label rows above the tabular section, mirroring the manifest layout.
	if err := setCell(1, 1, fmt.Sprintf("Reservierung: %s", reservation.Number)); err != nil {
		return err
	}
	if err := setCell(1, 2, fmt.Sprintf("Reisetermin: %s - %s",
		formatDay(reservation.DepartureDate), formatDay(reservation.EndDate))); err != nil {
		return err
	}

	headerRow := 4
	for col, name := range rosterColumns {
		if err := setCell(col+1, headerRow, name); err != nil {
			return err
		}
	}

	for i, t := range roster {
		row := headerRow + 1 + i
		values := []any{
			i + 1,
			fmt.Sprintf("%s, %s", t.LastName, t.FirstName),
			honorific(t.Gender),
			formatDayPtr(t.DateOfBirth),
			t.PassportNumber,
			formatDayPtr(t.PassportIssueDate),
			formatDayPtr(t.PassportExpiryDate),
			t.Nationality,
			t.PlaceOfIssue,
			roomCell(t),
			t.Remarks,
		}
		for col, v := range values {
			if err := setCell(col+1, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func honorific(g model.Gender) string {
	switch g {
	case model.GenderFemale:
		return "Frau"
	case model.GenderMale:
		return "Herr"
	}
	return ""
}

func roomCell(t *model.Tourist) string {
	if t.RoomNumber != "" {
		return t.RoomNumber
	}
	return t.RoomPreference
}

func formatDay(t time.Time) string {
	return t.Format("02.01.2006")
}

func formatDayPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDay(*t)
}
