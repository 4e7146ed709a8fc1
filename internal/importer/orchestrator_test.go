package importer

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"orientinsight/internal/model"
	"orientinsight/internal/store"
)

// manifestFile builds a minimal in-memory manifest workbook.
func manifestFile(t *testing.T, name, description, dates string, passengers [][2]string) UploadedFile {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	set := func(col, row int, value string) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}

	set(1, 1, description)
	set(1, 2, dates)
	for i, h := range []string{"Nr", "Name", "Passnummer"} {
		set(i+1, 4, h)
	}
	for i, p := range passengers {
		set(1, 5+i, "x")
		set(2, 5+i, p[0])
		set(3, 5+i, p[1])
	}

	t.Cleanup(func() { _ = f.Close() })
	return UploadedFile{Name: name, File: f}
}

func reservationA(number string) *model.Reservation {
	return &model.Reservation{
		Number:        number,
		Category:      model.CategoryA,
		DepartureDate: time.Date(2026, 4, 17, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestImportBatch_PrimaryAndExtensionAggregate(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	mem.AddReservation(reservationA("UZB-100"))

	files := []UploadedFile{
		manifestFile(t, "primary.xlsx",
			"Reise: Usbekistan",
			"Reisetermin: 17.04.2026 - 30.04.2026",
			[][2]string{
				{"Mustermann, Max", "C01X00001"},
				{"Mustermann, Erika", "C01X00002"},
			}),
		manifestFile(t, "extension.xlsx",
			"Reise: Usbekistan mit Turkmenistan Verlängerung",
			"Reisetermin: 17.04.2026 - 30.04.2026",
			[][2]string{
				{"Mustermann, Max", "C01X00001"},
			}),
	}

	summary, err := NewOrchestrator(mem).ImportBatch(files)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if summary.TotalFiles != 2 || summary.ParsedFiles != 2 {
		t.Fatalf("file counts: total=%d parsed=%d", summary.TotalFiles, summary.ParsedFiles)
	}
	if len(summary.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", summary.Failures)
	}
	// both segment calls aggregate into one per-reservation entry
	if len(summary.PerReservation) != 1 {
		t.Fatalf("expected 1 reservation entry, got %d", len(summary.PerReservation))
	}
	entry := summary.PerReservation[0]
	if entry.ReservationNumber != "UZB-100" || entry.Created != 3 || entry.Skipped != 0 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	// the same passport may appear in both segments; dedup is per segment
	resID := entry.ReservationID
	if n := len(mem.Tourists(resID, model.SegmentPrimary)); n != 2 {
		t.Fatalf("primary roster: %d", n)
	}
	if n := len(mem.Tourists(resID, model.SegmentExtension)); n != 1 {
		t.Fatalf("extension roster: %d", n)
	}
}

func TestImportBatch_Idempotent(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	mem.AddReservation(reservationA("UZB-100"))

	run := func() *model.ImportSummary {
		file := manifestFile(t, "manifest.xlsx",
			"Reise: Usbekistan",
			"Reisetermin: 17.04.2026 - 30.04.2026",
			[][2]string{
				{"Mustermann, Max", "C01X00001"},
				{"Mustermann, Erika", "C01X00002"},
			})
		summary, err := NewOrchestrator(mem).ImportBatch([]UploadedFile{file})
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		return summary
	}

	first := run()
	if first.Created != 2 || first.Skipped != 0 {
		t.Fatalf("first run: created=%d skipped=%d", first.Created, first.Skipped)
	}
	second := run()
	if second.Created != 0 || second.Skipped != 2 {
		t.Fatalf("second run: created=%d skipped=%d", second.Created, second.Skipped)
	}
}

func TestImportBatch_SegmentIsolation(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	r := reservationA("UZB-100")
	mem.AddReservation(r)

	// pre-existing extension roster
	_, _, err := mem.ImportTouristsForSegment(r.ID, model.SegmentExtension, []*model.Tourist{
		{FullName: "Max Mustermann", PassportNumber: "C01X00001"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	file := manifestFile(t, "primary.xlsx",
		"Reise: Usbekistan",
		"Reisetermin: 17.04.2026 - 30.04.2026",
		[][2]string{
			{"Mustermann, Max", "C01X00001"},
			{"Mustermann, Erika", "C01X00002"},
		})
	summary, err := NewOrchestrator(mem).ImportBatch([]UploadedFile{file})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	// the primary import neither deduped against nor altered the extension
	if summary.Created != 2 || summary.Skipped != 0 {
		t.Fatalf("created=%d skipped=%d", summary.Created, summary.Skipped)
	}
	if n := len(mem.Tourists(r.ID, model.SegmentExtension)); n != 1 {
		t.Fatalf("extension roster changed: %d", n)
	}
}

func TestImportBatch_FailuresDoNotBlockSiblings(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	mem.AddReservation(reservationA("UZB-100"))

	files := []UploadedFile{
		manifestFile(t, "unknown-trip.xlsx",
			"Reise: Marokko Rundreise",
			"Reisetermin: 17.04.2026 - 30.04.2026",
			[][2]string{{"Smith, John", "P123"}}),
		manifestFile(t, "no-dates.xlsx",
			"Reise: Usbekistan",
			"Reisetermin: ab Frühjahr 2026",
			[][2]string{{"Smith, John", "P123"}}),
		manifestFile(t, "good.xlsx",
			"Reise: Usbekistan",
			"Reisetermin: 17.04.2026 - 30.04.2026",
			[][2]string{{"Mustermann, Max", "C01X00001"}}),
	}

	summary, err := NewOrchestrator(mem).ImportBatch(files)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if summary.ParsedFiles != 1 || summary.Created != 1 {
		t.Fatalf("parsed=%d created=%d", summary.ParsedFiles, summary.Created)
	}
	if len(summary.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %+v", summary.Failures)
	}

	reasons := map[string]model.FailureReason{}
	for _, f := range summary.Failures {
		reasons[f.File] = f.Reason
	}
	if reasons["unknown-trip.xlsx"] != model.FailureUnclassifiedCategory {
		t.Fatalf("unknown-trip: %s", reasons["unknown-trip.xlsx"])
	}
	if reasons["no-dates.xlsx"] != model.FailureMissingDepartureDate {
		t.Fatalf("no-dates: %s", reasons["no-dates.xlsx"])
	}
}

func TestImportBatch_NoMatchingReservation(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory() // no reservations at all

	file := manifestFile(t, "manifest.xlsx",
		"Reise: Usbekistan",
		"Reisetermin: 17.04.2026 - 30.04.2026",
		[][2]string{{"Mustermann, Max", "C01X00001"}})

	summary, err := NewOrchestrator(mem).ImportBatch([]UploadedFile{file})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Reason != model.FailureNoMatchingReservation {
		t.Fatalf("unexpected failures: %+v", summary.Failures)
	}
	if len(summary.PerReservation) != 0 {
		t.Fatalf("unexpected imports: %+v", summary.PerReservation)
	}
}

func TestImportBatch_AmbiguousReservation(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	mem.AddReservation(reservationA("UZB-100"))
	mem.AddReservation(reservationA("UZB-101")) // same departure day

	file := manifestFile(t, "manifest.xlsx",
		"Reise: Usbekistan",
		"Reisetermin: 17.04.2026 - 30.04.2026",
		[][2]string{{"Mustermann, Max", "C01X00001"}})

	summary, err := NewOrchestrator(mem).ImportBatch([]UploadedFile{file})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Reason != model.FailureAmbiguousReservation {
		t.Fatalf("unexpected failures: %+v", summary.Failures)
	}
}

func TestImportBatch_ImportErrorIsolated(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	mem.AddReservation(reservationA("UZB-100"))
	mem.FailImports(true)

	file := manifestFile(t, "manifest.xlsx",
		"Reise: Usbekistan",
		"Reisetermin: 17.04.2026 - 30.04.2026",
		[][2]string{{"Mustermann, Max", "C01X00001"}})

	summary, err := NewOrchestrator(mem).ImportBatch([]UploadedFile{file})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(summary.PerReservation) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(summary.PerReservation))
	}
	entry := summary.PerReservation[0]
	if entry.Error == "" || entry.Created != 0 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestImportBatch_EmptyBatch(t *testing.T) {
	t.Parallel()

	summary, err := NewOrchestrator(store.NewMemory()).ImportBatch(nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.TotalFiles != 0 || len(summary.Failures) != 0 || len(summary.PerReservation) != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
