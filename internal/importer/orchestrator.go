package importer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"orientinsight/internal/model"
	"orientinsight/internal/parser"
)

// UploadedFile is one uploaded manifest workbook, already decoded.
type UploadedFile struct {
	Name string
	File *excelize.File
}

// Orchestrator drives the import pipeline over a batch of uploaded files:
// parse, classify, resolve, match per file; group by reservation and
// segment; one store write per non-empty bucket.
type Orchestrator struct {
	store ReservationStore
}

// NewOrchestrator creates an orchestrator over a reservation store.
func NewOrchestrator(store ReservationStore) *Orchestrator {
	return &Orchestrator{store: store}
}

// fileOutcome is the result of the pure per-file stages.
type fileOutcome struct {
	manifest *model.ParsedManifest
	failure  *model.FileFailure
}

// segmentOrder fixes the store-write order within one reservation.
var segmentOrder = []model.TripSegment{model.SegmentPrimary, model.SegmentExtension}

// ImportBatch processes all files and always produces a summary; business
// failures are attached to their file or reservation. Only a failing
// candidate snapshot read aborts the whole batch.
func (o *Orchestrator) ImportBatch(files []UploadedFile) (*model.ImportSummary, error) {
	start := time.Now()
	summary := &model.ImportSummary{TotalFiles: len(files)}

	// Per-file pipeline is pure, so files run concurrently.
	outcomes := make([]fileOutcome, len(files))
	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = o.processFile(files[i])
		}(i)
	}
	wg.Wait()

	// Matching reads one candidate snapshot per category.
	snapshots := make(map[model.TourCategory][]model.ReservationSummary)
	var manifests []*model.ParsedManifest
	for i, outcome := range outcomes {
		if outcome.failure != nil {
			summary.Failures = append(summary.Failures, *outcome.failure)
			continue
		}
		m := outcome.manifest

		candidates, ok := snapshots[m.Category]
		if !ok {
			var err error
			candidates, err = o.store.ListReservationCandidates(m.Category)
			if err != nil {
				return nil, fmt.Errorf("list reservation candidates for category %s: %w", m.Category, err)
			}
			snapshots[m.Category] = candidates
		}

		matched, reason := MatchReservation(m.Category, m.Header, m.ResolvedArrivalDate, candidates)
		if reason != "" {
			summary.Failures = append(summary.Failures, model.FileFailure{
				File:   files[i].Name,
				Reason: reason,
			})
			continue
		}
		m.ReservationID = matched.ID
		m.ReservationNumber = matched.Number
		manifests = append(manifests, m)
		summary.ParsedFiles++
	}

	// One write per non-empty (reservation, segment) bucket. A failing
	// reservation never blocks its siblings.
	for _, group := range GroupBySegment(manifests) {
		result := model.ReservationImportResult{
			ReservationID:     group.ReservationID,
			ReservationNumber: group.ReservationNumber,
		}
		for _, segment := range segmentOrder {
			tourists := group.Segments[segment]
			if len(tourists) == 0 {
				continue
			}
			created, skipped, err := o.store.ImportTouristsForSegment(group.ReservationID, segment, tourists)
			if err != nil {
				result.Error = err.Error()
				break
			}
			result.Created += created
			result.Skipped += skipped
		}
		summary.Created += result.Created
		summary.Skipped += result.Skipped
		summary.PerReservation = append(summary.PerReservation, result)
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// processFile runs the side-effect-free stages for one file: row parsing,
// category classification, arrival-date resolution, segment inference.
func (o *Orchestrator) processFile(file UploadedFile) fileOutcome {
	fail := func(reason model.FailureReason, detail string) fileOutcome {
		return fileOutcome{failure: &model.FileFailure{File: file.Name, Reason: reason, Detail: detail}}
	}

	sheets := file.File.GetSheetList()
	if len(sheets) == 0 {
		return fail(model.FailureHeaderNotFound, "workbook has no sheets")
	}

	// A manifest workbook carries its roster on the first sheet.
	header, tourists, err := parser.NewManifestParser(file.File).ParseSheet(sheets[0])
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			return fail(parseErr.Reason, parseErr.Msg)
		}
		return fail(model.FailureImportFailed, err.Error())
	}

	category, ok := parser.ClassifyCategory(header.TripDescription)
	if !ok {
		return fail(model.FailureUnclassifiedCategory, header.TripDescription)
	}

	if header.DepartureDate == nil {
		return fail(model.FailureMissingDepartureDate, header.DateRangeText)
	}

	segment := parser.InferSegment(header.TripDescription)
	for _, t := range tourists {
		t.Segment = segment
	}

	return fileOutcome{manifest: &model.ParsedManifest{
		SourceFile:          file.Name,
		Header:              header,
		Category:            category,
		Segment:             segment,
		ResolvedArrivalDate: parser.ResolveArrivalDate(*header.DepartureDate, category),
		Tourists:            tourists,
	}}
}
