package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"orientinsight/internal/model"
)

// Labels of the metadata rows above the tabular section.
const (
	labelTrip  = "Reise:"
	labelDates = "Reisetermin:"
)

// headerScanRows is how many leading rows are scanned for labels and for the
// column header row.
const headerScanRows = 5

// ParseError is a typed per-file parsing failure.
type ParseError struct {
	Reason model.FailureReason
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Msg)
}

// Column field keys recognized in the header row.
const (
	fieldName        = "name"
	fieldHonorific   = "honorific"
	fieldDateOfBirth = "date_of_birth"
	fieldPassport    = "passport_number"
	fieldIssueDate   = "passport_issue_date"
	fieldExpiryDate  = "passport_expiry_date"
	fieldNationality = "nationality"
	fieldIssuePlace  = "place_of_issue"
	fieldRoom        = "room"
	fieldVegetarian  = "vegetarian"
)

// fieldColumns maps normalized column names (see NormalizeColumnName) to
// field keys, covering the German and English headings seen in manifests.
var fieldColumns = map[string]string{
	"name":                fieldName,
	"nachnamevorname":     fieldName,
	"anrede":              fieldHonorific,
	"titel":               fieldHonorific,
	"title":               fieldHonorific,
	"geburtsdatum":        fieldDateOfBirth,
	"gebdatum":            fieldDateOfBirth,
	"dateofbirth":         fieldDateOfBirth,
	"passnummer":          fieldPassport,
	"passnr":              fieldPassport,
	"reisepassnr":         fieldPassport,
	"passportno":          fieldPassport,
	"ausgestelltam":       fieldIssueDate,
	"ausstellungsdatum":   fieldIssueDate,
	"issuedate":           fieldIssueDate,
	"gueltigbis":          fieldExpiryDate,
	"ablaufdatum":         fieldExpiryDate,
	"expirydate":          fieldExpiryDate,
	"nationalitaet":       fieldNationality,
	"staatsangehoerigkeit": fieldNationality,
	"nationality":         fieldNationality,
	"ausstellungsort":     fieldIssuePlace,
	"placeofissue":        fieldIssuePlace,
	"zimmer":              fieldRoom,
	"zimmerwunsch":        fieldRoom,
	"room":                fieldRoom,
	"vegetarier":          fieldVegetarian,
	"vegetarisch":         fieldVegetarian,
	"veg":                 fieldVegetarian,
}

// headerTokens mark the header row of the tabular section: the first row
// containing a column literally named one of these.
var headerTokens = map[string]bool{
	"nr":   true,
	"id":   true,
	"name": true,
}

// roomCodes normalizes the room-preference synonyms found in manifests onto
// the canonical type codes.
var roomCodes = map[string]string{
	"ez":           "SNGL",
	"einzel":       "SNGL",
	"einzelzimmer": "SNGL",
	"single":       "SNGL",
	"sgl":          "SNGL",
	"sngl":         "SNGL",
	"dz":           "DBL",
	"doppel":       "DBL",
	"doppelzimmer": "DBL",
	"double":       "DBL",
	"dbl":          "DBL",
	"tw":           "TWN",
	"twin":         "TWN",
	"twn":          "TWN",
	"2bett":        "TWN",
	"zweibett":     "TWN",
}

// Honorific tokens for gender inference. Female tokens are checked first:
// "mrs" contains "mr", so the order is load-bearing.
var (
	femaleTokens = []string{"frau", "mrs", "ms", "miss", "mme"}
	maleTokens   = []string{"herr", "mr", "monsieur"}
)

var roomNumberRe = regexp.MustCompile(`(\d+)\s*$`)

// ManifestParser turns one worksheet of an uploaded passenger manifest into
// header metadata plus a normalized tourist list.
type ManifestParser struct {
	file *excelize.File
}

// NewManifestParser creates a parser over an opened workbook.
func NewManifestParser(file *excelize.File) *ManifestParser {
	return &ManifestParser{file: file}
}

// ParseSheet parses one worksheet. It fails with a typed ParseError when the
// header row cannot be located or no data rows remain.
func (p *ManifestParser) ParseSheet(sheetName string) (model.ManifestHeader, []*model.Tourist, error) {
	rows, err := p.file.GetRows(sheetName)
	if err != nil {
		return model.ManifestHeader{}, nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	header := extractHeader(rows)

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return header, nil, &ParseError{
			Reason: model.FailureHeaderNotFound,
			Msg:    fmt.Sprintf("sheet %q has no column header row", sheetName),
		}
	}

	columns := mapColumns(rows[headerIdx])

	var tourists []*model.Tourist
	for i := headerIdx + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		if t := decodeRow(rows[i], columns, header); t != nil {
			tourists = append(tourists, t)
		}
	}
	if len(tourists) == 0 {
		return header, nil, &ParseError{
			Reason: model.FailureEmptyManifest,
			Msg:    fmt.Sprintf("sheet %q has no passenger rows", sheetName),
		}
	}

	return header, tourists, nil
}

// extractHeader scans the leading rows for the trip-description and
// date-range labels. Values are the remainder of the row's first cell with
// the label stripped.
func extractHeader(rows [][]string) model.ManifestHeader {
	var header model.ManifestHeader
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		if len(rows[i]) == 0 {
			continue
		}
		cell := strings.TrimSpace(rows[i][0])
		if v, ok := stripLabel(cell, labelTrip); ok {
			header.TripDescription = v
		} else if v, ok := stripLabel(cell, labelDates); ok {
			header.DateRangeText = v
		}
	}
	header.DepartureDate, header.EndDate = ParseDateRange(header.DateRangeText)
	return header
}

// stripLabel removes a case-insensitive label prefix from a cell.
func stripLabel(cell, label string) (string, bool) {
	if len(cell) < len(label) || !strings.EqualFold(cell[:len(label)], label) {
		return "", false
	}
	return strings.TrimSpace(cell[len(label):]), true
}

// findHeaderRow locates the first row containing a header token column.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			if headerTokens[NormalizeColumnName(cell)] {
				return i
			}
		}
	}
	return -1
}

// mapColumns builds the column-index → field-key mapping for one header row.
func mapColumns(headerRow []string) map[int]string {
	columns := make(map[int]string)
	for idx, cell := range headerRow {
		if field, ok := fieldColumns[NormalizeColumnName(cell)]; ok {
			columns[idx] = field
		}
	}
	return columns
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// decodeRow normalizes one passenger row. Rows without a name are skipped.
func decodeRow(row []string, columns map[int]string, header model.ManifestHeader) *model.Tourist {
	t := &model.Tourist{Gender: model.GenderUnknown}
	vegetarian := false

	for idx, field := range columns {
		if idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			continue
		}

		switch field {
		case fieldName:
			t.LastName, t.FirstName, t.FullName = splitName(value)
		case fieldHonorific:
			t.Gender = inferGender(value)
		case fieldDateOfBirth:
			if d, ok := ParseDay(value); ok {
				t.DateOfBirth = &d
			}
		case fieldPassport:
			t.PassportNumber = value
		case fieldIssueDate:
			if d, ok := ParseDay(value); ok {
				t.PassportIssueDate = &d
			}
		case fieldExpiryDate:
			if d, ok := ParseDay(value); ok {
				t.PassportExpiryDate = &d
			}
		case fieldNationality:
			t.Nationality = value
		case fieldIssuePlace:
			t.PlaceOfIssue = value
		case fieldRoom:
			t.RoomPreference, t.RoomNumber = normalizeRoom(value)
		case fieldVegetarian:
			vegetarian = truthy(value)
		}
	}

	if t.FullName == "" {
		return nil
	}

	if header.DepartureDate != nil {
		t.CheckInDate = *header.DepartureDate
	}
	if header.EndDate != nil {
		t.CheckOutDate = *header.EndDate
	}

	var remarks []string
	if vegetarian {
		remarks = append(remarks, "Vegetarier")
	}
	if birthdayDuringTrip(t.DateOfBirth, header.DepartureDate, header.EndDate) {
		remarks = append(remarks, "Geburtstag während der Reise")
	}
	t.Remarks = strings.Join(remarks, ", ")

	return t
}

// splitName splits "Lastname, Firstname" cells; cells without a comma are
// kept as a bare last name.
func splitName(value string) (last, first, full string) {
	parts := strings.SplitN(value, ",", 2)
	last = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		first = strings.TrimSpace(parts[1])
	}
	full = strings.TrimSpace(first + " " + last)
	return last, first, full
}

// inferGender maps an honorific onto a gender. Female tokens win when both
// could match.
func inferGender(honorific string) model.Gender {
	text := NormalizeText(honorific)
	if ContainsAny(text, femaleTokens...) {
		return model.GenderFemale
	}
	if ContainsAny(text, maleTokens...) {
		return model.GenderMale
	}
	return model.GenderUnknown
}

// normalizeRoom maps a raw room cell through the code table. A numeric
// suffix turns into a room number "<TYPE>-<n>". Unknown codes are kept
// verbatim.
func normalizeRoom(value string) (preference, roomNumber string) {
	number := ""
	if m := roomNumberRe.FindStringSubmatch(value); m != nil {
		number = m[1]
		value = strings.TrimSpace(value[:len(value)-len(m[0])])
	}

	code, ok := roomCodes[NormalizeColumnName(value)]
	if !ok {
		code = strings.ToUpper(strings.TrimSpace(value))
	}
	if code != "" && number != "" {
		return code, code + "-" + number
	}
	return code, ""
}

// birthdayDuringTrip projects the passenger's month/day onto the departure
// year and tests inclusion in [departure, end]. Trips spanning a new-year
// boundary are not handled.
func birthdayDuringTrip(dob, departure, end *time.Time) bool {
	if dob == nil || departure == nil || end == nil {
		return false
	}
	projected := time.Date(departure.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	return !projected.Before(*departure) && !projected.After(*end)
}
