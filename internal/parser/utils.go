package parser

import (
	"regexp"
	"strings"
	"time"
)

var spaceRe = regexp.MustCompile(`\s+`)

// umlautFolder folds German umlauts and ß so that keyword matching works on
// both spellings ("Verlängerung" / "Verlaengerung").
var umlautFolder = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// NormalizeText lowercases, folds umlauts and collapses whitespace. All
// keyword predicates operate on this form.
func NormalizeText(text string) string {
	text = umlautFolder.Replace(text)
	text = strings.ToLower(strings.TrimSpace(text))
	return spaceRe.ReplaceAllString(text, " ")
}

// NormalizeColumnName reduces a header cell to a comparable key: folded,
// lowercased, all whitespace and separator characters removed.
func NormalizeColumnName(name string) string {
	name = NormalizeText(name)
	for _, cut := range []string{" ", ".", "-", "_", ":"} {
		name = strings.ReplaceAll(name, cut, "")
	}
	return name
}

// ContainsAll reports whether text contains every keyword.
func ContainsAll(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether text contains at least one keyword.
func ContainsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseDay parses a day-month-year date ("17.04.2026", also unpadded
// "8.4.2026") into a UTC calendar day.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2.1.2006", s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParseDateRange splits a "D.M.Y - D.M.Y" range into its two days. A
// malformed side yields nil for that side; missing dates surface downstream
// as a classification failure, not an error here.
func ParseDateRange(text string) (departure, end *time.Time) {
	parts := strings.SplitN(text, "-", 2)
	if d, ok := ParseDay(parts[0]); ok {
		departure = &d
	}
	if len(parts) == 2 {
		if e, ok := ParseDay(parts[1]); ok {
			end = &e
		}
	}
	return departure, end
}

// SameDay compares two timestamps on the calendar day only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// truthy interprets the checkbox-style cells found in manifests.
func truthy(value string) bool {
	switch NormalizeText(value) {
	case "ja", "j", "x", "yes", "y", "1", "true", "wahr":
		return true
	}
	return false
}
