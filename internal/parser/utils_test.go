package parser

import "testing"

func TestParseDay(t *testing.T) {
	t.Parallel()

	d, ok := ParseDay("17.04.2026")
	if !ok {
		t.Fatalf("expected parse")
	}
	if d.Year() != 2026 || d.Month() != 4 || d.Day() != 17 {
		t.Fatalf("unexpected date: %s", d)
	}

	if d, ok := ParseDay("8.4.2026"); !ok || d.Day() != 8 {
		t.Fatalf("unpadded date: ok=%v d=%s", ok, d)
	}

	for _, bad := range []string{"", "April 17", "2026-04-17", "32.01.2026"} {
		if _, ok := ParseDay(bad); ok {
			t.Fatalf("%q: expected parse failure", bad)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	t.Parallel()

	departure, end := ParseDateRange("17.04.2026 - 30.04.2026")
	if departure == nil || end == nil {
		t.Fatalf("expected both sides, got %v %v", departure, end)
	}
	if departure.Day() != 17 || end.Day() != 30 {
		t.Fatalf("unexpected range: %s - %s", departure, end)
	}
}

func TestParseDateRange_Malformed(t *testing.T) {
	t.Parallel()

	// malformed sides stay unset rather than erroring
	if departure, end := ParseDateRange("ab Frühjahr 2026"); departure != nil || end != nil {
		t.Fatalf("expected unset dates, got %v %v", departure, end)
	}
	if departure, end := ParseDateRange("17.04.2026 - offen"); departure == nil || end != nil {
		t.Fatalf("expected departure only, got %v %v", departure, end)
	}
}

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Pass-Nr.":       "passnr",
		"Gültig bis":     "gueltigbis",
		" Geburtsdatum ": "geburtsdatum",
		"Nationalität":   "nationalitaet",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Fatalf("%q: want %q got %q", in, want, got)
		}
	}
}

func TestNormalizeText_FoldsUmlauts(t *testing.T) {
	t.Parallel()

	if got := NormalizeText("Verlängerung  Seidenstraße"); got != "verlaengerung seidenstrasse" {
		t.Fatalf("unexpected: %q", got)
	}
}
