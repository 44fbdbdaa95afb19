package services

import (
	"testing"
	"time"
)

func TestDateAtLocationConvertsBeforeTruncating(t *testing.T) {
	t.Parallel()

	moscow := time.FixedZone("MSK", 3*60*60)
	value := time.Date(2024, time.March, 9, 22, 30, 0, 0, time.UTC)

	got := DateAtLocation(value, moscow)
	want := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCalendarDayKeepsWallClockDate(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("UTC-10", -10*60*60)
	value := time.Date(2024, time.March, 9, 23, 59, 0, 0, zone)

	got := CalendarDay(value)
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 9 || got.Hour() != 0 {
		t.Fatalf("expected 2024-03-09 midnight, got %s", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected a UTC civil date, got %s", got.Location())
	}
}

func TestCalendarDaySurvivesSkippedMidnight(t *testing.T) {
	t.Parallel()

	saoPaulo := loadSaoPaulo(t)
	// Clocks in Sao Paulo jumped from 00:00 to 01:00 on 2018-11-04.
	afterGap := time.Date(2018, time.November, 4, 1, 30, 0, 0, saoPaulo)

	if got := FormatDay(CalendarDay(afterGap)); got != "2018-11-04" {
		t.Fatalf("expected 2018-11-04, got %s", got)
	}
	if got := FormatDay(DateAtLocation(afterGap.UTC(), saoPaulo)); got != "2018-11-04" {
		t.Fatalf("expected 2018-11-04 in Sao Paulo, got %s", got)
	}

	day, err := ParseDay("2018-11-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := DaysBetween(mustParseDay(t, "2018-10-07"), day); got != 28 {
		t.Fatalf("expected 28 days, got %d", got)
	}
}

func loadSaoPaulo(t *testing.T) *time.Location {
	t.Helper()
	location, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}
	return location
}

func TestParseDayAndFormatDay(t *testing.T) {
	t.Parallel()

	day, err := ParseDay("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatDay(day); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}

	for _, raw := range []string{"", "2023-02-29", "2024-1-5", "05.01.2024"} {
		if _, err := ParseDay(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}

	if got := FormatDay(time.Time{}); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
}
