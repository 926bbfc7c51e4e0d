package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	if err != nil || loc != time.Local {
		t.Errorf("LoadLocation(\"\") = %v, %v; want Local", loc, err)
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestDayOf(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 02:00 UTC is still the previous evening in New York
	ts := time.Date(2026, 5, 2, 2, 0, 0, 0, time.UTC)
	if got := DayOf(ts, loc); got != "2026-05-01" {
		t.Errorf("DayOf() = %s, want 2026-05-01", got)
	}
	if got := DayOf(ts, time.UTC); got != "2026-05-02" {
		t.Errorf("DayOf(UTC) = %s, want 2026-05-02", got)
	}
}

func TestAddDaysAndDaysBetween(t *testing.T) {
	got, err := AddDays("2026-02-28", 1)
	if err != nil || got != "2026-03-01" {
		t.Errorf("AddDays() = %s, %v; want 2026-03-01", got, err)
	}

	n, err := DaysBetween("2026-03-01", "2026-03-04")
	if err != nil || n != 3 {
		t.Errorf("DaysBetween() = %d, %v; want 3", n, err)
	}
	if _, err := DaysBetween("bad", "2026-03-04"); err == nil {
		t.Error("expected parse error")
	}
}
