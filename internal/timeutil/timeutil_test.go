package timeutil

import (
	"testing"
	"time"
)

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 0, 0, 1, 0, time.Local)
	night := time.Date(2026, 3, 14, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2026, 3, 15, 0, 0, 1, 0, time.Local)

	if !SameDay(morning, night) {
		t.Error("start and end of the same day should match")
	}
	if SameDay(night, nextDay) {
		t.Error("two seconds across midnight are different days")
	}
}

func TestDayOf(t *testing.T) {
	at := time.Date(2026, 3, 14, 17, 42, 9, 0, time.Local)
	day := DayOf(at)

	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("DayOf should truncate to midnight, got %v", day)
	}
	if !SameDay(at, day) {
		t.Error("DayOf should stay on the same day")
	}
}

func TestFromUnixMillis(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	got := FromUnixMillis(at.UnixMilli())
	if !got.Equal(at) {
		t.Errorf("FromUnixMillis round trip = %v, want %v", got, at)
	}
}
