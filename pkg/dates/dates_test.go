package dates_test

import (
	"testing"
	"time"

	"github.com/lendaround/lendaround/pkg/dates"
)

func TestWindow_UsesItemDuration(t *testing.T) {
	start := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.Local)
	gotStart, gotEnd := dates.Window(start, 10)
	if !gotStart.Equal(start) {
		t.Errorf("start = %v, want %v", gotStart, start)
	}
	want := start.AddDate(0, 0, 10)
	if !gotEnd.Equal(want) {
		t.Errorf("end = %v, want %v", gotEnd, want)
	}
}

func TestWindow_DefaultsToSevenDays(t *testing.T) {
	start := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.Local)
	for _, duration := range []int{0, -3} {
		_, end := dates.Window(start, duration)
		want := start.AddDate(0, 0, dates.DefaultLoanDays)
		if !end.Equal(want) {
			t.Errorf("Window(start, %d) end = %v, want %v", duration, end, want)
		}
	}
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	start := time.Date(2026, time.January, 30, 12, 0, 0, 0, time.Local)
	got := dates.AddDays(start, 5)
	want := time.Date(2026, time.February, 4, 12, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("AddDays = %v, want %v", got, want)
	}
}

func TestLong(t *testing.T) {
	ts := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local)
	if got := dates.Long(ts); got != "March 14, 2026" {
		t.Errorf("Long = %q, want %q", got, "March 14, 2026")
	}
}
