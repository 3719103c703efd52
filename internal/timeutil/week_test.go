package timeutil

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midweek",
			in:   time.Date(2026, 8, 26, 15, 30, 0, 0, time.Local), // Wednesday
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local),
		},
		{
			name: "monday stays put",
			in:   time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2026, 8, 30, 23, 0, 0, 0, time.Local),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWorkweek(t *testing.T) {
	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.Local)

	days := Workweek(wednesday, false)

	if len(days) != 5 {
		t.Fatalf("expected 5 workdays, got %d", len(days))
	}
	if days[0].Weekday() != time.Monday {
		t.Errorf("expected the week to start on Monday, got %v", days[0].Weekday())
	}
	if days[4].Weekday() != time.Friday {
		t.Errorf("expected the week to end on Friday, got %v", days[4].Weekday())
	}
	if !days[0].Equal(time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)) {
		t.Errorf("unexpected Monday: %v", days[0])
	}
}

func TestWorkweekNext(t *testing.T) {
	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.Local)

	days := Workweek(wednesday, true)

	if !days[0].Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)) {
		t.Errorf("expected next week's Monday, got %v", days[0])
	}
}

func TestFormatDay(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
	if got := FormatDay(day); got != "Monday, 24 August" {
		t.Errorf("FormatDay = %q", got)
	}
}
