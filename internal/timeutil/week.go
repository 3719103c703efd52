// Package timeutil provides the calendar helpers used by the fill
// workflow.
package timeutil

import "time"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00:00 of the week containing the given time (ISO standard)
// Handles the Sunday edge case where Go's Weekday() returns 0
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// Workweek returns the five workdays (Monday through Friday) of the week
// containing the given time. With next set, it returns the following
// week's workdays instead.
func Workweek(t time.Time, next bool) []time.Time {
	if next {
		t = t.AddDate(0, 0, 7)
	}
	monday := StartOfWeek(t)
	days := make([]time.Time, 5)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// FormatDay renders a date the way day headings are shown, e.g.
// "Monday, 24 August".
func FormatDay(t time.Time) string {
	return t.Format("Monday, 2 January")
}
