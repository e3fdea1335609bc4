// Package schedule holds the pure calendar math: on which days an event
// shows up, how a drag-move shifts its timestamps, and how a repeat rule
// expands into concrete instances. Nothing here touches storage.
package schedule

import (
	"time"

	"council-calendar-backend/cmd/council-calendar/model"
)

// StartOfDay returns midnight of the calendar day containing t, in t's
// location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of the calendar day
// containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// OccursOnDate reports whether the event is visible on the calendar day
// containing date. An event without an end time occurs only on the day of
// its start. With an end time the end is treated as exclusive, so a span
// ending exactly at midnight does not bleed into the next day.
func OccursOnDate(ev model.Event, date time.Time) bool {
	dayStart := StartOfDay(date)
	dayEnd := EndOfDay(date)

	if ev.EndTime == nil {
		return !ev.StartTime.Before(dayStart) && !ev.StartTime.After(dayEnd)
	}

	return !ev.StartTime.After(dayEnd) && ev.EndTime.After(dayStart)
}

// AllDayEndDate returns the last day an all-day event is visible on, as a
// midnight value. The stored end time is the exclusive day-after bound, so
// the last visible day is one day before it. Without an end time the event
// is a single day.
func AllDayEndDate(ev model.Event) time.Time {
	if ev.EndTime == nil {
		return StartOfDay(ev.StartTime)
	}
	return StartOfDay(ev.EndTime.AddDate(0, 0, -1))
}
