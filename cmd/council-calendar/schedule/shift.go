package schedule

import (
	"math"
	"time"

	"council-calendar-backend/cmd/council-calendar/model"
)

// TimeShift is the timestamp pair produced by a drag-move. Only these two
// fields change; the caller merges them into an update patch.
type TimeShift struct {
	StartTime time.Time
	EndTime   *time.Time
}

// ShiftToDate moves an event to the calendar day of target, keeping the
// time-of-day and the total duration intact. The delta is computed in
// whole calendar days, so the all-day exclusive end bound shifts by the
// same amount and the displayed span length is preserved.
func ShiftToDate(ev model.Event, target time.Time) TimeShift {
	fromDay := StartOfDay(ev.StartTime)
	toDay := StartOfDay(target.In(ev.StartTime.Location()))

	days := calendarDaysBetween(fromDay, toDay)
	if days == 0 {
		return TimeShift{StartTime: ev.StartTime, EndTime: ev.EndTime}
	}

	shifted := TimeShift{StartTime: ev.StartTime.AddDate(0, 0, days)}
	if ev.EndTime != nil {
		end := ev.EndTime.AddDate(0, 0, days)
		shifted.EndTime = &end
	}
	return shifted
}

// calendarDaysBetween counts whole days from a to b, both midnights.
// Rounding absorbs DST days that are 23 or 25 hours long.
func calendarDaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
