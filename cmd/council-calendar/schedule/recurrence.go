package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"council-calendar-backend/cmd/council-calendar/model"
)

type RepeatMode string

var (
	RepeatNone    RepeatMode = "none"
	RepeatDaily   RepeatMode = "daily"
	RepeatWeekly  RepeatMode = "weekly"
	RepeatMonthly RepeatMode = "monthly"
)

var ErrEmptyExpansion = errors.New("repeat range ends before the first occurrence")

// Expand materializes a repeat rule into concrete event instances, one per
// step from the base start until the end of the until day, boundary day
// included. The base occurrence is always the first instance. Instances
// carry no IDs; those are assigned when the batch is persisted.
//
// Monthly repetition follows RRULE semantics: months without the base's
// day-of-month (a 31st, or Feb 29th off leap years) are skipped rather
// than clamped.
func Expand(base model.Event, mode RepeatMode, until time.Time) ([]model.Event, error) {
	freq, err := frequency(mode)
	if err != nil {
		return nil, err
	}

	bound := EndOfDay(until.In(base.StartTime.Location()))
	if bound.Before(base.StartTime) {
		return nil, ErrEmptyExpansion
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: base.StartTime,
		Until:   bound,
	})
	if err != nil {
		return nil, fmt.Errorf("build repeat rule: %w", err)
	}

	var duration time.Duration
	if base.EndTime != nil {
		duration = base.EndTime.Sub(base.StartTime)
	}

	starts := rule.All()
	instances := make([]model.Event, 0, len(starts))
	for _, start := range starts {
		inst := base
		inst.ID = ""
		inst.StartTime = start
		if base.EndTime != nil {
			end := start.Add(duration)
			inst.EndTime = &end
		}
		instances = append(instances, inst)
	}

	if len(instances) == 0 {
		return nil, ErrEmptyExpansion
	}
	return instances, nil
}

func frequency(mode RepeatMode) (rrule.Frequency, error) {
	switch mode {
	case RepeatDaily:
		return rrule.DAILY, nil
	case RepeatWeekly:
		return rrule.WEEKLY, nil
	case RepeatMonthly:
		return rrule.MONTHLY, nil
	default:
		return 0, fmt.Errorf("unsupported repeat mode %q", mode)
	}
}
