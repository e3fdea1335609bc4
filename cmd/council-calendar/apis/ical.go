package apis

import (
	"context"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/model"
)

type IEventLister interface {
	ListAllEvents(ctx context.Context) ([]model.Event, error)
}

// ICalAPI serves the whole calendar as an iCalendar feed so students can
// subscribe from their own calendar apps.
type ICalAPI struct {
	eventRepo IEventLister
}

func NewICalAPI(eventRepo IEventLister) *ICalAPI {

	return &ICalAPI{
		eventRepo: eventRepo,
	}
}

func (a *ICalAPI) Setup(g *echo.Group) {
	g.GET("/calendar.ics", a.exportCalendar)
}

func (a *ICalAPI) exportCalendar(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.eventRepo.ListAllEvents(ctx)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Student Council//Calendar//EN")
	cal.SetXWRCalName("Student Council Calendar")

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID + "@council-calendar")
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		ve.SetDtStampTime(ev.UpdateDate)

		if ev.IsAllDay {
			// The stored end is already the exclusive day-after bound
			// DTEND expects; a missing end means a one-day event.
			end := ev.StartTime.AddDate(0, 0, 1)
			if ev.EndTime != nil {
				end = *ev.EndTime
			}
			ve.SetAllDayStartAt(ev.StartTime)
			ve.SetAllDayEndAt(end)
		} else {
			end := ev.StartTime.Add(time.Hour)
			if ev.EndTime != nil {
				end = *ev.EndTime
			}
			ve.SetStartAt(ev.StartTime)
			ve.SetEndAt(end)
		}
	}

	return c.Blob(
		http.StatusOK,
		"text/calendar; charset=utf-8",
		[]byte(cal.Serialize()),
	)
}
