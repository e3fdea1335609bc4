package apis

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/feed"
	"council-calendar-backend/cmd/council-calendar/model"
	"council-calendar-backend/cmd/council-calendar/repository"
	"council-calendar-backend/cmd/council-calendar/schedule"
)

type IEventRepo interface {
	ListEventsInRange(ctx context.Context, start, end time.Time) ([]model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) (model.Event, error)
	CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error)
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type EventAPI struct {
	eventRepo IEventRepo
	bus       *feed.Bus
	gate      echo.MiddlewareFunc
}

func NewEventAPI(eventRepo IEventRepo, bus *feed.Bus, gate echo.MiddlewareFunc) *EventAPI {

	return &EventAPI{
		eventRepo: eventRepo,
		bus:       bus,
		gate:      gate,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events", a.listEvents)
	g.POST("/event", a.createEvent, a.gate)
	g.PUT("/event/:id", a.updateEvent, a.gate)
	g.DELETE("/event/:id", a.deleteEvent, a.gate)
}

// listEvents serves the fetch window. Without query bounds it defaults to
// the current month plus one month either side, the same window the
// calendar view mounts with.
func (a *EventAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	start, end, err := parseWindow(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	events, err := a.eventRepo.ListEventsInRange(ctx, start, end)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    events,
		},
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event := req.Event()
	if err := event.Validate(); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if req.RepeatMode != "" && req.RepeatMode != string(schedule.RepeatNone) {
		return a.createRepeating(c, event, req)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	event.ID = id.String()
	event.CreateDate = time.Now()
	event.UpdateDate = time.Now()

	created, err := a.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	a.bus.Publish(model.InsertChange(created))

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "success",
			Data:    created,
		},
	)
}

// createRepeating expands the repeat rule and stores the whole batch in
// one transaction; a partially-written series is never observable.
func (a *EventAPI) createRepeating(c echo.Context, base model.Event, req model.EventCreateRequest) error {

	ctx := c.Request().Context()

	if req.RepeatUntil == nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "repeat_until is required for repeating events",
			},
		)
	}

	instances, err := schedule.Expand(base, schedule.RepeatMode(req.RepeatMode), *req.RepeatUntil)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	now := time.Now()
	for i := range instances {
		id, err := uuid.NewV7()
		if err != nil {
			return c.JSON(
				http.StatusInternalServerError,
				model.BaseResponse{
					Message: err.Error(),
				},
			)
		}
		instances[i].ID = id.String()
		instances[i].CreateDate = now
		instances[i].UpdateDate = now
	}

	created, err := a.eventRepo.CreateEvents(ctx, instances)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	for _, ev := range created {
		a.bus.Publish(model.InsertChange(ev))
	}

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "success",
			Data:    created,
		},
	)
}

func (a *EventAPI) updateEvent(c echo.Context) error {

	ctx := c.Request().Context()
	id := c.Param("id")

	var patch model.EventPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	updated, err := a.eventRepo.UpdateEvent(ctx, id, patch)
	if err != nil {
		return c.JSON(
			eventErrorStatus(err),
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	a.bus.Publish(model.UpdateChange(updated))

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    updated,
		},
	)
}

func (a *EventAPI) deleteEvent(c echo.Context) error {

	ctx := c.Request().Context()
	id := c.Param("id")

	if err := a.eventRepo.DeleteEvent(ctx, id); err != nil {
		return c.JSON(
			eventErrorStatus(err),
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	a.bus.Publish(model.DeleteChange(id))

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}

func eventErrorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrSchoolEventFixed):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// parseWindow accepts date-only or RFC3339 bounds; an empty pair falls
// back to current month ±1.
func parseWindow(startRaw, endRaw string) (time.Time, time.Time, error) {
	if startRaw == "" && endRaw == "" {
		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return monthStart.AddDate(0, -1, 0), monthStart.AddDate(0, 2, 0).Add(-time.Nanosecond), nil
	}

	start, err := parseBound(startRaw, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseBound(endRaw, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseBound(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
