package apis

import (
	"context"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/goforj/godump"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/model"
	"council-calendar-backend/cmd/council-calendar/schedule"
)

type IGreetingRepo interface {
	ListRoster(ctx context.Context) ([]model.RosterMember, error)
	ReplaceRoster(ctx context.Context, members []model.RosterMember) error
	ListAttendanceByDay(ctx context.Context, day time.Time) ([]model.AttendanceRecord, error)
	CreateAttendance(ctx context.Context, record model.AttendanceRecord) (model.AttendanceRecord, error)
}

// GreetingAPI covers the morning-greeting duty: the roster of members and
// daily check-in records.
type GreetingAPI struct {
	greetingRepo IGreetingRepo
	gate         echo.MiddlewareFunc
}

func NewGreetingAPI(greetingRepo IGreetingRepo, gate echo.MiddlewareFunc) *GreetingAPI {

	return &GreetingAPI{
		greetingRepo: greetingRepo,
		gate:         gate,
	}
}

func (a *GreetingAPI) Setup(g *echo.Group) {
	g.GET("/greetings/roster", a.listRoster)
	g.POST("/greetings/roster", a.uploadRoster, a.gate)
	g.GET("/greetings/attendance", a.listAttendance)
	g.POST("/greetings/attendance", a.checkIn, a.gate)
}

func (a *GreetingAPI) listRoster(c echo.Context) error {

	ctx := c.Request().Context()

	members, err := a.greetingRepo.ListRoster(ctx)
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
			Data:    members,
		},
	)
}

// uploadRoster replaces the duty roster from a CSV file with name and
// department columns.
func (a *GreetingAPI) uploadRoster(c echo.Context) error {

	ctx := c.Request().Context()

	csvfile, err := c.FormFile("csvfile")
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	cf, err := csvfile.Open()
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	defer cf.Close()

	var rows []model.RosterMemberCSV
	err = gocsv.Unmarshal(cf, &rows)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	godump.Dump(rows)

	now := time.Now()
	members := make([]model.RosterMember, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.NewV7()
		if err != nil {
			return c.JSON(
				http.StatusInternalServerError,
				model.BaseResponse{
					Message: err.Error(),
				},
			)
		}
		members = append(members, model.RosterMember{
			ID:         id.String(),
			Name:       row.Name,
			Department: row.Department,
			CreateDate: now,
		})
	}

	if err := a.greetingRepo.ReplaceRoster(ctx, members); err != nil {
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
			Data:    members,
		},
	)
}

func (a *GreetingAPI) listAttendance(c echo.Context) error {

	ctx := c.Request().Context()

	day, err := parseDay(c.QueryParam("day"))
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	records, err := a.greetingRepo.ListAttendanceByDay(ctx, day)
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
			Data:    records,
		},
	)
}

func (a *GreetingAPI) checkIn(c echo.Context) error {

	ctx := c.Request().Context()

	var req struct {
		MemberID string `json:"member_id"`
		Day      string `json:"day"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	day, err := parseDay(req.Day)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
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

	record := model.AttendanceRecord{
		ID:         id.String(),
		MemberID:   req.MemberID,
		Day:        day,
		CreateDate: time.Now(),
	}

	saved, err := a.greetingRepo.CreateAttendance(ctx, record)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "success",
			Data:    saved,
		},
	)
}

// parseDay reads a YYYY-MM-DD value; empty means today.
func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return schedule.StartOfDay(time.Now()), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}
