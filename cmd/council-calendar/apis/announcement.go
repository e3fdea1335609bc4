package apis

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/model"
	"council-calendar-backend/cmd/council-calendar/repository"
)

type IAnnouncementRepo interface {
	ActiveAnnouncement(ctx context.Context) (model.Announcement, error)
	SaveAnnouncement(ctx context.Context, ann model.Announcement) (model.Announcement, error)
	DeactivateAll(ctx context.Context) error
}

type AnnouncementAPI struct {
	annRepo IAnnouncementRepo
	gate    echo.MiddlewareFunc
}

func NewAnnouncementAPI(annRepo IAnnouncementRepo, gate echo.MiddlewareFunc) *AnnouncementAPI {

	return &AnnouncementAPI{
		annRepo: annRepo,
		gate:    gate,
	}
}

func (a *AnnouncementAPI) Setup(g *echo.Group) {
	g.GET("/announcement", a.getAnnouncement)
	g.PUT("/announcement", a.putAnnouncement, a.gate)
}

func (a *AnnouncementAPI) getAnnouncement(c echo.Context) error {

	ctx := c.Request().Context()

	ann, err := a.annRepo.ActiveAnnouncement(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoAnnouncement) {
			return c.JSON(
				http.StatusNotFound,
				model.BaseResponse{
					Message: "no active announcement",
				},
			)
		}
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
			Data:    ann,
		},
	)
}

// putAnnouncement replaces the active banner. Retiring the previous one
// and publishing the new one are two steps; a brief bannerless window is
// fine.
func (a *AnnouncementAPI) putAnnouncement(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.AnnouncementPutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if err := a.annRepo.DeactivateAll(ctx); err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if !req.IsActive {
		return c.JSON(
			http.StatusOK,
			model.BaseResponse{
				Message: "success",
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

	ann := model.Announcement{
		ID:         id.String(),
		Message:    req.Message,
		IsActive:   true,
		CreateDate: time.Now(),
		UpdateDate: time.Now(),
	}

	saved, err := a.annRepo.SaveAnnouncement(ctx, ann)
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
			Data:    saved,
		},
	)
}
