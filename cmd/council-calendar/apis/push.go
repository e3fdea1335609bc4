package apis

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/model"
)

type IPushRepo interface {
	SaveSubscription(ctx context.Context, sub model.PushSubscription) (model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// PushAPI keeps the push-subscription book. Actual delivery goes through
// the browser push service and is out of scope here.
type PushAPI struct {
	pushRepo IPushRepo
}

func NewPushAPI(pushRepo IPushRepo) *PushAPI {

	return &PushAPI{
		pushRepo: pushRepo,
	}
}

func (a *PushAPI) Setup(g *echo.Group) {
	g.POST("/push/subscribe", a.subscribe)
	g.POST("/push/unsubscribe", a.unsubscribe)
}

func (a *PushAPI) subscribe(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.PushSubscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if req.Endpoint == "" {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "endpoint is required",
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

	sub := model.PushSubscription{
		ID:         id.String(),
		Endpoint:   req.Endpoint,
		P256dh:     req.P256dh,
		Auth:       req.Auth,
		CreateDate: time.Now(),
	}

	saved, err := a.pushRepo.SaveSubscription(ctx, sub)
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

func (a *PushAPI) unsubscribe(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.PushUnsubscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if err := a.pushRepo.DeleteSubscription(ctx, req.Endpoint); err != nil {
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
		},
	)
}
