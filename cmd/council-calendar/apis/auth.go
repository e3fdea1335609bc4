package apis

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/auth"
	"council-calendar-backend/cmd/council-calendar/model"
)

type AuthAPI struct {
	gate *auth.CodeGate
}

func NewAuthAPI(gate *auth.CodeGate) *AuthAPI {

	return &AuthAPI{
		gate: gate,
	}
}

func (a *AuthAPI) Setup(g *echo.Group) {
	g.POST("/auth/verify", a.verifyCode)
}

// verifyCode lets the UI check a code before unlocking editing mode. The
// same code still travels with every mutating request; this endpoint only
// answers yes or no.
func (a *AuthAPI) verifyCode(c echo.Context) error {

	var req model.AuthVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if !a.gate.Verify(req.Code) {
		return c.JSON(
			http.StatusUnauthorized,
			model.BaseResponse{
				Message: "invalid admin code",
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
