package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"council-calendar-backend/cmd/council-calendar/model"
)

const CodeHeader = "X-Admin-Code"

// RequireAdmin gates mutating routes behind the daily code. Handlers past
// the gate may assume the caller is authorized.
func (g *CodeGate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !g.Verify(c.Request().Header.Get(CodeHeader)) {
			return c.JSON(
				http.StatusForbidden,
				model.BaseResponse{
					Message: "invalid admin code",
				},
			)
		}
		return next(c)
	}
}
