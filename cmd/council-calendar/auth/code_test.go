package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestCodeGate_DailyCode_Deterministic(t *testing.T) {
	gate := NewCodeGate("secret", "")
	day := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	first := gate.DailyCode(day)
	second := gate.DailyCode(day)

	assert.Equal(t, first, second)
	assert.Len(t, first, 8)
	assert.Equal(t, first, gate.DailyCode(day.Add(5*time.Hour)))
}

func TestCodeGate_DailyCode_RotatesAcrossDays(t *testing.T) {
	gate := NewCodeGate("secret", "")

	today := gate.DailyCode(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	tomorrow := gate.DailyCode(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))

	assert.NotEqual(t, today, tomorrow)
}

func TestCodeGate_DailyCode_DependsOnSecret(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.NotEqual(t,
		NewCodeGate("secret-a", "").DailyCode(day),
		NewCodeGate("secret-b", "").DailyCode(day),
	)
}

func TestCodeGate_Verify_CaseInsensitive(t *testing.T) {
	gate := NewCodeGate("secret", "")
	code := gate.DailyCode(time.Now())

	assert.True(t, gate.Verify(code))
	assert.True(t, gate.Verify(strings.ToLower(code)))
	assert.False(t, gate.Verify("WRONGCOD"))
	assert.False(t, gate.Verify(""))
}

func TestCodeGate_Verify_EmergencyKey(t *testing.T) {
	gate := NewCodeGate("secret", "open-sesame")

	assert.True(t, gate.Verify("open-sesame"))
	assert.False(t, gate.Verify("wrong"))
}

func TestCodeGate_RequireAdmin(t *testing.T) {
	gate := NewCodeGate("secret", "")
	e := echo.New()

	handler := gate.RequireAdmin(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Missing code is rejected.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/event", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Today's code passes.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/event", nil)
	req.Header.Set(CodeHeader, gate.DailyCode(time.Now()))
	rec = httptest.NewRecorder()
	err = handler(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
