package tripHandler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tripHandler "TravelLedger/internal/api/trip/handler"
	tripRepository "TravelLedger/internal/api/trip/repository"
	tripService "TravelLedger/internal/api/trip/service"
	"TravelLedger/internal/api/trip"
	"TravelLedger/internal/config"
	"TravelLedger/internal/middleware"
	"TravelLedger/internal/testkit"
	jwtPkg "TravelLedger/pkg/jwt"
	"TravelLedger/pkg/utils"
)

func newApp(t *testing.T) (*fiber.App, string) {
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	db := testkit.DB(t)
	log := testkit.Logger()
	user := testkit.SeedUser(t, db, "ana@example.com", "Ana", "Diaz")

	app := config.NewFiber(log)
	mw := middleware.New(log)
	app.Use(mw.NewRequestIDMiddleware())

	svc := tripService.New(log, tripRepository.New(db, log), utils.New())
	tripHandler.New(log, svc, config.NewValidator(), mw).Start(app.Group("/api/v1"))

	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.FullName(),
	}, time.Hour)
	require.NoError(t, err)

	return app, token
}

func do(t *testing.T, app *fiber.App, method string, path string, token string, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, raw
}

func TestTripLifecycleOverHTTP(t *testing.T) {
	app, token := newApp(t)

	status, raw := do(t, app, http.MethodPost, "/api/v1/trips", token, `{"name":"Lisbon","baseCurrency":"EUR"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))

	var created trip.TripResponse
	require.NoError(t, jsoniter.Unmarshal(raw, &created))
	assert.Equal(t, "Lisbon", created.Name)
	assert.Equal(t, "EUR", created.BaseCurrency)

	status, raw = do(t, app, http.MethodGet, "/api/v1/trips", token, "")
	require.Equal(t, http.StatusOK, status)
	var list []trip.TripResponse
	require.NoError(t, jsoniter.Unmarshal(raw, &list))
	require.Len(t, list, 1)

	status, _ = do(t, app, http.MethodPatch, "/api/v1/trips/"+created.ID, token, `{"name":"Porto"}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodDelete, "/api/v1/trips/"+created.ID, token, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/trips/"+created.ID, token, "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestTripValidationAndAuth(t *testing.T) {
	app, token := newApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/v1/trips", "", `{"name":"Lisbon"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := do(t, app, http.MethodPost, "/api/v1/trips", token, `{"name":"L"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "VALIDATION_ERROR")

	status, _ = do(t, app, http.MethodPost, "/api/v1/trips", token, `{"name":"Lisbon","baseCurrency":"JPY"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}
