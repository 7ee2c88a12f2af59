package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelLedger/pkg/handlerUtil"
)

func newLimitedApp(limiter *rateLimiter) *fiber.App {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	m := &middleware{
		rateLimitter:        limiter,
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 log,
	}

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewRateLimiter)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	app := newLimitedApp(newRateLimiter(0.5, 1))

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, "2", res.Header.Get(fiber.HeaderRetryAfter))

	var body handlerUtil.ErrorResponse
	require.NoError(t, jsoniter.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, ErrTooManyRequests.Error(), body.Error)
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	first := limiter.limiterFor("10.0.0.1")
	limiter.limiterFor("10.0.0.2")
	assert.Equal(t, 2, limiter.tracked())
	assert.Same(t, first, limiter.limiterFor("10.0.0.1"))

	now = now.Add(clientIdleTTL / 2)
	limiter.limiterFor("10.0.0.1")

	now = now.Add(clientIdleTTL * 3 / 4)
	limiter.limiterFor("10.0.0.3")

	assert.Equal(t, 2, limiter.tracked(), "10.0.0.2 was idle past the ttl")
	assert.Same(t, first, limiter.limiterFor("10.0.0.1"))
}
