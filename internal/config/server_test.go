package config

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelLedger/internal/api/auth"
	"TravelLedger/internal/api/expense"
	"TravelLedger/internal/api/participant"
	"TravelLedger/internal/api/trip"
	"TravelLedger/internal/testkit"
	"TravelLedger/pkg/bcrypt"
)

type apiClient struct {
	t      *testing.T
	server *Server
	token  string
}

func newTestServer(t *testing.T) *apiClient {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	env := validEnv()
	env.SQLiteDBPath = filepath.Join(t.TempDir(), "ledger.db")
	env.JWTSecret = "test-secret"
	log := testkit.Logger()

	server, err := NewServer(
		WithFiber(NewFiber(log)),
		WithLogger(log),
		WithEnv(env),
		WithValidator(NewValidator()),
		WithDatabase(),
		WithMigrations(),
		WithRedisServer(testkit.NewRedis()),
		WithSMTPMailer(&testkit.Mailer{}),
		WithMiddleware(),
		WithUtils(),
	)
	require.NoError(t, err)
	server.bcryptUtils = bcrypt.NewWithCost(4)
	t.Cleanup(func() { _ = server.db.Close() })

	server.RegisterHandler()
	server.Mount()

	return &apiClient{t: t, server: server}
}

func (c *apiClient) do(method string, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.server.engine.Test(req, -1)
	require.NoError(c.t, err)
	defer res.Body.Close()

	if out != nil && res.StatusCode < http.StatusBadRequest {
		require.NoError(c.t, jsoniter.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestServer(t)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/", nil, nil))
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/metrics", nil, nil))
}

func TestExpenseFlowOverHTTP(t *testing.T) {
	api := newTestServer(t)

	status := api.do(http.MethodPost, "/api/v1/auth/register", auth.CreateUserRequest{
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Diaz",
		Password:  "correct-horse",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login auth.LoginUserResponse
	status = api.do(http.MethodPost, "/api/v1/auth/login", auth.LoginUserRequest{Email: "ana@example.com", Password: "correct-horse"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/trips", nil, nil))
	api.token = login.AccessToken

	var created trip.TripResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/trips", trip.CreateTripRequest{Name: "Lisbon"}, &created))

	var roster []participant.ParticipantResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/participants/trip/"+created.ID, nil, &roster))
	require.Len(t, roster, 1)
	owner := roster[0]

	body := map[string]interface{}{
		"tripId":              created.ID,
		"amount":              42.5,
		"description":         "Tram tickets",
		"paidByParticipantId": owner.ID,
		"expenseDate":         "2026-05-01",
	}
	var tickets expense.ExpenseResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/expenses", body, &tickets))
	assert.Equal(t, "42.50", tickets.Amount.StringFixed(2))
	assert.Equal(t, "paid", tickets.Status)
	assert.Equal(t, "2026-05-01", tickets.ExpenseDate.Format("2006-01-02"))

	invalid := map[string]interface{}{"tripId": created.ID, "amount": 0, "description": "x"}
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/v1/expenses", invalid, nil))

	var listed []expense.ExpenseResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/expenses?tripId="+created.ID, nil, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, tickets.ID, listed[0].ID)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/expenses", nil, nil))

	var summary expense.SummaryResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, fmt.Sprintf("/api/v1/expenses/trip/%s/summary", created.ID), nil, &summary))
	assert.Equal(t, "42.50", summary.TotalExpenses.StringFixed(2))

	var balance expense.BalanceResponse
	path := fmt.Sprintf("/api/v1/expenses/participant/%s/balance?tripId=%s", owner.ID, created.ID)
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, path, nil, &balance))
	assert.Equal(t, "42.50", balance.TotalPaid.StringFixed(2))

	var debts expense.DebtsResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, fmt.Sprintf("/api/v1/expenses/trip/%s/debts", created.ID), nil, &debts))
	assert.Empty(t, debts.Debts)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/v1/expenses/"+tickets.ID+"/settle", nil, nil))
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/expenses/"+tickets.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/v1/expenses/"+tickets.ID, nil, nil))
}
