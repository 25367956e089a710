package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

type mockDashboard struct {
	mock.Mock
}

func (m *mockDashboard) Snapshot() domain.DashboardState {
	return m.Called().Get(0).(domain.DashboardState)
}

func (m *mockDashboard) Search(ctx context.Context, term string) domain.DashboardState {
	return m.Called(ctx, term).Get(0).(domain.DashboardState)
}

type envelope struct {
	Status  string                `json:"status"`
	Data    domain.DashboardState `json:"data"`
	Message string                `json:"message"`
	Error   string                `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHandler_Snapshot(t *testing.T) {
	dashboard := new(mockDashboard)
	dashboard.On("Snapshot").Return(domain.DashboardState{Sequence: 3, Term: "react", Status: domain.StatusLoading})

	rec, env := doRequest(t, NewHandler(dashboard, zerolog.Nop()), http.MethodGet, "/v1/dashboard", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, domain.StatusLoading, env.Data.Status)
	assert.Equal(t, uint64(3), env.Data.Sequence)
	dashboard.AssertExpectations(t)
}

func TestHandler_Search(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		target         string
		body           string
		term           string
		state          domain.DashboardState
		expectedCode   int
		expectedStatus string
		expectedError  string
	}{
		{
			name:           "query search loads",
			method:         http.MethodGet,
			target:         "/v1/dashboard/search?q=react",
			term:           "react",
			state:          domain.DashboardState{Term: "react", Status: domain.StatusLoaded},
			expectedCode:   http.StatusOK,
			expectedStatus: "success",
		},
		{
			name:           "missing query searches the default repository",
			method:         http.MethodGet,
			target:         "/v1/dashboard/search",
			term:           "",
			state:          domain.DashboardState{Status: domain.StatusLoaded},
			expectedCode:   http.StatusOK,
			expectedStatus: "success",
		},
		{
			name:           "body search not found",
			method:         http.MethodPost,
			target:         "/v1/dashboard/search",
			body:           `{"term":"zzzznonexistentrepo12345"}`,
			term:           "zzzznonexistentrepo12345",
			state:          domain.DashboardState{Status: domain.StatusNotFound, Message: "Repository not found."},
			expectedCode:   http.StatusNotFound,
			expectedStatus: "error",
			expectedError:  "Repository not found.",
		},
		{
			name:           "upstream failure",
			method:         http.MethodGet,
			target:         "/v1/dashboard/search?q=react",
			term:           "react",
			state:          domain.DashboardState{Status: domain.StatusError, Message: "Failed to load data."},
			expectedCode:   http.StatusBadGateway,
			expectedStatus: "error",
			expectedError:  "Failed to load data.",
		},
		{
			name:           "superseded search",
			method:         http.MethodGet,
			target:         "/v1/dashboard/search?q=react",
			term:           "react",
			state:          domain.DashboardState{Term: "vue", Status: domain.StatusLoading},
			expectedCode:   http.StatusAccepted,
			expectedStatus: "success",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dashboard := new(mockDashboard)
			dashboard.On("Search", mock.Anything, tc.term).Return(tc.state)

			rec, env := doRequest(t, NewHandler(dashboard, zerolog.Nop()), tc.method, tc.target, tc.body)

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedStatus, env.Status)
			assert.Equal(t, tc.expectedError, env.Error)
			assert.Equal(t, tc.state.Status, env.Data.Status)
			dashboard.AssertExpectations(t)
		})
	}
}

func TestHandler_SearchInvalidBody(t *testing.T) {
	dashboard := new(mockDashboard)

	rec, env := doRequest(t, NewHandler(dashboard, zerolog.Nop()), http.MethodPost, "/v1/dashboard/search", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "invalid request body", env.Error)
	dashboard.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestHandler_Health(t *testing.T) {
	rec, env := doRequest(t, NewHandler(new(mockDashboard), zerolog.Nop()), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "ok", env.Message)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	testCases := []struct {
		method string
		target string
	}{
		{http.MethodDelete, "/v1/dashboard"},
		{http.MethodPost, "/v1/dashboard"},
		{http.MethodPut, "/v1/dashboard/search"},
		{http.MethodDelete, "/healthz"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			dashboard := new(mockDashboard)

			rec, env := doRequest(t, NewHandler(dashboard, zerolog.Nop()), tc.method, tc.target, "")

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, "method not allowed", env.Error)
			dashboard.AssertNotCalled(t, "Snapshot")
			dashboard.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_UnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/unknown", nil)
	rec := httptest.NewRecorder()
	NewHandler(new(mockDashboard), zerolog.Nop()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
