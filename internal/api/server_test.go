package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storygen-hq/storygen/internal/config"
	"github.com/storygen-hq/storygen/internal/generate"
	"github.com/storygen-hq/storygen/pkg/model"
)

type stubService struct {
	result *generate.Result
	health generate.HealthStatus
	report generate.UsageReport

	lastRequest generate.Request
	reportDays  int
}

func (s *stubService) Generate(ctx context.Context, req generate.Request) *generate.Result {
	s.lastRequest = req
	return s.result
}

func (s *stubService) HealthCheck(ctx context.Context) generate.HealthStatus {
	return s.health
}

func (s *stubService) UsageReport(days int) generate.UsageReport {
	s.reportDays = days
	return s.report
}

func newTestServer(svc Service) *Server {
	return NewServer(&config.Config{}, svc, nil)
}

func TestGenerateEndpoint(t *testing.T) {
	svc := &stubService{result: &generate.Result{
		TestCases: []model.TestCase{{Title: "Verify checkout"}},
		Success:   true,
	}}
	srv := newTestServer(svc)

	body := `{"title": "Checkout", "description": "A shopper checks out", "max_test_cases": 8}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, 8, svc.lastRequest.MaxTestCases)

	var result generate.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result.TestCases, 1)
	assert.Equal(t, "Verify checkout", result.TestCases[0].Title)
}

func TestGenerateEndpointBadBody(t *testing.T) {
	srv := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestGenerateEndpointFailureMapsTo422(t *testing.T) {
	svc := &stubService{result: &generate.Result{
		Success:      false,
		ErrorMessage: "story title is required",
	}}
	srv := newTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(`{"description": "d"}`))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "story title is required")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(&stubService{health: generate.HealthStatus{Status: "healthy", Model: "gpt-4-turbo-preview"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health/llm", nil)
	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "gpt-4-turbo-preview")
}

func TestLLMHealthUnhealthy(t *testing.T) {
	srv := newTestServer(&stubService{health: generate.HealthStatus{Status: "unhealthy", Error: "connection failed"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/llm", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestReadyCheck(t *testing.T) {
	srv := NewServer(&config.Config{}, &stubService{}, func(ctx context.Context) error {
		return errors.New("redis unreachable")
	})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "redis unreachable")

	ok := NewServer(&config.Config{}, &stubService{}, nil)
	rr = httptest.NewRecorder()
	ok.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUsageEndpoint(t *testing.T) {
	svc := &stubService{report: generate.UsageReport{PeriodDays: 30}}
	srv := newTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usage?days=30", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 30, svc.reportDays)

	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, defaultUsageDays, svc.reportDays)

	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/usage?days=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
