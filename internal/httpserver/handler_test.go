package httpserver_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmbench/internal/config"
	"github.com/davidbz/llmbench/internal/domain"
	"github.com/davidbz/llmbench/internal/httpserver"
	"github.com/davidbz/llmbench/internal/mocks"
)

func benchConfig() *config.BenchConfig {
	return &config.BenchConfig{
		DefaultModels: []string{"echo4"},
		DefaultAPIs:   []string{"chat", "responses"},
		TableFormat:   "github",
		FailurePolicy: "fail-fast",
	}
}

func pricingTable(t *testing.T) *domain.StaticPricingTable {
	t.Helper()

	table, err := domain.NewStaticPricingTable(domain.PricingEntry{
		Model:               "echo4",
		Provider:            "echo",
		InputPricePerToken:  decimal.RequireFromString("0.00001"),
		OutputPricePerToken: decimal.RequireFromString("0.00004"),
	})
	require.NoError(t, err)
	return table
}

func sampleRun() *domain.BenchmarkRun {
	result := domain.InvocationResult{
		Model: "echo4", Shape: domain.ShapeChat, LatencyMS: 12.5, InputTokens: 10, OutputTokens: 5,
	}
	return &domain.BenchmarkRun{
		ID:        uuid.MustParse("7b0c5f7e-3a43-4c39-9e7a-2c1c4d1b9a10"),
		Prompt:    "ping",
		StartedAt: time.Now(),
		Results:   []domain.InvocationResult{result},
		Measurements: []domain.Measurement{{
			InvocationResult: result,
			Cost: domain.CostBreakdown{
				InputCost:  decimal.RequireFromString("0.0001"),
				OutputCost: decimal.RequireFromString("0.0002"),
				Total:      decimal.RequireFromString("0.0003"),
			},
		}},
	}
}

func post(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload)))
	return rec
}

func TestHandleBenchmark_Success(t *testing.T) {
	runner := mocks.NewMockBenchmarker(t)
	handler := httpserver.NewHandler(runner, pricingTable(t), benchConfig())

	runner.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req *domain.BenchmarkRequest) bool {
			return req.Prompt == "ping" &&
				len(req.Models) == 1 && req.Models[0] == "echo4" &&
				len(req.Shapes) == 2 &&
				req.Policy == domain.FailFast
		})).
		Return(sampleRun(), nil)

	rec := post(t, handler.HandleBenchmark, "/v1/benchmarks", httpserver.BenchmarkRequest{Prompt: "ping"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpserver.BenchmarkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "7b0c5f7e-3a43-4c39-9e7a-2c1c4d1b9a10", resp.RunID)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "0.0003", resp.Results[0].TotalCost.String())
	require.Empty(t, resp.Failures)
	require.Equal(t, "0.0003", resp.TotalCostCents.String())
}

func TestHandleBenchmark_ContinueOnError(t *testing.T) {
	runner := mocks.NewMockBenchmarker(t)
	handler := httpserver.NewHandler(runner, pricingTable(t), benchConfig())

	run := sampleRun()
	run.Failures = []domain.InvocationFailure{{
		Model: "echo4",
		Shape: domain.ShapeResponses,
		Err:   &domain.ProviderError{Provider: "echo", Model: "echo4", StatusCode: 500, Message: "boom"},
	}}

	runner.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req *domain.BenchmarkRequest) bool {
			return req.Policy == domain.ContinueOnError && req.Shapes[0] == domain.ShapeChat
		})).
		Return(run, nil)

	rec := post(t, handler.HandleBenchmark, "/v1/benchmarks", httpserver.BenchmarkRequest{
		Prompt:          "ping",
		APIs:            []string{"chat_completions", "responses"},
		ContinueOnError: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpserver.BenchmarkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Failures, 1)
	require.Contains(t, resp.Failures[0].Error, "status 500")
}

func TestHandleBenchmark_Errors(t *testing.T) {
	tests := []struct {
		name           string
		runErr         error
		expectedStatus int
		upstream       int
	}{
		{
			name:           "configuration error",
			runErr:         domain.NewConfigurationError("prompt cannot be empty"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown model",
			runErr:         &domain.UnknownModelError{Model: "nope"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "provider error",
			runErr:         &domain.ProviderError{Provider: "openai", StatusCode: http.StatusTooManyRequests, Message: "rate limited"},
			expectedStatus: http.StatusBadGateway,
			upstream:       http.StatusTooManyRequests,
		},
		{
			name:           "malformed response",
			runErr:         &domain.MalformedResponseError{Model: "echo4", Shape: domain.ShapeChat, Reason: "missing usage"},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "unexpected error",
			runErr:         errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := mocks.NewMockBenchmarker(t)
			handler := httpserver.NewHandler(runner, pricingTable(t), benchConfig())

			runner.EXPECT().Run(mock.Anything, mock.Anything).Return(nil, tt.runErr)

			rec := post(t, handler.HandleBenchmark, "/v1/benchmarks", httpserver.BenchmarkRequest{Prompt: "ping"})
			require.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tt.runErr.Error(), body["error"])
			if tt.upstream > 0 {
				require.InDelta(t, float64(tt.upstream), body["upstream_status"], 0)
			} else {
				require.NotContains(t, body, "upstream_status")
			}
		})
	}
}

func TestHandleBenchmark_BadInput(t *testing.T) {
	runner := mocks.NewMockBenchmarker(t)
	handler := httpserver.NewHandler(runner, pricingTable(t), benchConfig())

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.HandleBenchmark(rec, httptest.NewRequest(http.MethodGet, "/v1/benchmarks", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.HandleBenchmark(rec, httptest.NewRequest(http.MethodPost, "/v1/benchmarks", strings.NewReader("{")))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown api", func(t *testing.T) {
		rec := post(t, handler.HandleBenchmark, "/v1/benchmarks", httpserver.BenchmarkRequest{
			Prompt: "ping",
			APIs:   []string{"batch"},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "unknown api shape")
	})
}

func TestHandleRun(t *testing.T) {
	runner := mocks.NewMockBenchmarker(t)
	handler := httpserver.NewHandler(runner, pricingTable(t), benchConfig())

	temperature := 0.2
	runner.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req *domain.BenchmarkRequest) bool {
			return len(req.Models) == 1 && req.Models[0] == "echo4" &&
				len(req.Shapes) == 1 && req.Shapes[0] == domain.ShapeResponses &&
				req.Temperature != nil && *req.Temperature == temperature
		})).
		Return(sampleRun(), nil)

	rec := post(t, handler.HandleRun, "/v1/benchmarks/run", httpserver.RunRequest{
		Prompt:      "ping",
		Model:       "echo4",
		APIType:     "responses",
		Temperature: &temperature,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("model is required", func(t *testing.T) {
		rec := post(t, handler.HandleRun, "/v1/benchmarks/run", httpserver.RunRequest{Prompt: "ping", APIType: "chat"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown api type", func(t *testing.T) {
		rec := post(t, handler.HandleRun, "/v1/benchmarks/run", httpserver.RunRequest{Prompt: "ping", Model: "echo4", APIType: "x"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlePricing(t *testing.T) {
	handler := httpserver.NewHandler(mocks.NewMockBenchmarker(t), pricingTable(t), benchConfig())

	rec := httptest.NewRecorder()
	handler.HandlePricing(rec, httptest.NewRequest(http.MethodGet, "/v1/pricing", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"model": "echo4"`)

	rec = httptest.NewRecorder()
	handler.HandlePricing(rec, httptest.NewRequest(http.MethodGet, "/v1/pricing?format=plain", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "model"))

	rec = httptest.NewRecorder()
	handler.HandlePricing(rec, httptest.NewRequest(http.MethodGet, "/v1/pricing?format=latex", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServerRoutes(t *testing.T) {
	runner := mocks.NewMockBenchmarker(t)
	handler := httpserver.NewHandler(runner, pricingTable(t), benchConfig())

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "llmbench_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	server := httpserver.NewServer(&config.ServerConfig{Port: 0}, handler, nil, reg)
	srv := httptest.NewServer(server.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Contains(t, buf.String(), "llmbench_test_total 1")

	runner.EXPECT().Run(mock.Anything, mock.Anything).Return(sampleRun(), nil)
	resp, err = http.Post(srv.URL+"/v1/benchmarks", "application/json", strings.NewReader(`{"prompt":"ping"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}
