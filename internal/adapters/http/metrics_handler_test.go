package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostpulse/internal/config"
	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSampler struct {
	snapshot domain.SystemSnapshot
	cpu      domain.CPUSnapshot
	disk     domain.DiskSnapshot
	memory   domain.MemorySnapshot
	gpus     []domain.GPUSnapshot
	net      domain.NetFlowSnapshot
	err      error
}

func (f *fakeSampler) Collect(context.Context) domain.SystemSnapshot { return f.snapshot }
func (f *fakeSampler) CPU(context.Context) (domain.CPUSnapshot, error) {
	return f.cpu, f.err
}
func (f *fakeSampler) Disk(context.Context) (domain.DiskSnapshot, error) {
	return f.disk, f.err
}
func (f *fakeSampler) Memory(context.Context) (domain.MemorySnapshot, error) {
	return f.memory, f.err
}
func (f *fakeSampler) GPU(context.Context) ([]domain.GPUSnapshot, error) {
	return f.gpus, f.err
}
func (f *fakeSampler) NetFlow(context.Context) (domain.NetFlowSnapshot, error) {
	return f.net, f.err
}

func newTestRouter(s *fakeSampler) http.Handler {
	log := logger.Discard()
	return NewRouter(config.Default(), log, &RouterDeps{
		Metrics: NewMetricsHandler(s, log),
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := get(t, newTestRouter(&fakeSampler{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetricsHandler_Snapshot(t *testing.T) {
	s := &fakeSampler{snapshot: domain.SystemSnapshot{
		Memory:      &domain.MemorySnapshot{TotalBytes: 100},
		GPU:         []domain.GPUSnapshot{},
		Diagnostics: []domain.Diagnostic{{Sampler: "disk", Kind: domain.KindMetricUnavailable, Error: "boom"}},
		CollectedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}

	rec := get(t, newTestRouter(s), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "memory")
	assert.NotContains(t, body, "disk")
	assert.Equal(t, []any{}, body["gpu"])
	assert.Len(t, body["diagnostics"], 1)
}

func TestMetricsHandler_CPU(t *testing.T) {
	usage := 0.4567
	logical, physical := uint(8), uint(4)
	s := &fakeSampler{cpu: domain.CPUSnapshot{
		UsageRatio:        &usage,
		LogicalCoreCount:  &logical,
		PhysicalCoreCount: &physical,
	}}

	rec := get(t, newTestRouter(s), "/cpu")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"usage_ratio":0.4567,"logical_core_count":8,"physical_core_count":4}`, rec.Body.String())
}

func TestMetricsHandler_GPUEmpty(t *testing.T) {
	rec := get(t, newTestRouter(&fakeSampler{}), "/gpu")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMetricsHandler_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", fmt.Errorf("%w: bad ratio", domain.ErrInvalidInput), http.StatusBadRequest},
		{"unsupported platform", fmt.Errorf("%w: plan9", domain.ErrUnsupportedPlatform), http.StatusNotImplemented},
		{"unavailable", fmt.Errorf("%w: no perms", domain.ErrMetricUnavailable), http.StatusServiceUnavailable},
		{"vendor", fmt.Errorf("%w: nvml", domain.ErrVendorInterface), http.StatusServiceUnavailable},
		{"deadline", fmt.Errorf("network window: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"canceled", context.Canceled, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&fakeSampler{err: tt.err})

			for _, path := range []string{"/cpu", "/disk", "/memory", "/gpu", "/network"} {
				rec := get(t, h, path)
				assert.Equal(t, tt.want, rec.Code, path)

				var body APIResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.err.Error(), body.Message)
			}
		})
	}
}

func TestRouter_UnknownPathAndMethod(t *testing.T) {
	h := newTestRouter(&fakeSampler{})

	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cpu", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsHandler_GPUPartialFailure(t *testing.T) {
	s := &fakeSampler{
		gpus: []domain.GPUSnapshot{{Index: 0, Name: "gpu-a"}},
		err:  fmt.Errorf("gpu 1: %w: %w: name", domain.ErrMetricUnavailable, domain.ErrVendorInterface),
	}

	rec := get(t, newTestRouter(s), "/gpu")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "gpu 1")
}
