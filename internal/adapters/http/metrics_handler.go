package http

import (
	"context"
	"net/http"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"
)

type MetricsSampler interface {
	Collect(ctx context.Context) domain.SystemSnapshot
	CPU(ctx context.Context) (domain.CPUSnapshot, error)
	Disk(ctx context.Context) (domain.DiskSnapshot, error)
	Memory(ctx context.Context) (domain.MemorySnapshot, error)
	GPU(ctx context.Context) ([]domain.GPUSnapshot, error)
	NetFlow(ctx context.Context) (domain.NetFlowSnapshot, error)
}

type MetricsHandler struct {
	sampler MetricsSampler
	log     logger.Logger
}

func NewMetricsHandler(sampler MetricsSampler, log logger.Logger) *MetricsHandler {
	return &MetricsHandler{
		sampler: sampler,
		log:     log,
	}
}

// Snapshot always answers 200; failed samplers show up in diagnostics.
func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, h.sampler.Collect(r.Context()))
}

func (h *MetricsHandler) CPU(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sampler.CPU(r.Context())
	h.respond(w, "cpu", snap, err)
}

func (h *MetricsHandler) Disk(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sampler.Disk(r.Context())
	h.respond(w, "disk", snap, err)
}

func (h *MetricsHandler) Memory(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sampler.Memory(r.Context())
	h.respond(w, "memory", snap, err)
}

func (h *MetricsHandler) GPU(w http.ResponseWriter, r *http.Request) {
	gpus, err := h.sampler.GPU(r.Context())
	if gpus == nil {
		gpus = []domain.GPUSnapshot{}
	}
	h.respond(w, "gpu", gpus, err)
}

func (h *MetricsHandler) Network(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sampler.NetFlow(r.Context())
	h.respond(w, "network", snap, err)
}

func (h *MetricsHandler) respond(w http.ResponseWriter, name string, payload any, err error) {
	if err != nil {
		status := StatusFor(err)
		h.log.Warn("sampling failed", "sampler", name, "status", status, "error", err)
		JSONError(w, status, err.Error())
		return
	}

	JSONSuccess(w, payload)
}
