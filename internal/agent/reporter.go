// Package agent
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/google/uuid"
)

// Reporter pushes snapshots to a remote collector. Each push is a single
// attempt; a failure is returned to the caller and the snapshot is dropped.
type Reporter struct {
	client  *http.Client
	url     string
	agentID uuid.UUID
	log     logger.Logger
}

func NewReporter(url string, agentID uuid.UUID, timeout time.Duration, log logger.Logger) *Reporter {
	return &Reporter{
		client:  &http.Client{Timeout: timeout},
		url:     url,
		agentID: agentID,
		log:     log,
	}
}

func (r *Reporter) Push(ctx context.Context, snap domain.SystemSnapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Agent-ID", r.agentID.String())

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send snapshot: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push rejected: status %d", resp.StatusCode)
	}

	r.log.Debug("snapshot pushed", "status", resp.StatusCode, "bytes", len(body))
	return nil
}

// Sink adapts Push to the scheduler, logging failures.
func (r *Reporter) Sink(ctx context.Context, snap domain.SystemSnapshot) {
	if err := r.Push(ctx, snap); err != nil {
		r.log.Warn("push failed", "url", r.url, "error", err)
	}
}
