// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/giftmatch/internal/models"
)

const healthCheckTimeout = 2 * time.Second

// Health handles health check requests. The response is always 200; a
// failing database only marks the status as degraded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks := h.runChecks(r.Context())

	status := "healthy"
	for _, result := range checks {
		if result != "ok" {
			status = "degraded"
			break
		}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:    status,
			Version:   h.opts.Version,
			Uptime:    time.Since(h.startTime).Seconds(),
			Checks:    checks,
			Timestamp: time.Now(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the catalog database answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := h.runChecks(r.Context())
	ready := checks["database"] == "ok"

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"checks":         checks,
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

func (h *Handler) runChecks(ctx context.Context) map[string]string {
	checks := map[string]string{"database": "not_configured"}
	if h.db == nil {
		return checks
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unreachable"
	} else {
		checks["database"] = "ok"
	}
	return checks
}
