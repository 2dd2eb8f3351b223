// Package handler provides HTTP handlers for the agent's intake endpoints.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sevigo/volatility-agent/internal/acp"
	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/jobs"
)

// WebhookHandler turns signed ACP relay notifications into queued job events.
type WebhookHandler struct {
	secret     []byte
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler verifying payloads with secret.
func NewWebhookHandler(secret []byte, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret:     secret,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes ACP relay webhook requests. It only enqueues; the job is
// handled after the response has been written.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := acp.ValidatePayload(r, h.secret)
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := acp.ParseEvent(payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	job, memo, err := acp.EventToJob(event)
	if err != nil {
		h.logger.Warn("ignoring job event", "reason", err.Error())
		http.Error(w, "Invalid job event", http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), job, memo); err != nil {
		if errors.Is(err, jobs.ErrDispatcherStopped) {
			http.Error(w, "Agent is shutting down", http.StatusServiceUnavailable)
			return
		}
		h.logger.Error("failed to queue job event", "error", err, "job_id", job.ID)
		http.Error(w, "Failed to queue job event", http.StatusInternalServerError)
		return
	}

	h.logger.Info("job event queued", "job_id", job.ID, "phase", job.Phase, "has_memo", memo != nil)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Job event accepted")
}
