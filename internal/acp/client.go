// Package acp talks to the ACP relay: it turns job transitions into relay API
// calls and relay webhook payloads into core jobs.
package acp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/sevigo/volatility-agent/internal/config"
	"github.com/sevigo/volatility-agent/internal/core"
)

// Headers identifying the agent towards the relay.
const (
	HeaderEntityID     = "X-ACP-Entity-ID"
	HeaderAgentAddress = "X-ACP-Agent-Address"
)

type client struct {
	baseURL    string
	entityID   string
	address    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a core.ProtocolClient authenticated with the relay token.
func NewClient(ctx context.Context, cfg *config.ACPConfig, logger *slog.Logger) core.ProtocolClient {
	base := &http.Client{Timeout: cfg.Timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken})

	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = cfg.Timeout

	return &client{
		baseURL:    cfg.APIURL,
		entityID:   cfg.EntityID,
		address:    cfg.AgentWalletAddress,
		httpClient: httpClient,
		logger:     logger,
	}
}

type respondRequest struct {
	MemoID *int64 `json:"memo_id,omitempty"`
	Accept bool   `json:"accept"`
	Reason string `json:"reason,omitempty"`
}

type requirementRequest struct {
	Content string `json:"content"`
}

type deliverRequest struct {
	Deliverable string `json:"deliverable"`
}

type payRequest struct {
	Amount float64 `json:"amount"`
}

type evaluateRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason,omitempty"`
}

type initiateRequest struct {
	ProviderAddress    string          `json:"provider_address"`
	EvaluatorAddress   string          `json:"evaluator_address,omitempty"`
	ServiceRequirement json.RawMessage `json:"service_requirement"`
	ExpiredAt          time.Time       `json:"expired_at"`
}

type initiateResponse struct {
	JobID int64 `json:"job_id"`
}

// Accept signs memo positively.
func (c *client) Accept(ctx context.Context, job *core.Job, memo *core.Memo) error {
	return c.respond(ctx, job, memo, true, "")
}

// Reject signs memo negatively with reason.
func (c *client) Reject(ctx context.Context, job *core.Job, memo *core.Memo, reason string) error {
	return c.respond(ctx, job, memo, false, reason)
}

func (c *client) respond(ctx context.Context, job *core.Job, memo *core.Memo, accept bool, reason string) error {
	body := respondRequest{Accept: accept, Reason: reason}
	if memo != nil {
		body.MemoID = &memo.ID
	}
	return c.post(ctx, fmt.Sprintf("/jobs/%d/respond", job.ID), body, nil)
}

// CreateRequirement posts a follow-up requirement memo.
func (c *client) CreateRequirement(ctx context.Context, job *core.Job, message string) error {
	return c.post(ctx, fmt.Sprintf("/jobs/%d/requirement", job.ID), requirementRequest{Content: message}, nil)
}

// Deliver sends result wrapped in the deliverable envelope.
func (c *client) Deliver(ctx context.Context, job *core.Job, result *core.PredictionResult) error {
	envelope, err := json.Marshal(core.NewDeliverable(result))
	if err != nil {
		return fmt.Errorf("failed to encode deliverable: %w", err)
	}
	return c.post(ctx, fmt.Sprintf("/jobs/%d/deliver", job.ID), deliverRequest{Deliverable: string(envelope)}, nil)
}

// Pay settles amount for job.
func (c *client) Pay(ctx context.Context, job *core.Job, amount float64) error {
	return c.post(ctx, fmt.Sprintf("/jobs/%d/pay", job.ID), payRequest{Amount: amount}, nil)
}

// Evaluate approves or rejects the delivered job.
func (c *client) Evaluate(ctx context.Context, job *core.Job, accept bool, reason string) error {
	return c.post(ctx, fmt.Sprintf("/jobs/%d/evaluate", job.ID), evaluateRequest{Accept: accept, Reason: reason}, nil)
}

// InitiateJob opens a new job with a provider.
func (c *client) InitiateJob(ctx context.Context, req core.InitiateRequest) (int64, error) {
	requirement, err := json.Marshal(req.Requirement)
	if err != nil {
		return 0, fmt.Errorf("failed to encode service requirement: %w", err)
	}
	body := initiateRequest{
		ProviderAddress:    req.ProviderAddress,
		EvaluatorAddress:   req.EvaluatorAddress,
		ServiceRequirement: requirement,
		ExpiredAt:          req.ExpiresAt.UTC(),
	}

	var resp initiateResponse
	if err := c.post(ctx, "/jobs", body, &resp); err != nil {
		return 0, err
	}
	return resp.JobID, nil
}

// post sends body as JSON and decodes the answer into out when out is non-nil.
func (c *client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEntityID, c.entityID)
	req.Header.Set(HeaderAgentAddress, c.address)

	c.logger.Debug("calling acp relay", "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("acp relay request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read acp relay response for %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("acp relay %s returned %d: %s", path, resp.StatusCode, bytes.TrimSpace(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode acp relay response for %s: %w", path, err)
		}
	}
	return nil
}
