package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Prediction statuses reported by the gateway and passed through to buyers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// PredictionResult is the normalized outcome of one gateway call. Message is
// either the prediction data or a human-readable error.
type PredictionResult struct {
	Status  string `json:"status"`
	Message any    `json:"message"`
}

// IsSuccess reports whether the gateway produced a prediction.
func (r *PredictionResult) IsSuccess() bool {
	return r != nil && r.Status == StatusSuccess
}

// PredictionGateway fetches a volatility prediction for a symbol.
//
// A non-success answer from the upstream service is returned as a result with
// StatusError, not as an error. An error means the call could not complete.
//
//go:generate mockgen -destination=../../mocks/mock_prediction_gateway.go -package=mocks . PredictionGateway
type PredictionGateway interface {
	Predict(ctx context.Context, symbol string, horizonMinutes int) (*PredictionResult, error)
}

// Deliverable is the envelope a prediction is delivered in.
type Deliverable struct {
	Type  string           `json:"type"`
	Value PredictionResult `json:"value"`
}

// NewDeliverable wraps a prediction result for delivery.
func NewDeliverable(result *PredictionResult) Deliverable {
	return Deliverable{Type: "object", Value: *result}
}

// DecodeDeliverable parses a delivered envelope.
func DecodeDeliverable(raw string) (*Deliverable, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("deliverable is empty")
	}
	var d Deliverable
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("failed to decode deliverable: %w", err)
	}
	return &d, nil
}
