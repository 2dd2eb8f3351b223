package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequirement is returned when a job carries no service requirement.
	ErrMissingRequirement = errors.New("service requirement is missing")
	// ErrMalformedRequirement is returned when the requirement cannot be decoded.
	ErrMalformedRequirement = errors.New("service requirement is malformed")
)

// Requirement is the service requirement a buyer attaches to a volatility job.
type Requirement struct {
	Symbol     string `json:"symbol"`
	HorizonMin int    `json:"horizon_min"`
}

// ParseRequirement decodes a requirement from raw memo content.
func ParseRequirement(raw []byte) (*Requirement, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrMissingRequirement
	}

	var req Requirement
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRequirement, err)
	}
	req.Symbol = strings.TrimSpace(req.Symbol)
	if req.Symbol == "" {
		return nil, fmt.Errorf("%w: symbol is empty", ErrMalformedRequirement)
	}
	return &req, nil
}
