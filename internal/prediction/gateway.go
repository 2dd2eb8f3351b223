// Package prediction calls the external volatility prediction service.
package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sevigo/volatility-agent/internal/config"
	"github.com/sevigo/volatility-agent/internal/core"
)

const (
	horizonPath = "/volatility_prediction"
	latestPath  = "/api/v1/predictions/latest"

	// maxResponseBytes bounds how much of an upstream body is read.
	maxResponseBytes = 4 << 20
)

// Reading is the success payload of the latest-predictions endpoint.
type Reading struct {
	Timestamp    int64   `json:"timestamp"`
	Volatility   float64 `json:"volatility"`
	TimestampStr string  `json:"timestamp_str"`
}

// record is one entry of the latest-predictions response.
type record struct {
	Symbol         string  `json:"symbol"`
	Goal           string  `json:"goal"`
	Pred           float64 `json:"pred"`
	PredictionTime string  `json:"prediction_time"`
}

type gateway struct {
	baseURL string
	apiKey  string
	mode    string
	goal    string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPClient creates the HTTP client used for gateway calls. Its timeout is
// the only bound on how long a job handler waits for a prediction.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// NewGateway creates a core.PredictionGateway for cfg. A nil client gets a
// default one built from cfg.Timeout.
func NewGateway(cfg *config.GatewayConfig, client *http.Client, logger *slog.Logger) core.PredictionGateway {
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	return &gateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		mode:    cfg.Mode,
		goal:    cfg.Goal,
		client:  client,
		logger:  logger,
	}
}

// Predict performs one GET against the configured endpoint. Non-200 answers
// come back as an error result; only transport failures return an error.
func (g *gateway) Predict(ctx context.Context, symbol string, horizonMinutes int) (*core.PredictionResult, error) {
	endpoint, err := g.endpoint(symbol, horizonMinutes)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build prediction request: %w", err)
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("Accept", "application/json")

	g.logger.Info("requesting volatility prediction", "symbol", symbol, "horizon_min", horizonMinutes, "mode", g.mode)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read prediction response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("prediction service returned an error", "status", resp.StatusCode, "symbol", symbol)
		return &core.PredictionResult{
			Status:  core.StatusError,
			Message: fmt.Sprintf("Error fetching volatility: %s", body),
		}, nil
	}

	if g.mode == config.GatewayModeLatest {
		return g.pickLatest(body, symbol), nil
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return decodeFailure(err), nil
	}
	return &core.PredictionResult{Status: core.StatusSuccess, Message: payload}, nil
}

func (g *gateway) endpoint(symbol string, horizonMinutes int) (string, error) {
	switch g.mode {
	case config.GatewayModeLatest:
		return g.baseURL + latestPath, nil
	case config.GatewayModeHorizon, "":
		params := url.Values{}
		params.Set("symbol", symbol)
		params.Set("horizon", strconv.Itoa(horizonMinutes)+"min")
		return g.baseURL + horizonPath + "?" + params.Encode(), nil
	default:
		return "", fmt.Errorf("unsupported gateway mode %q", g.mode)
	}
}

// pickLatest selects the record for symbol and the configured goal.
func (g *gateway) pickLatest(body []byte, symbol string) *core.PredictionResult {
	var records []record
	if err := json.Unmarshal(body, &records); err != nil {
		return decodeFailure(err)
	}

	for _, r := range records {
		if r.Goal != g.goal || r.Symbol != symbol {
			continue
		}
		reading := Reading{
			Volatility:   math.Abs(r.Pred),
			TimestampStr: r.PredictionTime,
		}
		if ts, err := parsePredictionTime(r.PredictionTime); err == nil {
			reading.Timestamp = ts.Unix()
		} else {
			g.logger.Warn("unparseable prediction time", "value", r.PredictionTime, "error", err)
		}
		return &core.PredictionResult{Status: core.StatusSuccess, Message: reading}
	}

	g.logger.Warn("no prediction found", "symbol", symbol, "goal", g.goal, "records", len(records))
	return &core.PredictionResult{Status: core.StatusError, Message: map[string]any{}}
}

// parsePredictionTime accepts RFC 3339 and the naive ISO form the service
// uses, which is interpreted as UTC.
func parsePredictionTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}

func decodeFailure(err error) *core.PredictionResult {
	return &core.PredictionResult{
		Status:  core.StatusError,
		Message: fmt.Sprintf("Error decoding volatility response: %v", err),
	}
}
