package prediction

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/volatility-agent/internal/config"
	"github.com/sevigo/volatility-agent/internal/core"
)

func newTestGateway(t *testing.T, mode string, handler http.HandlerFunc) core.PredictionGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.GatewayConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Mode:    mode,
		Goal:    "TP10SL10_8",
		Timeout: 2 * time.Second,
	}
	return NewGateway(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGateway_HorizonMode(t *testing.T) {
	gw := newTestGateway(t, config.GatewayModeHorizon, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/volatility_prediction", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "BTC", r.URL.Query().Get("symbol"))
		assert.Equal(t, "60min", r.URL.Query().Get("horizon"))
		_, _ = io.WriteString(w, `{"volatility": 0.42}`)
	})

	result, err := gw.Predict(context.Background(), "BTC", 60)
	require.NoError(t, err)
	assert.Equal(t, &core.PredictionResult{
		Status:  core.StatusSuccess,
		Message: map[string]any{"volatility": 0.42},
	}, result)
}

func TestGateway_ServerErrorIsAResult(t *testing.T) {
	gw := newTestGateway(t, config.GatewayModeHorizon, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	result, err := gw.Predict(context.Background(), "ETH", 15)
	require.NoError(t, err, "a non-200 answer must not be returned as an error")
	assert.Equal(t, core.StatusError, result.Status)
	assert.Contains(t, result.Message, "Error fetching volatility: upstream exploded")
}

func TestGateway_UndecodableBody(t *testing.T) {
	gw := newTestGateway(t, config.GatewayModeHorizon, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	})

	result, err := gw.Predict(context.Background(), "ETH", 15)
	require.NoError(t, err)
	assert.Equal(t, core.StatusError, result.Status)
}

func TestGateway_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	cfg := &config.GatewayConfig{BaseURL: baseURL, APIKey: "k", Mode: config.GatewayModeHorizon, Timeout: time.Second}
	gw := NewGateway(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := gw.Predict(context.Background(), "ETH", 15)
	assert.Error(t, err)
}

func TestGateway_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	cfg := &config.GatewayConfig{BaseURL: srv.URL, APIKey: "k", Mode: config.GatewayModeHorizon}
	gw := NewGateway(cfg, NewHTTPClient(50*time.Millisecond), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := gw.Predict(context.Background(), "ETH", 15)
	assert.Error(t, err)
}

func TestGateway_LatestMode(t *testing.T) {
	body := `[
		{"symbol": "ETH", "goal": "TP5SL5_4", "pred": 0.9, "prediction_time": "2025-06-01T12:00:00"},
		{"symbol": "BTC", "goal": "TP10SL10_8", "pred": -0.31, "prediction_time": "2025-06-01T12:00:00"},
		{"symbol": "ETH", "goal": "TP10SL10_8", "pred": -0.27, "prediction_time": "2025-06-01T12:15:00"}
	]`

	tests := []struct {
		name   string
		symbol string
		want   *core.PredictionResult
	}{
		{
			name:   "matching symbol and goal",
			symbol: "ETH",
			want: &core.PredictionResult{
				Status: core.StatusSuccess,
				Message: Reading{
					Timestamp:    time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC).Unix(),
					Volatility:   0.27,
					TimestampStr: "2025-06-01T12:15:00",
				},
			},
		},
		{
			name:   "no record for symbol",
			symbol: "SOL",
			want:   &core.PredictionResult{Status: core.StatusError, Message: map[string]any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, config.GatewayModeLatest, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/predictions/latest", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
				_, _ = io.WriteString(w, body)
			})

			result, err := gw.Predict(context.Background(), tt.symbol, 15)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestGateway_LatestModeRejectsObject(t *testing.T) {
	gw := newTestGateway(t, config.GatewayModeLatest, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"symbol": "ETH"}`)
	})

	result, err := gw.Predict(context.Background(), "ETH", 15)
	require.NoError(t, err)
	assert.Equal(t, core.StatusError, result.Status)
}

func TestParsePredictionTime(t *testing.T) {
	for _, s := range []string{"2025-06-01T12:15:00", "2025-06-01T12:15:00.123456", "2025-06-01T12:15:00Z", "2025-06-01 12:15:00"} {
		_, err := parsePredictionTime(s)
		assert.NoError(t, err, s)
	}
	_, err := parsePredictionTime("yesterday")
	assert.Error(t, err)
}
