package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XTREAMLY_BASE_URL", "https://api.example.com/")
	t.Setenv("XTREAMLY_API_KEY", "gateway-key")
	t.Setenv("ACP_API_URL", "https://relay.example.com")
	t.Setenv("ACP_API_TOKEN", "relay-token")
	t.Setenv("ACP_ENTITY_ID", "42")
	t.Setenv("ACP_AGENT_WALLET_ADDRESS", "0xabc")
	t.Setenv("ACP_WEBHOOK_SECRET", "hook-secret")
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := load(viper.New(), missingEnvFile(t))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.example.com", cfg.Gateway.BaseURL)
	assert.Equal(t, GatewayModeHorizon, cfg.Gateway.Mode)
	assert.Equal(t, "TP10SL10_8", cfg.Gateway.Goal)
	assert.Equal(t, RoleSeller, cfg.Agent.Role)
	assert.Equal(t, 2*time.Second, cfg.Agent.Cooldown)
	assert.False(t, cfg.Agent.ForceRejectAfterPayment)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AGENT_FORCE_REJECT_AFTER_PAYMENT", "true")
	t.Setenv("AGENT_COOLDOWN", "250ms")
	t.Setenv("GATEWAY_MODE", "LATEST")
	t.Setenv("LOG_LEVEL", "verbose")

	cfg, err := load(viper.New(), missingEnvFile(t))
	require.NoError(t, err)

	assert.True(t, cfg.Agent.ForceRejectAfterPayment)
	assert.Equal(t, 250*time.Millisecond, cfg.Agent.Cooldown)
	assert.Equal(t, GatewayModeLatest, cfg.Gateway.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	setRequiredEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9191\nAGENT_ROLE=buyer\n"), 0o600))

	cfg, err := load(viper.New(), envFile)
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.Server.Port)
	assert.Equal(t, RoleBuyer, cfg.Agent.Role)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("AGENT_COOLDOWN", "soon")

	_, err := load(viper.New(), missingEnvFile(t))
	assert.ErrorContains(t, err, "AGENT_COOLDOWN")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "complete seller config"},
		{name: "missing gateway key", unset: "XTREAMLY_API_KEY", wantErr: "XTREAMLY_API_KEY"},
		{name: "missing gateway url", unset: "XTREAMLY_BASE_URL", wantErr: "XTREAMLY_BASE_URL"},
		{name: "missing relay token", unset: "ACP_API_TOKEN", wantErr: "ACP_API_TOKEN"},
		{name: "missing entity id", unset: "ACP_ENTITY_ID", wantErr: "ACP_ENTITY_ID"},
		{name: "missing wallet", unset: "ACP_AGENT_WALLET_ADDRESS", wantErr: "ACP_AGENT_WALLET_ADDRESS"},
		{name: "missing webhook secret", unset: "ACP_WEBHOOK_SECRET", wantErr: "ACP_WEBHOOK_SECRET"},
		{
			name:  "buyer does not need gateway credentials",
			unset: "XTREAMLY_API_KEY",
			mutate: func(cfg *Config) {
				cfg.Agent.Role = RoleBuyer
			},
		},
		{
			name:    "unknown role",
			mutate:  func(cfg *Config) { cfg.Agent.Role = "broker" },
			wantErr: "AGENT_ROLE",
		},
		{
			name:    "unknown gateway mode",
			mutate:  func(cfg *Config) { cfg.Gateway.Mode = "stream" },
			wantErr: "GATEWAY_MODE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			if tt.unset != "" {
				t.Setenv(tt.unset, "")
			}

			cfg, err := load(viper.New(), missingEnvFile(t))
			require.NoError(t, err)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadPolicy(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		policy, err := LoadPolicy("")
		require.NoError(t, err)
		assert.Equal(t, []string{"BTC", "ETH", "SOL"}, policy.Symbols())
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		policy, err := LoadPolicy(filepath.Join(t.TempDir(), "policy.yml"))
		assert.True(t, errors.Is(err, ErrPolicyNotFound))
		require.NotNil(t, policy)
		assert.NoError(t, policy.Validate("BTC", 60))
	})

	t.Run("custom policy", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yml")
		content := "symbols: [btc, hbar]\nhorizons: [5, 15]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		policy, err := LoadPolicy(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"BTC", "HBAR"}, policy.Symbols())
		assert.Equal(t, []int{5, 15}, policy.Horizons())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yml")
		require.NoError(t, os.WriteFile(path, []byte("symbols: [btc\n"), 0o600))

		_, err := LoadPolicy(path)
		assert.True(t, errors.Is(err, ErrPolicyParsing))
	})

	t.Run("non-positive horizon", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yml")
		require.NoError(t, os.WriteFile(path, []byte("horizons: [0]\n"), 0o600))

		_, err := LoadPolicy(path)
		assert.True(t, errors.Is(err, ErrPolicyParsing))
	})
}
