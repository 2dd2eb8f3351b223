package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/volatility-agent/internal/logger"
)

// Agent roles.
const (
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// Gateway endpoint variants.
const (
	GatewayModeHorizon = "horizon"
	GatewayModeLatest  = "latest"
)

// Config holds the application's configuration values.
type Config struct {
	Server   ServerConfig
	Logging  logger.Config
	Database DBConfig
	Gateway  GatewayConfig
	ACP      ACPConfig
	Agent    AgentConfig
}

// ServerConfig configures the webhook intake server.
type ServerConfig struct {
	Port string
}

// DBConfig configures the Postgres outcome store.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// GatewayConfig configures the volatility prediction service.
type GatewayConfig struct {
	BaseURL string
	APIKey  string
	Mode    string
	Goal    string
	Timeout time.Duration
}

// ACPConfig holds the identity used towards the ACP relay.
type ACPConfig struct {
	APIURL             string
	APIToken           string
	EntityID           string
	AgentWalletAddress string
	WebhookSecret      string
	Timeout            time.Duration
}

// AgentConfig controls how job events are handled.
type AgentConfig struct {
	Role     string
	Cooldown time.Duration
	// ForceRejectAfterPayment makes the seller reject paid jobs instead of
	// delivering. It is fixed for the lifetime of the process.
	ForceRejectAfterPayment bool
	PolicyFile              string
	EvaluatorAddress        string
	JobTTL                  time.Duration
}

// LoadConfig reads configuration from environment variables and a .env file
// and validates everything the agent process needs. A returned error is fatal:
// the process must not start its dispatcher.
func LoadConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration without checking for required credentials. Tools
// that only need part of the configuration validate the sections they use.
func Load() (*Config, error) {
	envFile := os.Getenv("AGENT_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	return load(viper.New(), envFile)
}

func load(v *viper.Viper, envFile string) (*Config, error) {
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "volatility_agent")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	v.SetDefault("GATEWAY_MODE", GatewayModeHorizon)
	v.SetDefault("GATEWAY_GOAL", "TP10SL10_8")
	v.SetDefault("GATEWAY_TIMEOUT", "30s")
	v.SetDefault("ACP_TIMEOUT", "30s")
	v.SetDefault("AGENT_ROLE", RoleSeller)
	v.SetDefault("AGENT_COOLDOWN", "2s")
	v.SetDefault("AGENT_FORCE_REJECT_AFTER_PAYMENT", false)
	v.SetDefault("AGENT_JOB_TTL", "24h")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "file", envFile, "error", err)
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME",
		"GATEWAY_TIMEOUT", "ACP_TIMEOUT", "AGENT_COOLDOWN", "AGENT_JOB_TTL",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("%s is not a valid duration: %w", key, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%s must not be negative", key)
		}
		durations[key] = d
	}

	logging := logger.Config{
		Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
		Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		Output: strings.ToLower(v.GetString("LOG_OUTPUT")),
	}
	switch logging.Level {
	case "debug", "info", "warn", "error":
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", logging.Level)
		logging.Level = "info"
	}

	return &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		Logging: logging,
		Database: DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Username:        v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
			ConnMaxIdleTime: durations["DB_CONN_MAX_IDLE_TIME"],
		},
		Gateway: GatewayConfig{
			BaseURL: strings.TrimRight(v.GetString("XTREAMLY_BASE_URL"), "/"),
			APIKey:  v.GetString("XTREAMLY_API_KEY"),
			Mode:    strings.ToLower(v.GetString("GATEWAY_MODE")),
			Goal:    v.GetString("GATEWAY_GOAL"),
			Timeout: durations["GATEWAY_TIMEOUT"],
		},
		ACP: ACPConfig{
			APIURL:             strings.TrimRight(v.GetString("ACP_API_URL"), "/"),
			APIToken:           v.GetString("ACP_API_TOKEN"),
			EntityID:           v.GetString("ACP_ENTITY_ID"),
			AgentWalletAddress: v.GetString("ACP_AGENT_WALLET_ADDRESS"),
			WebhookSecret:      v.GetString("ACP_WEBHOOK_SECRET"),
			Timeout:            durations["ACP_TIMEOUT"],
		},
		Agent: AgentConfig{
			Role:                    strings.ToLower(v.GetString("AGENT_ROLE")),
			Cooldown:                durations["AGENT_COOLDOWN"],
			ForceRejectAfterPayment: v.GetBool("AGENT_FORCE_REJECT_AFTER_PAYMENT"),
			PolicyFile:              v.GetString("AGENT_POLICY_FILE"),
			EvaluatorAddress:        v.GetString("AGENT_EVALUATOR_ADDRESS"),
			JobTTL:                  durations["AGENT_JOB_TTL"],
		},
	}, nil
}

// Validate checks every setting the agent process requires.
func (c *Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return err
	}
	if err := c.ACP.Validate(); err != nil {
		return err
	}
	if c.ACP.WebhookSecret == "" {
		return fmt.Errorf("ACP_WEBHOOK_SECRET must be set")
	}
	if c.Agent.Role == RoleSeller {
		if err := c.Gateway.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the agent section.
func (c *AgentConfig) Validate() error {
	switch c.Role {
	case RoleSeller, RoleBuyer:
	default:
		return fmt.Errorf("AGENT_ROLE must be %q or %q, got %q", RoleSeller, RoleBuyer, c.Role)
	}
	return nil
}

// Validate checks the gateway credentials and mode.
func (c *GatewayConfig) Validate() error {
	if c.BaseURL == "" || c.APIKey == "" {
		return fmt.Errorf("XTREAMLY_BASE_URL and XTREAMLY_API_KEY must be set")
	}
	switch c.Mode {
	case GatewayModeHorizon, GatewayModeLatest:
	default:
		return fmt.Errorf("GATEWAY_MODE must be %q or %q, got %q", GatewayModeHorizon, GatewayModeLatest, c.Mode)
	}
	return nil
}

// Validate checks the ACP identity.
func (c *ACPConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("ACP_API_URL must be set")
	}
	if c.APIToken == "" {
		return fmt.Errorf("ACP_API_TOKEN must be set")
	}
	if c.EntityID == "" {
		return fmt.Errorf("ACP_ENTITY_ID must be set")
	}
	if c.AgentWalletAddress == "" {
		return fmt.Errorf("ACP_AGENT_WALLET_ADDRESS must be set")
	}
	return nil
}
