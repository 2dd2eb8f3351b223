package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/wire"

	"github.com/sevigo/volatility-agent/internal/acp"
	"github.com/sevigo/volatility-agent/internal/app"
	"github.com/sevigo/volatility-agent/internal/config"
	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/db"
	"github.com/sevigo/volatility-agent/internal/jobs"
	"github.com/sevigo/volatility-agent/internal/logger"
	"github.com/sevigo/volatility-agent/internal/prediction"
	"github.com/sevigo/volatility-agent/internal/server"
	"github.com/sevigo/volatility-agent/internal/storage"
	"github.com/sevigo/volatility-agent/internal/validation"
)

// AppSet builds the full agent process.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	db.NewDatabase,
	prediction.NewGateway,
	acp.NewClient,
	provideStore,
	providePolicy,
	provideHandler,
	provideDispatcher,
	provideSellerOptions,
	provideGatewayHTTPClient,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
	provideDBConfig,
	provideGatewayConfig,
	provideACPConfig,
)

func provideStore(conn *db.DB) storage.Store {
	return storage.NewStore(conn.DB)
}

func providePolicy(cfg *config.Config) (*validation.Policy, error) {
	if cfg.Agent.PolicyFile == "" {
		return validation.DefaultPolicy(), nil
	}
	return config.LoadPolicy(cfg.Agent.PolicyFile)
}

func provideSellerOptions(cfg *config.Config) jobs.SellerOptions {
	return jobs.SellerOptions{ForceRejectAfterPayment: cfg.Agent.ForceRejectAfterPayment}
}

// provideHandler picks the phase state machine for the configured role.
func provideHandler(
	cfg *config.Config,
	policy *validation.Policy,
	gateway core.PredictionGateway,
	client core.ProtocolClient,
	store storage.Store,
	opts jobs.SellerOptions,
	logger *slog.Logger,
) (core.PhaseHandler, error) {
	switch cfg.Agent.Role {
	case config.RoleSeller:
		return jobs.NewSellerJob(policy, gateway, client, store, opts, logger), nil
	case config.RoleBuyer:
		return jobs.NewBuyerJob(client, store, logger), nil
	default:
		return nil, fmt.Errorf("unsupported agent role %q", cfg.Agent.Role)
	}
}

func provideDispatcher(ctx context.Context, handler core.PhaseHandler, cfg *config.Config, logger *slog.Logger) core.JobDispatcher {
	return jobs.NewDispatcher(ctx, handler, cfg.Agent.Cooldown, logger)
}

func provideGatewayHTTPClient(cfg *config.Config) *http.Client {
	return prediction.NewHTTPClient(cfg.Gateway.Timeout)
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	w, err := logger.OpenOutput(cfg.Logging.Output)
	if err != nil {
		slog.Error("failed to open log output, using stdout", "output", cfg.Logging.Output, "error", err)
	}
	return w
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	l := logger.NewLogger(loggerConfig, writer)
	slog.SetDefault(l)
	return l
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideGatewayConfig(cfg *config.Config) *config.GatewayConfig {
	return &cfg.Gateway
}

func provideACPConfig(cfg *config.Config) *config.ACPConfig {
	return &cfg.ACP
}
