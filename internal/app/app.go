// Package app orchestrates the agent's long-running components: the webhook
// intake server and the job dispatcher.
package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/volatility-agent/internal/config"
	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/server"
	"github.com/sevigo/volatility-agent/internal/storage"
)

// App holds the main application components.
type App struct {
	Store      storage.Store
	Client     core.ProtocolClient
	Dispatcher core.JobDispatcher

	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp assembles an App from its already constructed dependencies.
func NewApp(cfg *config.Config, store storage.Store, client core.ProtocolClient, dispatcher core.JobDispatcher, srv *server.Server, logger *slog.Logger) *App {
	return &App{
		Store:      store,
		Client:     client,
		Dispatcher: dispatcher,
		cfg:        cfg,
		server:     srv,
		logger:     logger,
	}
}

// Run serves webhooks until ctx is cancelled or the server fails, then
// shuts everything down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting volatility agent",
		"role", a.cfg.Agent.Role,
		"server_port", a.cfg.Server.Port,
		"cooldown", a.cfg.Agent.Cooldown,
		"force_reject_after_payment", a.cfg.Agent.ForceRejectAfterPayment,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.server.Stop()
	})

	err := g.Wait()
	a.stopDispatcher()
	if err != nil {
		a.logger.Error("volatility agent stopped with errors", "error", err)
		return err
	}
	a.logger.Info("volatility agent stopped successfully")
	return nil
}

// Stop shuts the intake server down and waits for in-flight jobs.
func (a *App) Stop() error {
	a.logger.Info("shutting down volatility agent services")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}
	a.stopDispatcher()
	return serverErr
}

func (a *App) stopDispatcher() {
	if n := a.Dispatcher.Pending(); n > 0 {
		a.logger.Warn("job events still queued at shutdown", "count", n)
	}
	a.Dispatcher.Stop()
}
