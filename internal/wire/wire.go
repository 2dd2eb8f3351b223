//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/volatility-agent/internal/app"
	"github.com/sevigo/volatility-agent/internal/config"
	"github.com/sevigo/volatility-agent/internal/db"
	"github.com/sevigo/volatility-agent/internal/storage"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

// InitializeStore opens the outcome store only. It does not require the
// relay or gateway credentials.
func InitializeStore() (storage.Store, func(), error) {
	wire.Build(
		config.Load,
		db.NewDatabase,
		provideStore,
		provideDBConfig,
	)
	return nil, nil, nil
}
