//go:build wireinject
// +build wireinject

package di

import (
	"EdgeScore/pkg/config"
	"EdgeScore/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideScoringConfig,
		ProvideEngine,
		ProvideMetrics,
		ProvideCache,

		// Use case
		ProvideScorecardUseCase,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
