//go:build wireinject
// +build wireinject

package di

import (
	"LOBSim/pkg/config"
	"LOBSim/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideSnapshotStore,
		ProvideSnapshotPublisher,

		// Domain services
		ProvideSimulator,
		ProvideExtractor,
		ProvideAnalyzer,
		ProvideGenerationConfig,
		ProvideBytesCache,

		// Use cases
		ProvideDatasetBuilder,
		ProvideSnapshotWriter,
		ProvideAnalysisService,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
