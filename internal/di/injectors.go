//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"recstore/internal"
	"recstore/internal/controllers"
	"recstore/internal/providers"
	"recstore/internal/services"
	"recstore/internal/storage"
	"recstore/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewFileRegistry,
		storage.NewZstdCompressor,
		storage.NewSnapshotManager,
		storage.NewScheduler,
		services.NewRecordService,
		controllers.NewRecordController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
