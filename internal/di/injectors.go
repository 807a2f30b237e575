//go:build wireinject
// +build wireinject

package di

import (
	"aocbot/internal"
	"aocbot/internal/controllers"
	"aocbot/internal/providers"
	"aocbot/internal/services"
	"aocbot/internal/state"
	"aocbot/internal/structures"

	wire "github.com/google/wire"
)

var baseSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,

	services.NewLeaderboardFetcher,
	services.NewMessageComposer,
	services.NewSlackNotifier,
	services.NewBoardService,
	state.NewZstdCompressor,
	state.NewFileManager,
)

func InitRunner(flags *structures.CliFlags) (*internal.Runner, error) {

	wire.Build(
		baseSet,
		services.NewDryRunNotifier,
		wire.Bind(new(services.NotifierInterface), new(*services.BufferedNotifier)),
		internal.NewRunner,
	)

	return nil, nil
}

func InitServer(flags *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		baseSet,
		wire.Bind(new(services.NotifierInterface), new(*services.SlackNotifier)),
		state.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
