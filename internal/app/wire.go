//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/nplqhub/revise/internal/adapter/httpapi"
	adapterrepo "github.com/nplqhub/revise/internal/adapter/repository"
	"github.com/nplqhub/revise/internal/infrastructure/config"
	"github.com/nplqhub/revise/internal/infrastructure/database"
	"github.com/nplqhub/revise/internal/infrastructure/server"
	"github.com/nplqhub/revise/internal/repository"
	"github.com/nplqhub/revise/internal/usecase"
	"github.com/nplqhub/revise/internal/usecase/catalog"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewStore,
)

var repositorySet = wire.NewSet(
	adapterrepo.NewContentRepository,
	adapterrepo.NewProgressRepository,
	adapterrepo.NewUserRepository,
	adapterrepo.NewTeamRepository,
	wire.Bind(new(repository.ContentRepository), new(*adapterrepo.ContentRepository)),
	wire.Bind(new(repository.CatalogRepository), new(*adapterrepo.ContentRepository)),
	wire.Bind(new(repository.ProgressRepository), new(*adapterrepo.ProgressRepository)),
	wire.Bind(new(repository.UserRepository), new(*adapterrepo.UserRepository)),
	wire.Bind(new(repository.TeamRepository), new(*adapterrepo.TeamRepository)),
)

var usecaseSet = wire.NewSet(
	usecase.NewProgressUsecase,
	usecase.NewAdminUsecase,
	catalog.NewService,
	provideAuthUsecase,
	provideTicker,
)

var httpSet = wire.NewSet(
	httpapi.NewAuthMiddleware,
	httpapi.NewAuthHandler,
	httpapi.NewProgressHandler,
	httpapi.NewContentHandler,
	httpapi.NewSessionHandler,
	httpapi.NewAdminHandler,
	provideSessionManager,
	provideRouter,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		httpSet,
		serverSet,
		wire.Struct(new(Container), "Config", "Logger", "Server", "Sessions", "Ticker"),
	)
	return nil, nil, nil
}
