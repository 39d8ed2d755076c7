package fx

import (
	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/logger"
	"league-tracker/internal/repository"
	"league-tracker/internal/riot"
	"league-tracker/internal/server"
	"league-tracker/internal/service"

	"go.uber.org/fx"
)

func provideRiotClient(c *riot.Client) service.RiotClient {
	return c
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewSummonerRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewChampionRepository),
	fx.Provide(repository.NewQueueRepository),
	fx.Provide(repository.NewSummonerChampionRepository),
	// api client
	fx.Provide(riot.NewClient),
	fx.Provide(provideRiotClient),
	// svc
	fx.Provide(service.NewCatalogService),
	fx.Provide(service.NewSummonerService),
	fx.Provide(service.NewIngestService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewRankService),
	// server
	fx.Provide(server.New),
)
