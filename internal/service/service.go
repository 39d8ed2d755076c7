package service

import (
	"context"
	"errors"

	"league-tracker/internal/riot"
)

// RiotClient is the upstream collaborator contract the services consume.
// *riot.Client satisfies it; tests substitute fakes.
type RiotClient interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*riot.Account, error)
	GetSummonerServer(ctx context.Context, puuid string) (string, error)
	GetMatchIDs(ctx context.Context, puuid, region string, start, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID, region string) (*riot.Match, error)
	GetSummonerByPUUID(ctx context.Context, puuid, server string) (*riot.SummonerProfile, error)
	GetLeagueEntries(ctx context.Context, summonerID, server string) ([]riot.LeagueEntry, error)
	GetChampionCatalog(ctx context.Context, version string) (*riot.ChampionCatalog, error)
	GetQueueCatalog(ctx context.Context) ([]riot.QueueInfo, error)
}

// Inconsistent-state conditions. Both mean the ingestion pipeline was
// handed a match whose tracked participant cannot be resolved locally;
// they propagate instead of being skipped.
var (
	ErrSummonerNotTracked  = errors.New("match participant references an untracked summoner")
	ErrTrackedEntryMissing = errors.New("tracked summoner missing from match detail")
)
