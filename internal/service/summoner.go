package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// SummonerService resolves summoners by riot id, creating them locally on
// first lookup.
type SummonerService struct {
	riot         RiotClient
	summonerRepo repository.SummonerRepository
	rankSvc      *RankService
	logger       zerolog.Logger
}

func NewSummonerService(
	riotClient RiotClient,
	summonerRepo repository.SummonerRepository,
	rankSvc *RankService,
	logger zerolog.Logger,
) *SummonerService {
	return &SummonerService{riot: riotClient, summonerRepo: summonerRepo, rankSvc: rankSvc, logger: logger}
}

// GetOrCreate looks a summoner up by game name + tag line. On a local
// miss the account is resolved upstream, its shard determined, the row
// created, and an initial rank sync run. NotFound and RateLimited
// propagate to the boundary.
func (s *SummonerService) GetOrCreate(ctx context.Context, gameName, tagLine, region string) (*domain.Summoner, error) {
	summ, err := s.summonerRepo.GetByRiotID(ctx, gameName, tagLine)
	if err == nil {
		return summ, nil
	}
	if !errors.Is(err, repository.ErrSummonerNotFound) {
		return nil, err
	}

	s.logger.Info().
		Str("game_name", gameName).
		Str("tag_line", tagLine).
		Str("region", region).
		Msg("summoner not stored, resolving upstream")

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	account, err := s.riot.GetAccountByRiotID(apiCtx, gameName, tagLine, region)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s#%s: %w", gameName, tagLine, err)
	}

	server, err := s.riot.GetSummonerServer(apiCtx, account.Puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve server for %s: %w", account.Puuid, err)
	}

	summ = &domain.Summoner{
		Puuid:     account.Puuid,
		GameName:  account.GameName,
		TagLine:   account.TagLine,
		Region:    region,
		Server:    server,
		DateAdded: time.Now(),
	}
	if err := s.summonerRepo.Create(ctx, summ); err != nil {
		return nil, err
	}

	if err := s.rankSvc.SyncRankInfo(ctx, summ); err != nil {
		s.logger.Warn().Err(err).Str("puuid", summ.Puuid).Msg("initial rank sync failed")
	}

	s.logger.Info().Str("puuid", summ.Puuid).Str("server", server).Msg("summoner created")
	return summ, nil
}

func (s *SummonerService) GetByPuuid(ctx context.Context, puuid string) (*domain.Summoner, error) {
	return s.summonerRepo.GetByPuuid(ctx, puuid)
}

// List returns one page of stored summoners ordered by name and tag.
func (s *SummonerService) List(ctx context.Context, page int) ([]domain.Summoner, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * constants.SummonerListLimit
	return s.summonerRepo.List(ctx, constants.SummonerListLimit, offset)
}
