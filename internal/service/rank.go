package service

import (
	"context"
	"fmt"
	"strings"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// RankService syncs a summoner's current ranked standing from the
// upstream ladder.
type RankService struct {
	riot         RiotClient
	summonerRepo repository.SummonerRepository
	logger       zerolog.Logger
}

func NewRankService(riotClient RiotClient, summonerRepo repository.SummonerRepository, logger zerolog.Logger) *RankService {
	return &RankService{riot: riotClient, summonerRepo: summonerRepo, logger: logger}
}

// SyncRankInfo fetches the summoner profile and ranked-ladder entries and
// overwrites the summoner's profile and rank fields. A queue with no
// ladder entry writes back null.
func (s *RankService) SyncRankInfo(ctx context.Context, summ *domain.Summoner) error {
	profile, err := s.riot.GetSummonerByPUUID(ctx, summ.Puuid, summ.Server)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", summ.Puuid).Msg("failed to fetch summoner profile")
		return fmt.Errorf("failed to fetch summoner profile: %w", err)
	}

	entries, err := s.riot.GetLeagueEntries(ctx, profile.ID, summ.Server)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", summ.Puuid).Msg("failed to fetch league entries")
		return fmt.Errorf("failed to fetch league entries: %w", err)
	}

	summonerID := profile.ID
	level := profile.SummonerLevel
	icon := fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/profileicon/%d.png",
		constants.DDragonVersion, profile.ProfileIconID)
	summ.SummonerID = &summonerID
	summ.SummonerLevel = &level
	summ.Icon = &icon

	var solo, flex domain.QueueStats
	for _, entry := range entries {
		label := formatRankLabel(entry.Tier, entry.Rank)
		wins := entry.Wins
		losses := entry.Losses
		switch entry.QueueType {
		case constants.QueueTypeSolo:
			solo.Rank = &label
			solo.Wins = &wins
			solo.Losses = &losses
		case constants.QueueTypeFlex:
			flex.Rank = &label
			flex.Wins = &wins
			flex.Losses = &losses
		}
	}
	summ.Solo.Rank = solo.Rank
	summ.Solo.Wins = solo.Wins
	summ.Solo.Losses = solo.Losses
	summ.Flex.Rank = flex.Rank
	summ.Flex.Wins = flex.Wins
	summ.Flex.Losses = flex.Losses

	s.logger.Info().
		Str("puuid", summ.Puuid).
		Int("level", level).
		Msg("rank info synced")

	return s.summonerRepo.UpdateRankInfo(ctx, summ)
}

// formatRankLabel renders "{Tier} {Division}" with the tier title-cased
// and the division verbatim. Challenger carries no division suffix.
func formatRankLabel(tier, division string) string {
	if tier == "" {
		tier = "Unknown"
	}
	normalized := strings.ToUpper(tier[:1]) + strings.ToLower(tier[1:])
	if strings.EqualFold(tier, "CHALLENGER") || division == "" {
		return normalized
	}
	return normalized + " " + division
}
