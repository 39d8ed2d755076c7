package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
	"league-tracker/internal/riot"

	"github.com/rs/zerolog"
)

// gameModeToName translates raw queue descriptions into display names.
// Unlisted descriptions fall through to the raw description, then to the
// payload's game-mode string.
var gameModeToName = map[string]string{
	"5v5 Ranked Solo games": "Solo/Duo",
	"5v5 Ranked Flex games": "Flex",
	"5v5 Blind Pick games":  "Blind Pick",
	"5v5 ARAM games":        "ARAM",
	"SWIFTPLAY":             "Swiftplay",
}

// IngestService walks a summoner's upstream match-ID history and persists
// Match + Participant rows for anything not yet stored.
type IngestService struct {
	riot         RiotClient
	matchRepo    repository.MatchRepository
	summonerRepo repository.SummonerRepository
	queueRepo    repository.QueueRepository
	champRepo    repository.ChampionRepository
	logger       zerolog.Logger
}

func NewIngestService(
	riotClient RiotClient,
	matchRepo repository.MatchRepository,
	summonerRepo repository.SummonerRepository,
	queueRepo repository.QueueRepository,
	champRepo repository.ChampionRepository,
	logger zerolog.Logger,
) *IngestService {
	return &IngestService{
		riot:         riotClient,
		matchRepo:    matchRepo,
		summonerRepo: summonerRepo,
		queueRepo:    queueRepo,
		champRepo:    champRepo,
		logger:       logger,
	}
}

// IngestRecentMatches pages through the summoner's match-ID history
// (page size 30) until a page comes back empty or the offset ceiling is
// reached, so at most two pages are ever requested. A rate-limit signal
// aborts the whole call; a match whose detail payload is unavailable is
// skipped.
func (s *IngestService) IngestRecentMatches(ctx context.Context, summ *domain.Summoner, forceRefresh bool) error {
	s.logger.Info().
		Str("puuid", summ.Puuid).
		Bool("force_refresh", forceRefresh).
		Msg("ingesting recent matches")

	for start := 0; start < constants.MatchesLimit; start += constants.MatchPageSize {
		ids, err := s.riot.GetMatchIDs(ctx, summ.Puuid, summ.Region, start, constants.MatchPageSize)
		if err != nil {
			s.logger.Error().Err(err).Str("puuid", summ.Puuid).Int("start", start).Msg("failed to fetch match id page")
			return fmt.Errorf("failed to fetch match ids at offset %d: %w", start, err)
		}
		if len(ids) == 0 {
			break
		}

		s.logger.Debug().Str("puuid", summ.Puuid).Int("start", start).Int("count", len(ids)).Msg("processing match id page")

		for _, matchID := range ids {
			if err := s.ingestMatch(ctx, summ, matchID, forceRefresh); err != nil {
				return err
			}
		}
	}

	return nil
}

// HasHistory reports whether the summoner has any stored participation.
func (s *IngestService) HasHistory(ctx context.Context, summ *domain.Summoner) (bool, error) {
	return s.matchRepo.HasParticipants(ctx, summ.ID)
}

// Refresh drops the summoner's participant rows and re-ingests with
// forced detail fetches.
func (s *IngestService) Refresh(ctx context.Context, summ *domain.Summoner) error {
	if err := s.matchRepo.DeleteParticipantsBySummoner(ctx, summ.ID); err != nil {
		return err
	}
	return s.IngestRecentMatches(ctx, summ, true)
}

func (s *IngestService) ingestMatch(ctx context.Context, summ *domain.Summoner, matchID string, forceRefresh bool) error {
	existing, err := s.matchRepo.GetByMatchID(ctx, matchID)
	switch {
	case err == nil:
		if !forceRefresh {
			// Already stored: the placeholder existence check is the
			// de-duplication mechanism.
			return nil
		}
		// Forced refresh recreates the match and its participant rows
		// from scratch.
		if err := s.matchRepo.Delete(ctx, existing.ID); err != nil {
			return err
		}
	case !errors.Is(err, repository.ErrMatchNotFound):
		return err
	}

	match, err := s.matchRepo.CreatePlaceholder(ctx, matchID, time.Now())
	if err != nil {
		return err
	}

	detail, err := s.riot.GetMatch(ctx, matchID, summ.Region)
	if err != nil {
		// The placeholder must not survive a failed detail fetch: it
		// would block this match from ever being ingested.
		if delErr := s.matchRepo.Delete(ctx, match.ID); delErr != nil {
			s.logger.Warn().Err(delErr).Str("match_id", matchID).Msg("failed to delete placeholder")
		}
		if errors.Is(err, riot.ErrNotFound) {
			s.logger.Warn().Str("match_id", matchID).Msg("match detail unavailable, skipping")
			return nil
		}
		return fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}

	if err := s.storeMatchDetail(ctx, summ, match, detail); err != nil {
		return err
	}

	s.logger.Debug().Str("match_id", matchID).Msg("match ingested")
	return nil
}

func (s *IngestService) storeMatchDetail(ctx context.Context, summ *domain.Summoner, match *domain.Match, detail *riot.Match) error {
	info := detail.Info

	queue, err := s.queueRepo.GetOrCreate(ctx, info.QueueID, info.QueueType)
	if err != nil {
		return err
	}

	match.QueueID = &queue.ID
	match.GameMode = info.GameMode
	match.GameName = gameDisplayName(queue, info.GameMode)
	match.GameDuration = info.GameDuration
	if info.GameStartTimestamp > 0 {
		match.Timestamp = time.UnixMilli(info.GameStartTimestamp)
	} else {
		match.Timestamp = time.Now()
	}

	// Accumulate per-side K/D/A over everyone except the tracked player,
	// whose entry is captured for the participant row.
	type teamTotals struct{ kills, deaths, assists int }
	totals := make(map[int]*teamTotals)
	var tracked *riot.MatchParticipant
	for i := range info.Participants {
		p := &info.Participants[i]
		if p.Puuid == summ.Puuid {
			tracked = p
			continue
		}
		t := totals[p.TeamID]
		if t == nil {
			t = &teamTotals{}
			totals[p.TeamID] = t
		}
		t.kills += p.Kills
		t.deaths += p.Deaths
		t.assists += p.Assists
	}

	if tracked == nil {
		return fmt.Errorf("match %s: %w", match.MatchID, ErrTrackedEntryMissing)
	}

	// The tracked player's own line joins the team totals before kill
	// participation is derived from them.
	t := totals[tracked.TeamID]
	if t == nil {
		t = &teamTotals{}
		totals[tracked.TeamID] = t
	}
	t.kills += tracked.Kills
	t.deaths += tracked.Deaths
	t.assists += tracked.Assists

	killParticipation := 0.0
	if t.kills > 0 {
		killParticipation = float64(tracked.Kills) / float64(t.kills)
	}

	champion, err := s.champRepo.GetByKey(ctx, tracked.ChampionID)
	if err != nil {
		// Champion reference data is bootstrapped before ingestion, so a
		// miss here is a real failure.
		return fmt.Errorf("failed to resolve champion %d: %w", tracked.ChampionID, err)
	}

	trackedSumm, err := s.summonerRepo.GetByPuuid(ctx, tracked.Puuid)
	if err != nil {
		if errors.Is(err, repository.ErrSummonerNotFound) {
			return fmt.Errorf("puuid %s: %w", tracked.Puuid, ErrSummonerNotTracked)
		}
		return err
	}

	participant := &domain.Participant{
		SummonerID:        trackedSumm.ID,
		MatchID:           match.ID,
		ChampionID:        champion.ID,
		TeamID:            tracked.TeamID,
		Lane:              tracked.Lane,
		Kills:             tracked.Kills,
		Deaths:            tracked.Deaths,
		Assists:           tracked.Assists,
		Win:               tracked.Win,
		KillParticipation: killParticipation,
		Farm:              tracked.TotalMinionsKilled,
		Wards:             tracked.WardsPlaced,
		DoubleKills:       tracked.DoubleKills,
		TripleKills:       tracked.TripleKills,
		QuadraKills:       tracked.QuadraKills,
		PentaKills:        tracked.PentaKills,
		DamageDealt:       tracked.TotalDamageDealt,
		GoldEarned:        tracked.GoldEarned,
	}
	if err := s.matchRepo.CreateParticipant(ctx, participant); err != nil {
		return err
	}

	// Sides without any accumulated entry default to zero.
	if blue := totals[constants.TeamBlue]; blue != nil {
		match.Team0Kills = blue.kills
		match.Team0Deaths = blue.deaths
		match.Team0Assists = blue.assists
	}
	if red := totals[constants.TeamRed]; red != nil {
		match.Team1Kills = red.kills
		match.Team1Deaths = red.deaths
		match.Team1Assists = red.assists
	}

	return s.matchRepo.Update(ctx, match)
}

func gameDisplayName(queue *domain.Queue, gameMode string) string {
	var name string
	switch {
	case gameModeToName[queue.Description] != "":
		name = gameModeToName[queue.Description]
	case queue.Description != "":
		name = queue.Description
	default:
		name = gameMode
	}
	// Queue 480 ships with an empty or placeholder description label.
	if len(name) <= 1 && queue.QueueID == constants.QueueIDQuickplay {
		name = "Quickplay"
	}
	return name
}
