package service

import (
	"context"
	"math"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// StatsService recomputes a summoner's derived statistics from its stored
// participation rows. Both recomputations are full replacements, never
// incremental updates.
type StatsService struct {
	matchRepo    repository.MatchRepository
	summonerRepo repository.SummonerRepository
	scRepo       repository.SummonerChampionRepository
	champRepo    repository.ChampionRepository
	logger       zerolog.Logger
}

func NewStatsService(
	matchRepo repository.MatchRepository,
	summonerRepo repository.SummonerRepository,
	scRepo repository.SummonerChampionRepository,
	champRepo repository.ChampionRepository,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		matchRepo:    matchRepo,
		summonerRepo: summonerRepo,
		scRepo:       scRepo,
		champRepo:    champRepo,
		logger:       logger,
	}
}

// RecalculateQueueStats recomputes the per-queue derived fields (KDA,
// primary role, vision average, gold and minions per minute) for solo and
// flex independently, and persists them onto the summoner.
func (s *StatsService) RecalculateQueueStats(ctx context.Context, summ *domain.Summoner) error {
	solo, err := s.aggregateQueue(ctx, summ.ID, constants.QueueIDSoloRanked, constants.QueueDescSolo)
	if err != nil {
		return err
	}
	flex, err := s.aggregateQueue(ctx, summ.ID, constants.QueueIDFlexRanked, constants.QueueDescFlex)
	if err != nil {
		return err
	}

	applyQueueAggregate(&summ.Solo, solo)
	applyQueueAggregate(&summ.Flex, flex)

	s.logger.Debug().
		Int64("summoner_id", summ.ID).
		Float64("solo_kda", solo.KDA).
		Float64("flex_kda", flex.KDA).
		Msg("queue stats recalculated")

	return s.summonerRepo.UpdateDerivedStats(ctx, summ)
}

// RecalculateChampionStats rebuilds the summoner's per-champion summary
// rows from scratch: the stored set is deleted and replaced atomically.
func (s *StatsService) RecalculateChampionStats(ctx context.Context, summ *domain.Summoner) error {
	rows, err := s.matchRepo.ListParticipantsBySummoner(ctx, summ.ID)
	if err != nil {
		return err
	}

	summaries := computeChampionSummaries(summ.ID, rows)

	s.logger.Debug().
		Int64("summoner_id", summ.ID).
		Int("champions", len(summaries)).
		Msg("champion stats recalculated")

	return s.scRepo.ReplaceForSummoner(ctx, summ.ID, summaries)
}

// ChampionStat is a champion summary row joined with its champion's
// display data.
type ChampionStat struct {
	domain.SummonerChampion
	ChampionName string
	ChampionIcon string
}

// ListChampionStats returns the summoner's stored champion summaries with
// champion names and icons attached.
func (s *StatsService) ListChampionStats(ctx context.Context, summ *domain.Summoner) ([]ChampionStat, error) {
	rows, err := s.scRepo.ListBySummoner(ctx, summ.ID)
	if err != nil {
		return nil, err
	}
	champions, err := s.champRepo.ListBySummoner(ctx, summ.ID)
	if err != nil {
		return nil, err
	}

	stats := make([]ChampionStat, 0, len(rows))
	for _, row := range rows {
		stat := ChampionStat{SummonerChampion: row}
		if c, ok := champions[row.ChampionID]; ok {
			stat.ChampionName = c.Name
			stat.ChampionIcon = c.Icon
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// queueAggregate holds one queue's derived values before they are written
// onto the summoner.
type queueAggregate struct {
	KDA           float64
	MainRole      *string
	VisionAvg     float64
	GoldPerMin    int
	MinionsPerMin float64
}

func (s *StatsService) aggregateQueue(ctx context.Context, summonerID int64, queueID int, queueDesc string) (queueAggregate, error) {
	rows, err := s.matchRepo.ListParticipantsBySummonerAndQueue(ctx, summonerID, queueID)
	if err != nil {
		return queueAggregate{}, err
	}

	// Duration is summed over matches selected by the queue description
	// label, not the numeric id; the two criteria are kept distinct on
	// purpose (see DESIGN.md).
	durationSecs, err := s.matchRepo.SumDurationByQueueDescription(ctx, summonerID, queueDesc)
	if err != nil {
		return queueAggregate{}, err
	}

	return computeQueueAggregate(rows, durationSecs), nil
}

// computeQueueAggregate folds one queue's participant rows into its
// derived values. A zero-death total yields a 0 KDA, never a division by
// zero.
func computeQueueAggregate(rows []domain.Participant, durationSecs int) queueAggregate {
	var agg queueAggregate
	var kills, deaths, assists, wards, gold, farm int
	for _, p := range rows {
		kills += p.Kills
		deaths += p.Deaths
		assists += p.Assists
		wards += p.Wards
		gold += p.GoldEarned
		farm += p.Farm
	}
	count := len(rows)

	if count > 0 && deaths > 0 {
		agg.KDA = round2(float64(kills+assists) / float64(deaths))
	}
	if count > 0 {
		agg.VisionAvg = float64(wards) / float64(count)
	}
	if durationSecs > 0 {
		minutes := float64(durationSecs) / 60
		agg.GoldPerMin = int(float64(gold) / minutes)
		agg.MinionsPerMin = float64(farm) / minutes
	}
	agg.MainRole = mainRole(rows)

	return agg
}

// mainRole picks the lane with the highest occurrence count; ties go to
// the lane whose maximum count was encountered first. Nil when the queue
// has no rows.
func mainRole(rows []domain.Participant) *string {
	if len(rows) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range rows {
		if counts[p.Lane] == 0 {
			order = append(order, p.Lane)
		}
		counts[p.Lane]++
	}

	best := order[0]
	for _, lane := range order[1:] {
		if counts[lane] > counts[best] {
			best = lane
		}
	}
	return &best
}

func applyQueueAggregate(stats *domain.QueueStats, agg queueAggregate) {
	kda := agg.KDA
	vision := agg.VisionAvg
	gpm := agg.GoldPerMin
	mpm := agg.MinionsPerMin
	stats.KDA = &kda
	stats.VisionAvg = &vision
	stats.GoldPerMin = &gpm
	stats.MinionsPerMin = &mpm
	stats.MainRole = agg.MainRole
}

// computeChampionSummaries groups participant rows by champion (first
// encounter order) and derives match count, win rate and KDA per group.
// The KDA denominator is floored to 1 here, a deliberately different
// zero-death policy than the per-queue aggregate.
func computeChampionSummaries(summonerID int64, rows []domain.Participant) []domain.SummonerChampion {
	type champTotals struct {
		matches, wins          int
		kills, deaths, assists int
	}
	totals := make(map[int64]*champTotals)
	var order []int64
	for _, p := range rows {
		t := totals[p.ChampionID]
		if t == nil {
			t = &champTotals{}
			totals[p.ChampionID] = t
			order = append(order, p.ChampionID)
		}
		t.matches++
		if p.Win {
			t.wins++
		}
		t.kills += p.Kills
		t.deaths += p.Deaths
		t.assists += p.Assists
	}

	summaries := make([]domain.SummonerChampion, 0, len(order))
	for _, championID := range order {
		t := totals[championID]

		winratio := 0.0
		if t.matches > 0 {
			winratio = round2(float64(t.wins) / float64(t.matches) * 100)
		}

		denom := t.deaths
		if denom == 0 {
			denom = 1
		}
		kda := round2(float64(t.kills+t.assists) / float64(denom))

		summaries = append(summaries, domain.SummonerChampion{
			SummonerID: summonerID,
			ChampionID: championID,
			MatchesNum: t.matches,
			Winratio:   winratio,
			KDA:        kda,
		})
	}
	return summaries
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
