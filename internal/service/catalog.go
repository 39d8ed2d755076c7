package service

import (
	"context"
	"fmt"
	"strconv"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"
	"league-tracker/internal/riot"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// CatalogService bootstraps the champion and queue reference catalogs.
// Bootstrap runs once before any ingestion; upserts are keyed on the
// external identifiers, so re-running it is a no-op apart from picking up
// upstream changes.
type CatalogService struct {
	riot      RiotClient
	champRepo repository.ChampionRepository
	queueRepo repository.QueueRepository
	logger    zerolog.Logger
}

func NewCatalogService(
	riotClient RiotClient,
	champRepo repository.ChampionRepository,
	queueRepo repository.QueueRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{riot: riotClient, champRepo: champRepo, queueRepo: queueRepo, logger: logger}
}

func (s *CatalogService) Bootstrap(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	var champions *riot.ChampionCatalog
	var queues []riot.QueueInfo

	g.Go(func() error {
		var err error
		champions, err = s.riot.GetChampionCatalog(gCtx, constants.DDragonVersion)
		return err
	})
	g.Go(func() error {
		var err error
		queues, err = s.riot.GetQueueCatalog(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch reference catalogs")
		return fmt.Errorf("failed to fetch reference catalogs: %w", err)
	}

	for _, entry := range champions.Data {
		key, err := strconv.Atoi(entry.Key)
		if err != nil {
			return fmt.Errorf("invalid champion key %q: %w", entry.Key, err)
		}
		champ := &domain.Champion{
			Key:  key,
			Name: entry.Name,
			Icon: fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/champion/%s",
				constants.DDragonVersion, entry.Image.Full),
		}
		if err := s.champRepo.Upsert(ctx, champ); err != nil {
			return err
		}
	}

	for _, q := range queues {
		if err := s.queueRepo.Upsert(ctx, &domain.Queue{QueueID: q.QueueID, Description: q.Description}); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("champions", len(champions.Data)).
		Int("queues", len(queues)).
		Msg("reference catalogs bootstrapped")

	return nil
}
