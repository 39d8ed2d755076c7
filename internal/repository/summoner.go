package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrSummonerNotFound = errors.New("summoner not found")

type SummonerRepository interface {
	GetByPuuid(ctx context.Context, puuid string) (*domain.Summoner, error)
	GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Summoner, error)
	Create(ctx context.Context, s *domain.Summoner) error
	List(ctx context.Context, limit, offset int) ([]domain.Summoner, error)
	UpdateDerivedStats(ctx context.Context, s *domain.Summoner) error
	UpdateRankInfo(ctx context.Context, s *domain.Summoner) error
}

type sqliteSummonerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSummonerRepository(db *sql.DB, logger zerolog.Logger) SummonerRepository {
	return &sqliteSummonerRepository{db: db, logger: logger}
}

const summonerColumns = `
	id, puuid, game_name, tag_line, region, server, date_added,
	summoner_id, summoner_level, icon,
	rank_solo, solo_wins, solo_losses, solo_kda, solo_main_role,
	solo_vision_avg, solo_gold_per_min, solo_minions_per_min,
	rank_flex, flex_wins, flex_losses, flex_kda, flex_main_role,
	flex_vision_avg, flex_gold_per_min, flex_minions_per_min`

func scanSummoner(row interface{ Scan(...any) error }) (*domain.Summoner, error) {
	s := &domain.Summoner{}
	err := row.Scan(
		&s.ID, &s.Puuid, &s.GameName, &s.TagLine, &s.Region, &s.Server, &s.DateAdded,
		&s.SummonerID, &s.SummonerLevel, &s.Icon,
		&s.Solo.Rank, &s.Solo.Wins, &s.Solo.Losses, &s.Solo.KDA, &s.Solo.MainRole,
		&s.Solo.VisionAvg, &s.Solo.GoldPerMin, &s.Solo.MinionsPerMin,
		&s.Flex.Rank, &s.Flex.Wins, &s.Flex.Losses, &s.Flex.KDA, &s.Flex.MainRole,
		&s.Flex.VisionAvg, &s.Flex.GoldPerMin, &s.Flex.MinionsPerMin,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sqliteSummonerRepository) GetByPuuid(ctx context.Context, puuid string) (*domain.Summoner, error) {
	query := `SELECT` + summonerColumns + ` FROM summoners WHERE puuid = ?`
	s, err := scanSummoner(r.db.QueryRowContext(ctx, query, puuid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSummonerNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sqliteSummonerRepository) GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Summoner, error) {
	query := `SELECT` + summonerColumns + `
		FROM summoners
		WHERE game_name = ? COLLATE NOCASE AND tag_line = ? COLLATE NOCASE`
	s, err := scanSummoner(r.db.QueryRowContext(ctx, query, gameName, tagLine))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSummonerNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sqliteSummonerRepository) Create(ctx context.Context, s *domain.Summoner) error {
	query := `
		INSERT INTO summoners (puuid, game_name, tag_line, region, server, date_added)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, s.Puuid, s.GameName, s.TagLine, s.Region, s.Server, s.DateAdded)
	if err != nil {
		return fmt.Errorf("failed to create summoner %s: %w", s.Puuid, err)
	}
	s.ID, err = res.LastInsertId()
	return err
}

func (r *sqliteSummonerRepository) List(ctx context.Context, limit, offset int) ([]domain.Summoner, error) {
	query := `SELECT` + summonerColumns + `
		FROM summoners
		ORDER BY game_name, tag_line
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summoners []domain.Summoner
	for rows.Next() {
		s, err := scanSummoner(rows)
		if err != nil {
			return nil, err
		}
		summoners = append(summoners, *s)
	}
	return summoners, rows.Err()
}

// UpdateDerivedStats persists the per-queue fields owned by the stats
// aggregation engine. Rank fields are untouched.
func (r *sqliteSummonerRepository) UpdateDerivedStats(ctx context.Context, s *domain.Summoner) error {
	query := `
		UPDATE summoners SET
			solo_kda = ?, solo_main_role = ?, solo_vision_avg = ?,
			solo_gold_per_min = ?, solo_minions_per_min = ?,
			flex_kda = ?, flex_main_role = ?, flex_vision_avg = ?,
			flex_gold_per_min = ?, flex_minions_per_min = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.Solo.KDA, s.Solo.MainRole, s.Solo.VisionAvg, s.Solo.GoldPerMin, s.Solo.MinionsPerMin,
		s.Flex.KDA, s.Flex.MainRole, s.Flex.VisionAvg, s.Flex.GoldPerMin, s.Flex.MinionsPerMin,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update derived stats for summoner %d: %w", s.ID, err)
	}
	return nil
}

// UpdateRankInfo persists the fields owned by rank sync: profile data and
// per-queue rank labels and win/loss counts.
func (r *sqliteSummonerRepository) UpdateRankInfo(ctx context.Context, s *domain.Summoner) error {
	query := `
		UPDATE summoners SET
			summoner_id = ?, summoner_level = ?, icon = ?,
			rank_solo = ?, solo_wins = ?, solo_losses = ?,
			rank_flex = ?, flex_wins = ?, flex_losses = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		s.SummonerID, s.SummonerLevel, s.Icon,
		s.Solo.Rank, s.Solo.Wins, s.Solo.Losses,
		s.Flex.Rank, s.Flex.Wins, s.Flex.Losses,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rank info for summoner %d: %w", s.ID, err)
	}
	return nil
}
