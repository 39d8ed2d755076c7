package repository

import (
	"context"
	"database/sql"
	"fmt"

	"league-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type SummonerChampionRepository interface {
	// ReplaceForSummoner atomically swaps a summoner's champion summary
	// set: delete-all plus bulk insert inside one transaction, so readers
	// never observe the empty intermediate state.
	ReplaceForSummoner(ctx context.Context, summonerID int64, rows []domain.SummonerChampion) error
	ListBySummoner(ctx context.Context, summonerID int64) ([]domain.SummonerChampion, error)
}

type sqliteSummonerChampionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSummonerChampionRepository(db *sql.DB, logger zerolog.Logger) SummonerChampionRepository {
	return &sqliteSummonerChampionRepository{db: db, logger: logger}
}

func (r *sqliteSummonerChampionRepository) ReplaceForSummoner(ctx context.Context, summonerID int64, rows []domain.SummonerChampion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM summoner_champions WHERE summoner_id = ?`, summonerID); err != nil {
		return fmt.Errorf("failed to delete champion summaries for summoner %d: %w", summonerID, err)
	}

	for i := range rows {
		row := &rows[i]
		if row.ID == "" {
			row.ID, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO summoner_champions (id, summoner_id, champion_id, matches_num, winratio, kda)
			VALUES (?, ?, ?, ?, ?, ?)`,
			row.ID, summonerID, row.ChampionID, row.MatchesNum, row.Winratio, row.KDA)
		if err != nil {
			return fmt.Errorf("failed to insert champion summary for champion %d: %w", row.ChampionID, err)
		}
	}

	return tx.Commit()
}

func (r *sqliteSummonerChampionRepository) ListBySummoner(ctx context.Context, summonerID int64) ([]domain.SummonerChampion, error) {
	query := `
		SELECT id, summoner_id, champion_id, matches_num, winratio, kda
		FROM summoner_champions
		WHERE summoner_id = ?
		ORDER BY matches_num DESC, champion_id`
	rows, err := r.db.QueryContext(ctx, query, summonerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SummonerChampion
	for rows.Next() {
		var sc domain.SummonerChampion
		if err := rows.Scan(&sc.ID, &sc.SummonerID, &sc.ChampionID, &sc.MatchesNum, &sc.Winratio, &sc.KDA); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}
