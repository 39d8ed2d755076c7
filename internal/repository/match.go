package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	GetByMatchID(ctx context.Context, matchID string) (*domain.Match, error)
	CreatePlaceholder(ctx context.Context, matchID string, ts time.Time) (*domain.Match, error)
	Update(ctx context.Context, m *domain.Match) error
	Delete(ctx context.Context, id int64) error

	CreateParticipant(ctx context.Context, p *domain.Participant) error
	DeleteParticipantsBySummoner(ctx context.Context, summonerID int64) error
	HasParticipants(ctx context.Context, summonerID int64) (bool, error)
	ListParticipantsBySummoner(ctx context.Context, summonerID int64) ([]domain.Participant, error)
	ListParticipantsBySummonerAndQueue(ctx context.Context, summonerID int64, queueID int) ([]domain.Participant, error)
	SumDurationByQueueDescription(ctx context.Context, summonerID int64, description string) (int, error)
}

type sqliteMatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(db *sql.DB, logger zerolog.Logger) MatchRepository {
	return &sqliteMatchRepository{db: db, logger: logger}
}

func (r *sqliteMatchRepository) GetByMatchID(ctx context.Context, matchID string) (*domain.Match, error) {
	m := &domain.Match{}
	query := `
		SELECT id, match_id, queue_id, COALESCE(game_mode, ''), COALESCE(game_name, ''),
		       game_duration, timestamp,
		       team0_kills, team0_deaths, team0_assists,
		       team1_kills, team1_deaths, team1_assists
		FROM matches WHERE match_id = ?`
	err := r.db.QueryRowContext(ctx, query, matchID).Scan(
		&m.ID, &m.MatchID, &m.QueueID, &m.GameMode, &m.GameName,
		&m.GameDuration, &m.Timestamp,
		&m.Team0Kills, &m.Team0Deaths, &m.Team0Assists,
		&m.Team1Kills, &m.Team1Deaths, &m.Team1Assists,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreatePlaceholder inserts a minimal match row. Its existence is the
// de-duplication mechanism for ingestion; detail fields are filled by
// Update once the upstream payload arrives.
func (r *sqliteMatchRepository) CreatePlaceholder(ctx context.Context, matchID string, ts time.Time) (*domain.Match, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO matches (match_id, game_duration, timestamp) VALUES (?, 0, ?)`,
		matchID, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to create match placeholder %s: %w", matchID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Match{ID: id, MatchID: matchID, Timestamp: ts}, nil
}

func (r *sqliteMatchRepository) Update(ctx context.Context, m *domain.Match) error {
	query := `
		UPDATE matches SET
			queue_id = ?, game_mode = ?, game_name = ?, game_duration = ?, timestamp = ?,
			team0_kills = ?, team0_deaths = ?, team0_assists = ?,
			team1_kills = ?, team1_deaths = ?, team1_assists = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.QueueID, m.GameMode, m.GameName, m.GameDuration, m.Timestamp,
		m.Team0Kills, m.Team0Deaths, m.Team0Assists,
		m.Team1Kills, m.Team1Deaths, m.Team1Assists,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", m.MatchID, err)
	}
	return nil
}

// Delete removes a match row; participant rows go with it via the
// ON DELETE CASCADE constraint.
func (r *sqliteMatchRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (r *sqliteMatchRepository) CreateParticipant(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (
			summoner_id, match_id, champion_id, team_id, lane,
			kills, deaths, assists, win, kill_participation,
			farm, wards, double_kills, triple_kills, quadra_kills, penta_kills,
			damage_dealt, gold_earned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.SummonerID, p.MatchID, p.ChampionID, p.TeamID, p.Lane,
		p.Kills, p.Deaths, p.Assists, p.Win, p.KillParticipation,
		p.Farm, p.Wards, p.DoubleKills, p.TripleKills, p.QuadraKills, p.PentaKills,
		p.DamageDealt, p.GoldEarned,
	)
	if err != nil {
		return fmt.Errorf("failed to create participant for match %d: %w", p.MatchID, err)
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *sqliteMatchRepository) DeleteParticipantsBySummoner(ctx context.Context, summonerID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE summoner_id = ?`, summonerID); err != nil {
		return fmt.Errorf("failed to delete participants for summoner %d: %w", summonerID, err)
	}
	return nil
}

func (r *sqliteMatchRepository) HasParticipants(ctx context.Context, summonerID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participants WHERE summoner_id = ?`, summonerID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

const participantColumns = `
	p.id, p.summoner_id, p.match_id, p.champion_id, p.team_id, COALESCE(p.lane, ''),
	p.kills, p.deaths, p.assists, p.win, p.kill_participation,
	p.farm, p.wards, p.double_kills, p.triple_kills, p.quadra_kills, p.penta_kills,
	p.damage_dealt, p.gold_earned`

func scanParticipants(rows *sql.Rows) ([]domain.Participant, error) {
	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		err := rows.Scan(
			&p.ID, &p.SummonerID, &p.MatchID, &p.ChampionID, &p.TeamID, &p.Lane,
			&p.Kills, &p.Deaths, &p.Assists, &p.Win, &p.KillParticipation,
			&p.Farm, &p.Wards, &p.DoubleKills, &p.TripleKills, &p.QuadraKills, &p.PentaKills,
			&p.DamageDealt, &p.GoldEarned,
		)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *sqliteMatchRepository) ListParticipantsBySummoner(ctx context.Context, summonerID int64) ([]domain.Participant, error) {
	query := `SELECT` + participantColumns + `
		FROM participants p
		WHERE p.summoner_id = ?
		ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query, summonerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParticipants(rows)
}

// ListParticipantsBySummonerAndQueue selects by the queue's external
// numeric id (420 solo, 440 flex).
func (r *sqliteMatchRepository) ListParticipantsBySummonerAndQueue(ctx context.Context, summonerID int64, queueID int) ([]domain.Participant, error) {
	query := `SELECT` + participantColumns + `
		FROM participants p
		JOIN matches m ON m.id = p.match_id
		JOIN queues q ON q.id = m.queue_id
		WHERE p.summoner_id = ? AND q.queue_id = ?
		ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query, summonerID, queueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParticipants(rows)
}

// SumDurationByQueueDescription sums match duration over the summoner's
// matches selected by the queue *description label*. This deliberately
// differs from the numeric-id selection above; see DESIGN.md.
func (r *sqliteMatchRepository) SumDurationByQueueDescription(ctx context.Context, summonerID int64, description string) (int, error) {
	var total sql.NullInt64
	query := `
		SELECT SUM(m.game_duration)
		FROM matches m
		JOIN participants p ON p.match_id = m.id
		JOIN queues q ON q.id = m.queue_id
		WHERE p.summoner_id = ? AND q.description = ?`
	err := r.db.QueryRowContext(ctx, query, summonerID, description).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
