package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var ErrChampionNotFound = errors.New("champion not found")

// ChampionRepository and QueueRepository manage the reference-data
// catalogs. Both upsert by external key so bootstrap is idempotent.
type ChampionRepository interface {
	GetByKey(ctx context.Context, key int) (*domain.Champion, error)
	Upsert(ctx context.Context, c *domain.Champion) error
	Count(ctx context.Context) (int, error)
	ListBySummoner(ctx context.Context, summonerID int64) (map[int64]domain.Champion, error)
}

type QueueRepository interface {
	GetOrCreate(ctx context.Context, queueID int, description string) (*domain.Queue, error)
	Upsert(ctx context.Context, q *domain.Queue) error
	Count(ctx context.Context) (int, error)
}

type sqliteChampionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewChampionRepository(db *sql.DB, logger zerolog.Logger) ChampionRepository {
	return &sqliteChampionRepository{db: db, logger: logger}
}

func (r *sqliteChampionRepository) GetByKey(ctx context.Context, key int) (*domain.Champion, error) {
	c := &domain.Champion{}
	query := `SELECT id, key, name, icon FROM champions WHERE key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&c.ID, &c.Key, &c.Name, &c.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChampionNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *sqliteChampionRepository) Upsert(ctx context.Context, c *domain.Champion) error {
	query := `
		INSERT INTO champions (key, name, icon) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET name = excluded.name, icon = excluded.icon`
	if _, err := r.db.ExecContext(ctx, query, c.Key, c.Name, c.Icon); err != nil {
		return fmt.Errorf("failed to upsert champion %d: %w", c.Key, err)
	}
	return nil
}

func (r *sqliteChampionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM champions`).Scan(&count)
	return count, err
}

// ListBySummoner returns the champions appearing in a summoner's champion
// summaries, keyed by local champion id. Used by the read path to attach
// names and icons.
func (r *sqliteChampionRepository) ListBySummoner(ctx context.Context, summonerID int64) (map[int64]domain.Champion, error) {
	query := `
		SELECT DISTINCT c.id, c.key, c.name, c.icon
		FROM champions c
		JOIN summoner_champions sc ON sc.champion_id = c.id
		WHERE sc.summoner_id = ?`
	rows, err := r.db.QueryContext(ctx, query, summonerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	champions := make(map[int64]domain.Champion)
	for rows.Next() {
		var c domain.Champion
		if err := rows.Scan(&c.ID, &c.Key, &c.Name, &c.Icon); err != nil {
			return nil, err
		}
		champions[c.ID] = c
	}
	return champions, rows.Err()
}

type sqliteQueueRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewQueueRepository(db *sql.DB, logger zerolog.Logger) QueueRepository {
	return &sqliteQueueRepository{db: db, logger: logger}
}

// GetOrCreate resolves a queue by its external id, inserting it with the
// given description when unseen. An existing row keeps its description.
func (r *sqliteQueueRepository) GetOrCreate(ctx context.Context, queueID int, description string) (*domain.Queue, error) {
	q := &domain.Queue{}
	query := `SELECT id, queue_id, COALESCE(description, '') FROM queues WHERE queue_id = ?`
	err := r.db.QueryRowContext(ctx, query, queueID).Scan(&q.ID, &q.QueueID, &q.Description)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO queues (queue_id, description) VALUES (?, ?)`, queueID, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue %d: %w", queueID, err)
	}
	q.QueueID = queueID
	q.Description = description
	q.ID, err = res.LastInsertId()
	return q, err
}

func (r *sqliteQueueRepository) Upsert(ctx context.Context, q *domain.Queue) error {
	query := `
		INSERT INTO queues (queue_id, description) VALUES (?, ?)
		ON CONFLICT(queue_id) DO UPDATE SET description = excluded.description`
	if _, err := r.db.ExecContext(ctx, query, q.QueueID, q.Description); err != nil {
		return fmt.Errorf("failed to upsert queue %d: %w", q.QueueID, err)
	}
	return nil
}

func (r *sqliteQueueRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queues`).Scan(&count)
	return count, err
}
