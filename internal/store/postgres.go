package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/statistics"
)

//go:embed schema.sql
var schema embed.FS

// PostgresStore keeps matches in PostgreSQL. The full snapshot is stored as
// JSONB; per-seat results are kept in their own table for standings.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// OpenPostgres connects to dsn and verifies the connection
func OpenPostgres(ctx context.Context, dsn string, logger *log.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool, logger: logger.WithPrefix("store")}, nil
}

// Migrate applies the embedded schema. It is idempotent.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	p.logger.Info("Schema applied")
	return nil
}

func (p *PostgresStore) SaveMatch(ctx context.Context, snap game.Snapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	var winner any
	if w := snap.Winner(); w >= 0 {
		winner = snap.Players[w].Name
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO matches (id, rounds, eliminations, winner, snapshot)
		VALUES ($1, $2, $3, $4, $5)
	`, snap.ID, snap.Statistics.NumRounds, snap.Eliminations, winner, doc); err != nil {
		return fmt.Errorf("insert match %s: %w", snap.ID, err)
	}

	stats := snap.Statistics
	batch := &pgx.Batch{}
	for seat, name := range stats.PlayerNames {
		batch.Queue(`
			INSERT INTO match_seats (match_id, seat, name, rounds, rounds_won, net, final_money)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, snap.ID, seat, name, len(stats.MoneyGained[seat]), stats.RoundsWon(seat), stats.Net(seat), snap.Players[seat].Money)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert seats for %s: %w", snap.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	p.logger.Debug("Match saved", "match", snap.ID, "rounds", stats.NumRounds)
	return nil
}

func (p *PostgresStore) GetMatch(ctx context.Context, id string) (game.Snapshot, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT snapshot FROM matches WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return game.Snapshot{}, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return snap, nil
}

func (p *PostgresStore) ListMatches(ctx context.Context, limit int) ([]MatchSummary, error) {
	query := `
		SELECT m.id, m.played_at, m.rounds, m.eliminations, COALESCE(m.winner, ''),
		       ARRAY(SELECT s.name FROM match_seats s WHERE s.match_id = m.id ORDER BY s.seat)
		  FROM matches m
		 ORDER BY m.played_at DESC, m.id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (MatchSummary, error) {
		var (
			s        MatchSummary
			playedAt time.Time
		)
		err := row.Scan(&s.ID, &playedAt, &s.Rounds, &s.Eliminations, &s.Winner, &s.Players)
		s.PlayedAt = playedAt.UTC()
		return s, err
	})
}

func (p *PostgresStore) Standings(ctx context.Context) ([]statistics.Standing, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT name, COUNT(*), SUM(rounds), SUM(rounds_won), SUM(net)
		  FROM match_seats
		 GROUP BY name
		 ORDER BY SUM(net) DESC, SUM(rounds_won) DESC, name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (statistics.Standing, error) {
		var s statistics.Standing
		if err := row.Scan(&s.Name, &s.Matches, &s.Rounds, &s.RoundsWon, &s.Net); err != nil {
			return s, err
		}
		if s.Rounds > 0 {
			s.MeanDelta = float64(s.Net) / float64(s.Rounds)
		}
		return s, nil
	})
}

func (p *PostgresStore) Close() { p.pool.Close() }
