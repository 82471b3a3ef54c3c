// Package store persists finished matches and serves the cross-match
// standings. MemoryStore backs tests and single-process use; PostgresStore
// keeps results across runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/statistics"
)

// ErrNotFound is returned when a match id is unknown
var ErrNotFound = errors.New("match not found")

// Store records match snapshots
type Store interface {
	SaveMatch(ctx context.Context, snap game.Snapshot) error
	GetMatch(ctx context.Context, id string) (game.Snapshot, error)
	// ListMatches returns the most recent matches first; limit <= 0 means all
	ListMatches(ctx context.Context, limit int) ([]MatchSummary, error)
	Standings(ctx context.Context) ([]statistics.Standing, error)
	Close()
}

// MatchSummary is the listing view of a stored match
type MatchSummary struct {
	ID           string    `json:"id"`
	PlayedAt     time.Time `json:"played_at"`
	Players      []string  `json:"players"`
	Rounds       int       `json:"rounds"`
	Eliminations int       `json:"eliminations"`
	// Winner is the player holding the most money, empty on a tie
	Winner string `json:"winner,omitempty"`
}

func summarize(snap game.Snapshot, playedAt time.Time) MatchSummary {
	sum := MatchSummary{
		ID:           snap.ID,
		PlayedAt:     playedAt,
		Players:      append([]string(nil), snap.Statistics.PlayerNames...),
		Rounds:       snap.Statistics.NumRounds,
		Eliminations: snap.Eliminations,
	}
	if w := snap.Winner(); w >= 0 {
		sum.Winner = snap.Players[w].Name
	}
	return sum
}

func validateSnapshot(snap game.Snapshot) error {
	if snap.ID == "" {
		return errors.New("snapshot has no match id")
	}
	return snap.Statistics.Validate()
}
