package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/statistics"
)

type memoryMatch struct {
	snap     game.Snapshot
	playedAt time.Time
}

// MemoryStore keeps matches in process memory
type MemoryStore struct {
	mu        sync.RWMutex
	clock     quartz.Clock
	matches   map[string]memoryMatch
	order     []string
	standings *statistics.Standings
}

// NewMemoryStore creates an empty store stamping matches with clock
func NewMemoryStore(clock quartz.Clock) *MemoryStore {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &MemoryStore{
		clock:     clock,
		matches:   make(map[string]memoryMatch),
		standings: statistics.NewStandings(),
	}
}

func (m *MemoryStore) SaveMatch(_ context.Context, snap game.Snapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[snap.ID]; ok {
		return fmt.Errorf("match %s already saved", snap.ID)
	}
	m.matches[snap.ID] = memoryMatch{snap: snap, playedAt: m.clock.Now()}
	m.order = append(m.order, snap.ID)
	stats := snap.Statistics
	m.standings.AddMatch(&stats)
	return nil
}

func (m *MemoryStore) GetMatch(_ context.Context, id string) (game.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.matches[id]
	if !ok {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return match.snap, nil
}

func (m *MemoryStore) ListMatches(_ context.Context, limit int) ([]MatchSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MatchSummary, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		match := m.matches[m.order[i]]
		out = append(out, summarize(match.snap, match.playedAt))
	}
	return out, nil
}

func (m *MemoryStore) Standings(context.Context) ([]statistics.Standing, error) {
	return m.standings.Ranked(), nil
}

func (m *MemoryStore) Close() {}
