package game

import (
	"slices"

	"github.com/lox/llmholdem/internal/statistics"
	"github.com/lox/llmholdem/poker"
)

// Snapshot is a point-in-time copy of a match, safe to serialise or hand to
// another goroutine.
type Snapshot struct {
	ID           string                    `json:"id"`
	Config       Config                    `json:"config"`
	Round        RoundState                `json:"round"`
	Players      []PlayerState             `json:"players"`
	Statistics   statistics.GameStatistics `json:"statistics"`
	Narrative    string                    `json:"narrative"`
	Eliminations int                       `json:"eliminations"`
	Finished     bool                      `json:"finished"`
}

// Snapshot copies the current match state
func (g *Game) Snapshot() Snapshot {
	round := g.table.Round
	round.CommunityCards = append([]poker.Card(nil), round.CommunityCards...)
	cfg := g.cfg
	cfg.Stacks = slices.Clone(cfg.Stacks)
	return Snapshot{
		ID:           g.id,
		Config:       cfg,
		Round:        round,
		Players:      g.table.clonePlayers(),
		Statistics:   g.stats.Clone(),
		Narrative:    g.table.Narrative.String(),
		Eliminations: g.table.Eliminations(),
		Finished:     g.finished,
	}
}

// Winner returns the seat with the most money, or -1 on a tie for the lead
func (s Snapshot) Winner() int {
	best, leader := -1, -1
	for _, p := range s.Players {
		switch {
		case p.Money > best:
			best, leader = p.Money, p.Seat
		case p.Money == best:
			leader = -1
		}
	}
	return leader
}
