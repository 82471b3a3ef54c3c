// Package statistics records match outcomes: per-round winners and money
// deltas for a single match, and standings aggregated across matches.
package statistics

import (
	"fmt"
	"slices"
)

// GameStatistics is the append-only ledger of one match. MoneyGained[seat]
// holds one net delta per round played.
type GameStatistics struct {
	PlayerNames []string `json:"player_names"`
	NumRounds   int      `json:"num_rounds"`
	Winners     [][]int  `json:"winners"`
	MoneyGained [][]int  `json:"money_gained"`
}

// New creates an empty ledger for the named seats
func New(names []string) *GameStatistics {
	gained := make([][]int, len(names))
	for i := range gained {
		gained[i] = []int{}
	}
	return &GameStatistics{
		PlayerNames: slices.Clone(names),
		Winners:     [][]int{},
		MoneyGained: gained,
	}
}

// RecordRound appends one round: the winning seats and a delta for every seat
func (s *GameStatistics) RecordRound(winners []int, deltas []int) error {
	if len(winners) == 0 {
		return fmt.Errorf("round %d has no winners", s.NumRounds+1)
	}
	if len(deltas) != len(s.PlayerNames) {
		return fmt.Errorf("round %d has %d deltas for %d seats", s.NumRounds+1, len(deltas), len(s.PlayerNames))
	}
	for _, w := range winners {
		if w < 0 || w >= len(s.PlayerNames) {
			return fmt.Errorf("round %d winner seat %d out of range", s.NumRounds+1, w)
		}
	}
	s.Winners = append(s.Winners, slices.Clone(winners))
	for seat, d := range deltas {
		s.MoneyGained[seat] = append(s.MoneyGained[seat], d)
	}
	s.NumRounds++
	return nil
}

// Net returns a seat's total gain over the match
func (s *GameStatistics) Net(seat int) int {
	total := 0
	for _, d := range s.MoneyGained[seat] {
		total += d
	}
	return total
}

// RoundsWon counts the rounds in which seat took all or part of the pot
func (s *GameStatistics) RoundsWon(seat int) int {
	won := 0
	for _, winners := range s.Winners {
		if slices.Contains(winners, seat) {
			won++
		}
	}
	return won
}

// Summary returns the distribution of a seat's deltas
func (s *GameStatistics) Summary(seat int) Summary {
	var sum Summary
	for _, d := range s.MoneyGained[seat] {
		sum.Add(float64(d))
	}
	return sum
}

// Clone returns a deep copy safe to hand to other goroutines
func (s *GameStatistics) Clone() GameStatistics {
	out := GameStatistics{
		PlayerNames: slices.Clone(s.PlayerNames),
		NumRounds:   s.NumRounds,
		Winners:     make([][]int, len(s.Winners)),
		MoneyGained: make([][]int, len(s.MoneyGained)),
	}
	for i, w := range s.Winners {
		out.Winners[i] = slices.Clone(w)
	}
	for i, g := range s.MoneyGained {
		out.MoneyGained[i] = slices.Clone(g)
	}
	return out
}

// Validate checks the ledger is consistent: one entry per seat per round and
// every round's deltas summing to zero, since chips only move between seats.
func (s *GameStatistics) Validate() error {
	if len(s.Winners) != s.NumRounds {
		return fmt.Errorf("winners length (%d) does not match rounds (%d)", len(s.Winners), s.NumRounds)
	}
	if len(s.MoneyGained) != len(s.PlayerNames) {
		return fmt.Errorf("money gained has %d seats, expected %d", len(s.MoneyGained), len(s.PlayerNames))
	}
	for seat, gains := range s.MoneyGained {
		if len(gains) != s.NumRounds {
			return fmt.Errorf("seat %d has %d deltas for %d rounds", seat, len(gains), s.NumRounds)
		}
	}
	for round := 0; round < s.NumRounds; round++ {
		total := 0
		for seat := range s.MoneyGained {
			total += s.MoneyGained[seat][round]
		}
		if total != 0 {
			return fmt.Errorf("round %d deltas sum to %d, expected 0", round+1, total)
		}
	}
	return nil
}
