package game

import (
	"fmt"

	"github.com/lox/llmholdem/poker"
)

// Street is a betting phase within a round
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

var streetNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (s Street) String() string {
	if int(s) < len(streetNames) {
		return streetNames[s]
	}
	return "unknown"
}

func (s Street) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Street) UnmarshalText(text []byte) error {
	for i, name := range streetNames {
		if name == string(text) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// PlayerState is one seat at the table. Bet is the seat's commitment for the
// whole round: like RoundState.CallAmount it carries across streets.
type PlayerState struct {
	Seat     int          `json:"seat"`
	Name     string       `json:"name"`
	Hand     []poker.Card `json:"hand"`
	Bet      int          `json:"bet"`
	Money    int          `json:"money"`
	IsActive bool         `json:"is_active"`
	IsAllIn  bool         `json:"is_all_in"`
}

// CanAct reports whether the seat may still bet this round
func (p PlayerState) CanAct() bool {
	return p.IsActive && !p.IsAllIn
}

// RoundState is shared by every seat for the duration of one round
type RoundState struct {
	Number         int          `json:"number"`
	Street         Street       `json:"street"`
	Pot            int          `json:"pot"`
	CommunityCards []poker.Card `json:"community_cards"`
	CallAmount     int          `json:"call_amount"`
	RaiseCount     int          `json:"raise_count"` // raises on the current street
	SmallBlindSeat int          `json:"small_blind_seat"`
	BigBlindSeat   int          `json:"big_blind_seat"`
}

// Table groups the mutable state a round operates on
type Table struct {
	Players   []PlayerState
	Round     RoundState
	Narrative *Narrative
}

// NewTable seats the named players with the given stacks
func NewTable(names []string, stacks []int) *Table {
	t := &Table{Players: make([]PlayerState, len(names)), Narrative: NewNarrative()}
	for i, name := range names {
		t.Players[i] = PlayerState{Seat: i, Name: name, Money: stacks[i], IsActive: stacks[i] > 0}
	}
	return t
}

// ActiveFrom lists active seats in seat order starting at start, wrapping around
func (t *Table) ActiveFrom(start int) []int {
	n := len(t.Players)
	seats := make([]int, 0, n)
	for i := 0; i < n; i++ {
		seat := (start + i) % n
		if t.Players[seat].IsActive {
			seats = append(seats, seat)
		}
	}
	return seats
}

// Contenders counts the seats still in the round, all-in seats included
func (t *Table) Contenders() int {
	count := 0
	for _, p := range t.Players {
		if p.IsActive {
			count++
		}
	}
	return count
}

// Funded counts seats with a positive stack
func (t *Table) Funded() int {
	count := 0
	for _, p := range t.Players {
		if p.Money > 0 {
			count++
		}
	}
	return count
}

// Eliminations counts seats with no money left
func (t *Table) Eliminations() int {
	return len(t.Players) - t.Funded()
}

// TotalChips is every stack plus the pot; it never changes during a match
func (t *Table) TotalChips() int {
	total := t.Round.Pot
	for _, p := range t.Players {
		total += p.Money
	}
	return total
}

// NextFunded returns the first seat after from that holds money
func (t *Table) NextFunded(from int) int {
	n := len(t.Players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if t.Players[seat].Money > 0 {
			return seat
		}
	}
	return from
}

// owed is what seat must add to match the call amount
func (t *Table) owed(seat int) int {
	return max(t.Round.CallAmount-t.Players[seat].Bet, 0)
}

// refund voids the round in progress, returning every bet to its owner
func (t *Table) refund() {
	for i := range t.Players {
		t.Players[i].Money += t.Players[i].Bet
		t.Players[i].Bet = 0
	}
	t.Round.Pot = 0
}

func (t *Table) names() []string {
	names := make([]string, len(t.Players))
	for i, p := range t.Players {
		names[i] = p.Name
	}
	return names
}

// clonePlayers deep-copies the seat table for events and snapshots
func (t *Table) clonePlayers() []PlayerState {
	out := make([]PlayerState, len(t.Players))
	for i, p := range t.Players {
		p.Hand = append([]poker.Card(nil), p.Hand...)
		out[i] = p
	}
	return out
}
