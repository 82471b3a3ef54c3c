package game

import (
	"fmt"
	"slices"

	"github.com/lox/llmholdem/poker"
)

// RoundResult is the outcome of one round
type RoundResult struct {
	Round          int                    `json:"round"`
	Winners        []int                  `json:"winners"`
	Pot            int                    `json:"pot"`
	Shares         []int                  `json:"shares"` // per seat
	Deltas         []int                  `json:"deltas"` // per seat: share minus round bet
	Hands          map[int]poker.HandRank `json:"hands,omitempty"`
	CommunityCards []poker.Card           `json:"community_cards"`
	Uncontested    bool                   `json:"uncontested"`
}

// ResolveShowdown ranks every active seat's hole cards plus the board,
// credits the pot according to policy, and reports per-seat deltas.
func ResolveShowdown(t *Table, policy TiePolicy) (RoundResult, error) {
	contenders := t.ActiveFrom(0)
	if len(contenders) == 0 {
		return RoundResult{}, fmt.Errorf("showdown with no active seats in round %d", t.Round.Number)
	}

	result := RoundResult{
		Round:          t.Round.Number,
		Pot:            t.Round.Pot,
		Shares:         make([]int, len(t.Players)),
		Deltas:         make([]int, len(t.Players)),
		CommunityCards: slices.Clone(t.Round.CommunityCards),
	}

	if len(contenders) == 1 {
		result.Winners = contenders
		result.Uncontested = true
	} else {
		result.Hands = make(map[int]poker.HandRank, len(contenders))
		var best poker.HandRank
		for i, seat := range contenders {
			cards := append(slices.Clone(t.Players[seat].Hand), t.Round.CommunityCards...)
			rank, err := poker.Evaluate(cards)
			if err != nil {
				return RoundResult{}, fmt.Errorf("evaluate seat %d: %w", seat, err)
			}
			result.Hands[seat] = rank
			switch cmp := rank.Compare(best); {
			case i == 0 || cmp > 0:
				best = rank
				result.Winners = []int{seat}
			case cmp == 0:
				result.Winners = append(result.Winners, seat)
			}
		}
		slices.Sort(result.Winners)
		if policy == TieFirstSeat {
			result.Winners = result.Winners[:1]
		}
	}

	share := result.Pot / len(result.Winners)
	oddChips := result.Pot % len(result.Winners)
	for i, seat := range result.Winners {
		result.Shares[seat] = share
		if i < oddChips {
			result.Shares[seat]++
		}
	}

	for seat := range t.Players {
		t.Players[seat].Money += result.Shares[seat]
		result.Deltas[seat] = result.Shares[seat] - t.Players[seat].Bet
	}
	t.Round.Pot = 0
	t.Round.Street = Showdown

	names := make([]string, len(result.Winners))
	for i, seat := range result.Winners {
		names[i] = t.Players[seat].Name
		if rank, ok := result.Hands[seat]; ok {
			t.Narrative.Addf("Player %s shows %s with %s.", t.Players[seat].Name, poker.CardNames(t.Players[seat].Hand), rank)
		}
	}
	if len(names) == 1 {
		t.Narrative.Addf("Player %s wins the pot of %d!", names[0], result.Pot)
	} else {
		t.Narrative.Addf("Players %s split the pot of %d!", joinNames(names), result.Pot)
	}
	return result, nil
}
