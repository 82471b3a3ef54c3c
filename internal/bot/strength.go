package bot

import (
	rand "math/rand/v2"
	"slices"

	"github.com/lox/llmholdem/poker"
)

// HandStrength buckets a hand for simple threshold strategies
type HandStrength int

const (
	VeryWeak HandStrength = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (hs HandStrength) String() string {
	switch hs {
	case VeryWeak:
		return "very weak"
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}

// PreflopStrength grades two hole cards with a coarse starting-hand chart
func PreflopStrength(hole []poker.Card) HandStrength {
	if len(hole) != 2 {
		return VeryWeak
	}
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	suited := hole[0].Suit == hole[1].Suit
	gap := int(hi - lo)

	switch {
	case hi == lo && hi >= poker.Ten, hi == poker.Ace && lo >= poker.Queen:
		return VeryStrong
	case hi == lo && hi >= poker.Seven, hi == poker.Ace && lo >= poker.Ten, hi == poker.King && lo >= poker.Queen:
		return Strong
	case hi == lo, hi == poker.Ace && suited, hi >= poker.Jack && lo >= poker.Ten, suited && gap == 1 && lo >= poker.Six:
		return Medium
	case hi >= poker.Ten || (suited && gap <= 2):
		return Weak
	default:
		return VeryWeak
	}
}

// EquityToStrength maps win probability to a strength bucket
func EquityToStrength(equity float64, opponents int) HandStrength {
	// scale against a fair share so multiway pots need stronger hands
	fair := 1.0 / float64(max(opponents, 1)+1)
	ratio := equity / fair
	switch {
	case ratio >= 1.6:
		return VeryStrong
	case ratio >= 1.3:
		return Strong
	case ratio >= 1.0:
		return Medium
	case ratio >= 0.6:
		return Weak
	default:
		return VeryWeak
	}
}

// EstimateEquity estimates by Monte Carlo the share of the pot hole would
// win against opponents random hands, completing the board as needed.
// Ties count as a fractional win.
func EstimateEquity(hole, board []poker.Card, opponents, samples int, rng *rand.Rand) float64 {
	if len(hole) != 2 || len(board) > 5 || opponents < 1 || samples < 1 {
		return 0
	}
	used := make(map[poker.Card]bool, 7)
	for _, c := range append(slices.Clone(hole), board...) {
		used[c] = true
	}
	available := make([]poker.Card, 0, poker.DeckSize)
	for _, suit := range poker.Suits {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			if c := poker.NewCard(rank, suit); !used[c] {
				available = append(available, c)
			}
		}
	}
	need := 5 - len(board) + 2*opponents
	if need > len(available) {
		return 0
	}

	var won float64
	finalBoard := make([]poker.Card, 5)
	hand := make([]poker.Card, 7)
	for i := 0; i < samples; i++ {
		// partial Fisher-Yates: the first need cards are the sample
		for j := 0; j < need; j++ {
			k := j + rng.IntN(len(available)-j)
			available[j], available[k] = available[k], available[j]
		}
		copy(finalBoard, board)
		copy(finalBoard[len(board):], available[:5-len(board)])
		dealt := available[5-len(board) : need]

		copy(hand, hole)
		copy(hand[2:], finalBoard)
		hero := poker.MustEvaluate(hand)

		best, ties := true, 0
		for o := 0; o < opponents; o++ {
			copy(hand, dealt[2*o:2*o+2])
			copy(hand[2:], finalBoard)
			switch hero.Compare(poker.MustEvaluate(hand)) {
			case -1:
				best = false
			case 0:
				ties++
			}
			if !best {
				break
			}
		}
		if best {
			won += 1 / float64(ties+1)
		}
	}
	return won / float64(samples)
}
