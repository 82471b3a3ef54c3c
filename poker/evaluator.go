package poker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidHand is returned when a card set cannot be evaluated
var ErrInvalidHand = errors.New("invalid hand")

// Category enumerates the categories of poker hands ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// HandRank is a totally ordered hand strength. Tiebreak holds the ranks that
// decide between hands of the same category, most significant first, with
// unused slots left as zero:
//
//	StraightFlush, Straight: top rank
//	FourOfAKind, ThreeOfAKind, Pair: the grouped rank
//	FullHouse: trip rank, pair rank
//	TwoPair: high pair, low pair
//	Flush: the five flush ranks descending
//	HighCard: the highest rank
type HandRank struct {
	Category Category `json:"category"`
	Tiebreak [5]Rank  `json:"tiebreak"`
}

func newRank(c Category, ranks ...Rank) HandRank {
	hr := HandRank{Category: c}
	copy(hr.Tiebreak[:], ranks)
	return hr
}

// Compare returns 1 if hr beats other, -1 if it loses and 0 on a tie
func (hr HandRank) Compare(other HandRank) int {
	if hr.Category != other.Category {
		if hr.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := range hr.Tiebreak {
		if hr.Tiebreak[i] != other.Tiebreak[i] {
			if hr.Tiebreak[i] > other.Tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Beats reports whether hr is strictly stronger than other
func (hr HandRank) Beats(other HandRank) bool {
	return hr.Compare(other) > 0
}

// String describes the hand, e.g. "Full House, Kings over 9s"
func (hr HandRank) String() string {
	t := hr.Tiebreak
	switch hr.Category {
	case StraightFlush, Straight:
		return fmt.Sprintf("%s, %s high", hr.Category, t[0].Name())
	case FourOfAKind, ThreeOfAKind, Pair:
		return fmt.Sprintf("%s, %s", hr.Category, plural(t[0]))
	case FullHouse, TwoPair:
		return fmt.Sprintf("%s, %s over %s", hr.Category, plural(t[0]), plural(t[1]))
	case Flush:
		names := make([]string, 0, len(t))
		for _, r := range t {
			names = append(names, r.String())
		}
		return fmt.Sprintf("%s, %s", hr.Category, strings.Join(names, ""))
	default:
		return fmt.Sprintf("%s, %s", hr.Category, t[0].Name())
	}
}

func plural(r Rank) string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Evaluate ranks a set of five to seven distinct cards. Categories are tested
// strongest first and the first match wins. Aces are high only, so A-2-3-4-5
// is not a straight.
func Evaluate(cards []Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandRank{}, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrInvalidHand, len(cards))
	}

	var counts [Ace + 1]int
	var bySuit [len(suitNames)][]Rank
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return HandRank{}, fmt.Errorf("%w: card %v", ErrInvalidHand, c)
		}
		if seen[c] {
			return HandRank{}, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		seen[c] = true
		counts[c.Rank]++
		bySuit[c.Suit] = append(bySuit[c.Suit], c.Rank)
	}
	for i := range bySuit {
		slices.SortFunc(bySuit[i], descending)
	}

	// Straight flush
	for _, suited := range bySuit {
		if len(suited) >= 5 {
			if top, ok := straightTop(suited); ok {
				return newRank(StraightFlush, top), nil
			}
		}
	}

	if quad, ok := rankWithCount(&counts, 4); ok {
		return newRank(FourOfAKind, quad), nil
	}

	for trip := Ace; trip >= Two; trip-- {
		if counts[trip] != 3 {
			continue
		}
		for pair := Ace; pair >= Two; pair-- {
			if pair != trip && counts[pair] >= 2 {
				return newRank(FullHouse, trip, pair), nil
			}
		}
	}

	for _, suited := range bySuit {
		if len(suited) >= 5 {
			return newRank(Flush, suited[:5]...), nil
		}
	}

	distinct := make([]Rank, 0, len(cards))
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			distinct = append(distinct, r)
		}
	}
	if top, ok := straightTop(distinct); ok {
		return newRank(Straight, top), nil
	}

	if trip, ok := rankWithCount(&counts, 3); ok {
		return newRank(ThreeOfAKind, trip), nil
	}

	var pairs []Rank
	for r := Ace; r >= Two && len(pairs) < 2; r-- {
		if counts[r] == 2 {
			pairs = append(pairs, r)
		}
	}
	switch len(pairs) {
	case 2:
		return newRank(TwoPair, pairs[0], pairs[1]), nil
	case 1:
		return newRank(Pair, pairs[0]), nil
	}

	return newRank(HighCard, distinct[0]), nil
}

// MustEvaluate is Evaluate for inputs already known to be valid
func MustEvaluate(cards []Card) HandRank {
	hr, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return hr
}

// straightTop scans descending distinct ranks for five consecutive values
func straightTop(desc []Rank) (Rank, bool) {
	for i := 0; i+4 < len(desc); i++ {
		if desc[i]-desc[i+4] == 4 {
			return desc[i], true
		}
	}
	return 0, false
}

func rankWithCount(counts *[Ace + 1]int, n int) (Rank, bool) {
	for r := Ace; r >= Two; r-- {
		if counts[r] == n {
			return r, true
		}
	}
	return 0, false
}

func descending(a, b Rank) int {
	return int(b) - int(a)
}
